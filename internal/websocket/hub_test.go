package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHubBroadcastsOnlyToMatchFollowers(t *testing.T) {
	h := NewHub()
	go h.Run()

	follower := &Client{MatchID: "m1", Send: make(chan []byte, 4)}
	other := &Client{MatchID: "m2", Send: make(chan []byte, 4)}
	h.Register(follower)
	h.Register(other)

	h.BroadcastToMatch("m1", []byte("state"))

	select {
	case data := <-follower.Send:
		require.Equal(t, []byte("state"), data)
	case <-time.After(time.Second):
		t.Fatal("follower never received the broadcast")
	}
	require.Empty(t, other.Send)
}

func TestHubDropsSlowClientWithoutStalling(t *testing.T) {
	h := NewHub()
	go h.Run()

	slow := &Client{MatchID: "m1", Send: make(chan []byte, 1)}
	healthy := &Client{MatchID: "m1", Send: make(chan []byte, 4)}
	h.Register(slow)
	h.Register(healthy)

	// The first broadcast fills the slow client's buffer; the second finds it
	// full. The hub must drop the slow client and keep delivering to the
	// healthy one instead of wedging its own loop.
	h.BroadcastToMatch("m1", []byte("one"))
	h.BroadcastToMatch("m1", []byte("two"))

	for i := 0; i < 2; i++ {
		select {
		case <-healthy.Send:
		case <-time.After(time.Second):
			t.Fatal("healthy client stopped receiving")
		}
	}

	// Dropping closes the slow client's channel; its buffered message is
	// still drainable, then the channel reads as closed.
	select {
	case <-slow.Send:
	case <-time.After(time.Second):
		t.Fatal("slow client never received its first message")
	}
	select {
	case _, ok := <-slow.Send:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("slow client was not dropped")
	}
}

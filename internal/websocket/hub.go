// Package websocket implements a WebSocket Hub for broadcasting live match
// updates. When a score is entered the handlers recompute the match state and
// push it here, so everyone following a match sees the lead change the moment
// it happens instead of polling the API.
package websocket

import "sync"

// Client is a single connected WebSocket client — one per person following a
// live match.
type Client struct {
	MatchID string      // which match this client is following
	Send    chan []byte // buffered outgoing messages; the Hub writes, the socket drains
}

// Message is a unit of data to broadcast to everyone following one match.
type Message struct {
	MatchID string
	Data    []byte // typically a JSON-encoded engine.MatchState
}

// Hub manages all active connections, grouped by match ID. It runs in its
// own goroutine and processes registration, unregistration, and broadcasts
// through channels, so all map mutation happens on a single goroutine.
type Hub struct {
	// clients: matchID -> set of connected clients. A map[*Client]bool as a
	// set is the usual Go idiom.
	clients map[string]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client

	// mu guards clients between the mutating loop (Lock) and broadcast reads
	// (RLock). An RWMutex lets many broadcasts read concurrently.
	mu sync.RWMutex
}

// NewHub creates a Hub. broadcast is buffered so score handlers don't block
// if the loop is briefly busy; register/unregister stay synchronous.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run is the Hub's event loop; call it in a goroutine ("go hub.Run()").
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.MatchID] == nil {
				h.clients[client.MatchID] = make(map[*Client]bool)
			}
			h.clients[client.MatchID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.removeClient(client)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients[msg.MatchID] {
				select {
				case client.Send <- msg.Data:
				default:
					// Full buffer means a client too slow to keep up — drop it
					// rather than stalling the broadcast for everyone else.
					// Removed inline: sending to h.unregister from here would
					// deadlock, since this loop is its only receiver.
					h.removeClient(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// removeClient deletes a client and closes its send channel. Callers must
// hold mu.
func (h *Hub) removeClient(client *Client) {
	clients, ok := h.clients[client.MatchID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.Send) // signals the writer goroutine to stop
	if len(clients) == 0 {
		delete(h.clients, client.MatchID)
	}
}

// BroadcastToMatch sends data to every client following the given match.
// Called by the score handlers after recomputing match state.
func (h *Hub) BroadcastToMatch(matchID string, data []byte) {
	h.broadcast <- &Message{MatchID: matchID, Data: data}
}

// Register adds a client so it starts receiving broadcasts for its match.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client when its connection closes.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

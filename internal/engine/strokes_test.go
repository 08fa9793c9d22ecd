package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStrokesOnHole(t *testing.T) {
	tests := []struct {
		name        string
		handicap    int
		strokeIndex int
		want        int
	}{
		{name: "scratch gets nothing", handicap: 0, strokeIndex: 1, want: 0},
		{name: "index within handicap", handicap: 10, strokeIndex: 10, want: 1},
		{name: "index beyond handicap", handicap: 10, strokeIndex: 11, want: 0},
		{name: "over 18 strokes everywhere", handicap: 19, strokeIndex: 18, want: 1},
		{name: "double on the hardest", handicap: 19, strokeIndex: 1, want: 2},
		{name: "double boundary", handicap: 20, strokeIndex: 2, want: 2},
		{name: "just one past the double range", handicap: 20, strokeIndex: 3, want: 1},
		{name: "negative handicap gets nothing", handicap: -2, strokeIndex: 18, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, StrokesOnHole(tt.handicap, tt.strokeIndex))
		})
	}
}

func TestStrokeAllocation(t *testing.T) {
	holes := []Hole{
		{Number: 1, Par: 4, StrokeIndex: 7},
		{Number: 2, Par: 5, StrokeIndex: 1},
		{Number: 3, Par: 3, StrokeIndex: 15},
	}
	require.Equal(t, []int{1, 2}, StrokeAllocation(8, holes))
	require.Equal(t, []int{2}, StrokeAllocation(1, holes))
	require.Nil(t, StrokeAllocation(0, holes))
	require.Equal(t, []int{1, 2, 3}, StrokeAllocation(20, holes))
}

func TestCapGross(t *testing.T) {
	require.Equal(t, 8, CapGross(11, 4, 4), "capped at par plus max")
	require.Equal(t, 7, CapGross(7, 4, 4), "under the cap unchanged")
	require.Equal(t, 13, CapGross(13, 4, 0), "zero max disables the cap")
}

func TestNetScore(t *testing.T) {
	hole := Hole{Number: 5, Par: 4, StrokeIndex: 3}

	t.Run("cap before strokes", func(t *testing.T) {
		// Gross 12 on a par 4 with a +4 cap: capped to 8 first, then one
		// stroke off — never 12−1 capped after.
		s := NetScore("p1", hole, 12, 10, 4)
		require.Equal(t, 8, s.GrossScore)
		require.Equal(t, 1, s.StrokesReceived)
		require.Equal(t, 7, s.NetScore)
	})

	t.Run("no strokes", func(t *testing.T) {
		s := NetScore("p1", hole, 5, 0, 0)
		require.Equal(t, HoleScore{PlayerID: "p1", HoleNumber: 5, GrossScore: 5, NetScore: 5}, s)
	})

	t.Run("double stroke", func(t *testing.T) {
		s := NetScore("p1", hole, 6, 22, 0)
		require.Equal(t, 2, s.StrokesReceived)
		require.Equal(t, 4, s.NetScore)
	})
}

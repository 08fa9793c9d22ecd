package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// tiltHoles builds par-4 holes from net scores.
func tiltHoles(nets ...int) []TiltHole {
	out := make([]TiltHole, len(nets))
	for i, n := range nets {
		out[i] = TiltHole{HoleNumber: i + 1, Net: n, Par: 4}
	}
	return out
}

func TestTiltBasePoints(t *testing.T) {
	tests := []struct {
		name string
		net  int
		want int
	}{
		{name: "albatross", net: 1, want: 16},
		{name: "eagle", net: 2, want: 8},
		{name: "birdie", net: 3, want: 4},
		{name: "par", net: 4, want: 2},
		{name: "bogey", net: 5, want: 0},
		{name: "double", net: 6, want: -4},
		{name: "worse than double clamps", net: 9, want: -4},
		{name: "better than albatross clamps", net: 0, want: 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ComputeTiltRound("p", tiltHoles(tt.net), FreshTiltState(), TiltConfig{})
			require.Equal(t, tt.want, res.Holes[0].BasePoints)
		})
	}
}

func TestTiltStreakMultiplier(t *testing.T) {
	t.Run("birdie then par", func(t *testing.T) {
		res := ComputeTiltRound("p", tiltHoles(3, 4), FreshTiltState(), TiltConfig{})
		require.Equal(t, []int{1, 2}, multipliers(res))
		require.Equal(t, []int{4, 4}, points(res)) // 4×1, then 2×2
		require.Equal(t, 8, res.TotalPoints)
	})

	t.Run("birdie birdie par", func(t *testing.T) {
		res := ComputeTiltRound("p", tiltHoles(3, 3, 4), FreshTiltState(), TiltConfig{})
		require.Equal(t, []int{1, 2, 3}, multipliers(res))
		require.Equal(t, []int{4, 8, 6}, points(res))
	})

	t.Run("eagle jumps the streak", func(t *testing.T) {
		res := ComputeTiltRound("p", tiltHoles(2, 4), FreshTiltState(), TiltConfig{})
		require.Equal(t, []int{1, 3}, multipliers(res)) // streak += 2
	})

	t.Run("bogey resets", func(t *testing.T) {
		res := ComputeTiltRound("p", tiltHoles(3, 5, 3), FreshTiltState(), TiltConfig{})
		require.Equal(t, []int{1, 2, 1}, multipliers(res))
		require.Equal(t, TiltState{Multiplier: 2, Streak: 1}, res.FinalState)
	})
}

func TestTiltUncappedMultiplier(t *testing.T) {
	// Eight straight birdies: the multiplier keeps climbing, no ceiling.
	res := ComputeTiltRound("p", tiltHoles(3, 3, 3, 3, 3, 3, 3, 3), FreshTiltState(), TiltConfig{})
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, multipliers(res))
	require.Equal(t, TiltState{Multiplier: 9, Streak: 8}, res.FinalState)
}

func TestTiltCarryoverSeed(t *testing.T) {
	first := ComputeTiltRound("p", tiltHoles(3, 3), FreshTiltState(), TiltConfig{Carryover: true})
	require.Equal(t, TiltState{Multiplier: 3, Streak: 2}, first.FinalState)

	// Next round opens at 3x because the streak carried.
	second := ComputeTiltRound("p", tiltHoles(4), first.FinalState, TiltConfig{Carryover: true})
	require.Equal(t, 3, second.Holes[0].Multiplier)
	require.Equal(t, 6, second.Holes[0].Points) // par 2 × 3
	require.Equal(t, FreshTiltState(), second.FinalState)
}

func TestTiltBasePointOverrides(t *testing.T) {
	cfg := TiltConfig{BasePoints: map[int]int{0: 1}}
	res := ComputeTiltRound("p", tiltHoles(4, 3), FreshTiltState(), cfg)
	require.Equal(t, 1, res.Holes[0].BasePoints) // overridden par
	require.Equal(t, 4, res.Holes[1].BasePoints) // birdie falls back to default
}

func TestCalculateTiltPayouts(t *testing.T) {
	t.Run("clean top three", func(t *testing.T) {
		got := CalculateTiltPayouts(map[string]int{"p1": 300, "p2": 200, "p3": 100, "p4": 50}, 1000)
		require.Equal(t, []TiltPayout{
			{PlayerID: "p1", Points: 300, Money: 600},
			{PlayerID: "p2", Points: 200, Money: 300},
			{PlayerID: "p3", Points: 100, Money: 100},
			{PlayerID: "p4", Points: 50, Money: 0},
		}, got)
	})

	t.Run("two tied for first merge and split", func(t *testing.T) {
		got := CalculateTiltPayouts(map[string]int{"p1": 200, "p2": 200, "p3": 100}, 1000)
		require.Equal(t, []TiltPayout{
			{PlayerID: "p1", Points: 200, Money: 450},
			{PlayerID: "p2", Points: 200, Money: 450},
			{PlayerID: "p3", Points: 100, Money: 100},
		}, got)
	})

	t.Run("three tied for first take everything", func(t *testing.T) {
		got := CalculateTiltPayouts(map[string]int{"a": 50, "b": 50, "c": 50, "d": 10}, 300)
		require.Equal(t, 100.0, got[0].Money)
		require.Equal(t, 100.0, got[1].Money)
		require.Equal(t, 100.0, got[2].Money)
		require.Equal(t, 0.0, got[3].Money)
	})

	t.Run("two tied for second share second and third", func(t *testing.T) {
		got := CalculateTiltPayouts(map[string]int{"a": 300, "b": 200, "c": 200, "d": 100}, 1000)
		require.Equal(t, 600.0, got[0].Money)
		require.Equal(t, 200.0, got[1].Money) // (30%+10%)/2
		require.Equal(t, 200.0, got[2].Money)
		require.Equal(t, 0.0, got[3].Money)
	})

	t.Run("zero pot pays nothing", func(t *testing.T) {
		got := CalculateTiltPayouts(map[string]int{"a": 10, "b": 5}, 0)
		for _, p := range got {
			require.Equal(t, 0.0, p.Money)
		}
	})
}

func multipliers(r TiltPlayerResult) []int {
	out := make([]int, len(r.Holes))
	for i, h := range r.Holes {
		out[i] = h.Multiplier
	}
	return out
}

func points(r TiltPlayerResult) []int {
	out := make([]int, len(r.Holes))
	for i, h := range r.Holes {
		out[i] = h.Points
	}
	return out
}

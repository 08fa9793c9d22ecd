// tilt.go — the TILT streak game.
//
// TILT scores every hole on net against par, with a multiplier that climbs
// while a player keeps beating par and snaps back to 1x the moment they
// don't. The multiplier is uncapped: a hot streak compounds without limit.
// (An earlier one-off verification script experimented with a cap; the
// behavior the trip actually plays — and the tests pin — is uncapped.)
package engine

import "sort"

// defaultTiltBasePoints maps net-vs-par to base points. Keys below -3 and
// above 2 clamp to the edge rows.
var defaultTiltBasePoints = map[int]int{
	-3: 16, // albatross or better
	-2: 8,  // eagle
	-1: 4,  // birdie
	0:  2,  // par
	1:  0,  // bogey
	2:  -4, // double bogey or worse
}

// TiltConfig carries the per-trip overrides for TILT scoring.
type TiltConfig struct {
	// BasePoints overrides the points table per net-vs-par diff. Any diff not
	// present falls back to the defaults.
	BasePoints map[int]int
	// Carryover threads each round's final streak state into the next round.
	Carryover bool
}

// TiltHole is one hole's inputs for one player.
type TiltHole struct {
	HoleNumber int
	Net        int
	Par        int
}

// tiltBasePoints resolves the base points for a net-vs-par diff, clamping to
// the table's edges (a quadruple bogey scores like a double).
func tiltBasePoints(diff int, cfg TiltConfig) int {
	if diff < -3 {
		diff = -3
	}
	if diff > 2 {
		diff = 2
	}
	if cfg.BasePoints != nil {
		if pts, ok := cfg.BasePoints[diff]; ok {
			return pts
		}
	}
	return defaultTiltBasePoints[diff]
}

// ComputeTiltRound folds a player's ordered holes into their TILT result for
// the round. start is the carryover seed — FreshTiltState() unless the trip
// threads state across rounds. The multiplier in effect on a hole applies to
// that hole's base points; streak changes take effect on the next hole.
//
// Streak growth: birdie +1, eagle +2, albatross or better +3; anything at or
// over par resets the streak and the multiplier. Multiplier = streak + 1,
// with no upper bound.
func ComputeTiltRound(playerID string, holes []TiltHole, start TiltState, cfg TiltConfig) TiltPlayerResult {
	state := start
	if state.Multiplier < 1 {
		state.Multiplier = 1
	}
	if state.Streak < 0 {
		state.Streak = 0
	}

	result := TiltPlayerResult{PlayerID: playerID}
	for _, h := range holes {
		diff := h.Net - h.Par
		base := tiltBasePoints(diff, cfg)
		points := base * state.Multiplier
		result.Holes = append(result.Holes, TiltHoleResult{
			HoleNumber: h.HoleNumber,
			BasePoints: base,
			Multiplier: state.Multiplier,
			Points:     points,
		})
		result.TotalPoints += points

		switch {
		case diff <= -3:
			state.Streak += 3
		case diff == -2:
			state.Streak += 2
		case diff == -1:
			state.Streak++
		default:
			state.Streak = 0
		}
		if state.Streak > 0 {
			state.Multiplier = state.Streak + 1
		} else {
			state.Multiplier = 1
		}
	}

	result.FinalState = state
	return result
}

// tiltPayoutPcts pays the top three positions.
var tiltPayoutPcts = [3]float64{0.60, 0.30, 0.10}

// CalculateTiltPayouts splits the tournament pot 60/30/10 over the top three
// positions by cumulative points. Ties merge the tied positions' percentages
// and split them evenly: two tied for 1st share 90% (60+30); three or more
// tied for 1st share the whole pot and nobody else is paid; two tied for 2nd
// share 40% while 1st is paid normally. A zero pot pays everyone zero.
func CalculateTiltPayouts(totals map[string]int, pot float64) []TiltPayout {
	players := make([]string, 0, len(totals))
	for p := range totals {
		players = append(players, p)
	}
	// Points descending; player ID breaks ties deterministically for output
	// order only — tied players are paid identically regardless of order.
	sort.Slice(players, func(i, j int) bool {
		if totals[players[i]] != totals[players[j]] {
			return totals[players[i]] > totals[players[j]]
		}
		return players[i] < players[j]
	})

	payouts := make([]TiltPayout, 0, len(players))
	position := 0 // 0-based finishing position consumed so far
	for i := 0; i < len(players); {
		// Collect the group tied at this score.
		j := i
		for j < len(players) && totals[players[j]] == totals[players[i]] {
			j++
		}
		groupSize := j - i

		// Sum the percentages of the positions this group occupies.
		pct := 0.0
		for k := position; k < position+groupSize && k < len(tiltPayoutPcts); k++ {
			pct += tiltPayoutPcts[k]
		}

		share := 0.0
		if pot > 0 && pct > 0 {
			share = round2(pot * pct / float64(groupSize))
		}
		for k := i; k < j; k++ {
			payouts = append(payouts, TiltPayout{
				PlayerID: players[k],
				Points:   totals[players[k]],
				Money:    share,
			})
		}

		position += groupSize
		i = j
		if position >= len(tiltPayoutPcts) {
			// Remaining players are out of the money but still listed.
			for ; i < len(players); i++ {
				payouts = append(payouts, TiltPayout{PlayerID: players[i], Points: totals[players[i]]})
			}
		}
	}
	return payouts
}

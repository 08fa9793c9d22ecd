// matchplay.go — the match-play state machine.
//
// A match is a fold over an ordered sequence of per-hole results. No state is
// stored: every read recomputes the whole match from the hole results, so an
// edited score on hole 3 just changes the input and the fold comes out right.
package engine

import "fmt"

// HoleWinner compares the two sides' net scores on one hole. A nil score on
// either side means the hole can't be compared yet and returns NoResult,
// which the fold skips — it is not counted as played.
func HoleWinner(net1, net2 *int) HoleResult {
	if net1 == nil || net2 == nil {
		return NoResult
	}
	switch {
	case *net1 < *net2:
		return Side1Wins
	case *net2 < *net1:
		return Side2Wins
	}
	return Halved
}

// BestBall returns the side's counting score for a hole in FOURBALL/SHAMBLE:
// the minimum of its players' net scores, ignoring players who haven't
// recorded one. All missing returns nil.
func BestBall(nets []*int) *int {
	var best *int
	for _, n := range nets {
		if n == nil {
			continue
		}
		if best == nil || *n < *best {
			v := *n
			best = &v
		}
	}
	return best
}

// SideHoleScore picks a side's counting score on one hole for the given
// format. The switch is exhaustive over Format so a new format can't be
// added without deciding its side-score rule here.
func SideHoleScore(format Format, nets []*int) *int {
	switch format {
	case FormatFourball, FormatShamble:
		return BestBall(nets)
	case FormatFoursomes, FormatModifiedAlt, FormatScramble:
		// One ball per side — only one player records a score; take the first
		// one recorded.
		for _, n := range nets {
			if n != nil {
				v := *n
				return &v
			}
		}
		return nil
	case FormatSingles, FormatStrokePlay:
		if len(nets) > 0 && nets[0] != nil {
			v := *nets[0]
			return &v
		}
		return nil
	}
	return nil
}

// ComputeMatchState folds an ordered sequence of hole results into the
// match's full derived state.
//
// For each decided hole the lead moves ±1 (or stays on a halve). A match is
// closed out the moment the lead exceeds the holes remaining — the trailing
// side can no longer catch up — and any later results are ignored. Dormie is
// the in-progress state where the lead equals the holes remaining.
func ComputeMatchState(results []HoleResult, totalHoles int, pointsForWin, pointsForHalf float64) MatchState {
	state := MatchState{HolesRemaining: totalHoles}

	closedRemaining := 0
	for _, r := range results {
		if r == NoResult {
			continue
		}
		state.HolesPlayed++
		switch r {
		case Side1Wins:
			state.Side1Lead++
		case Side2Wins:
			state.Side1Lead--
		}
		state.HolesRemaining = totalHoles - state.HolesPlayed
		if abs(state.Side1Lead) > state.HolesRemaining && state.HolesRemaining > 0 {
			state.IsComplete = true
			state.MatchClosedAt = state.HolesPlayed
			closedRemaining = state.HolesRemaining
			break
		}
	}

	if state.HolesPlayed >= totalHoles {
		state.IsComplete = true
	}

	if state.IsComplete {
		switch {
		case state.Side1Lead == 0:
			state.ResultText = "Halved"
			state.Side1Points = pointsForHalf
			state.Side2Points = pointsForHalf
		case state.MatchClosedAt > 0:
			state.ResultText = fmt.Sprintf("%d&%d", abs(state.Side1Lead), closedRemaining)
		default:
			state.ResultText = fmt.Sprintf("%dUP", abs(state.Side1Lead))
		}
		if state.Side1Lead > 0 {
			state.Side1Points = pointsForWin
		} else if state.Side1Lead < 0 {
			state.Side2Points = pointsForWin
		}
	} else {
		state.IsDormie = abs(state.Side1Lead) == state.HolesRemaining && state.HolesRemaining > 0
	}

	return state
}

// ComputeStrokePlay sums each side's recorded holes. STROKEPLAY doesn't use
// the hole-by-hole machine for its result — totals are compared directly at
// the end; the fold is only for the in-progress "holes complete" display.
func ComputeStrokePlay(sideID string, scores []HoleScore) StrokePlayTotal {
	total := StrokePlayTotal{SideID: sideID}
	for _, s := range scores {
		total.HolesIn++
		total.GrossTotal += s.GrossScore
		total.NetTotal += s.NetScore
	}
	return total
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

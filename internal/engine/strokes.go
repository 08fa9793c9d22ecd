// strokes.go — allocating handicap strokes to holes, and turning a raw gross
// score into a net score.
package engine

// ReceivesStroke reports whether a hole with the given stroke index gets at
// least one handicap stroke under playing handicap h. Stroke index 1 is the
// hardest hole and receives the first stroke; a handicap over 18 gives every
// hole at least one.
func ReceivesStroke(h, strokeIndex int) bool {
	return h > 0 && strokeIndex <= h
}

// ReceivesDoubleStroke reports whether the hole gets a second stroke: only
// when the playing handicap exceeds 18, and the excess reaches this hole's
// stroke index.
func ReceivesDoubleStroke(h, strokeIndex int) bool {
	return h > 18 && h-18 >= strokeIndex
}

// StrokesOnHole returns 0, 1, or 2 — the handicap strokes received on a hole.
func StrokesOnHole(h, strokeIndex int) int {
	switch {
	case ReceivesDoubleStroke(h, strokeIndex):
		return 2
	case ReceivesStroke(h, strokeIndex):
		return 1
	}
	return 0
}

// StrokeAllocation returns the hole numbers receiving at least one stroke
// under playing handicap h — the dots printed on a scorecard.
func StrokeAllocation(h int, holes []Hole) []int {
	var out []int
	for _, hole := range holes {
		if ReceivesStroke(h, hole.StrokeIndex) {
			out = append(out, hole.Number)
		}
	}
	return out
}

// CapGross caps a gross score at par + maxOverPar. maxOverPar ≤ 0 disables
// the cap. Capping happens before strokes are subtracted — net is never
// derived from an uncapped gross.
func CapGross(gross, par, maxOverPar int) int {
	if maxOverPar <= 0 {
		return gross
	}
	if max := par + maxOverPar; gross > max {
		return max
	}
	return gross
}

// NetScore builds a HoleScore from a raw gross: cap first, then subtract the
// strokes the hole receives under the playing handicap.
func NetScore(playerID string, hole Hole, gross, playingHandicap, maxOverPar int) HoleScore {
	capped := CapGross(gross, hole.Par, maxOverPar)
	strokes := StrokesOnHole(playingHandicap, hole.StrokeIndex)
	return HoleScore{
		PlayerID:        playerID,
		HoleNumber:      hole.Number,
		GrossScore:      capped,
		StrokesReceived: strokes,
		NetScore:        capped - strokes,
	}
}

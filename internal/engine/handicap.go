// handicap.go — course, playing, and team handicap calculations.
//
// The trip runs two handicap systems side by side:
//
//  1. The legacy match path: course handicap from index and slope, scaled by a
//     configured percentage and capped. This is what the spreadsheet did for
//     years, so match results must keep matching it.
//  2. The unified WHS-style formula, which folds course rating and par in and
//     takes 80% in one step. Skins and TILT always use it; a trip can opt in
//     to using it for matches too.
//
// Both paths end with an optional "off the low" normalization: subtract the
// lowest handicap in the match from everyone's, so the best player plays at
// scratch and strokes are only given where the matchup demands them.
package engine

import "math"

// CourseHandicap converts a handicap index to a course handicap for a tee:
// round(index × slope / 113). 113 is the USGA's neutral slope. A missing
// index comes in as 0 and yields 0 — a scratch golfer, never an error, so a
// player without an established index can still post scores.
func CourseHandicap(index float64, slope int) int {
	return int(math.Round(index * float64(slope) / 113.0))
}

// AdjustedHandicap applies the trip's match-play percentage to a course
// handicap and caps the result. This is the legacy path; when the trip has
// opted into the unified formula the percentage is 100 and the cap is off,
// because UnifiedCourseHandicap already folds both in.
func AdjustedHandicap(courseHandicap int, cfg HandicapConfig) int {
	pct := cfg.Percentage
	if cfg.UnifiedFormula || pct <= 0 {
		pct = 100
	}
	adjusted := int(math.Ceil(float64(courseHandicap) * float64(pct) / 100.0))
	if !cfg.UnifiedFormula && cfg.MaxHandicap != nil && adjusted > *cfg.MaxHandicap {
		adjusted = *cfg.MaxHandicap
	}
	return adjusted
}

// UnifiedCourseHandicap is the WHS-style formula used for skins and TILT (and
// for matches on trips that opt in):
//
//	min(ceil((index × slope/113 + (rating − par)) × 0.8), max)
//
// The (rating − par) term rewards playing a tee rated harder than its par;
// the 0.8 factor is the trip's standing 80% allowance.
func UnifiedCourseHandicap(index float64, slope int, rating float64, par int, max int) int {
	raw := index*float64(slope)/113.0 + (rating - float64(par))
	h := int(math.Ceil(raw * 0.8))
	if max > 0 && h > max {
		h = max
	}
	if h < 0 {
		h = 0
	}
	return h
}

// TeamHandicap combines a side's adjusted handicaps into one team handicap
// using the format's low/high weighting. Handicaps are considered in
// ascending order: the side's best player contributes LowPct percent, the
// second player HighPct percent. A side with a single player uses LowPct
// only.
func TeamHandicap(format Format, handicaps []int, cfg HandicapConfig) int {
	if len(handicaps) == 0 {
		return 0
	}
	combos := cfg.TeamCombos
	if combos == nil {
		combos = DefaultTeamCombos()
	}
	combo, ok := combos[format]
	if !ok {
		combo = TeamCombo{LowPct: 100, HighPct: 0}
	}

	low := handicaps[0]
	for _, h := range handicaps[1:] {
		if h < low {
			low = h
		}
	}
	high := secondLowest(handicaps)

	if len(handicaps) == 1 {
		return int(math.Round(float64(low) * float64(combo.LowPct) / 100.0))
	}
	return int(math.Round(float64(low)*float64(combo.LowPct)/100.0 + float64(high)*float64(combo.HighPct)/100.0))
}

// secondLowest returns the second-smallest value (ties count: [5,5] → 5).
func secondLowest(values []int) int {
	low, second := math.MaxInt, math.MaxInt
	for _, v := range values {
		if v < low {
			second = low
			low = v
		} else if v < second {
			second = v
		}
	}
	if second == math.MaxInt {
		return low
	}
	return second
}

// NormalizeOffTheLow subtracts the minimum handicap from every entry, floored
// at zero. After this the lowest handicap in the match is 0 and strokes are
// allocated purely on the spread. Returns a new slice; inputs are never
// mutated.
func NormalizeOffTheLow(handicaps []int) []int {
	if len(handicaps) == 0 {
		return nil
	}
	low := handicaps[0]
	for _, h := range handicaps[1:] {
		if h < low {
			low = h
		}
	}
	out := make([]int, len(handicaps))
	for i, h := range handicaps {
		n := h - low
		if n < 0 {
			n = 0
		}
		out[i] = n
	}
	return out
}

// SideHandicapInput is one competing unit (a side in a team format, or a
// single player in an individual format) going into PlayingHandicaps.
type SideHandicapInput struct {
	SideID string
	// Adjusted handicaps of the side's players, already through
	// AdjustedHandicap or UnifiedCourseHandicap. Order doesn't matter.
	PlayerHandicaps []int
}

// PlayingHandicaps produces each side's final playing handicap for a match:
// team formats combine each side's players first, individual formats take
// each entry as-is, then off-the-low normalization runs across the whole
// match when configured. The result is keyed by SideID and always ≥ 0.
func PlayingHandicaps(format Format, sides []SideHandicapInput, cfg HandicapConfig) map[string]int {
	raw := make([]int, len(sides))
	for i, s := range sides {
		switch format {
		case FormatFoursomes, FormatScramble, FormatModifiedAlt:
			raw[i] = TeamHandicap(format, s.PlayerHandicaps, cfg)
		default:
			if len(s.PlayerHandicaps) > 0 {
				raw[i] = s.PlayerHandicaps[0]
			}
		}
	}

	if cfg.OffTheLow {
		raw = NormalizeOffTheLow(raw)
	}

	out := make(map[string]int, len(sides))
	for i, s := range sides {
		h := raw[i]
		if h < 0 {
			h = 0
		}
		out[s.SideID] = h
	}
	return out
}

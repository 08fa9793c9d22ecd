// Package engine implements the scoring and wagering rules for a golf trip:
// handicap calculation, per-hole stroke allocation, match play, skins, the
// TILT streak game, and end-of-trip settlement.
//
// Every function in this package is a pure calculation over fully-materialized
// inputs — no database access, no clocks, no shared state. Scores get edited
// and re-edited all weekend, so everything here is recomputed from scratch on
// every call rather than updated incrementally. That makes results always
// consistent with the latest scores (including after a correction) and makes
// the package trivially safe to call from concurrent requests.
//
// Configuration (handicap percentages, team combos, point tables) is passed in
// as explicit values on every call, never read from globals, so the handlers
// can load a trip's settings once and the engine stays testable in isolation.
package engine

// Format identifies the competition format of a round.
// Go doesn't have a built-in enum keyword, so we use a named string type plus
// constants — type safe, and human-readable when stored in the database.
type Format string

const (
	FormatFourball       Format = "FOURBALL"         // 2v2, each plays own ball, best ball per side counts
	FormatFoursomes      Format = "FOURSOMES"        // 2v2 alternate shot, one ball per side
	FormatModifiedAlt    Format = "MODIFIED_ALT_SHOT" // Alternate shot with both players teeing off
	FormatScramble       Format = "SCRAMBLE"          // All play from the side's best shot
	FormatShamble        Format = "SHAMBLE"           // Scramble off the tee, own ball in; best ball counts
	FormatSingles        Format = "SINGLES"           // 1v1 match play
	FormatStrokePlay     Format = "STROKEPLAY"        // Lowest total net wins, no hole-by-hole match
)

// IsTeamScored reports whether the format records one score per side
// (alternate-shot and scramble variants) rather than one score per player.
func (f Format) IsTeamScored() bool {
	switch f {
	case FormatFoursomes, FormatModifiedAlt, FormatScramble:
		return true
	case FormatFourball, FormatShamble, FormatSingles, FormatStrokePlay:
		return false
	}
	return false
}

// Hole is one hole of the tee being played: its par and its stroke index
// (difficulty rank 1–18, 1 = hardest = first to receive a handicap stroke).
type Hole struct {
	Number      int // 1–18
	Par         int
	StrokeIndex int // unique 1–18 within a tee
}

// TeamCombo is the low/high weighting used to combine two teammates'
// handicaps into one team handicap (e.g. 60% of the low, 40% of the high).
type TeamCombo struct {
	LowPct  int
	HighPct int
}

// HandicapConfig is a trip's handicap settings, loaded once and passed into
// every handicap calculation.
type HandicapConfig struct {
	// Percentage of course handicap given in match play (0–100). Trips often
	// play at less than full handicap to keep matches competitive.
	Percentage int
	// MaxHandicap caps the adjusted handicap when non-nil.
	MaxHandicap *int
	// OffTheLow, when true, normalizes all handicaps in a match by subtracting
	// the lowest, so strokes are only given relative to the best player.
	OffTheLow bool
	// UnifiedFormula switches match handicaps to the same WHS-style formula
	// used for skins and TILT. When set, Percentage is treated as 100 and
	// MaxHandicap is ignored — the formula folds both in already.
	UnifiedFormula bool
	// UnifiedMax caps the unified-formula course handicap.
	UnifiedMax int
	// MaxOverPar caps a gross score at par+MaxOverPar before net is derived.
	// Zero means no cap.
	MaxOverPar int
	// TeamCombos maps each team format to its low/high weighting.
	TeamCombos map[Format]TeamCombo
}

// DefaultTeamCombos returns the weightings the trip has always used when a
// format hasn't been configured explicitly.
func DefaultTeamCombos() map[Format]TeamCombo {
	return map[Format]TeamCombo{
		FormatFoursomes:   {LowPct: 60, HighPct: 40},
		FormatScramble:    {LowPct: 35, HighPct: 15},
		FormatModifiedAlt: {LowPct: 60, HighPct: 40},
	}
}

// HoleScore is one player's result on one hole. Net is always derived from a
// gross that has already been capped — never the raw gross.
type HoleScore struct {
	PlayerID        string
	HoleNumber      int
	GrossScore      int
	StrokesReceived int // 0, 1, or 2
	NetScore        int // capped gross minus strokes received
}

// HoleResult is the outcome of comparing the two sides on a single hole.
type HoleResult int

const (
	// NoResult means no comparison was possible (a side has no score yet).
	// Holes with NoResult are excluded from the match fold entirely.
	NoResult HoleResult = iota
	Side1Wins
	Side2Wins
	Halved
)

// MatchState is the full derived state of a match. It is recomputed from the
// hole results on every read; nothing in it is stored or mutated.
type MatchState struct {
	Side1Lead      int     `json:"side1_lead"` // positive = side 1 up, negative = side 2 up
	HolesPlayed    int     `json:"holes_played"`
	HolesRemaining int     `json:"holes_remaining"`
	IsComplete     bool    `json:"is_complete"`
	IsDormie       bool    `json:"is_dormie"`
	MatchClosedAt  int     `json:"match_closed_at"` // hole number the match was decided on; 0 if it went the distance
	ResultText     string  `json:"result_text"`     // "3&2", "1UP", "Halved", or "" while in progress
	Side1Points    float64 `json:"side1_points"`
	Side2Points    float64 `json:"side2_points"`
}

// StrokePlayTotal is one side's summed result in a stroke-play match.
type StrokePlayTotal struct {
	SideID     string `json:"side_id"`
	HolesIn    int    `json:"holes_in"` // holes with a recorded score
	GrossTotal int    `json:"gross_total"`
	NetTotal   int    `json:"net_total"`
}

// SkinsHoleResult is the outcome of one hole in a skins game.
type SkinsHoleResult struct {
	HoleNumber int     `json:"hole_number"`
	WinnerID   string  `json:"winner_id"` // empty when tied or not yet evaluated
	NetScore   int     `json:"net_score"` // the winning (or tied-low) net
	SkinsWorth int     `json:"skins_worth"` // stakes collected on this hole, incl. carryover
	Money      float64 `json:"money"`
}

// SkinsPlayerTotal is one player's skins tally for the round.
type SkinsPlayerTotal struct {
	PlayerID string  `json:"player_id"`
	SkinsWon int     `json:"skins_won"`
	MoneyWon float64 `json:"money_won"`
}

// SkinsResult is the full skins outcome for a round.
type SkinsResult struct {
	Holes        []SkinsHoleResult  `json:"holes"`
	SkinsAwarded int                `json:"skins_awarded"` // holes that produced a winner
	SkinValue    float64            `json:"skin_value"`    // one hole's stake
	TotalPot     float64            `json:"total_pot"`
	PlayerTotals []SkinsPlayerTotal `json:"player_totals"`
}

// TiltState is the streak state carried hole to hole, and — when the trip
// enables cross-round carryover — round to round. It is an explicit in/out
// value: the caller stores the final state and seeds the next round with it.
type TiltState struct {
	Multiplier int `json:"multiplier"` // ≥ 1, applied to the current hole's base points
	Streak     int `json:"streak"`     // ≥ 0, running under-par streak weight
}

// FreshTiltState is the start-of-tournament state: no streak, 1x points.
func FreshTiltState() TiltState {
	return TiltState{Multiplier: 1, Streak: 0}
}

// TiltHoleResult is one hole's contribution to a player's TILT score.
type TiltHoleResult struct {
	HoleNumber int `json:"hole_number"`
	BasePoints int `json:"base_points"`
	Multiplier int `json:"multiplier"` // multiplier in effect on this hole
	Points     int `json:"points"`     // base × multiplier
}

// TiltPlayerResult is a player's TILT outcome for one round. FinalState is
// the carryover seed for the next round when carryover is enabled.
type TiltPlayerResult struct {
	PlayerID    string           `json:"player_id"`
	Holes       []TiltHoleResult `json:"holes"`
	TotalPoints int              `json:"total_points"`
	FinalState  TiltState        `json:"final_state"`
}

// TiltPayout is a player's share of the tournament TILT pot.
type TiltPayout struct {
	PlayerID string  `json:"player_id"`
	Points   int     `json:"points"`
	Money    float64 `json:"money"`
}

// PlayerBalance is a player's signed net position for the trip: positive
// means the trip owes them money, negative means they owe.
type PlayerBalance struct {
	PlayerID string  `json:"player_id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
}

// Transfer is one simplified payment: From pays To.
type Transfer struct {
	FromID string  `json:"from_id"`
	From   string  `json:"from"`
	ToID   string  `json:"to_id"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// SplitMode selects how a shared expense is divided among players.
type SplitMode string

const (
	SplitEvenAll     SplitMode = "EVEN_ALL"     // split among everyone on the trip
	SplitEvenSome    SplitMode = "EVEN_SOME"    // split among a chosen subset (payer always included)
	SplitCustom      SplitMode = "CUSTOM"       // caller supplies exact per-player amounts
	SplitFullPayback SplitMode = "FULL_PAYBACK" // one borrower owes the whole amount
)

// ExpenseShare is one player's portion of a shared expense.
type ExpenseShare struct {
	PlayerID string  `json:"player_id"`
	Amount   float64 `json:"amount"`
	IsPayer  bool    `json:"is_payer"` // the payer's own share isn't a debt, just bookkeeping
}

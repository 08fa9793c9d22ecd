// Package models defines the data structures (models) that map to database tables.
// GORM uses these structs to generate SQL queries and map database rows back to Go
// values. The struct field tags (the backtick strings like `gorm:"..."`) tell GORM
// how to handle each field: its column type, constraints, defaults, and relationships.
//
// The data model represents an annual golf trip:
//   - Users join Trips (the trip is the tournament: entry fees, wagering settings)
//   - Trips contain Rounds played at Courses from a chosen Tee
//   - Rounds contain Matches between two sides; players record HoleScores
//   - Side games (skins, TILT) and shared Expenses feed the end-of-trip settlement
//
// Everything the scoring engine needs — formats, handicap snapshots, gross scores,
// entry fees, carryover flags — lives here; the engine itself never touches the
// database. Handlers load these rows, hand plain values to internal/engine, and
// store or serialize what comes back.
package models

import (
	"time"

	// uuid provides universally unique identifiers for primary keys.
	// UUIDs are safe to generate client-side and don't leak record counts.
	"github.com/google/uuid"

	"github.com/trentd187/golf-trip/internal/engine"
)

// --- Enums ---
// Named string types plus constants stand in for enums: type safe in Go,
// human-readable in the database.

// UserRole is a user's global permission level across the platform.
type UserRole string

const (
	UserRoleAdmin UserRole = "admin" // Full access: manage users, trips, everything
	UserRoleUser  UserRole = "user"  // Regular player: joins trips and records scores
)

// TripStatus tracks the lifecycle of a trip.
type TripStatus string

const (
	TripStatusUpcoming  TripStatus = "upcoming"
	TripStatusActive    TripStatus = "active"
	TripStatusCompleted TripStatus = "completed"
)

// TripPlayerRole controls what a user can do within a specific trip,
// independent of their global role. The trip's commissioner (organizer) sets
// formats, pairings, and wagering config.
type TripPlayerRole string

const (
	TripPlayerRoleOrganizer TripPlayerRole = "organizer"
	TripPlayerRolePlayer    TripPlayerRole = "player"
)

// RoundStatus tracks the lifecycle of a single round within a trip.
type RoundStatus string

const (
	RoundStatusScheduled RoundStatus = "scheduled"
	RoundStatusActive    RoundStatus = "active"
	RoundStatusCompleted RoundStatus = "completed"
)

// MatchSide identifies which side of a match a player is on.
type MatchSide int

const (
	MatchSide1 MatchSide = 1
	MatchSide2 MatchSide = 2
)

// TeeGender indicates which gender a set of tees is rated for.
type TeeGender string

const (
	TeeGenderMens   TeeGender = "mens"
	TeeGenderWomens TeeGender = "womens"
	TeeGenderUnisex TeeGender = "unisex"
)

// --- Models ---
// Each struct maps to a table; GORM snake_cases and pluralizes the name:
// User -> users, Trip -> trips, HoleScore -> hole_scores, etc.

// User is a registered person. Users are created lazily the first time a
// Clerk-authenticated request hits the API; ClerkID links our record to
// Clerk's identity system.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClerkID     *string   `gorm:"uniqueIndex:idx_users_clerk_id"` // pointer = nullable for legacy rows
	DisplayName string    `gorm:"not null"`
	Email       string    `gorm:"uniqueIndex;not null"`
	Role        UserRole  `gorm:"type:user_role;not null;default:'user'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Trip is the top-level container: one annual trip is one tournament.
// All wagering configuration lives here so the engine can be handed a single
// immutable config per trip.
type Trip struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string     `gorm:"not null"`
	Location  *string    // Optional; pointer = nullable
	Status    TripStatus `gorm:"type:trip_status;not null;default:'upcoming'"`
	StartDate *time.Time
	EndDate   *time.Time
	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	Creator   User      `gorm:"foreignKey:CreatedBy"`

	// Entry fees and match points. Skins and TILT fees are per round / per
	// trip respectively; the dues cover lodging and greens fees.
	EntryFee      float64 `gorm:"not null;default:0"` // trip dues per player
	SkinsEntryFee float64 `gorm:"not null;default:0"` // per player per round
	TiltEntryFee  float64 `gorm:"not null;default:0"` // per player for the trip
	PointsForWin  float64 `gorm:"not null;default:1"`
	PointsForHalf float64 `gorm:"not null;default:0.5"`

	// Handicap configuration (see engine.HandicapConfig). Stored on the trip
	// so historical trips keep the rules they were played under.
	HandicapPercentage int  `gorm:"not null;default:100"`
	MaxHandicap        *int // nil = no cap
	OffTheLow          bool `gorm:"not null;default:true"`
	UnifiedFormula     bool `gorm:"not null;default:false"`
	UnifiedMax         int  `gorm:"not null;default:36"`
	MaxOverPar         int  `gorm:"not null;default:4"` // gross cap: par + this

	// Carryover flags for the side games.
	SkinsCarryover bool `gorm:"not null;default:true"`
	TiltCarryover  bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
	Players   []TripPlayer `gorm:"foreignKey:TripID"`
	Rounds    []Round      `gorm:"foreignKey:TripID"`
	Expenses  []Expense    `gorm:"foreignKey:TripID"`
}

// HandicapConfig assembles the engine's config value from the trip's stored
// settings. This is the only place the translation happens, so the engine
// and the schema can't drift apart silently.
func (t *Trip) HandicapConfig() engine.HandicapConfig {
	return engine.HandicapConfig{
		Percentage:     t.HandicapPercentage,
		MaxHandicap:    t.MaxHandicap,
		OffTheLow:      t.OffTheLow,
		UnifiedFormula: t.UnifiedFormula,
		UnifiedMax:     t.UnifiedMax,
		MaxOverPar:     t.MaxOverPar,
		TeamCombos:     engine.DefaultTeamCombos(),
	}
}

// TripPlayer links a User to a Trip: the roster. Opt-in flags control which
// side games the player is in; settlement only charges fees to players who
// opted in. The unique index prevents joining the same trip twice.
type TripPlayer struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TripID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_trip_user"`
	Trip   Trip      `gorm:"foreignKey:TripID"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_trip_user"`
	User   User      `gorm:"foreignKey:UserID"`

	Role TripPlayerRole `gorm:"type:trip_player_role;not null;default:'player'"`

	// Handicap index at the start of the trip. Nullable: a player without an
	// established index plays as scratch — score entry is never blocked on it.
	HandicapIndex *float64 `gorm:"type:decimal(4,1)"`

	SkinsOptIn bool `gorm:"not null;default:true"`
	TiltOptIn  bool `gorm:"not null;default:true"`

	// AmountPaid is what the player has put in against dues so far.
	AmountPaid float64 `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Index returns the player's handicap index, 0 (scratch) when none is set.
func (p *TripPlayer) Index() float64 {
	if p.HandicapIndex == nil {
		return 0
	}
	return *p.HandicapIndex
}

// Course is a golf course played on the trip.
type Course struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	City      string    `gorm:"not null;default:''"`
	State     string    `gorm:"not null;default:''"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Tees      []Tee `gorm:"foreignKey:CourseID"`
}

// Tee is one set of tee boxes on a course. Each tee has its own rating,
// slope, and par — the inputs to every handicap calculation.
type Tee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CourseID     uuid.UUID `gorm:"type:uuid;not null"`
	Course       Course    `gorm:"foreignKey:CourseID"`
	Name         string    `gorm:"not null"` // e.g. "Blue", "White"
	Gender       TeeGender `gorm:"type:tee_gender;not null;default:'mens'"`
	CourseRating float64   `gorm:"type:decimal(4,1);not null"` // expected score for a scratch golfer
	SlopeRating  int       `gorm:"not null"`                   // 55–155, difficulty for bogey golfers
	Par          int       `gorm:"not null"`
	Holes        []Hole    `gorm:"foreignKey:TeeID"`
}

// EngineHoles converts a tee's holes into the engine's plain hole values.
// Callers should load Holes ordered by hole_number.
func (t *Tee) EngineHoles() []engine.Hole {
	out := make([]engine.Hole, 0, len(t.Holes))
	for _, h := range t.Holes {
		out = append(out, engine.Hole{Number: h.HoleNumber, Par: h.Par, StrokeIndex: h.StrokeIndex})
	}
	return out
}

// Hole stores per-hole details for a tee: par and stroke index (1 = hardest,
// receives the first handicap stroke).
type Hole struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TeeID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tee_hole"`
	Tee         Tee       `gorm:"foreignKey:TeeID"`
	HoleNumber  int       `gorm:"not null;uniqueIndex:idx_tee_hole"` // 1–18
	Par         int       `gorm:"not null"`
	StrokeIndex int       `gorm:"not null"` // 1–18, unique within a tee
	Yardage     *int
}

// Round is one round of the trip: a day of golf in a single format.
type Round struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TripID      uuid.UUID     `gorm:"type:uuid;not null"`
	Trip        Trip          `gorm:"foreignKey:TripID"`
	CourseID    uuid.UUID     `gorm:"type:uuid;not null"`
	Course      Course        `gorm:"foreignKey:CourseID"`
	TeeID       uuid.UUID     `gorm:"type:uuid;not null"`
	Tee         Tee           `gorm:"foreignKey:TeeID"`
	RoundNumber int           `gorm:"not null;default:1"`
	PlayedOn    time.Time     `gorm:"not null"`
	Status      RoundStatus   `gorm:"type:round_status;not null;default:'scheduled'"`
	Format      engine.Format `gorm:"type:round_format;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Matches     []Match `gorm:"foreignKey:RoundID"`
}

// Match is one pairing within a round: side 1 vs side 2. Singles matches
// have one player per side, team formats two.
type Match struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoundID     uuid.UUID `gorm:"type:uuid;not null"`
	Round       Round     `gorm:"foreignKey:RoundID"`
	MatchNumber int       `gorm:"not null;default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Players     []MatchPlayer `gorm:"foreignKey:MatchID"`
}

// MatchPlayer places a trip player on one side of a match and snapshots
// their handicaps for it. The snapshot is computed once when the match is
// set up and never recomputed mid-round, so an index revision between rounds
// can't change a match already underway.
type MatchPlayer struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MatchID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_match_player"`
	Match        Match      `gorm:"foreignKey:MatchID"`
	TripPlayerID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_match_player"`
	TripPlayer   TripPlayer `gorm:"foreignKey:TripPlayerID"`
	Side         MatchSide  `gorm:"not null"`

	CourseHandicap  int `gorm:"not null;default:0"`
	PlayingHandicap int `gorm:"not null;default:0"` // after percentage, team combo, off-the-low; always ≥ 0
	CreatedAt       time.Time
}

// HoleScore records the strokes a player (or, in one-ball team formats, the
// side's recorder) took on a single hole. Gross is stored already capped;
// net = gross − strokes received. One score per player per hole per match.
type HoleScore struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MatchPlayerID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_match_player_hole"`
	MatchPlayer   MatchPlayer `gorm:"foreignKey:MatchPlayerID"`
	HoleNumber    int         `gorm:"not null;uniqueIndex:idx_match_player_hole"`
	GrossScore    int         `gorm:"not null"`
	StrokesRecv   int         `gorm:"not null;default:0"`
	NetScore      int         `gorm:"not null"`
	EnteredBy     uuid.UUID   `gorm:"type:uuid;not null"`
	EnteredAt     time.Time   `gorm:"autoCreateTime"`
	UpdatedAt     time.Time   `gorm:"autoUpdateTime"`
}

// TiltRoundState stores a player's TILT result for a round, including the
// final streak state. When the trip plays cross-round carryover the next
// round is seeded from this row; the engine itself never remembers anything.
type TiltRoundState struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoundID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_tilt_round_player"`
	Round        Round      `gorm:"foreignKey:RoundID"`
	TripPlayerID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_tilt_round_player"`
	TripPlayer   TripPlayer `gorm:"foreignKey:TripPlayerID"`
	TotalPoints  int        `gorm:"not null;default:0"`
	FinalMult    int        `gorm:"not null;default:1"`
	FinalStreak  int        `gorm:"not null;default:0"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}

// Expense is a shared cost someone fronted (house rental, groceries, a round
// of drinks). Splits record who owes what; settlement folds them into
// balances.
type Expense struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TripID      uuid.UUID        `gorm:"type:uuid;not null"`
	Trip        Trip             `gorm:"foreignKey:TripID"`
	PaidByID    uuid.UUID        `gorm:"type:uuid;not null"` // TripPlayer who fronted the money
	PaidBy      TripPlayer       `gorm:"foreignKey:PaidByID"`
	Description string           `gorm:"not null"`
	Amount      float64          `gorm:"not null"`
	SplitMode   engine.SplitMode `gorm:"type:split_mode;not null;default:'EVEN_ALL'"`
	CreatedAt   time.Time
	Splits      []ExpenseSplit `gorm:"foreignKey:ExpenseID"`
}

// ExpenseSplit is one player's share of an expense, as computed by
// engine.CalculateExpenseSplits when the expense was recorded.
type ExpenseSplit struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExpenseID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_expense_player"`
	Expense      Expense    `gorm:"foreignKey:ExpenseID"`
	TripPlayerID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_expense_player"`
	TripPlayer   TripPlayer `gorm:"foreignKey:TripPlayerID"`
	Amount       float64    `gorm:"not null"`
	IsPayer      bool       `gorm:"not null;default:false"`
}

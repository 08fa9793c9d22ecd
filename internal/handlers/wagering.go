// wagering.go — the side games: skins per round, TILT across the trip.
//
// Both games score off the unified-formula handicap, not the match playing
// handicap, so nets are rebuilt here from the stored gross scores rather than
// reusing the match nets. Match play answers "who won the hole between these
// sides"; skins and TILT answer "how did you do against the whole field".
package handlers

import (
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trentd187/golf-trip/internal/engine"
	"github.com/trentd187/golf-trip/internal/models"
)

// GetSkins returns a handler for GET /api/v1/rounds/:id/skins.
func GetSkins(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roundID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid round ID"})
		}
		round, err := loadRound(db, roundID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "round not found"})
		}

		input, _, err := buildSkinsInput(db, round)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load scores"})
		}
		return c.JSON(engine.ComputeSkins(input))
	}
}

// loadRound fetches a round with trip, tee (holes ordered), and matches with
// their players and roster rows preloaded.
func loadRound(db *gorm.DB, roundID uuid.UUID) (models.Round, error) {
	var round models.Round
	err := db.
		Preload("Trip").
		Preload("Tee.Holes", func(tx *gorm.DB) *gorm.DB { return tx.Order("hole_number") }).
		Preload("Matches.Players.TripPlayer").
		First(&round, "id = ?", roundID).Error
	return round, err
}

// skinsUnit is one competing unit being assembled: who it is and its gross
// score per hole.
type skinsUnit struct {
	id      string
	members []string
	skinsH  int         // unified-formula handicap used for net
	gross   map[int]int // hole -> gross
}

// buildSkinsInput turns a round's stored scores into the engine's input and
// reports who is in: the opted-in players appearing in the round's matches.
// The same set funds the pot and antes for it, so an opted-in roster player
// sitting the round out neither pays nor plays.
//
// Individual formats: one unit per opted-in player, net off their own
// unified handicap. One-ball team formats: one unit per match side, members
// are the side's opted-in players; SCRAMBLE competes on gross, the others on
// a unified team handicap.
func buildSkinsInput(db *gorm.DB, round models.Round) (engine.SkinsInput, []string, error) {
	trip := round.Trip
	tee := round.Tee
	cfg := trip.HandicapConfig()

	unified := func(p models.TripPlayer) int {
		return engine.UnifiedCourseHandicap(p.Index(), tee.SlopeRating, tee.CourseRating, tee.Par, cfg.UnifiedMax)
	}

	var units []skinsUnit
	optedIn := map[string]bool{}

	for _, match := range round.Matches {
		if round.Format.IsTeamScored() {
			// One unit per side; the first recorded score on a hole is the
			// side's score.
			bySide := map[models.MatchSide]*skinsUnit{}
			sideHcps := map[models.MatchSide][]int{}
			for _, mp := range match.Players {
				if !mp.TripPlayer.SkinsOptIn {
					continue
				}
				optedIn[mp.TripPlayer.ID.String()] = true
				u := bySide[mp.Side]
				if u == nil {
					u = &skinsUnit{
						id:    match.ID.String() + ":" + sideLabel(mp.Side),
						gross: map[int]int{},
					}
					bySide[mp.Side] = u
				}
				u.members = append(u.members, mp.TripPlayer.ID.String())
				sideHcps[mp.Side] = append(sideHcps[mp.Side], unified(mp.TripPlayer))

				var rows []models.HoleScore
				if err := db.Where("match_player_id = ?", mp.ID).Find(&rows).Error; err != nil {
					return engine.SkinsInput{}, nil, err
				}
				for _, r := range rows {
					if _, taken := u.gross[r.HoleNumber]; !taken {
						u.gross[r.HoleNumber] = r.GrossScore
					}
				}
			}
			for side, u := range bySide {
				if round.Format != engine.FormatScramble {
					u.skinsH = engine.TeamHandicap(round.Format, sideHcps[side], cfg)
				}
				units = append(units, *u)
			}
		} else {
			for _, mp := range match.Players {
				if !mp.TripPlayer.SkinsOptIn {
					continue
				}
				optedIn[mp.TripPlayer.ID.String()] = true
				u := skinsUnit{
					id:      mp.TripPlayer.ID.String(),
					members: []string{mp.TripPlayer.ID.String()},
					skinsH:  unified(mp.TripPlayer),
					gross:   map[int]int{},
				}
				var rows []models.HoleScore
				if err := db.Where("match_player_id = ?", mp.ID).Find(&rows).Error; err != nil {
					return engine.SkinsInput{}, nil, err
				}
				for _, r := range rows {
					u.gross[r.HoleNumber] = r.GrossScore
				}
				units = append(units, u)
			}
		}
	}

	// Stable unit order keeps the per-hole entries deterministic.
	sort.Slice(units, func(i, j int) bool { return units[i].id < units[j].id })

	holes := make([]engine.SkinsHole, 0, len(tee.Holes))
	for _, h := range tee.Holes {
		sh := engine.SkinsHole{Number: h.HoleNumber}
		for _, u := range units {
			entry := engine.SkinsEntry{UnitID: u.id, Members: u.members}
			if gross, ok := u.gross[h.HoleNumber]; ok {
				net := gross
				if round.Format != engine.FormatScramble {
					net = gross - engine.StrokesOnHole(u.skinsH, h.StrokeIndex)
				}
				entry.Net = &net
			}
			sh.Entries = append(sh.Entries, entry)
		}
		holes = append(holes, sh)
	}

	participants := make([]string, 0, len(optedIn))
	for id := range optedIn {
		participants = append(participants, id)
	}
	sort.Strings(participants)

	return engine.SkinsInput{
		Holes:       holes,
		EntryFee:    trip.SkinsEntryFee,
		PlayerCount: len(participants),
		Carryover:   trip.SkinsCarryover,
	}, participants, nil
}

func sideLabel(s models.MatchSide) string {
	if s == models.MatchSide1 {
		return "side1"
	}
	return "side2"
}

// TiltStandingsResponse is the trip-wide TILT leaderboard plus payouts.
type TiltStandingsResponse struct {
	Rounds  []engine.TiltPlayerResult `json:"rounds"` // latest round's per-hole detail
	Totals  map[string]int            `json:"totals"`
	Pot     float64                   `json:"pot"`
	Payouts []engine.TiltPayout       `json:"payouts"`
}

// GetTiltStandings returns a handler for GET /api/v1/trips/:id/tilt.
// It replays every round in order, threading each player's streak state into
// the next round when the trip plays carryover, and persists the final state
// per round so the seeds survive a restart.
//
// One-ball team formats record no individual scores, so those rounds don't
// feed TILT.
func GetTiltStandings(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tripID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid trip ID"})
		}
		var trip models.Trip
		if err := db.Preload("Players").First(&trip, "id = ?", tripID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "trip not found"})
		}

		var rounds []models.Round
		if err := db.Preload("Tee.Holes", func(tx *gorm.DB) *gorm.DB { return tx.Order("hole_number") }).
			Preload("Matches.Players.TripPlayer").
			Where("trip_id = ?", tripID).Order("round_number").Find(&rounds).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load rounds"})
		}

		totals, lastRound, err := replayTilt(db, trip, rounds, true)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load scores"})
		}

		optedIn := 0
		for _, p := range trip.Players {
			if p.TiltOptIn {
				optedIn++
			}
		}
		pot := trip.TiltEntryFee * float64(optedIn)
		return c.JSON(TiltStandingsResponse{
			Rounds:  lastRound,
			Totals:  totals,
			Pot:     pot,
			Payouts: engine.CalculateTiltPayouts(totals, pot),
		})
	}
}

// replayTilt replays every individually-scored round in order, threading
// each player's carryover seed into the next round when the trip plays
// carryover. Returns cumulative points per player and the latest round's
// per-hole detail. With persist set, each round's final state is upserted to
// tilt_round_states so the seeds survive a restart.
func replayTilt(db *gorm.DB, trip models.Trip, rounds []models.Round, persist bool) (map[string]int, []engine.TiltPlayerResult, error) {
	cfg := trip.HandicapConfig()
	tiltCfg := engine.TiltConfig{Carryover: trip.TiltCarryover}

	totals := map[string]int{}
	seeds := map[string]engine.TiltState{} // tripPlayerID -> carryover seed
	var lastRound []engine.TiltPlayerResult
	for _, round := range rounds {
		if round.Format.IsTeamScored() {
			continue
		}
		lastRound = nil
		for _, match := range round.Matches {
			for _, mp := range match.Players {
				p := mp.TripPlayer
				if !p.TiltOptIn {
					continue
				}
				holes, err := tiltHolesFor(db, mp, round, cfg)
				if err != nil {
					return nil, nil, err
				}
				start := engine.FreshTiltState()
				if trip.TiltCarryover {
					if s, ok := seeds[p.ID.String()]; ok {
						start = s
					}
				}
				result := engine.ComputeTiltRound(p.ID.String(), holes, start, tiltCfg)
				totals[p.ID.String()] += result.TotalPoints
				seeds[p.ID.String()] = result.FinalState
				lastRound = append(lastRound, result)

				if persist {
					state := models.TiltRoundState{
						RoundID:      round.ID,
						TripPlayerID: p.ID,
						TotalPoints:  result.TotalPoints,
						FinalMult:    result.FinalState.Multiplier,
						FinalStreak:  result.FinalState.Streak,
					}
					db.Clauses(clause.OnConflict{
						Columns:   []clause.Column{{Name: "round_id"}, {Name: "trip_player_id"}},
						DoUpdates: clause.AssignmentColumns([]string{"total_points", "final_mult", "final_streak"}),
					}).Create(&state)
				}
			}
		}
	}
	return totals, lastRound, nil
}

// tiltHolesFor rebuilds a player's net-vs-par inputs for one round using the
// unified-formula handicap.
func tiltHolesFor(db *gorm.DB, mp models.MatchPlayer, round models.Round, cfg engine.HandicapConfig) ([]engine.TiltHole, error) {
	tee := round.Tee
	h := engine.UnifiedCourseHandicap(mp.TripPlayer.Index(), tee.SlopeRating, tee.CourseRating, tee.Par, cfg.UnifiedMax)

	var rows []models.HoleScore
	if err := db.Where("match_player_id = ?", mp.ID).Order("hole_number").Find(&rows).Error; err != nil {
		return nil, err
	}
	gross := make(map[int]int, len(rows))
	for _, r := range rows {
		gross[r.HoleNumber] = r.GrossScore
	}

	var holes []engine.TiltHole
	for _, hole := range tee.Holes {
		g, ok := gross[hole.HoleNumber]
		if !ok {
			continue // unplayed holes don't score
		}
		holes = append(holes, engine.TiltHole{
			HoleNumber: hole.HoleNumber,
			Net:        g - engine.StrokesOnHole(h, hole.StrokeIndex),
			Par:        hole.Par,
		})
	}
	return holes, nil
}

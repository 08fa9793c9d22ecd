// rounds.go — scheduling rounds and setting up matches.
//
// Match creation is where handicaps are snapshotted: the engine computes each
// player's course and playing handicap from the trip config and the round's
// tee, and the result is stored on the match_players row. Scores entered later
// always use that snapshot — editing a player's index mid-trip never moves
// the strokes of a match that has already been set up.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trentd187/golf-trip/internal/engine"
	"github.com/trentd187/golf-trip/internal/models"
)

// CreateRoundRequest is the JSON body for POST /api/v1/trips/:id/rounds.
type CreateRoundRequest struct {
	CourseID    string `json:"course_id"`
	TeeID       string `json:"tee_id"`
	RoundNumber int    `json:"round_number"`
	PlayedOn    string `json:"played_on"` // "YYYY-MM-DD"
	Format      string `json:"format"`
}

// validFormats is the closed set accepted on round creation.
var validFormats = map[engine.Format]bool{
	engine.FormatFourball:    true,
	engine.FormatFoursomes:   true,
	engine.FormatModifiedAlt: true,
	engine.FormatScramble:    true,
	engine.FormatShamble:     true,
	engine.FormatSingles:     true,
	engine.FormatStrokePlay:  true,
}

// CreateRound returns a handler for POST /api/v1/trips/:id/rounds.
// Organizer only.
func CreateRound(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid user ID"})
		}
		userRole, _ := c.Locals("userRole").(string)

		tripID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid trip ID"})
		}
		if !isTripOrganizer(db, tripID, userID, userRole) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not authorized"})
		}

		var req CreateRoundRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		format := engine.Format(req.Format)
		if !validFormats[format] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown round format"})
		}
		courseID, err := uuid.Parse(req.CourseID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid course ID"})
		}
		teeID, err := uuid.Parse(req.TeeID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tee ID"})
		}
		playedOn, err := parseOptionalDate(&req.PlayedOn)
		if err != nil || playedOn == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "played_on must be in YYYY-MM-DD format"})
		}

		round := models.Round{
			TripID:      tripID,
			CourseID:    courseID,
			TeeID:       teeID,
			RoundNumber: req.RoundNumber,
			PlayedOn:    *playedOn,
			Format:      format,
		}
		if err := db.Create(&round).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create round"})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": round.ID.String()})
	}
}

// CreateMatchRequest is the JSON body for POST /api/v1/rounds/:id/matches.
// Side1/Side2 are trip_player IDs.
type CreateMatchRequest struct {
	MatchNumber int      `json:"match_number"`
	Side1       []string `json:"side1"`
	Side2       []string `json:"side2"`
}

// MatchPlayerResponse is one player's handicap snapshot in the response —
// including the holes where they get strokes, for scorecard dots.
type MatchPlayerResponse struct {
	TripPlayerID    string `json:"trip_player_id"`
	Side            int    `json:"side"`
	CourseHandicap  int    `json:"course_handicap"`
	PlayingHandicap int    `json:"playing_handicap"`
	StrokeHoles     []int  `json:"stroke_holes"`
}

// CreateMatch returns a handler for POST /api/v1/rounds/:id/matches.
// Organizer only. Computes and stores the handicap snapshot for every player.
func CreateMatch(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid user ID"})
		}
		userRole, _ := c.Locals("userRole").(string)

		roundID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid round ID"})
		}

		var round models.Round
		if err := db.Preload("Trip").Preload("Tee.Holes", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("hole_number")
		}).First(&round, "id = ?", roundID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "round not found"})
		}
		if !isTripOrganizer(db, round.TripID, userID, userRole) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not authorized"})
		}

		var req CreateMatchRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if len(req.Side1) == 0 || len(req.Side2) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "both sides need at least one player"})
		}

		cfg := round.Trip.HandicapConfig()
		tee := round.Tee

		// Load the roster rows and compute each player's adjusted handicap.
		loadSide := func(ids []string) ([]models.TripPlayer, []int, error) {
			players := make([]models.TripPlayer, 0, len(ids))
			adjusted := make([]int, 0, len(ids))
			for _, raw := range ids {
				id, err := uuid.Parse(raw)
				if err != nil {
					return nil, nil, err
				}
				var p models.TripPlayer
				if err := db.First(&p, "id = ? AND trip_id = ?", id, round.TripID).Error; err != nil {
					return nil, nil, err
				}
				players = append(players, p)
				adjusted = append(adjusted, adjustedFor(p, tee, cfg))
			}
			return players, adjusted, nil
		}

		side1Players, side1Hcps, err := loadSide(req.Side1)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "side1 references an unknown player"})
		}
		side2Players, side2Hcps, err := loadSide(req.Side2)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "side2 references an unknown player"})
		}

		// Playing handicaps: team formats combine per side then normalize
		// across the match; individual formats normalize across all players.
		playing := map[string]int{}
		if round.Format.IsTeamScored() {
			sideHcps := engine.PlayingHandicaps(round.Format, []engine.SideHandicapInput{
				{SideID: "side1", PlayerHandicaps: side1Hcps},
				{SideID: "side2", PlayerHandicaps: side2Hcps},
			}, cfg)
			for _, p := range side1Players {
				playing[p.ID.String()] = sideHcps["side1"]
			}
			for _, p := range side2Players {
				playing[p.ID.String()] = sideHcps["side2"]
			}
		} else {
			inputs := make([]engine.SideHandicapInput, 0, len(side1Players)+len(side2Players))
			for i, p := range side1Players {
				inputs = append(inputs, engine.SideHandicapInput{SideID: p.ID.String(), PlayerHandicaps: []int{side1Hcps[i]}})
			}
			for i, p := range side2Players {
				inputs = append(inputs, engine.SideHandicapInput{SideID: p.ID.String(), PlayerHandicaps: []int{side2Hcps[i]}})
			}
			playing = engine.PlayingHandicaps(round.Format, inputs, cfg)
		}

		holes := tee.EngineHoles()
		var response []MatchPlayerResponse
		txErr := db.Transaction(func(tx *gorm.DB) error {
			match := models.Match{RoundID: roundID, MatchNumber: req.MatchNumber}
			if err := tx.Create(&match).Error; err != nil {
				return err
			}
			create := func(players []models.TripPlayer, side models.MatchSide) error {
				for _, p := range players {
					ph := playing[p.ID.String()]
					mp := models.MatchPlayer{
						MatchID:         match.ID,
						TripPlayerID:    p.ID,
						Side:            side,
						CourseHandicap:  engine.CourseHandicap(p.Index(), tee.SlopeRating),
						PlayingHandicap: ph,
					}
					if err := tx.Create(&mp).Error; err != nil {
						return err
					}
					response = append(response, MatchPlayerResponse{
						TripPlayerID:    p.ID.String(),
						Side:            int(side),
						CourseHandicap:  mp.CourseHandicap,
						PlayingHandicap: ph,
						StrokeHoles:     engine.StrokeAllocation(ph, holes),
					})
				}
				return nil
			}
			if err := create(side1Players, models.MatchSide1); err != nil {
				return err
			}
			return create(side2Players, models.MatchSide2)
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create match"})
		}
		return c.Status(fiber.StatusCreated).JSON(response)
	}
}

// adjustedFor computes a player's adjusted handicap for a tee under the
// trip's config — unified formula when the trip opts in, legacy
// percentage-and-cap path otherwise. A missing index plays as scratch.
func adjustedFor(p models.TripPlayer, tee models.Tee, cfg engine.HandicapConfig) int {
	if cfg.UnifiedFormula {
		return engine.UnifiedCourseHandicap(p.Index(), tee.SlopeRating, tee.CourseRating, tee.Par, cfg.UnifiedMax)
	}
	return engine.AdjustedHandicap(engine.CourseHandicap(p.Index(), tee.SlopeRating), cfg)
}

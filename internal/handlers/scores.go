// scores.go — entering hole scores and reading live match state.
//
// Score entry is the hot path: cap the gross, allocate strokes off the stored
// playing-handicap snapshot, derive net, upsert the row, then recompute the
// whole match from scratch and broadcast it. Recomputing everything on every
// edit is deliberate — the state can never drift from the scores, including
// after a correction.
package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trentd187/golf-trip/internal/engine"
	"github.com/trentd187/golf-trip/internal/models"
	"github.com/trentd187/golf-trip/internal/websocket"
)

// SubmitScoreRequest is the JSON body for POST /api/v1/matches/:id/scores.
type SubmitScoreRequest struct {
	TripPlayerID string `json:"trip_player_id"`
	HoleNumber   int    `json:"hole_number"`
	GrossScore   int    `json:"gross_score"`
}

// SubmitScore returns a handler for POST /api/v1/matches/:id/scores.
// Any member of the trip can enter a score (players keep each other's cards).
func SubmitScore(db *gorm.DB, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid user ID"})
		}
		matchID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid match ID"})
		}

		var req SubmitScoreRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if req.GrossScore < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "gross_score must be at least 1"})
		}
		tripPlayerID, err := uuid.Parse(req.TripPlayerID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid trip player ID"})
		}

		match, err := loadMatch(db, matchID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "match not found"})
		}

		var mp *models.MatchPlayer
		for i := range match.Players {
			if match.Players[i].TripPlayerID == tripPlayerID {
				mp = &match.Players[i]
				break
			}
		}
		if mp == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "player is not in this match"})
		}

		hole, ok := findHole(match.Round.Tee, req.HoleNumber)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown hole number"})
		}

		trip := match.Round.Trip
		scored := engine.NetScore(mp.TripPlayerID.String(), hole, req.GrossScore, mp.PlayingHandicap, trip.MaxOverPar)

		score := models.HoleScore{
			MatchPlayerID: mp.ID,
			HoleNumber:    req.HoleNumber,
			GrossScore:    scored.GrossScore,
			StrokesRecv:   scored.StrokesReceived,
			NetScore:      scored.NetScore,
			EnteredBy:     userID,
		}
		// Upsert on (match_player_id, hole_number): editing a score replaces it.
		err = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "match_player_id"}, {Name: "hole_number"}},
			DoUpdates: clause.AssignmentColumns([]string{"gross_score", "strokes_recv", "net_score", "entered_by"}),
		}).Create(&score).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save score"})
		}

		state, err := matchStateFor(db, match)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to compute match state"})
		}

		// Push the fresh state to everyone following this match.
		if payload, err := json.Marshal(state); err == nil {
			hub.BroadcastToMatch(matchID.String(), payload)
		}
		return c.JSON(state)
	}
}

// GetMatchState returns a handler for GET /api/v1/matches/:id/state.
func GetMatchState(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		matchID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid match ID"})
		}
		match, err := loadMatch(db, matchID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "match not found"})
		}
		state, err := matchStateFor(db, match)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to compute match state"})
		}
		return c.JSON(state)
	}
}

// MatchStateResponse wraps the engine's state with stroke-play totals, which
// STROKEPLAY rounds use for their final result instead of the fold.
type MatchStateResponse struct {
	MatchID    string                   `json:"match_id"`
	Format     string                   `json:"format"`
	State      engine.MatchState        `json:"state"`
	StrokePlay []engine.StrokePlayTotal `json:"stroke_play,omitempty"`
}

// loadMatch fetches a match with the round, trip, tee (holes ordered), and
// players preloaded.
func loadMatch(db *gorm.DB, matchID uuid.UUID) (models.Match, error) {
	var match models.Match
	err := db.
		Preload("Round.Trip").
		Preload("Round.Tee.Holes", func(tx *gorm.DB) *gorm.DB { return tx.Order("hole_number") }).
		Preload("Players").
		First(&match, "id = ?", matchID).Error
	return match, err
}

// findHole locates a hole on the tee by number.
func findHole(tee models.Tee, number int) (engine.Hole, bool) {
	for _, h := range tee.Holes {
		if h.HoleNumber == number {
			return engine.Hole{Number: h.HoleNumber, Par: h.Par, StrokeIndex: h.StrokeIndex}, true
		}
	}
	return engine.Hole{}, false
}

// matchStateFor loads the match's scores and folds them into the derived
// state: per hole, pick each side's counting score for the format, compare,
// and feed the results to the engine.
func matchStateFor(db *gorm.DB, match models.Match) (MatchStateResponse, error) {
	resp := MatchStateResponse{
		MatchID: match.ID.String(),
		Format:  string(match.Round.Format),
	}

	// Scores keyed by match player, then hole.
	byPlayer := make(map[uuid.UUID]map[int]int) // matchPlayerID -> hole -> net
	var side1, side2 []uuid.UUID
	for _, mp := range match.Players {
		var scores []models.HoleScore
		if err := db.Where("match_player_id = ?", mp.ID).Find(&scores).Error; err != nil {
			return resp, err
		}
		nets := make(map[int]int, len(scores))
		for _, s := range scores {
			nets[s.HoleNumber] = s.NetScore
		}
		byPlayer[mp.ID] = nets
		if mp.Side == models.MatchSide1 {
			side1 = append(side1, mp.ID)
		} else {
			side2 = append(side2, mp.ID)
		}
	}

	format := match.Round.Format
	holes := match.Round.Tee.Holes
	sideNets := func(ids []uuid.UUID, holeNumber int) []*int {
		out := make([]*int, 0, len(ids))
		for _, id := range ids {
			if net, ok := byPlayer[id][holeNumber]; ok {
				v := net
				out = append(out, &v)
			} else {
				out = append(out, nil)
			}
		}
		return out
	}

	results := make([]engine.HoleResult, 0, len(holes))
	for _, h := range holes {
		n1 := engine.SideHoleScore(format, sideNets(side1, h.HoleNumber))
		n2 := engine.SideHoleScore(format, sideNets(side2, h.HoleNumber))
		results = append(results, engine.HoleWinner(n1, n2))
	}

	trip := match.Round.Trip
	resp.State = engine.ComputeMatchState(results, len(holes), trip.PointsForWin, trip.PointsForHalf)

	if format == engine.FormatStrokePlay {
		for _, mp := range match.Players {
			var rows []models.HoleScore
			if err := db.Where("match_player_id = ?", mp.ID).Find(&rows).Error; err != nil {
				return resp, err
			}
			es := make([]engine.HoleScore, 0, len(rows))
			for _, r := range rows {
				es = append(es, engine.HoleScore{GrossScore: r.GrossScore, NetScore: r.NetScore})
			}
			resp.StrokePlay = append(resp.StrokePlay, engine.ComputeStrokePlay(mp.TripPlayerID.String(), es))
		}
	}
	return resp, nil
}

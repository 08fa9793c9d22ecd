// trips.go — the /api/v1/trips routes: listing trips, creating one, and
// joining the roster.
//
// Each exported function follows the handler-factory pattern: it takes a
// *gorm.DB and returns a fiber.Handler, so the database is injected without
// globals.
//
// Permission model, two layers:
//  1. Route-level (middleware.RequireRole): only global admins can create
//     trips for other people; any authenticated user can create their own.
//  2. Resource-level (isTripOrganizer): modifying a trip — formats, pairings,
//     wagering config — requires the "organizer" trip_player role, granted
//     automatically to the creator. Global admins bypass the check.
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trentd187/golf-trip/internal/models"
)

// TripResponse is what we send back to the app. A dedicated response struct
// (instead of the raw GORM model) controls exactly what is serialized and
// lets us add computed fields like PlayerCount.
type TripResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Location      *string `json:"location"`
	Status        string  `json:"status"`
	StartDate     *string `json:"start_date"`
	EndDate       *string `json:"end_date"`
	CreatorName   string  `json:"creator_name"`
	PlayerCount   int64   `json:"player_count"`
	EntryFee      float64 `json:"entry_fee"`
	SkinsEntryFee float64 `json:"skins_entry_fee"`
	TiltEntryFee  float64 `json:"tilt_entry_fee"`
	CreatedAt     string  `json:"created_at"`
}

// CreateTripRequest is the JSON body expected on POST /api/v1/trips.
type CreateTripRequest struct {
	Name          string  `json:"name"` // required
	Location      *string `json:"location"`
	StartDate     *string `json:"start_date"` // "YYYY-MM-DD"
	EndDate       *string `json:"end_date"`
	EntryFee      float64 `json:"entry_fee"`
	SkinsEntryFee float64 `json:"skins_entry_fee"`
	TiltEntryFee  float64 `json:"tilt_entry_fee"`
}

// formatOptionalDate converts a *time.Time to a *string in "2006-01-02"
// format, preserving nil.
func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format("2006-01-02")
	return &s
}

// parseOptionalDate parses an optional "YYYY-MM-DD" string, preserving nil
// and empty as nil.
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// currentUser pulls the authenticated user's ID out of the request context
// (set by the Auth middleware).
func currentUser(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, _ := c.Locals("userID").(string)
	return uuid.Parse(userIDStr)
}

// GetTrips returns a handler for GET /api/v1/trips.
// Admins see every trip; everyone else sees trips they are on the roster of.
func GetTrips(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid user ID"})
		}
		userRole, _ := c.Locals("userRole").(string)

		// Preload("Creator") fetches the related User for each trip's
		// CreatedBy foreign key up front, avoiding N+1 queries.
		var trips []models.Trip
		query := db.Preload("Creator")
		if userRole == "admin" {
			query = query.Find(&trips)
		} else {
			query = query.
				Joins("JOIN trip_players ON trip_players.trip_id = trips.id").
				Where("trip_players.user_id = ?", userID).
				Find(&trips)
		}
		if query.Error != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch trips"})
		}

		response := make([]TripResponse, 0, len(trips))
		for _, trip := range trips {
			var playerCount int64
			db.Model(&models.TripPlayer{}).Where("trip_id = ?", trip.ID).Count(&playerCount)
			response = append(response, tripResponse(trip, trip.Creator.DisplayName, playerCount))
		}
		return c.JSON(response)
	}
}

// CreateTrip returns a handler for POST /api/v1/trips.
// Creates the trip and adds the creator to the roster as its organizer, in
// one transaction so a failed roster insert rolls the trip back too.
func CreateTrip(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid user ID"})
		}

		var req CreateTripRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
		}

		startDate, err := parseOptionalDate(req.StartDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "start_date must be in YYYY-MM-DD format"})
		}
		endDate, err := parseOptionalDate(req.EndDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "end_date must be in YYYY-MM-DD format"})
		}

		var createdTrip models.Trip
		txErr := db.Transaction(func(tx *gorm.DB) error {
			trip := models.Trip{
				Name:          req.Name,
				Location:      req.Location,
				Status:        models.TripStatusUpcoming,
				StartDate:     startDate,
				EndDate:       endDate,
				CreatedBy:     userID,
				EntryFee:      req.EntryFee,
				SkinsEntryFee: req.SkinsEntryFee,
				TiltEntryFee:  req.TiltEntryFee,
			}
			if err := tx.Create(&trip).Error; err != nil {
				return err
			}

			// Every trip needs a commissioner — the creator gets the role.
			player := models.TripPlayer{
				TripID: trip.ID,
				UserID: userID,
				Role:   models.TripPlayerRoleOrganizer,
			}
			if err := tx.Create(&player).Error; err != nil {
				return err
			}
			createdTrip = trip
			return nil
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create trip"})
		}

		var creator models.User
		db.First(&creator, "id = ?", userID)
		return c.Status(fiber.StatusCreated).JSON(tripResponse(createdTrip, creator.DisplayName, 1))
	}
}

// JoinTripRequest is the JSON body for POST /api/v1/trips/:id/players — a
// player joining the roster with their handicap index and side-game opt-ins.
type JoinTripRequest struct {
	HandicapIndex *float64 `json:"handicap_index"` // nil = no established index, plays as scratch
	SkinsOptIn    *bool    `json:"skins_opt_in"`   // default true
	TiltOptIn     *bool    `json:"tilt_opt_in"`    // default true
}

// JoinTrip returns a handler for POST /api/v1/trips/:id/players.
func JoinTrip(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid user ID"})
		}
		tripID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid trip ID"})
		}

		var req JoinTripRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		var trip models.Trip
		if err := db.First(&trip, "id = ?", tripID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "trip not found"})
		}

		player := models.TripPlayer{
			TripID:        tripID,
			UserID:        userID,
			Role:          models.TripPlayerRolePlayer,
			HandicapIndex: req.HandicapIndex,
			SkinsOptIn:    true,
			TiltOptIn:     true,
		}
		if req.SkinsOptIn != nil {
			player.SkinsOptIn = *req.SkinsOptIn
		}
		if req.TiltOptIn != nil {
			player.TiltOptIn = *req.TiltOptIn
		}
		if err := db.Create(&player).Error; err != nil {
			// The unique index on (trip_id, user_id) makes re-joining a conflict.
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "already on this trip"})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": player.ID.String()})
	}
}

func tripResponse(trip models.Trip, creatorName string, playerCount int64) TripResponse {
	return TripResponse{
		ID:            trip.ID.String(),
		Name:          trip.Name,
		Location:      trip.Location,
		Status:        string(trip.Status),
		StartDate:     formatOptionalDate(trip.StartDate),
		EndDate:       formatOptionalDate(trip.EndDate),
		CreatorName:   creatorName,
		PlayerCount:   playerCount,
		EntryFee:      trip.EntryFee,
		SkinsEntryFee: trip.SkinsEntryFee,
		TiltEntryFee:  trip.TiltEntryFee,
		CreatedAt:     trip.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// isTripOrganizer reports whether a user may manage a specific trip.
// Global admins bypass the check; everyone else must hold the organizer
// trip_player role for THIS trip. Call it at the top of any handler that
// modifies a trip.
func isTripOrganizer(db *gorm.DB, tripID, userID uuid.UUID, userRole string) bool {
	if userRole == "admin" {
		return true
	}
	var player models.TripPlayer
	err := db.Where("trip_id = ? AND user_id = ?", tripID, userID).First(&player).Error
	return err == nil && player.Role == models.TripPlayerRoleOrganizer
}

// cmd/server/main.go
// Entry point for the Golf Trip API server. The cmd/ folder holds executable
// binaries; internal/ holds packages not meant to be imported by other
// projects.
package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	// cors allows the mobile app to call the API from a different origin
	"github.com/gofiber/fiber/v2/middleware/cors"
	// logger prints request details (method, path, status, duration) to stdout
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/trentd187/golf-trip/internal/config"
	"github.com/trentd187/golf-trip/internal/database"
	"github.com/trentd187/golf-trip/internal/handlers"
	"github.com/trentd187/golf-trip/internal/middleware"
	"github.com/trentd187/golf-trip/internal/websocket"
)

func main() {
	// Configuration from environment variables (and optionally a .env file).
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Apply any pending SQL migrations so the schema is in sync on startup.
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// The Hub fans live match-state updates out to connected clients.
	hub := websocket.NewHub()
	go hub.Run()

	app := fiber.New(fiber.Config{
		AppName: "Golf Trip API",
	})

	// Global middleware, applied to every request.
	app.Use(logger.New())
	// Open CORS for development; lock to the app's domain in production.
	app.Use(cors.New())

	// Liveness check for load balancers — no auth, no database.
	app.Get("/health", handlers.HealthCheck)

	// Everything under /api/v1 requires a valid Clerk JWT. Auth validates
	// the token and lazily syncs the user into our database.
	api := app.Group("/api/v1", middleware.Auth(cfg, db))

	// Course catalog: anyone can browse; only platform admins add courses.
	api.Get("/courses", handlers.GetCourses(db))
	api.Post("/courses", middleware.RequireRole("admin"), handlers.CreateCourse(db))

	// Trips: the roster and wagering configuration.
	api.Get("/trips", handlers.GetTrips(db))
	api.Post("/trips", handlers.CreateTrip(db))
	api.Post("/trips/:id/players", handlers.JoinTrip(db))

	// Rounds and matches — organizer-gated inside the handlers, since the
	// check is against the specific trip, not a global role.
	api.Post("/trips/:id/rounds", handlers.CreateRound(db))
	api.Post("/rounds/:id/matches", handlers.CreateMatch(db))

	// Scoring: any trip member can keep a card; every entry recomputes and
	// broadcasts the match state.
	api.Post("/matches/:id/scores", handlers.SubmitScore(db, hub))
	api.Get("/matches/:id/state", handlers.GetMatchState(db))

	// Side games and money.
	api.Get("/rounds/:id/skins", handlers.GetSkins(db))
	api.Get("/trips/:id/tilt", handlers.GetTiltStandings(db))
	api.Post("/trips/:id/expenses", handlers.CreateExpense(db))
	api.Get("/trips/:id/settlement", handlers.GetSettlement(db))

	log.Printf("Starting server on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

// Package config handles loading runtime configuration for the Golf Trip API.
// Configuration values (like the database URL and API port) are read from
// environment variables rather than being hardcoded, 12-factor style, so the
// same binary runs in dev and production — just swap the environment.
package config

import (
	"os"

	// godotenv reads a .env file and loads its key=value pairs into the
	// process environment. Convenient in development; in production real
	// environment variables are set by the deployment platform.
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values for the application.
type Config struct {
	Port           string // TCP port the HTTP server listens on (e.g. "8080")
	DatabaseURL    string // PostgreSQL connection string
	ClerkSecretKey string // Secret key for verifying Clerk tokens server-side
	Env            string // "development", "staging", or "production"
}

// Load reads configuration from environment variables and returns a populated
// Config. It first tries to load a .env file for local development; a missing
// .env is fine (production sets real env vars), so that error is discarded.
func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	env := os.Getenv("ENV")
	if env == "" {
		// Default to development so local runs don't behave like production
		env = "development"
	}

	return &Config{
		Port:           port,
		DatabaseURL:    os.Getenv("DATABASE_URL"),     // Required — server fails to start without it
		ClerkSecretKey: os.Getenv("CLERK_SECRET_KEY"), // Required once Clerk verification is configured
		Env:            env,
	}
}

// Package config loads tool configuration from environment variables.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// ErrMissingCredentials is returned when the Spotify API credentials are not set.
var ErrMissingCredentials = errors.New("missing SPOTIFY_CLIENT_ID or SPOTIFY_CLIENT_SECRET environment variable")

// Config holds environment-derived settings.
type Config struct {
	ClientID     string
	ClientSecret string

	// DatabaseURL optionally points at an existing Chinook database, either
	// a postgres:// URL or an SQLite file path. When set, starting IDs are
	// read from the database instead of prompting.
	DatabaseURL string
}

// Load reads .env (if present) and validates required settings.
// Returns ErrMissingCredentials before any network activity can happen.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ClientID:     strings.TrimSpace(os.Getenv("SPOTIFY_CLIENT_ID")),
		ClientSecret: strings.TrimSpace(os.Getenv("SPOTIFY_CLIENT_SECRET")),
		DatabaseURL:  strings.TrimSpace(os.Getenv("CHINOOK_DB")),
	}

	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return cfg, ErrMissingCredentials
	}

	return cfg, nil
}

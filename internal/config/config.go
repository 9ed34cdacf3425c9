package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config keeps runtime settings for the planner server.
type Config struct {
	Addr        string
	DatabaseURL string
	// Location is the fixed civil timezone every "today" computation uses,
	// regardless of server-local time.
	Location *time.Location
	// PromoteAt is the HH:MM wall-clock time of the daily reminder
	// promotion job; empty disables the job.
	PromoteAt   string
	CORSOrigin  string
	Development bool
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		Addr:        strings.TrimSpace(os.Getenv("ADDR")),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		PromoteAt:   strings.TrimSpace(os.Getenv("PROMOTE_AT")),
		CORSOrigin:  strings.TrimSpace(os.Getenv("CORS_ORIGIN")),
		Development: os.Getenv("DEVELOPMENT") == "true",
	}

	if cfg.Addr == "" {
		cfg.Addr = ":5000"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "tasks.db"
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "http://localhost:3005"
	}

	tz := strings.TrimSpace(os.Getenv("TIMEZONE"))
	if tz == "" {
		tz = "America/New_York"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return cfg, fmt.Errorf("load timezone %q: %w", tz, err)
	}
	cfg.Location = loc

	return cfg, nil
}

// Today formats the current civil date in the configured timezone.
func (c Config) Today() string {
	return time.Now().In(c.Location).Format("2006-01-02")
}

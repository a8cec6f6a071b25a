// Package config sources the runtime configuration from environment
// variables, with a small dotenv loader for local development.
package config

import (
	"log"
	"os"
)

// Config holds everything the server needs at startup.
type Config struct {
	AdminEmail    string
	AdminPassword string
	SessionSecret string
	DBPath        string
	Port          string
	Env           string
}

// Load reads the environment (after a best-effort .env load) and fills in
// defaults. Missing credentials are warned about, not fatal: a database that
// was seeded earlier still works without them.
func Load() Config {
	_ = loadDotEnv(".env")

	cfg := Config{
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		DBPath:        envOr("DB_PATH", "./foodtruck.db"),
		Port:          envOr("PORT", "8080"),
		Env:           envOr("APP_ENV", "dev"),
	}

	for _, missing := range []struct {
		key, value string
	}{
		{"ADMIN_EMAIL", cfg.AdminEmail},
		{"ADMIN_PASSWORD", cfg.AdminPassword},
		{"SESSION_SECRET", cfg.SessionSecret},
	} {
		if missing.value == "" {
			log.Printf("warning: %s is not set", missing.key)
		}
	}

	return cfg
}

// IsDev reports whether the app runs in local development mode, where
// migrations are applied automatically on startup.
func (c Config) IsDev() bool {
	return c.Env == "dev"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, Mailer) via constructors.
  - Zero Hidden State: No global variables are used to store config.

Secrets are read once at process start, held in memory, never logged.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/gfyalova/granfondo/pkg/query"
)

// # Configuration Schema

// Config holds all runtime configuration for the GranFondo Yalova API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis) — session revocation deny-list
	RedisURL string `env:"REDIS_URL,required"`

	// SessionSecret signs admin session tokens. Its absence is a fatal
	// configuration error: there is no fallback for the signing key.
	SessionSecret string `env:"SESSION_SECRET,required"`

	// DataEncryptionKey derives the AES key protecting national ID columns.
	// Deliberately NOT marked required: when absent the server degrades to a
	// built-in development key and logs a loud warning. Production deploys
	// must always set it.
	DataEncryptionKey string `env:"DATA_ENCRYPTION_KEY"`

	// Outbound email (SMTP). When SMTPHost is empty, notifications are
	// logged instead of sent.
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT"     envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"     envDefault:"noreply@granfondoyalova.com"`

	// NotifyEmail receives internal notifications (new applications,
	// contact messages).
	NotifyEmail string `env:"NOTIFY_EMAIL" envDefault:"info@granfondoyalova.com"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// MailerEnabled reports whether outbound SMTP delivery is configured.
func (c *Config) MailerEnabled() bool {
	return c.SMTPHost != ""
}

// AllowedExtraOrigins returns the additional CORS origins from the
// comma-separated EXTRA_ORIGINS variable (staging previews, etc).
func (c *Config) AllowedExtraOrigins() []string {
	return query.StringSlice(c.ExtraOrigins)
}

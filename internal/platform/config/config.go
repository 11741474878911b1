// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

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
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This keeps the application Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Shipora API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// JWTSecret signs session tokens (HS256). There is deliberately no
	// fallback constant: startup fails when this is unset.
	JWTSecret string `env:"JWT_SECRET,required"`

	// FrontendOrigin is the cross-origin frontend URL allowed by CORS in
	// production. Development mode allows any origin.
	FrontendOrigin string `env:"FRONTEND_ORIGIN"`

	// Seed fixture for the admin store. The source deployments shipped with a
	// hard-coded admin list; here it is reduced to an optional startup seed.
	SeedAdmin         bool   `env:"SEED_ADMIN"          envDefault:"false"`
	SeedAdminEmail    string `env:"SEED_ADMIN_EMAIL"    envDefault:"admin@example.com"`
	SeedAdminPassword string `env:"SEED_ADMIN_PASSWORD" envDefault:"admin123"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
//
// It fails if any field marked 'required' is missing — notably JWT_SECRET,
// which must never fall back to a built-in constant.
func Load() (*Config, error) {
	cfg := &Config{}

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

// AllowedOrigin returns the frontend origin permitted by CORS in production.
func (c *Config) AllowedOrigin() string {
	return c.FrontendOrigin
}

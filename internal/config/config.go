// Package config handles application configuration loading from environment
// variables. It provides an immutable Config built once at startup and passed
// explicitly to every component.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Store backends selectable with STORE_BACKEND.
const (
	BackendAirtable = "airtable"
	BackendMemory   = "memory"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string `validate:"required,numeric"`
	Env  string `validate:"oneof=development production testing"`

	// Record store. The Airtable settings are only required when the
	// Airtable backend is selected.
	StoreBackend    string `validate:"oneof=airtable memory"`
	AirtableAPIKey  string `validate:"required_if=StoreBackend airtable"`
	AirtableBaseID  string `validate:"required_if=StoreBackend airtable"`
	AirtableTable   string `validate:"required_if=StoreBackend airtable"`
	AirtableBaseURL string `validate:"required,url"`

	// AdminPassword is the shared secret for the JSON API.
	AdminPassword string `validate:"required"`

	// Filesystem locations of the public assets and the admin single-page app.
	StaticDir string
	AdminDir  string
}

// envNames maps struct fields to their environment variables for error messages.
var envNames = map[string]string{
	"Port":            "PORT",
	"Env":             "APP_ENV",
	"StoreBackend":    "STORE_BACKEND",
	"AirtableAPIKey":  "AIRTABLE_API_KEY",
	"AirtableBaseID":  "AIRTABLE_BASE_ID",
	"AirtableTable":   "AIRTABLE_TABLE_NAME",
	"AirtableBaseURL": "AIRTABLE_BASE_URL",
	"AdminPassword":   "ADMIN_PASSWORD",
}

var validate = validator.New()

// Load reads a .env file from the working directory when one exists, then
// builds the Config from the environment. Variables already set in the
// environment win over .env entries. Returns an error naming every missing
// or invalid variable.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("PORT", "3000"),
		Env:  envOrDefault("APP_ENV", "development"),

		StoreBackend:    envOrDefault("STORE_BACKEND", BackendAirtable),
		AirtableAPIKey:  os.Getenv("AIRTABLE_API_KEY"),
		AirtableBaseID:  os.Getenv("AIRTABLE_BASE_ID"),
		AirtableTable:   os.Getenv("AIRTABLE_TABLE_NAME"),
		AirtableBaseURL: envOrDefault("AIRTABLE_BASE_URL", "https://api.airtable.com/v0"),

		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		StaticDir: envOrDefault("STATIC_DIR", "public"),
		AdminDir:  envOrDefault("ADMIN_DIR", "admin"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks the struct tags and reports problems by variable name.
func (c *Config) validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate config: %w", err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		name := envNames[fe.Field()]
		switch fe.Tag() {
		case "required", "required_if":
			problems = append(problems, name+" must be set")
		default:
			problems = append(problems, fmt.Sprintf("%s has invalid value %q", name, fe.Value()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config bundles every configuration section the server needs.
type Config struct {
	Database DatabaseConfig
	Session  SessionConfig
	Email    EmailConfig
	App      AppConfig
	Storage  StorageConfig
}

// Load reads all sections from the environment (and .env when present).
func Load() (Config, error) {
	if err := Validate(); err != nil {
		return Config{}, err
	}

	app, err := LoadAppConfig()
	if err != nil {
		return Config{}, fmt.Errorf("app configuration: %w", err)
	}

	return Config{
		Database: LoadDatabaseConfig(),
		Session:  LoadSessionConfig(),
		Email:    LoadEmailConfig(),
		App:      app,
		Storage:  LoadStorageConfig(),
	}, nil
}

// Validate ensures all configuration sections are well-formed. Every value
// has a default, so only malformed values are reported.
func Validate() error {
	LoadEnv()

	if err := ValidateDatabaseConfig(); err != nil {
		return fmt.Errorf("database configuration: %w", err)
	}

	if err := ValidateSessionConfig(); err != nil {
		return fmt.Errorf("session configuration: %w", err)
	}

	if err := ValidateEmailConfig(); err != nil {
		return fmt.Errorf("email configuration: %w", err)
	}

	if err := ValidateAppConfig(); err != nil {
		return fmt.Errorf("app configuration: %w", err)
	}

	return nil
}

// ValidateDatabaseConfig checks the driver name and the discrete port.
func ValidateDatabaseConfig() error {
	switch driver := strings.ToLower(strings.TrimSpace(os.Getenv("DB_DRIVER"))); driver {
	case "", DriverPostgres:
	case DriverMySQL:
		if strings.TrimSpace(os.Getenv("DATABASE_URL")) == "" {
			return fmt.Errorf("DATABASE_URL is required when DB_DRIVER is %q", DriverMySQL)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	if port := strings.TrimSpace(os.Getenv("POSTGRES_PORT")); port != "" {
		if n, err := strconv.Atoi(port); err != nil || n <= 0 {
			return fmt.Errorf("POSTGRES_PORT must be a positive integer")
		}
	}

	return nil
}

// ValidateSessionConfig ensures the session TTL and cookie flags parse.
func ValidateSessionConfig() error {
	if ttl := strings.TrimSpace(os.Getenv("SESSION_TTL")); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return fmt.Errorf("invalid SESSION_TTL value %q: %w", ttl, err)
		}
		if d <= 0 {
			return fmt.Errorf("SESSION_TTL must be positive")
		}
	}

	if v := strings.TrimSpace(os.Getenv("SESSION_COOKIE_SECURE")); v != "" {
		if _, ok := parseBool(v); !ok {
			return fmt.Errorf("invalid SESSION_COOKIE_SECURE value %q", v)
		}
	}

	return nil
}

// ValidateEmailConfig ensures the SMTP port and TLS flag are well-formed.
// An empty SMTP_SERVER is valid: mail delivery is then skipped.
func ValidateEmailConfig() error {
	if port := strings.TrimSpace(os.Getenv("SMTP_PORT")); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n <= 0 {
			return fmt.Errorf("SMTP_PORT must be a positive integer")
		}
	}

	if v := strings.TrimSpace(os.Getenv("SMTP_TLS")); v != "" {
		if _, ok := parseBool(v); !ok {
			return fmt.Errorf("invalid SMTP_TLS value %q", v)
		}
	}

	return nil
}

// ValidateAppConfig checks the timezone and password scheme.
func ValidateAppConfig() error {
	_, err := LoadAppConfig()
	return err
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// parseBool accepts the truthy/falsy spellings used by the deployment scripts.
func parseBool(v string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}

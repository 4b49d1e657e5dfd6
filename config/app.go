package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

const (
	PasswordSchemePlain  = "plain"
	PasswordSchemeBcrypt = "bcrypt"
)

type AppConfig struct {
	BaseURL        string
	ListenAddr     string
	LogLevel       string
	Location       *time.Location
	PasswordScheme string
}

// LoadAppConfig resolves the application section. The timezone is the one
// document timestamps are recorded in.
func LoadAppConfig() (AppConfig, error) {
	tzName := envOr("TZ", "America/Guayaquil")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid TZ value %q: %w", tzName, err)
	}

	scheme := strings.ToLower(envOr("PASSWORD_SCHEME", PasswordSchemePlain))
	if scheme != PasswordSchemePlain && scheme != PasswordSchemeBcrypt {
		return AppConfig{}, fmt.Errorf("PASSWORD_SCHEME must be %q or %q", PasswordSchemePlain, PasswordSchemeBcrypt)
	}

	return AppConfig{
		BaseURL:        envOr("APP_BASE_URL", "http://localhost:8080"),
		ListenAddr:     envOr("LISTEN_ADDR", ":8000"),
		LogLevel:       envOr("LOG_LEVEL", "info"),
		Location:       loc,
		PasswordScheme: scheme,
	}, nil
}

package config

import (
	"log/slog"
	"os"
	"time"
)

const defaultSecretKey = "please_change_me"

type SessionConfig struct {
	SecretKey    string
	TTL          time.Duration
	CookieSecure bool
	RedisURL     string
}

func LoadSessionConfig() SessionConfig {
	secret := envOr("SECRET_KEY", defaultSecretKey)
	if secret == defaultSecretKey {
		slog.Warn("SECRET_KEY is not set, using the insecure default")
	}

	ttl := 24 * time.Hour
	if ttlStr := os.Getenv("SESSION_TTL"); ttlStr != "" {
		if parsed, err := time.ParseDuration(ttlStr); err == nil && parsed > 0 {
			ttl = parsed
		} else {
			slog.Warn("invalid SESSION_TTL, using default", "value", ttlStr, "default", ttl)
		}
	}

	secure, _ := parseBool(os.Getenv("SESSION_COOKIE_SECURE"))

	return SessionConfig{
		SecretKey:    secret,
		TTL:          ttl,
		CookieSecure: secure,
		RedisURL:     os.Getenv("REDIS_URL"),
	}
}

package config

import "testing"

func TestValidateDatabaseConfigDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("POSTGRES_PORT", "")

	if err := ValidateDatabaseConfig(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateDatabaseConfigInvalidPort(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("POSTGRES_PORT", "not-a-port")

	if err := ValidateDatabaseConfig(); err == nil {
		t.Fatal("expected validation error for invalid POSTGRES_PORT")
	}
}

func TestValidateDatabaseConfigUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	if err := ValidateDatabaseConfig(); err == nil {
		t.Fatal("expected validation error for unsupported driver")
	}
}

func TestValidateDatabaseConfigMySQLNeedsURL(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DATABASE_URL", "")

	if err := ValidateDatabaseConfig(); err == nil {
		t.Fatal("expected validation error for mysql without DATABASE_URL")
	}
}

func TestLoadDatabaseConfigPrefersURL(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DATABASE_URL", "postgresql://u:p@h:1/d")

	cfg := LoadDatabaseConfig()
	if cfg.DSN != "postgresql://u:p@h:1/d" {
		t.Fatalf("dsn = %q", cfg.DSN)
	}
	if cfg.Driver != DriverPostgres {
		t.Fatalf("driver = %q", cfg.Driver)
	}
}

func TestLoadDatabaseConfigFromDiscreteVariables(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("POSTGRES_HOST", "pg")
	t.Setenv("POSTGRES_PORT", "5433")
	t.Setenv("POSTGRES_DB", "actas")
	t.Setenv("POSTGRES_USER", "clerk")
	t.Setenv("POSTGRES_PASSWORD", "secret")

	cfg := LoadDatabaseConfig()
	want := "postgresql://clerk:secret@pg:5433/actas"
	if cfg.DSN != want {
		t.Fatalf("dsn = %q, want %q", cfg.DSN, want)
	}
}

func TestValidateSessionConfigInvalidTTL(t *testing.T) {
	t.Setenv("SESSION_TTL", "not-a-duration")

	if err := ValidateSessionConfig(); err == nil {
		t.Fatal("expected validation error for invalid SESSION_TTL")
	}
}

func TestValidateEmailConfigInvalidPort(t *testing.T) {
	t.Setenv("SMTP_SERVER", "smtp.example.com")
	t.Setenv("SMTP_PORT", "invalid")

	if err := ValidateEmailConfig(); err == nil {
		t.Fatal("expected validation error for invalid SMTP_PORT")
	}
}

func TestValidateEmailConfigInvalidTLSFlag(t *testing.T) {
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("SMTP_TLS", "maybe")

	if err := ValidateEmailConfig(); err == nil {
		t.Fatal("expected validation error for invalid SMTP_TLS")
	}
}

func TestLoadEmailConfigDefaults(t *testing.T) {
	t.Setenv("SMTP_SERVER", "smtp.example.com")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("SMTP_TLS", "")

	cfg := LoadEmailConfig()
	if cfg.Port != 587 {
		t.Fatalf("port = %d, want 587", cfg.Port)
	}
	if !cfg.UseTLS {
		t.Fatal("expected TLS to default to true")
	}
}

func TestLoadEmailConfigTLSOff(t *testing.T) {
	t.Setenv("SMTP_TLS", "off")

	if LoadEmailConfig().UseTLS {
		t.Fatal("expected TLS disabled")
	}
}

func TestLoadAppConfigDefaults(t *testing.T) {
	t.Setenv("TZ", "")
	t.Setenv("APP_BASE_URL", "")
	t.Setenv("PASSWORD_SCHEME", "")

	cfg, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Location.String() != "America/Guayaquil" {
		t.Fatalf("location = %s", cfg.Location)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Fatalf("base url = %q", cfg.BaseURL)
	}
	if cfg.PasswordScheme != PasswordSchemePlain {
		t.Fatalf("scheme = %q", cfg.PasswordScheme)
	}
}

func TestLoadAppConfigInvalidTimezone(t *testing.T) {
	t.Setenv("TZ", "Mars/Olympus_Mons")

	if _, err := LoadAppConfig(); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}

func TestLoadAppConfigInvalidScheme(t *testing.T) {
	t.Setenv("TZ", "UTC")
	t.Setenv("PASSWORD_SCHEME", "md5")

	if _, err := LoadAppConfig(); err == nil {
		t.Fatal("expected error for unknown password scheme")
	}
}

func TestValidateAggregatesSections(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("POSTGRES_PORT", "5432")
	t.Setenv("SESSION_TTL", "12h")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("SMTP_TLS", "true")
	t.Setenv("TZ", "UTC")
	t.Setenv("PASSWORD_SCHEME", "bcrypt")

	if err := Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

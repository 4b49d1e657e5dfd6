package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

type DatabaseConfig struct {
	Driver string
	DSN    string
}

func LoadEnv() {
	_ = godotenv.Load()
}

// LoadDatabaseConfig prefers DATABASE_URL and falls back to the discrete
// POSTGRES_* variables.
func LoadDatabaseConfig() DatabaseConfig {
	driver := strings.ToLower(envOr("DB_DRIVER", DriverPostgres))

	dsn := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dsn == "" {
		host := envOr("POSTGRES_HOST", envOr("POSTGRES_HOSTNAME", "db"))
		port := envOr("POSTGRES_PORT", "5432")
		name := envOr("POSTGRES_DB", "actas_db")
		user := envOr("POSTGRES_USER", "postgres")
		pass := envOr("POSTGRES_PASSWORD", "postgres")

		u := url.URL{
			Scheme: "postgresql",
			User:   url.UserPassword(user, pass),
			Host:   host + ":" + port,
			Path:   "/" + name,
		}
		dsn = u.String()
	}

	return DatabaseConfig{Driver: driver, DSN: dsn}
}

// ConnectDB opens the pool for the configured driver.
func ConnectDB(cfg DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverMySQL:
		dialector = mysql.Open(cfg.DSN)
	default:
		dialector = postgres.Open(cfg.DSN)
	}

	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}
	return db, nil
}

package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// MailerConfig holds configuration for the outgoing invitation mailer.
type MailerConfig struct {
	Provider           string
	FromAddress        string
	FromName           string
	SESRegion          string
	SESAccessKeyID     string
	SESSecretAccessKey string
	InsecureSkipVerify bool
}

// Config holds all configuration for the application
type Config struct {
	Environment        string
	Port               string
	DBFile             string
	BaseURL            string
	CORSAllowedOrigins []string

	// Purge tuning. Defaults match the production constants; override only
	// for operational experiments or local testing.
	PurgePeriod   time.Duration
	EventLifetime time.Duration
	PurgeRetry    time.Duration

	Mailer MailerConfig
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file if not in production
	// We don't return error here because in production .env might not exist
	// and we rely on system environment variables
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:   env,
		Port:          os.Getenv("PORT"),
		DBFile:        os.Getenv("DB_FILE"),
		BaseURL:       os.Getenv("BASE_URL"),
		PurgePeriod:   durationEnv("PURGE_PERIOD", 24*time.Hour),
		EventLifetime: durationEnv("EVENT_LIFETIME", 90*24*time.Hour),
		PurgeRetry:    durationEnv("PURGE_RETRY", time.Minute),
		Mailer: MailerConfig{
			Provider:           os.Getenv("EMAIL_PROVIDER"),
			FromAddress:        os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:           os.Getenv("EMAIL_FROM_NAME"),
			SESRegion:          os.Getenv("SES_REGION"),
			SESAccessKeyID:     os.Getenv("SES_ACCESS_KEY_ID"),
			SESSecretAccessKey: os.Getenv("SES_SECRET_ACCESS_KEY"),
			InsecureSkipVerify: os.Getenv("SES_INSECURE_SKIP_VERIFY") == "true",
		},
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORSAllowedOrigins = strings.Split(origins, ",")
	}

	// Set defaults
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DBFile == "" {
		cfg.DBFile = "events.db"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.Port
	}
	if cfg.Mailer.Provider == "" {
		cfg.Mailer.Provider = "noop"
	}

	return cfg, nil
}

func durationEnv(key string, def time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Warning: invalid duration in %s: %v, using default %s", key, err, def)
		return def
	}
	return d
}

package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application. It is loaded once at start-up and
// passed explicitly to the components that need it.
type Config struct {
	Environment string
	LogLevel    string
	Port        string
	DBUrl       string
	// DBQueryTimeout bounds every repository call made by a workflow.
	DBQueryTimeout time.Duration

	// PublicBaseURL is the externally visible origin used to build redirect targets.
	PublicBaseURL   string
	StripeSecretKey string

	CORSAllowedOrigins []string

	// Operator endpoints are disabled unless both are set.
	JWTSecret         string
	AdminPasswordHash string
	AdminTokenTTL     time.Duration

	Email EmailConfig
}

// EmailConfig selects and configures the outgoing mailer.
type EmailConfig struct {
	Provider           string
	FromAddress        string
	FromName           string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

// AdminEnabled reports whether operator login is configured.
func (c *Config) AdminEnabled() bool {
	return c.JWTSecret != "" && c.AdminPasswordHash != ""
}

// Load loads configuration from environment variables.
// It attempts to load from .env file if not in production.
// Missing or malformed required values are reported together in one error.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production we rely on the process environment only.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:       env,
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		Port:              getEnv("PORT", "8080"),
		DBUrl:             os.Getenv("DATABASE_URL"),
		PublicBaseURL:     strings.TrimSuffix(strings.TrimSpace(os.Getenv("PUBLIC_BASE_URL")), "/"),
		StripeSecretKey:   os.Getenv("STRIPE_SECRET_KEY"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		Email: EmailConfig{
			Provider:           getEnv("EMAIL_PROVIDER", "noop"),
			FromAddress:        os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:           getEnv("EMAIL_FROM_NAME", "New Retirement Rules"),
			AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
			AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
	}
	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	var problems []string
	var err error
	if cfg.DBQueryTimeout, err = getDuration("DB_QUERY_TIMEOUT", 5*time.Second); err != nil {
		problems = append(problems, err.Error())
	}
	if cfg.AdminTokenTTL, err = getDuration("ADMIN_TOKEN_TTL", 12*time.Hour); err != nil {
		problems = append(problems, err.Error())
	}
	if cfg.DBUrl == "" {
		problems = append(problems, "DATABASE_URL is required")
	}
	if cfg.StripeSecretKey == "" {
		problems = append(problems, "STRIPE_SECRET_KEY is required")
	}
	if cfg.PublicBaseURL == "" {
		problems = append(problems, "PUBLIC_BASE_URL is required")
	} else if u, err := url.Parse(cfg.PublicBaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		problems = append(problems, "PUBLIC_BASE_URL must be an absolute http(s) URL")
	}
	if cfg.Email.Provider == "ses" {
		if cfg.Email.FromAddress == "" {
			problems = append(problems, "EMAIL_FROM_ADDRESS is required when EMAIL_PROVIDER=ses")
		}
		if cfg.Email.AWSAccessKeyID == "" || cfg.Email.AWSSecretAccessKey == "" {
			problems = append(problems, "AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY are required when EMAIL_PROVIDER=ses")
		}
	}
	if len(problems) > 0 {
		return nil, errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration", key)
	}
	return d, nil
}

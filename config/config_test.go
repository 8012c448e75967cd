package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("GO_ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/classes?sslmode=disable")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("PUBLIC_BASE_URL", "https://classes.example.com/")
	t.Setenv("EMAIL_PROVIDER", "")
	t.Setenv("DB_QUERY_TIMEOUT", "")
	t.Setenv("ADMIN_TOKEN_TTL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com , ,https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://classes.example.com", cfg.PublicBaseURL)
	assert.Equal(t, 5*time.Second, cfg.DBQueryTimeout)
	assert.Equal(t, 12*time.Hour, cfg.AdminTokenTTL)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.AdminEnabled())
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("STRIPE_SECRET_KEY", "")
	t.Setenv("PUBLIC_BASE_URL", "")

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "DATABASE_URL is required")
	assert.Contains(t, err.Error(), "STRIPE_SECRET_KEY is required")
	assert.Contains(t, err.Error(), "PUBLIC_BASE_URL is required")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantMsg string
	}{
		{"relative base url", "PUBLIC_BASE_URL", "classes.example.com", "PUBLIC_BASE_URL must be an absolute http(s) URL"},
		{"bad timeout", "DB_QUERY_TIMEOUT", "soon", "DB_QUERY_TIMEOUT must be a positive duration"},
		{"negative ttl", "ADMIN_TOKEN_TTL", "-1h", "ADMIN_TOKEN_TTL must be a positive duration"},
		{"ses without sender", "EMAIL_PROVIDER", "ses", "EMAIL_FROM_ADDRESS is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv("EMAIL_FROM_ADDRESS", "")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad_AdminEnabled(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	t.Setenv("ADMIN_TOKEN_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.AdminEnabled())
	assert.Equal(t, 30*time.Minute, cfg.AdminTokenTTL)
}

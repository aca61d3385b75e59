package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_ADDR", "127.0.0.1:8080")
	t.Setenv("SHUTDOWN_TIMEOUT", "1s")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:devtrack.db")
	t.Setenv("GOMAXPROCS", "0")
}

func TestLoadFromEnv(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, https://tracker.example.com")

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, "sqlite", c.DBDriver)
	require.Equal(t, time.Second, c.ShutdownTimeout)
	require.Equal(t, 90*time.Minute, c.JWTTTL)
	require.Equal(t, []string{"http://localhost:5173", "https://tracker.example.com"}, c.CORSOrigins)
	require.False(t, c.TrustProxy)
	require.Same(t, c, Get())
}

func TestLoadTrustProxy(t *testing.T) {
	setRequired(t)
	t.Setenv("TRUST_PROXY", "true")

	c, err := Load()
	require.NoError(t, err)
	require.True(t, c.TrustProxy)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRequiresSecretInProduction(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadRejectsBadDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_TTL", "tomorrow")

	_, err := Load()
	require.ErrorContains(t, err, "JWT_TTL")
}

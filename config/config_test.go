package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Flags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaultsAndEnv(t *testing.T) {
	t.Setenv("LOCALMART_AUTH_JWT_SECRET", "0123456789abcdef")
	t.Setenv("LOCALMART_DATABASE_HOST", "db.internal")
	t.Setenv("LOCALMART_ORDER_DELIVERY_WINDOW", "90m")

	cfg, err := Load(newFlags(t, "--env-file", ""))
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, AuthProviderJWT, cfg.Auth.Provider)
	assert.Equal(t, "__session", cfg.Auth.SessionCookie)
	assert.Equal(t, 5*24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 90*time.Minute, cfg.Order.DeliveryWindow)
	assert.Equal(t, 5, cfg.Review.MaxRating)
	assert.Contains(t, cfg.Database.DSN(), "host=db.internal")
}

func TestLoadConfigFileAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9000"
auth:
  jwt_secret: "file-secret-0123456789"
review:
  max_rating: 10
`), 0o600))

	cfg, err := Load(newFlags(t, "--config", path, "--env-file", "", "--server.port", "9100"))
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, 10, cfg.Review.MaxRating)
	assert.Equal(t, "file-secret-0123456789", cfg.Auth.JWTSecret)
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := Config{
		Auth:   AuthConfig{Provider: AuthProviderFirebase},
		Review: ReviewConfig{MaxRating: 0},
		Log:    LogConfig{Format: "xml"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "server.port")
	assert.Contains(t, msg, "firebase_credentials_file")
	assert.Contains(t, msg, "session_ttl")
	assert.Contains(t, msg, "max_rating")
	assert.Contains(t, msg, "log.format")
}

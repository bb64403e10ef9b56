package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDevelopmentDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.IsDevelopment())
	require.Equal(t, "0.0.0.0:5000", cfg.Address())
	require.Equal(t, 24*time.Hour, cfg.Auth.AccessTTL)
	require.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTTL)
	require.Equal(t, "http://localhost:5173", cfg.Frontend.BaseURL)
	require.Equal(t, 5, cfg.RateLimit.LoginMax)
	require.Equal(t, 15*time.Minute, cfg.RateLimit.LoginWindow)
	require.NotEmpty(t, cfg.Database.URL)
}

func TestLoadProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_SECRET")
	require.Contains(t, err.Error(), "REFRESH_TOKEN_SECRET")
	require.Contains(t, err.Error(), "GOOGLE_CLIENT_ID")
	require.Contains(t, err.Error(), "FRONTEND_URL")
}

func setProductionEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
	t.Setenv("OAUTH_STATE_SECRET", "state-secret")
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")
	t.Setenv("GOOGLE_CALLBACK_URL", "https://api.example.com/api/auth/google/callback")
	t.Setenv("FRONTEND_URL", "https://app.example.com")
}

func TestLoadProductionComplete(t *testing.T) {
	setProductionEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.False(t, cfg.IsDevelopment())
	require.Equal(t, "access-secret", cfg.Auth.AccessSecret)
	require.Equal(t, "https://app.example.com", cfg.Frontend.BaseURL)
}

func TestLoadRejectsSharedSecret(t *testing.T) {
	setProductionEnv(t)
	t.Setenv("REFRESH_TOKEN_SECRET", "access-secret")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "must differ")
}

func TestDurationFromSeconds(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("SYNC_INTERVAL_SECONDS", "45")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "7s")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 45*time.Second, cfg.Buffer.SyncInterval)
	require.Equal(t, 7*time.Second, cfg.Context.RequestTimeout)
}

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GIN_MODE", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "mysql", cfg.DBDriver)
	require.NotEmpty(t, cfg.JWTSecret, "development fallback secret")
}

func TestLoad_ReleaseRequiresSecret(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoad_ReleaseWithSecret(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	t.Setenv("JWT_SECRET", "prod-secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "prod-secret", cfg.JWTSecret)
}

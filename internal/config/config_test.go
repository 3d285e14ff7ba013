package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMustLoadConfig_FromFile(t *testing.T) {
	content := `env: dev
http_server:
  address: ":9090"
  read_timeout: 5s
auth:
  token_ttl: 15m
  jwt_secret: file-secret
`

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := MustLoadConfig(path)

	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, ":9090", cfg.Address)
	require.Equal(t, 5*time.Second, cfg.ReadTimeout)
	require.Equal(t, 15*time.Minute, cfg.TokenTTL)
	require.Equal(t, "file-secret", cfg.JWTSecret)

	// untouched fields keep their defaults
	require.Equal(t, 60*time.Second, cfg.IdleTimeout)
}

func TestMustLoadConfig_EnvOnlyDefaults(t *testing.T) {
	cfg := MustLoadConfig("")

	require.Equal(t, "local", cfg.Env)
	require.Equal(t, ":8080", cfg.Address)
	require.Equal(t, 30*time.Minute, cfg.TokenTTL)
	require.Empty(t, cfg.JWTSecret)
}

func TestMustLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("TOKEN_TTL", "45m")
	t.Setenv("HTTP_ADDRESS", ":7070")

	cfg := MustLoadConfig("")

	require.Equal(t, 45*time.Minute, cfg.TokenTTL)
	require.Equal(t, ":7070", cfg.Address)
}

func TestMustLoadConfig_MissingFile(t *testing.T) {
	require.Panics(t, func() {
		MustLoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	})
}

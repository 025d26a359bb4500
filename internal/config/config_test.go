package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"API_URL", "NEXT_PUBLIC_API_URL", "PROFILE_IMAGE_URL", "NEXT_PUBLIC_PROFILE_IMAGE_URL",
		"SERVER_HOST", "SERVER_PORT", "SERVER_ENV", "DATABASE_URL", "JOBS_INDEX_PATH", "API_TIMEOUT_SECONDS",
		"JWT_SECRET",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadMissingAPIURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_PATH", "")
	chdir(t, t.TempDir())

	cfg, err := Load()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrAPIURLMissing)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_URL", "http://api.local")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFromEnvWithDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_PATH", "")
	chdir(t, t.TempDir())
	t.Setenv("API_URL", "http://api.local/")
	t.Setenv("SERVER_PORT", "8081")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://api.local", cfg.API.URL)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, DefaultProfileImageURL, cfg.Profile.DefaultImageURL)
	assert.Equal(t, "/jobs", cfg.Jobs.IndexPath)
	assert.Equal(t, time.Duration(0), cfg.APITimeout())
}

func TestLoadYAMLOverlaidByEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
  env: production
api:
  url: http://from-file
  timeout_seconds: 5
profile:
  default_image_url: http://img/default.png
jwt:
  secret: from-file
`), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("NEXT_PUBLIC_API_URL", "http://from-env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://from-env", cfg.API.URL)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, "http://img/default.png", cfg.Profile.DefaultImageURL)
	assert.Equal(t, 5*time.Second, cfg.APITimeout())
	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, "from-file", cfg.JWT.Secret)
}

func TestLoadJWTSecretFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_PATH", "")
	chdir(t, t.TempDir())
	t.Setenv("API_URL", "http://api.local")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
}

func TestLoadInvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_PATH", "")
	chdir(t, t.TempDir())
	t.Setenv("API_URL", "http://api.local")
	t.Setenv("SERVER_PORT", "abc")

	_, err := Load()
	assert.Error(t, err)
}

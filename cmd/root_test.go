package cmd

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets keys for the test and restores them afterwards.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfigReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	testChdir(t, dir)
	t.Setenv("HOME", dir)
	clearEnv(t, "INVCTL_API_URL", "INVCTL_PREFS_DRIVER", "INVCTL_PREFS_DSN", "DATABASE_URL")

	env := "INVCTL_API_URL=http://from-dotenv:9/\n" +
		"INVCTL_PREFS_DRIVER=postgres\n" +
		"DATABASE_URL=postgres://kiosk@db/prefs\n"
	require.NoError(t, os.WriteFile(".env", []byte(env), 0o644))

	cfg, envLoaded, err := loadConfig()
	require.NoError(t, err)
	assert.True(t, envLoaded)
	assert.Equal(t, "http://from-dotenv:9", cfg.APIURL)
	assert.Equal(t, "postgres", cfg.PrefsDriver)
	assert.Equal(t, "postgres://kiosk@db/prefs", cfg.PrefsDSN)
}

func TestLoadConfigWithoutDotEnv(t *testing.T) {
	dir := t.TempDir()
	testChdir(t, dir)
	t.Setenv("HOME", dir)
	clearEnv(t, "INVCTL_API_URL", "INVCTL_PREFS_DRIVER", "INVCTL_PREFS_DSN", "DATABASE_URL")

	cfg, envLoaded, err := loadConfig()
	require.NoError(t, err)
	assert.False(t, envLoaded)
	assert.Equal(t, "http://localhost:1421", cfg.APIURL)
	assert.Equal(t, "sqlite", cfg.PrefsDriver)
}

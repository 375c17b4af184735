package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	testChdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:1421", cfg.APIURL)
	assert.Equal(t, "https://pricetagger.mardens.com/api/", cfg.PrintURL)
	assert.Equal(t, 300*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, "sqlite", cfg.PrefsDriver)
	assert.True(t, filepath.IsAbs(cfg.PrefsPath))
	assert.Equal(t, "prefs.db", filepath.Base(cfg.PrefsPath))
	assert.Empty(t, cfg.File)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  url: http://inventory.local/
search:
  debounce: 150ms
log:
  level: info
`), 0644))
	t.Setenv("INVCTL_LOG_LEVEL", "debug")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "http://inventory.local", cfg.APIURL)
	assert.Equal(t, 150*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, path, cfg.File)
}

func TestLoadTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(Template), 0644))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.PrefsDriver)
	assert.Equal(t, 300*time.Millisecond, cfg.SearchDebounce)
}

func TestLoadPostgresNeedsDSN(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	v := viper.New()
	v.Set(KeyPrefsDriver, "postgres")
	_, err := Load(v, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	testChdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	v = viper.New()
	v.Set(KeyPrefsDriver, "postgres")
	_, err = Load(v, "")
	assert.ErrorContains(t, err, KeyPrefsDSN)
}

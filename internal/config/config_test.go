package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "faqbot/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ModeRebuild, cfg.Matcher.Mode)
	assert.Equal(t, "Hello! How can I help you today?", cfg.UI.Greeting)
	assert.Equal(t, "spanish", cfg.Translator.DefaultTarget)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadMergesDefaults(t *testing.T) {
	path := writeConfig(t, `
data:
  path: /srv/qa.json
matcher:
  mode: cached
ui:
  show_score: true
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/qa.json", cfg.Data.Path)
	assert.Equal(t, ModeCached, cfg.Matcher.Mode)
	assert.True(t, cfg.UI.ShowScore)
	assert.Equal(t, "University FAQ Chatbot", cfg.UI.Title)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
	assert.Equal(t, "https://translate.googleapis.com", cfg.Translator.BaseURL)
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	path := writeConfig(t, "matcher:\n  mode: neural\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConfig))
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeConfig(t, "matcher: [unclosed\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FAQBOT_DATA_PATH", "/tmp/bank.json")
	t.Setenv("FAQBOT_MATCHER_MODE", "cached")
	t.Setenv("TRANSLATOR_BASE_URL", "http://localhost:9999")
	path := writeConfig(t, "matcher:\n  mode: rebuild\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/bank.json", cfg.Data.Path)
	assert.Equal(t, ModeCached, cfg.Matcher.Mode)
	assert.Equal(t, "http://localhost:9999", cfg.Translator.BaseURL)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultConfig()
	cfg.UI.ShowScore = true
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadDefaultWritesUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, path, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "faqbot", "config.yaml"), path)
	assert.Equal(t, ModeRebuild, cfg.Matcher.Mode)
	assert.FileExists(t, path)
}

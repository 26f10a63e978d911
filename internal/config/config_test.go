package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boj-notion/internal/adapter/logging"
	"boj-notion/internal/domain/model"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOJ_NOTION_SETTINGS", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("TRUSTED_IMAGE_HOSTS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "settings.yaml", filepath.Base(cfg.SettingsPath))
	assert.Equal(t, "https://www.acmicpc.net/status", cfg.StatusURL)
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GeminiModel)
	assert.Equal(t, "이름", cfg.NotionTitleProperty)
	assert.Zero(t, cfg.RequestTimeout, "no timeout by default")
	assert.Nil(t, cfg.TrustedImageHosts)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "45s")
	t.Setenv("HEADLESS", "true")
	t.Setenv("TRUSTED_IMAGE_HOSTS", " upload.acmicpc.net, ,cdn.example.com")
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("RELOAD_CRON", "@every 30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.Headless)
	assert.Equal(t, []string{"upload.acmicpc.net", "cdn.example.com"}, cfg.TrustedImageHosts)
	assert.Equal(t, "env-key", cfg.Env.GeminiKey)
	assert.Equal(t, "@every 30m", cfg.ReloadCron)
}

func TestSettingsOverlay(t *testing.T) {
	env := Settings{GeminiKey: "env", NotionToken: "env-token"}
	file := Settings{GeminiKey: "file", NotionToken: "   ", DatabaseID: "db"}

	got := env.Overlay(file)
	assert.Equal(t, Settings{GeminiKey: "file", NotionToken: "env-token", DatabaseID: "db"}, got)
}

func TestSettingsCredentialsTrimmed(t *testing.T) {
	s := Settings{GeminiKey: " k ", NotionToken: "\tt\n", DatabaseID: "db ", JudgeCookie: " c"}
	assert.Equal(t, model.Credentials{GeminiKey: "k", NotionToken: "t", DatabaseID: "db", JudgeCookie: "c"}, s.Credentials())
}

func TestReadSettingsFile(t *testing.T) {
	dir := t.TempDir()

	s, err := ReadSettingsFile(filepath.Join(dir, "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Settings{}, s)

	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gemini_key: g\nnotion_token: n\ndatabase_id: d\n"), 0o600))
	s, err = ReadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, Settings{GeminiKey: "g", NotionToken: "n", DatabaseID: "d"}, s)

	require.NoError(t, os.WriteFile(path, []byte("gemini_key: [unterminated\n"), 0o600))
	_, err = ReadSettingsFile(path)
	assert.Error(t, err)
}

func TestSettingsWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	cfg := &Config{SettingsPath: path, Env: Settings{GeminiKey: "env"}}

	w, err := NewSettingsWatcher(cfg, logging.New(nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"notion_token", "database_id"}, w.Credentials().Missing())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()
	defer func() {
		cancel()
		require.NoError(t, <-done)
	}()

	// Give the watcher time to register the directory.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("notion_token: n\ndatabase_id: d\n"), 0o600)
		return len(w.Credentials().Missing()) == 0
	}, 5*time.Second, 50*time.Millisecond)

	assert.Equal(t, model.Credentials{GeminiKey: "env", NotionToken: "n", DatabaseID: "d"}, w.Credentials())
}

func TestSettingsWatcherKeepsPreviousOnParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gemini_key: g\n"), 0o600))

	w, err := NewSettingsWatcher(&Config{SettingsPath: path}, logging.New(nil))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(":\n  - ["), 0o600))
	assert.Error(t, w.Reload())
	assert.Equal(t, "g", w.Credentials().GeminiKey)
}

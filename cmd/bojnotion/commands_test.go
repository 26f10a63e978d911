package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boj-notion/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSettingsCheck(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("NOTION_TOKEN", "")
	t.Setenv("NOTION_DATABASE_ID", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	_, err := execute(t, "--ephemeral", "--settings", path, "settings", "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini_key, notion_token, database_id")

	require.NoError(t, os.WriteFile(path, []byte("gemini_key: g\nnotion_token: n\ndatabase_id: d\n"), 0o600))
	out, err := execute(t, "--ephemeral", "--settings", path, "settings", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "settings ok")
}

func TestLedgerCommands(t *testing.T) {
	dir := t.TempDir()
	args := []string{"--settings", filepath.Join(dir, "settings.yaml"), "--ledger", filepath.Join(dir, "ledger.db")}

	out, err := execute(t, append(args, "ledger", "list")...)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = execute(t, append(args, "ledger", "reset")...)
	require.NoError(t, err)
	assert.Contains(t, out, "ledger cleared")
}

func TestRunRequiresLanguage(t *testing.T) {
	_, err := execute(t, "--ephemeral", "run", "81234567", "1000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "language")
}

func TestFlagsApply(t *testing.T) {
	cfg := &config.Config{SettingsPath: "a", LedgerPath: "b"}
	(&rootFlags{verbose: true, ledger: "c"}).apply(cfg)

	assert.True(t, cfg.Verbose)
	assert.False(t, cfg.Ephemeral)
	assert.Equal(t, "a", cfg.SettingsPath)
	assert.Equal(t, "c", cfg.LedgerPath)
}

package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"boj-notion/internal/domain/model"
	"boj-notion/internal/domain/ports"
)

// Settings are the user-supplied secrets.
type Settings struct {
	GeminiKey   string `yaml:"gemini_key"`
	NotionToken string `yaml:"notion_token"`
	DatabaseID  string `yaml:"database_id"`
	JudgeCookie string `yaml:"boj_cookie"`
}

// Credentials returns the settings with surrounding blanks removed.
func (s Settings) Credentials() model.Credentials {
	return model.Credentials{
		GeminiKey:   strings.TrimSpace(s.GeminiKey),
		NotionToken: strings.TrimSpace(s.NotionToken),
		DatabaseID:  strings.TrimSpace(s.DatabaseID),
		JudgeCookie: strings.TrimSpace(s.JudgeCookie),
	}
}

// Overlay returns s with every non-blank field of other applied on top.
func (s Settings) Overlay(other Settings) Settings {
	pick := func(base, over string) string {
		if strings.TrimSpace(over) != "" {
			return over
		}
		return base
	}
	return Settings{
		GeminiKey:   pick(s.GeminiKey, other.GeminiKey),
		NotionToken: pick(s.NotionToken, other.NotionToken),
		DatabaseID:  pick(s.DatabaseID, other.DatabaseID),
		JudgeCookie: pick(s.JudgeCookie, other.JudgeCookie),
	}
}

// ReadSettingsFile parses the YAML settings file. A missing file yields
// empty settings.
func ReadSettingsFile(path string) (Settings, error) {
	var s Settings
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings file %s: %w", path, err)
	}
	return s, nil
}

// SettingsWatcher serves the current credentials and reloads them when the
// settings file changes.
type SettingsWatcher struct {
	path   string
	env    Settings
	logger ports.Logger

	mu      sync.RWMutex
	current Settings
}

var _ ports.SettingsSource = (*SettingsWatcher)(nil)

// NewSettingsWatcher loads the settings file once.
func NewSettingsWatcher(cfg *Config, logger ports.Logger) (*SettingsWatcher, error) {
	w := &SettingsWatcher{
		path:   filepath.Clean(cfg.SettingsPath),
		env:    cfg.Env,
		logger: logger,
	}
	if err := w.Reload(); err != nil {
		return nil, err
	}
	return w, nil
}

// Credentials returns the credentials currently in effect.
func (w *SettingsWatcher) Credentials() model.Credentials {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current.Credentials()
}

// Path is the watched settings file.
func (w *SettingsWatcher) Path() string {
	return w.path
}

// Reload rereads the settings file. The previous settings stay in effect
// when the file cannot be parsed.
func (w *SettingsWatcher) Reload() error {
	file, err := ReadSettingsFile(w.path)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.current = w.env.Overlay(file)
	w.mu.Unlock()
	return nil
}

// Watch reloads the settings on every change of the file until ctx ends.
// The parent directory is watched so editors that replace the file are seen.
func (w *SettingsWatcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch settings dir: %w", err)
	}
	w.logger.Info(ctx, "watching settings file", "path", w.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error(ctx, "settings watcher error", "error", err)
		}
	}
}

func (w *SettingsWatcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	if err := w.Reload(); err != nil {
		w.logger.Error(ctx, "settings reload failed", "error", err)
		return
	}
	w.logger.Info(ctx, "settings reloaded", "missing", strings.Join(w.Credentials().Missing(), ","))
}

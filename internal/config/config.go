package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config contains runtime configuration values.
type Config struct {
	SettingsPath string
	LedgerPath   string

	// Ephemeral keeps the ledger in memory only.
	Ephemeral bool
	Verbose   bool

	StatusURL  string
	ChromeURL  string
	Headless   bool
	ReloadCron string

	JudgeBaseURL      string
	TrustedImageHosts []string

	GeminiModel   string
	GeminiBaseURL string

	NotionBaseURL       string
	NotionTitleProperty string
	NotionDateProperty  string
	NotionTagsProperty  string

	DiscordWebhookURL string

	// RequestTimeout bounds every outbound request; zero means no timeout.
	RequestTimeout time.Duration

	// Env holds secrets given through the environment. The settings file
	// overrides them field by field.
	Env Settings
}

const (
	appDirName          = "boj-notion"
	defaultStatusURL    = "https://www.acmicpc.net/status"
	defaultJudgeBaseURL = "https://www.acmicpc.net"
	defaultGeminiModel  = "gemini-2.5-flash-lite"
	defaultNotionURL    = "https://api.notion.com"
	defaultTitleProp    = "이름"
	defaultDateProp     = "날짜"
	defaultTagsProp     = "알고리즘"
	defaultTimeout      = time.Duration(0)
)

// Load builds a Config from environment variables with sane defaults.
func Load() (*Config, error) {
	dir := defaultDir()

	cfg := &Config{
		SettingsPath:        getenvDefault("BOJ_NOTION_SETTINGS", filepath.Join(dir, "settings.yaml")),
		LedgerPath:          getenvDefault("BOJ_NOTION_LEDGER", filepath.Join(dir, "ledger.db")),
		Ephemeral:           parseBoolDefault("LEDGER_EPHEMERAL", false),
		Verbose:             parseBoolDefault("VERBOSE", false),
		StatusURL:           getenvDefault("STATUS_URL", defaultStatusURL),
		ChromeURL:           getenvDefault("CHROME_URL", ""),
		Headless:            parseBoolDefault("HEADLESS", false),
		ReloadCron:          getenvDefault("RELOAD_CRON", ""),
		JudgeBaseURL:        getenvDefault("BOJ_BASE_URL", defaultJudgeBaseURL),
		TrustedImageHosts:   parseListDefault("TRUSTED_IMAGE_HOSTS", nil),
		GeminiModel:         getenvDefault("GEMINI_MODEL", defaultGeminiModel),
		GeminiBaseURL:       getenvDefault("GEMINI_BASE_URL", ""),
		NotionBaseURL:       getenvDefault("NOTION_BASE_URL", defaultNotionURL),
		NotionTitleProperty: getenvDefault("NOTION_TITLE_PROPERTY", defaultTitleProp),
		NotionDateProperty:  getenvDefault("NOTION_DATE_PROPERTY", defaultDateProp),
		NotionTagsProperty:  getenvDefault("NOTION_TAGS_PROPERTY", defaultTagsProp),
		DiscordWebhookURL:   getenvDefault("DISCORD_WEBHOOK_URL", ""),
		RequestTimeout:      parseDurationDefault("REQUEST_TIMEOUT", defaultTimeout),
		Env: Settings{
			GeminiKey:   getenvDefault("GEMINI_API_KEY", ""),
			NotionToken: getenvDefault("NOTION_TOKEN", ""),
			DatabaseID:  getenvDefault("NOTION_DATABASE_ID", ""),
			JudgeCookie: getenvDefault("BOJ_COOKIE", ""),
		},
	}

	if cfg.RequestTimeout < 0 {
		cfg.RequestTimeout = defaultTimeout
	}

	return cfg, nil
}

func defaultDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDirName)
	}
	return "." + appDirName
}

func getenvDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseBoolDefault(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func parseListDefault(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseDurationDefault(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}

package di

import (
	"log/slog"
	"os"

	"boj-notion/internal/adapter/boj"
	"boj-notion/internal/adapter/browser"
	"boj-notion/internal/adapter/discord"
	"boj-notion/internal/adapter/gemini"
	"boj-notion/internal/adapter/ledger"
	"boj-notion/internal/adapter/logging"
	"boj-notion/internal/adapter/notify"
	"boj-notion/internal/adapter/notion"
	"boj-notion/internal/app"
	"boj-notion/internal/config"
	"boj-notion/internal/domain/ports"
)

func provideSlogLogger(cfg *config.Config) *slog.Logger {
	return logging.NewJSON(os.Stdout, cfg.Verbose)
}

func provideLedger(cfg *config.Config, logger ports.Logger) (ports.LedgerStore, func(), error) {
	if cfg.Ephemeral {
		return ledger.NewMemory(), func() {}, nil
	}
	store, err := ledger.OpenSQLite(cfg.LedgerPath, logger)
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

func provideJudge(cfg *config.Config, settings ports.SettingsSource, logger ports.Logger) (ports.Judge, error) {
	client, err := boj.New(cfg.JudgeBaseURL, cfg.RequestTimeout, cfg.TrustedImageHosts, settings, logger)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func provideAnalyzer(cfg *config.Config, logger ports.Logger) ports.Analyzer {
	return gemini.NewAnalyzer(cfg.GeminiModel, cfg.GeminiBaseURL, cfg.RequestTimeout, logger)
}

func provideDocumentStore(cfg *config.Config, logger ports.Logger) ports.DocumentStore {
	props := notion.Properties{
		Title: cfg.NotionTitleProperty,
		Date:  cfg.NotionDateProperty,
		Tags:  cfg.NotionTagsProperty,
	}
	return notion.New(cfg.NotionBaseURL, props, cfg.RequestTimeout, logger)
}

func provideStatusPage(cfg *config.Config, logger ports.Logger) *browser.StatusPage {
	return browser.New(browser.Config{
		ControlURL: cfg.ChromeURL,
		Headless:   cfg.Headless,
		StatusURL:  cfg.StatusURL,
	}, logger)
}

func provideNotifier(cfg *config.Config, page *browser.StatusPage, logger ports.Logger) ports.Notifier {
	notifiers := []ports.Notifier{notify.NewLog(logger), page}
	if cfg.DiscordWebhookURL != "" {
		notifiers = append(notifiers, discord.NewWebhook(cfg.DiscordWebhookURL, cfg.RequestTimeout, logger))
	}
	return notify.NewComposite(logger, notifiers...)
}

func provideOptions(cfg *config.Config) app.Options {
	return app.Options{ReloadCron: cfg.ReloadCron}
}

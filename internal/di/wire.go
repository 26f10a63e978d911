//go:build wireinject

package di

import (
	"github.com/google/wire"

	"boj-notion/internal/adapter/browser"
	"boj-notion/internal/adapter/logging"
	"boj-notion/internal/app"
	"boj-notion/internal/config"
	"boj-notion/internal/domain/ports"
	"boj-notion/internal/usecase"
)

// InitializeApp wires the application components together.
func InitializeApp(cfg *config.Config) (*app.App, func(), error) {
	wire.Build(
		provideSlogLogger,
		logging.New,
		wire.Bind(new(ports.Logger), new(*logging.SLogger)),
		config.NewSettingsWatcher,
		wire.Bind(new(ports.SettingsSource), new(*config.SettingsWatcher)),
		wire.Bind(new(app.SettingsWatcher), new(*config.SettingsWatcher)),
		provideLedger,
		provideJudge,
		provideAnalyzer,
		provideDocumentStore,
		provideStatusPage,
		wire.Bind(new(app.StatusPage), new(*browser.StatusPage)),
		provideNotifier,
		usecase.NewSolutionPipeline,
		wire.Bind(new(ports.Pipeline), new(*usecase.SolutionPipeline)),
		provideOptions,
		app.New,
	)
	return nil, nil, nil
}

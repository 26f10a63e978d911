package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"boj-notion/internal/domain/model"
	"boj-notion/internal/domain/ports"
	"boj-notion/internal/observer"
)

// StatusPage is the watched page: an event source that can be reloaded.
type StatusPage interface {
	ports.RowSource
	Open(ctx context.Context) error
	Reload(ctx context.Context) error
	Close() error
}

// SettingsWatcher keeps the credentials in sync with the settings file.
type SettingsWatcher interface {
	ports.SettingsSource
	Watch(ctx context.Context) error
}

// Options controls optional behaviours of the watcher.
type Options struct {
	// ReloadCron schedules the page re-arm job; empty disables it.
	ReloadCron string
}

// App manages the lifecycle of the status page watcher.
type App struct {
	page     StatusPage
	ledger   ports.LedgerStore
	pipeline ports.Pipeline
	settings SettingsWatcher
	logger   ports.Logger
	schedule string

	mu       sync.Mutex
	session  *observer.Session
	rearming bool
}

// New constructs an App instance.
func New(page StatusPage, ledger ports.LedgerStore, pipeline ports.Pipeline, settings SettingsWatcher, logger ports.Logger, opts Options) *App {
	return &App{
		page:     page,
		ledger:   ledger,
		pipeline: pipeline,
		settings: settings,
		logger:   logger,
		schedule: opts.ReloadCron,
	}
}

// Watch opens the status page and processes accepted submissions until ctx
// ends. A run in flight at shutdown is allowed to finish.
func (a *App) Watch(ctx context.Context) error {
	if a.schedule != "" {
		if _, err := cron.ParseStandard(a.schedule); err != nil {
			return fmt.Errorf("parse reload schedule %q: %w", a.schedule, err)
		}
	}

	if err := a.page.Open(ctx); err != nil {
		return err
	}
	defer func() {
		if err := a.page.Close(); err != nil {
			a.logger.Error(context.Background(), "failed to close status page", "error", err)
		}
	}()

	if err := a.startSession(ctx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	events, err := a.page.Subscribe(gctx)
	if err != nil {
		return err
	}
	g.Go(func() error {
		a.consume(gctx, events)
		return nil
	})

	if a.settings != nil {
		g.Go(func() error {
			return a.settings.Watch(gctx)
		})
	}

	if a.schedule != "" {
		scheduler := cron.New()
		if _, err := scheduler.AddFunc(a.schedule, func() { a.rearm(gctx) }); err != nil {
			a.logger.Error(ctx, "failed to schedule page reload", "error", err)
		}
		a.logger.Info(ctx, "starting scheduler", "cron", a.schedule)
		scheduler.Start()
		g.Go(func() error {
			<-gctx.Done()
			stopCtx := scheduler.Stop()
			select {
			case <-stopCtx.Done():
			case <-time.After(5 * time.Second):
			}
			a.logger.Info(context.Background(), "scheduler stopped")
			return nil
		})
	}

	err = g.Wait()
	a.currentSession().Wait()
	a.logger.Info(context.Background(), "watcher stopped")
	return err
}

// RunOnce processes one submission outside the watch loop. A successful run
// is recorded in the ledger so the watcher will not repeat it.
func (a *App) RunOnce(ctx context.Context, sub model.Submission) (model.RunResult, error) {
	result := a.pipeline.Run(ctx, sub)
	if !result.Success {
		return result, nil
	}

	ids, err := a.ledger.Load(ctx)
	if err != nil {
		return result, fmt.Errorf("load ledger: %w", err)
	}
	set := model.NewProcessedSet(ids...)
	set.Add(sub.ID)
	if err := a.ledger.Save(ctx, set.IDs()); err != nil {
		return result, fmt.Errorf("save ledger: %w", err)
	}
	return result, nil
}

// ListLedger returns the processed submission ids.
func (a *App) ListLedger(ctx context.Context) ([]string, error) {
	ids, err := a.ledger.Load(ctx)
	if err != nil {
		return nil, err
	}
	return model.NewProcessedSet(ids...).IDs(), nil
}

// ResetLedger forgets every processed submission.
func (a *App) ResetLedger(ctx context.Context) error {
	if err := a.ledger.Reset(ctx); err != nil {
		return err
	}
	a.logger.Info(ctx, "ledger reset")
	return nil
}

// MissingSettings lists the required settings that are blank.
func (a *App) MissingSettings() []string {
	return a.settings.Credentials().Missing()
}

func (a *App) startSession(ctx context.Context) error {
	session, err := observer.NewSession(ctx, a.ledger, a.pipeline, a.logger)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.session = session
	a.mu.Unlock()
	return nil
}

func (a *App) currentSession() *observer.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session
}

func (a *App) consume(ctx context.Context, events <-chan model.RowSnapshot) {
	for {
		select {
		case <-ctx.Done():
			return
		case row, ok := <-events:
			if !ok {
				return
			}
			a.mu.Lock()
			session, rearming := a.session, a.rearming
			a.mu.Unlock()
			if rearming {
				continue
			}
			session.Notify(ctx, row)
		}
	}
}

// rearm waits for the session to go idle, reloads the page and starts a new
// session from the durable ledger. Events are ignored meanwhile.
func (a *App) rearm(ctx context.Context) {
	a.mu.Lock()
	if a.rearming {
		a.mu.Unlock()
		return
	}
	a.rearming = true
	old := a.session
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.rearming = false
		a.mu.Unlock()
	}()

	old.Wait()
	if ctx.Err() != nil {
		return
	}

	if err := a.page.Reload(ctx); err != nil {
		a.logger.Error(ctx, "status page reload failed", "error", err)
		return
	}
	if err := a.startSession(ctx); err != nil {
		a.logger.Error(ctx, "failed to start session after reload", "error", err)
		return
	}
	a.logger.Info(ctx, "status page re-armed")
}

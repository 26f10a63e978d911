package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"boj-notion/internal/apperr"
	"boj-notion/internal/document"
	"boj-notion/internal/domain/model"
	"boj-notion/internal/domain/ports"
)

// SolutionPipeline turns one accepted submission into an uploaded solution note.
type SolutionPipeline struct {
	judge    ports.Judge
	analyzer ports.Analyzer
	store    ports.DocumentStore
	notifier ports.Notifier
	settings ports.SettingsSource
	logger   ports.Logger
	now      func() time.Time
}

var _ ports.Pipeline = (*SolutionPipeline)(nil)

// NewSolutionPipeline constructs a SolutionPipeline use case.
func NewSolutionPipeline(
	judge ports.Judge,
	analyzer ports.Analyzer,
	store ports.DocumentStore,
	notifier ports.Notifier,
	settings ports.SettingsSource,
	logger ports.Logger,
) *SolutionPipeline {
	return &SolutionPipeline{
		judge:    judge,
		analyzer: analyzer,
		store:    store,
		notifier: notifier,
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
}

// Run executes the whole workflow for sub. Every failure is reported through
// the notifier and folded into the result.
func (p *SolutionPipeline) Run(ctx context.Context, sub model.Submission) model.RunResult {
	start := time.Now()
	logger := p.logger.With("run_id", uuid.NewString(), "submission", sub.ID, "problem", sub.ProblemID)
	logger.Info(ctx, "starting solution run", "language", sub.Language)

	p.notify(ctx, logger, model.LevelInfo, fmt.Sprintf("정답! (%s) 분석을 시작합니다...", sub.Language))

	title, err := p.execute(ctx, logger, sub)
	if err != nil {
		message := apperr.UserMessage(err)
		logger.Error(ctx, "solution run failed", "error", err, "kind", apperr.KindOf(err).String(), "duration", time.Since(start))
		p.notify(ctx, logger, model.LevelError, "실패: "+message)
		return model.RunResult{Message: message}
	}

	message := fmt.Sprintf("\"%s\" 저장 완료!", title)
	logger.Info(ctx, "solution run completed", "title", title, "duration", time.Since(start))
	p.notify(ctx, logger, model.LevelSuccess, message)
	return model.RunResult{Success: true, Title: title, Message: message}
}

func (p *SolutionPipeline) execute(ctx context.Context, logger ports.Logger, sub model.Submission) (string, error) {
	creds := p.settings.Credentials()
	if missing := creds.Missing(); len(missing) > 0 {
		return "", apperr.ConfigMissing(missing...)
	}

	code, err := p.judge.FetchSource(ctx, sub.ID)
	if err != nil {
		return "", err
	}

	problem, err := p.judge.FetchProblem(ctx, sub.ProblemID)
	if err != nil {
		return "", err
	}
	logger.Info(ctx, "submission scraped", "title", problem.Title, "codeSize", len(code))

	analysis, err := p.analyzer.Analyze(ctx, creds, sub.Language, code)
	if err != nil {
		return "", err
	}

	page := document.Build(document.Input{
		Problem:  *problem,
		Analysis: analysis,
		Language: sub.Language,
		Code:     code,
	}, p.now().UTC())
	logger.Info(ctx, "document assembled", "blocks", len(page.Blocks), "tags", len(page.Tags))

	if err := p.store.CreatePage(ctx, creds, page); err != nil {
		return "", err
	}
	return page.Title, nil
}

func (p *SolutionPipeline) notify(ctx context.Context, logger ports.Logger, level model.NotificationLevel, message string) {
	if p.notifier == nil {
		return
	}
	if err := p.notifier.Notify(ctx, model.Notification{Level: level, Message: message}); err != nil {
		logger.Error(ctx, "failed to send notification", "error", err)
	}
}

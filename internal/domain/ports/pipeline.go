package ports

import (
	"context"

	"boj-notion/internal/domain/model"
)

// Pipeline handles one accepted submission end to end. Errors are folded
// into the returned result.
type Pipeline interface {
	Run(ctx context.Context, sub model.Submission) model.RunResult
}

// SettingsSource returns the credentials currently configured.
type SettingsSource interface {
	Credentials() model.Credentials
}

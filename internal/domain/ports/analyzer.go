package ports

import (
	"context"

	"boj-notion/internal/domain/model"
)

// Analyzer asks a generative model to explain a solution.
type Analyzer interface {
	Analyze(ctx context.Context, creds model.Credentials, language, code string) (model.Analysis, error)
}

package ports

import (
	"context"

	"boj-notion/internal/domain/model"
)

// Judge fetches submission sources and problem statements from the judge.
type Judge interface {
	FetchSource(ctx context.Context, submissionID string) (string, error)
	FetchProblem(ctx context.Context, problemID string) (*model.ProblemSnapshot, error)
}

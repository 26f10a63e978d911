package ports

import (
	"context"

	"boj-notion/internal/domain/model"
)

// DocumentStore uploads an assembled page to the notes workspace.
type DocumentStore interface {
	CreatePage(ctx context.Context, creds model.Credentials, page model.Page) error
}

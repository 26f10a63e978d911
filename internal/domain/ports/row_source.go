package ports

import (
	"context"

	"boj-notion/internal/domain/model"
)

// RowSource streams snapshots of the first row of the live status table,
// one per observed change. The channel is closed when ctx ends.
type RowSource interface {
	Subscribe(ctx context.Context) (<-chan model.RowSnapshot, error)
}

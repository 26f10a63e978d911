package ports

import (
	"context"

	"boj-notion/internal/domain/model"
)

// Notifier surfaces run progress to the user (page toast, Discord, ...).
type Notifier interface {
	Notify(ctx context.Context, notification model.Notification) error
}

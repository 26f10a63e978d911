package notify

import (
	"context"
	"errors"

	"boj-notion/internal/domain/model"
	"boj-notion/internal/domain/ports"
)

// Composite fans a notification out to several notifiers.
type Composite struct {
	logger    ports.Logger
	notifiers []ports.Notifier
}

var _ ports.Notifier = (*Composite)(nil)

// NewComposite constructs a notifier that calls the given notifiers in order.
// Nil entries are skipped.
func NewComposite(logger ports.Logger, notifiers ...ports.Notifier) *Composite {
	active := make([]ports.Notifier, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			active = append(active, n)
		}
	}
	return &Composite{
		logger:    logger,
		notifiers: active,
	}
}

// Notify delivers to every notifier. A failing notifier does not stop the
// others; all failures are joined into the returned error.
func (c *Composite) Notify(ctx context.Context, notification model.Notification) error {
	var errs []error
	for _, n := range c.notifiers {
		if err := n.Notify(ctx, notification); err != nil {
			c.logger.Error(ctx, "notifier failed", "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Log records notifications in the structured log.
type Log struct {
	logger ports.Logger
}

var _ ports.Notifier = (*Log)(nil)

// NewLog creates a log notifier.
func NewLog(logger ports.Logger) *Log {
	return &Log{logger: logger}
}

// Notify writes the notification; errors are logged at error level.
func (l *Log) Notify(ctx context.Context, notification model.Notification) error {
	if notification.Level == model.LevelError {
		l.logger.Error(ctx, "notification", "kind", string(notification.Level), "message", notification.Message)
		return nil
	}
	l.logger.Info(ctx, "notification", "kind", string(notification.Level), "message", notification.Message)
	return nil
}

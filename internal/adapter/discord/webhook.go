package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"boj-notion/internal/domain/model"
	"boj-notion/internal/domain/ports"
)

var levelColors = map[model.NotificationLevel]int{
	model.LevelInfo:    0x2196F3,
	model.LevelSuccess: 0x4CAF50,
	model.LevelError:   0xF44336,
}

// Webhook mirrors run notifications to a Discord channel.
type Webhook struct {
	webhookURL string
	httpClient *http.Client
	logger     ports.Logger
}

var _ ports.Notifier = (*Webhook)(nil)

// NewWebhook creates a new Discord webhook notifier.
func NewWebhook(webhookURL string, timeout time.Duration, logger ports.Logger) *Webhook {
	return &Webhook{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Notify posts the notification as a single embed.
func (w *Webhook) Notify(ctx context.Context, notification model.Notification) error {
	if w.webhookURL == "" {
		return fmt.Errorf("webhook URL is empty")
	}

	color, ok := levelColors[notification.Level]
	if !ok {
		color = levelColors[model.LevelInfo]
	}

	payload := map[string]any{
		"content": "",
		"embeds": []map[string]any{
			{
				"description": truncate(notification.Message, 4096),
				"timestamp":   time.Now().UTC().Format(time.RFC3339),
				"color":       color,
				"footer": map[string]string{
					"text": "BOJ → Notion",
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("discord webhook returned status %d", resp.StatusCode)
	}

	w.logger.Info(ctx, "notification sent to discord", "level", string(notification.Level))
	return nil
}

func truncate(value string, limit int) string {
	r := []rune(value)
	if len(r) <= limit {
		return value
	}
	return strings.TrimSpace(string(r[:limit-3])) + "..."
}

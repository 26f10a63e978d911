package model

// NotificationLevel classifies a user-facing notification.
type NotificationLevel string

const (
	LevelInfo    NotificationLevel = "info"
	LevelSuccess NotificationLevel = "success"
	LevelError   NotificationLevel = "error"
)

// Notification is a transport-agnostic message for the user.
type Notification struct {
	Level   NotificationLevel
	Message string
}

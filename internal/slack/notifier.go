package slack

import "context"

// Notifier defines the interface for publishing messages to a notification
// channel. New-feedback events go through it; the mock below is the default
// so the app runs without a Slack workspace.
type Notifier interface {
	Publish(ctx context.Context, message string) error
}

package slack

import (
	"context"
	"log"
)

// MockSlack satisfies Notifier by writing the feedback announcement to the
// server log instead of a Slack channel. It is the default notifier; swap in
// a real client where a webhook is configured.
type MockSlack struct{}

func NewMockSlack() *MockSlack {
	return &MockSlack{}
}

func (m *MockSlack) Publish(ctx context.Context, message string) error {
	log.Printf("📨 [MockSlack] Feedback notification: %s", message)
	return nil
}

// Package notify delivers push notifications to users.
package notify

import (
	"context"

	"belakoo-backend-go/internal/logger"
)

type Notification struct {
	UserID string
	Token  string
	Title  string
	Body   string
	Data   map[string]any
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier only logs; used when no push provider is configured.
type LogNotifier struct {
	Log *logger.Logger
}

func (l LogNotifier) Notify(ctx context.Context, n Notification) error {
	l.Log.Info("notification", "user_id", n.UserID, "title", n.Title, "body", n.Body)
	return nil
}

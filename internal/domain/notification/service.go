package notification

import "context"

// Dispatcher accepts notification intents for best-effort delivery.
// Producers must never treat a dispatch failure as fatal.
type Dispatcher interface {
	Dispatch(ctx context.Context, intents ...Intent) error
}

// Service exposes the notification inbox plus the dispatcher used by
// other services as their outbox.
type Service interface {
	Dispatcher

	GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, userID string, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID string, notificationID string) error

	// Stop flushes pending intents and stops the background workers.
	Stop()
}

package notification

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/notification"
)

type fakeNotificationRepo struct {
	mu      sync.Mutex
	stored  []*notification.Notification
	batches int
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stored = append(r.stored, n)
	return nil
}

func (r *fakeNotificationRepo) CreateBatch(_ context.Context, ns []*notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stored = append(r.stored, ns...)
	r.batches++
	return nil
}

func (r *fakeNotificationRepo) GetByUserID(_ context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*notification.Notification
	for _, n := range r.stored {
		if n.RecipientID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	return out, len(out), nil
}

func (r *fakeNotificationRepo) GetUnreadCount(_ context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.stored {
		if s.RecipientID == userID && !s.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *fakeNotificationRepo) MarkAsRead(_ context.Context, ids []string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, s := range r.stored {
		if s.RecipientID != userID {
			continue
		}
		for _, id := range ids {
			if s.ID == id {
				s.IsRead = true
				s.ReadAt = &now
			}
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllAsRead(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, s := range r.stored {
		if s.RecipientID == userID {
			s.IsRead = true
			s.ReadAt = &now
		}
	}
	return nil
}

func (r *fakeNotificationRepo) Delete(_ context.Context, id string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.stored {
		if s.ID == id && s.RecipientID == userID {
			r.stored = append(r.stored[:i], r.stored[i+1:]...)
			return nil
		}
	}
	return notification.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stored)
}

func newTestService(repo *fakeNotificationRepo, cfg Config) notification.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewNotificationService(repo, cfg, logger)
}

func intentFor(userID string) notification.Intent {
	return notification.Intent{
		CompanyID:   "comp-1",
		RecipientID: userID,
		Type:        notification.TypeSystem,
		Title:       "Test",
		Message:     "test message",
	}
}

func TestStopFlushesQueuedIntents(t *testing.T) {
	repo := &fakeNotificationRepo{}
	// Large batch size and long interval so only Stop can flush.
	svc := newTestService(repo, Config{
		BatchSize:     100,
		FlushInterval: time.Hour,
		WorkerCount:   1,
		QueueSize:     10,
	})

	ctx := context.Background()
	require.NoError(t, svc.Dispatch(ctx, intentFor("u1"), intentFor("u2"), intentFor("u3")))

	svc.Stop()
	assert.Equal(t, 3, repo.count())
}

func TestDispatchFallsBackToDirectInsertWhenQueueFull(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := newTestService(repo, Config{
		BatchSize:     100,
		FlushInterval: time.Hour,
		WorkerCount:   1,
		QueueSize:     1,
	})

	// Flood past the queue capacity; overflow must be inserted directly
	// rather than dropped.
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		require.NoError(t, svc.Dispatch(ctx, intentFor("u1")))
	}

	svc.Stop()
	assert.Equal(t, 10, repo.count())
}

func TestInboxLifecycle(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := newTestService(repo, Config{WorkerCount: 1, QueueSize: 10})

	ctx := context.Background()
	require.NoError(t, svc.Dispatch(ctx, intentFor("u1"), intentFor("u1"), intentFor("u2")))
	svc.Stop()

	list, err := svc.GetNotifications(ctx, "u1", 1, 20, false)
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 2)
	assert.Equal(t, 2, list.UnreadCount)

	require.NoError(t, svc.MarkAllAsRead(ctx, "u1"))
	count, err := svc.GetUnreadCount(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, count)

	// The other user's inbox is untouched.
	count, err = svc.GetUnreadCount(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/notification"
	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/obs"
)

// Config holds notification service configuration
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
}

type service struct {
	repo   notification.Repository
	config Config
	logger *slog.Logger

	queue  chan notification.Intent
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewNotificationService creates a notification service with background
// workers that batch-insert queued intents.
func NewNotificationService(repo notification.Repository, cfg Config, logger *slog.Logger) notification.Service {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		repo:   repo,
		config: cfg,
		logger: logger,
		queue:  make(chan notification.Intent, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	logger.Info("notification service started",
		"workers", cfg.WorkerCount, "batch_size", cfg.BatchSize, "flush_interval", cfg.FlushInterval)

	return s
}

// worker drains the intent queue, flushing on batch size or interval.
func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]notification.Intent, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		notifications := make([]*notification.Notification, len(batch))
		for i, intent := range batch {
			notifications[i] = fromIntent(intent)
		}

		if err := s.repo.CreateBatch(ctx, notifications); err != nil {
			s.logger.Error("notification batch insert failed", "worker", id, "count", len(batch), "error", err)
		} else {
			s.logger.Debug("notification batch inserted", "worker", id, "count", len(batch))
		}

		batch = batch[:0]
	}

	for {
		select {
		case intent := <-s.queue:
			batch = append(batch, intent)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			// Drain what is already queued so Stop does not lose intents.
			for {
				select {
				case intent := <-s.queue:
					batch = append(batch, intent)
					if len(batch) >= s.config.BatchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

// Dispatch queues intents for async persistence. When the queue is full
// the intent is inserted directly so nothing is silently dropped.
func (s *service) Dispatch(ctx context.Context, intents ...notification.Intent) error {
	for _, intent := range intents {
		obs.CountNotificationQueued(string(intent.Type))
		select {
		case s.queue <- intent:
		case <-ctx.Done():
			return ctx.Err()
		default:
			if err := s.repo.Create(ctx, fromIntent(intent)); err != nil {
				return err
			}
		}
	}
	return nil
}

func fromIntent(intent notification.Intent) *notification.Notification {
	return &notification.Notification{
		ID:          uuid.New().String(),
		CompanyID:   intent.CompanyID,
		RecipientID: intent.RecipientID,
		SenderID:    intent.SenderID,
		Type:        intent.Type,
		Title:       intent.Title,
		Message:     intent.Message,
		Link:        intent.Link,
		IsRead:      false,
		CreatedAt:   time.Now(),
	}
}

func toResponse(n *notification.Notification) notification.NotificationResponse {
	return notification.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

// GetNotifications retrieves paginated notifications for a user
func (s *service) GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	notifications, total, err := s.repo.GetByUserID(ctx, userID, page, pageSize, unreadOnly)
	if err != nil {
		return nil, err
	}

	unreadCount, err := s.repo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = toResponse(n)
	}

	return &notification.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		UnreadCount:   unreadCount,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

func (s *service) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

func (s *service) MarkAsRead(ctx context.Context, userID string, req notification.MarkAsReadRequest) error {
	return s.repo.MarkAsRead(ctx, req.NotificationIDs, userID)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *service) Delete(ctx context.Context, userID string, notificationID string) error {
	return s.repo.Delete(ctx, notificationID, userID)
}

// Stop flushes pending intents and stops the workers.
func (s *service) Stop() {
	close(s.stopCh)
	s.wg.Wait()
	s.logger.Info("notification service stopped")
}

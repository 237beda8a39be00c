package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/notification"
	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notifications (id, company_id, recipient_id, sender_id, type, title, message, link, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := q.Exec(ctx, query,
		n.ID, n.CompanyID, n.RecipientID, n.SenderID,
		string(n.Type), n.Title, n.Message, n.Link, n.IsRead, n.CreatedAt,
	)
	return err
}

func (r *notificationRepository) CreateBatch(ctx context.Context, ns []*notification.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	valueStrings := make([]string, 0, len(ns))
	args := make([]interface{}, 0, len(ns)*10)
	for i, n := range ns {
		base := i * 10
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10,
		))
		args = append(args,
			n.ID, n.CompanyID, n.RecipientID, n.SenderID,
			string(n.Type), n.Title, n.Message, n.Link, n.IsRead, n.CreatedAt,
		)
	}

	query := `
		INSERT INTO notifications (id, company_id, recipient_id, sender_id, type, title, message, link, is_read, created_at)
		VALUES ` + strings.Join(valueStrings, ", ")

	_, err := q.Exec(ctx, query, args...)
	return err
}

func (r *notificationRepository) GetByUserID(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	q := GetQuerier(ctx, r.db)

	where := `WHERE recipient_id = $1`
	if unreadOnly {
		where += ` AND is_read = false`
	}

	var total int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications `+where, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, company_id, recipient_id, sender_id, type, title, message, link, is_read, read_at, created_at
		FROM notifications ` + where + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := q.Query(ctx, query, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var ns []*notification.Notification
	for rows.Next() {
		var n notification.Notification
		var nType string
		if err := rows.Scan(
			&n.ID, &n.CompanyID, &n.RecipientID, &n.SenderID,
			&nType, &n.Title, &n.Message, &n.Link, &n.IsRead, &n.ReadAt, &n.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		n.Type = notification.NotificationType(nType)
		ns = append(ns, &n)
	}
	return ns, total, rows.Err()
}

func (r *notificationRepository) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = false`,
		userID,
	).Scan(&count)
	return count, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, ids []string, userID string) error {
	if len(ids) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE notifications SET is_read = true, read_at = NOW() WHERE id = ANY($1) AND recipient_id = $2`,
		ids, userID,
	)
	return err
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE notifications SET is_read = true, read_at = NOW() WHERE recipient_id = $1 AND is_read = false`,
		userID,
	)
	return err
}

func (r *notificationRepository) Delete(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM notifications WHERE id = $1 AND recipient_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

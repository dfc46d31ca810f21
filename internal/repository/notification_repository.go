package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cliper/internal/models"
)

const notificationColumns = `n.id, n.type, n.sender_id, n.recipient_id, n.content, n.post_id, n.comment_id,
	n.is_read, n.created_at,
	u.id AS "sender.id", u.username AS "sender.username", u.full_name AS "sender.full_name",
	u.profile_picture AS "sender.profile_picture"`

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create inserts an unread notification and reloads it joined with the sender summary.
func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}

	query := `
		WITH n AS (
			INSERT INTO notifications (id, type, sender_id, recipient_id, content, post_id, comment_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING *
		)
		SELECT ` + notificationColumns + `
		FROM n
		JOIN users u ON u.id = n.sender_id
	`

	err := r.db.GetContext(ctx, notification, query,
		notification.ID, notification.Type, notification.SenderID, notification.RecipientID,
		notification.Content, notification.PostID, notification.CommentID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("create notification: %w", err)
	}

	return nil
}

// ListByRecipient returns the recipient's notifications, newest first. An empty type lists every kind.
func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID, notificationType string, page models.Page) ([]models.Notification, error) {
	notifications := []models.Notification{}

	query := `
		SELECT ` + notificationColumns + `
		FROM notifications n
		JOIN users u ON u.id = n.sender_id
		WHERE n.recipient_id = $1 AND ($2::text = '' OR n.type = $2::text)
		ORDER BY n.created_at DESC, n.id DESC
		LIMIT $3 OFFSET $4
	`

	err := r.db.SelectContext(ctx, &notifications, query, recipientID, notificationType, page.Fetch(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, notificationID, recipientID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND recipient_id = $2`, notificationID, recipientID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return requireAffected(res)
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE recipient_id = $1 AND is_read = FALSE`, recipientID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return res.RowsAffected()
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID string) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE`, recipientID)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

func (r *notificationRepository) Delete(ctx context.Context, notificationID, recipientID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE id = $1 AND recipient_id = $2`, notificationID, recipientID)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	return requireAffected(res)
}

package notification

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, gymID, userID int, notifType, title, message string, metadata map[string]interface{}) (*Notification, error)
	ListByGym(ctx context.Context, gymID int, limit, offset int) ([]Notification, error)
	UnreadCount(ctx context.Context, gymID int) (int, error)
	MarkRead(ctx context.Context, gymID, id int) error
	MarkAllRead(ctx context.Context, gymID int) error
	ExpiryNoticeExists(ctx context.Context, gymID, memberID int, endDate string) (bool, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const notificationColumns = `id, gym_id, user_id, type, title, message, metadata, is_read, created_at`

func (r *repository) Create(ctx context.Context, gymID, userID int, notifType, title, message string, metadata map[string]interface{}) (*Notification, error) {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	meta, err := json.Marshal(metadata)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO notifications (gym_id, user_id, type, title, message, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + notificationColumns

	var n Notification
	if err := r.db.GetContext(ctx, &n, query, gymID, userID, notifType, title, message, meta); err != nil {
		return nil, err
	}

	return &n, nil
}

func (r *repository) ListByGym(ctx context.Context, gymID int, limit, offset int) ([]Notification, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE gym_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var list []Notification
	if err := r.db.SelectContext(ctx, &list, query, gymID, limit, offset); err != nil {
		return nil, err
	}

	return list, nil
}

func (r *repository) UnreadCount(ctx context.Context, gymID int) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM notifications WHERE gym_id = $1 AND is_read = false`, gymID)
	return count, err
}

func (r *repository) MarkRead(ctx context.Context, gymID, id int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = true WHERE id = $1 AND gym_id = $2`, id, gymID)
	return err
}

func (r *repository) MarkAllRead(ctx context.Context, gymID int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = true WHERE gym_id = $1 AND is_read = false`, gymID)
	return err
}

// ExpiryNoticeExists dedupes the expiry scanner: one notice per
// (member, end date) combination, keyed through the stored metadata.
func (r *repository) ExpiryNoticeExists(ctx context.Context, gymID, memberID int, endDate string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS(
			SELECT 1 FROM notifications
			WHERE gym_id = $1
			  AND type = $2
			  AND metadata->>'member_id' = $3
			  AND metadata->>'end_date' = $4
		)
	`, gymID, TypeSubscriptionExpiry, strconv.Itoa(memberID), endDate)
	return exists, err
}

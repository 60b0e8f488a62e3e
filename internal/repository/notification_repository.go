package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/dispatch-service/internal/domain"
)

// NotificationStore is the storage collaborator of the notification
// service. It owns both notification rows and recipient preferences;
// the service itself never touches persistence directly.
type NotificationStore interface {
	AddNotification(ctx context.Context, n *domain.Notification) error
	UpdateNotification(ctx context.Context, n *domain.Notification) error
	GetPending(ctx context.Context) ([]*domain.Notification, error)
	GetUserPreferences(ctx context.Context, recipient string) (*domain.UserPreference, error)
	UpdateUserPreferences(ctx context.Context, pref *domain.UserPreference) error
}

type notificationStore struct {
	pool *pgxpool.Pool
}

// NewNotificationStore returns a Postgres-backed implementation.
func NewNotificationStore(pool *pgxpool.Pool) NotificationStore {
	return &notificationStore{pool: pool}
}

func (r *notificationStore) AddNotification(ctx context.Context, n *domain.Notification) error {
	const query = `
        INSERT INTO notifications (id, type, recipient, shift_id, shift_date, shift_start, shift_end, shift_type, work_location, processed)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		n.ID,
		n.Type,
		n.Recipient,
		n.ShiftID,
		n.Shift.Date,
		n.Shift.Start,
		n.Shift.End,
		n.Shift.Type,
		n.Shift.WorkLocation,
		n.Processed,
	).Scan(&n.CreatedAt)
}

func (r *notificationStore) UpdateNotification(ctx context.Context, n *domain.Notification) error {
	const query = `
        UPDATE notifications SET processed=$1 WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, n.Processed, n.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *notificationStore) GetPending(ctx context.Context) ([]*domain.Notification, error) {
	const query = `
        SELECT id, type, recipient, shift_id, shift_date, shift_start, shift_end, shift_type, work_location, created_at, processed
        FROM notifications WHERE processed=false
        ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pending []*domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID,
			&n.Type,
			&n.Recipient,
			&n.ShiftID,
			&n.Shift.Date,
			&n.Shift.Start,
			&n.Shift.End,
			&n.Shift.Type,
			&n.Shift.WorkLocation,
			&n.CreatedAt,
			&n.Processed,
		); err != nil {
			return nil, err
		}
		pending = append(pending, &n)
	}
	return pending, rows.Err()
}

func (r *notificationStore) GetUserPreferences(ctx context.Context, recipient string) (*domain.UserPreference, error) {
	const query = `
        SELECT recipient, email_notifications, updated_at
        FROM user_preferences WHERE recipient=$1`

	var pref domain.UserPreference
	if err := r.pool.QueryRow(ctx, query, recipient).Scan(
		&pref.Recipient,
		&pref.EmailNotifications,
		&pref.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &pref, nil
}

func (r *notificationStore) UpdateUserPreferences(ctx context.Context, pref *domain.UserPreference) error {
	const query = `
        INSERT INTO user_preferences (recipient, email_notifications)
        VALUES ($1, $2)
        ON CONFLICT (recipient) DO UPDATE SET email_notifications=EXCLUDED.email_notifications, updated_at=NOW()
        RETURNING updated_at`

	return r.pool.QueryRow(ctx, query, pref.Recipient, pref.EmailNotifications).Scan(&pref.UpdatedAt)
}

package checkin

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Repository interface {
	Create(ctx context.Context, gymID int, memberID, qrCodeID *int, scanID *string, tags []string) (*CheckIn, error)
	ListByMember(ctx context.Context, memberID int, limit int) ([]CheckIn, error)
	ListByGym(ctx context.Context, gymID int, from, to time.Time) ([]CheckIn, error)
	CountSince(ctx context.Context, gymID int, since time.Time) (int, error)
	CheckInDates(ctx context.Context, memberID int, limit int) ([]time.Time, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const checkInColumns = `id, gym_id, member_id, qr_code_id, scan_id, check_in_time, check_out_time, duration_minutes, tags, metadata, created_at`

func (r *repository) Create(ctx context.Context, gymID int, memberID, qrCodeID *int, scanID *string, tags []string) (*CheckIn, error) {
	query := `
		INSERT INTO check_ins (gym_id, member_id, qr_code_id, scan_id, tags)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + checkInColumns

	var ci CheckIn
	err := r.db.GetContext(ctx, &ci, query, gymID, memberID, qrCodeID, scanID, pq.Array(tags))
	if err != nil {
		return nil, err
	}

	return &ci, nil
}

func (r *repository) ListByMember(ctx context.Context, memberID int, limit int) ([]CheckIn, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + checkInColumns + `
		FROM check_ins
		WHERE member_id = $1
		ORDER BY check_in_time DESC
		LIMIT $2
	`

	var list []CheckIn
	if err := r.db.SelectContext(ctx, &list, query, memberID, limit); err != nil {
		return nil, err
	}

	return list, nil
}

func (r *repository) ListByGym(ctx context.Context, gymID int, from, to time.Time) ([]CheckIn, error) {
	query := `
		SELECT ` + checkInColumns + `
		FROM check_ins
		WHERE gym_id = $1 AND check_in_time >= $2 AND check_in_time < $3
		ORDER BY check_in_time DESC
	`

	var list []CheckIn
	if err := r.db.SelectContext(ctx, &list, query, gymID, from, to); err != nil {
		return nil, err
	}

	return list, nil
}

func (r *repository) CountSince(ctx context.Context, gymID int, since time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM check_ins WHERE gym_id = $1 AND check_in_time >= $2`,
		gymID, since)
	return count, err
}

// CheckInDates returns distinct check-in days, newest first, for streak
// counting.
func (r *repository) CheckInDates(ctx context.Context, memberID int, limit int) ([]time.Time, error) {
	if limit <= 0 {
		limit = 365
	}

	var dates []time.Time
	err := r.db.SelectContext(ctx, &dates, `
		SELECT DISTINCT check_in_time::date AS day
		FROM check_ins
		WHERE member_id = $1
		ORDER BY day DESC
		LIMIT $2
	`, memberID, limit)
	if err != nil {
		return nil, err
	}

	return dates, nil
}

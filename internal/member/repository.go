package member

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, gymID int, name, email, phone, pinHash string, status MembershipStatus, start, end *time.Time) (*Member, error)
	GetByID(ctx context.Context, id int) (*Member, error)
	GetByGymAndPhone(ctx context.Context, gymID int, phone string) (*Member, error)
	ListByGym(ctx context.Context, gymID int) ([]Member, error)
	Update(ctx context.Context, id int, req UpdateMemberRequest) (*Member, error)
	SetPIN(ctx context.Context, id int, pinHash string) error
	ListBySubscriptionEndDate(ctx context.Context, gymID int, endDate time.Time) ([]Member, error)
	CountByStatus(ctx context.Context, gymID int) (map[string]int, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const memberColumns = `id, gym_id, name, email, phone, pin_hash, membership_status, subscription_start_date, subscription_end_date, metadata, created_at, updated_at`

func (r *repository) Create(ctx context.Context, gymID int, name, email, phone, pinHash string, status MembershipStatus, start, end *time.Time) (*Member, error) {
	if status == "" {
		status = StatusPending
	}

	query := `
		INSERT INTO members (gym_id, name, email, phone, pin_hash, membership_status, subscription_start_date, subscription_end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + memberColumns

	var m Member
	err := r.db.GetContext(ctx, &m, query, gymID, name, email, phone, pinHash, status, start, end)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`

	var m Member
	if err := r.db.GetContext(ctx, &m, query, id); err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) GetByGymAndPhone(ctx context.Context, gymID int, phone string) (*Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE gym_id = $1 AND phone = $2`

	var m Member
	if err := r.db.GetContext(ctx, &m, query, gymID, phone); err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) ListByGym(ctx context.Context, gymID int) ([]Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE gym_id = $1 ORDER BY created_at DESC`

	var members []Member
	if err := r.db.SelectContext(ctx, &members, query, gymID); err != nil {
		return nil, err
	}

	return members, nil
}

func (r *repository) Update(ctx context.Context, id int, req UpdateMemberRequest) (*Member, error) {
	query := `
		UPDATE members SET
			name = COALESCE($2, name),
			email = COALESCE($3, email),
			phone = COALESCE($4, phone),
			membership_status = COALESCE($5, membership_status),
			subscription_start_date = COALESCE($6::date, subscription_start_date),
			subscription_end_date = COALESCE($7::date, subscription_end_date),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + memberColumns

	var m Member
	err := r.db.GetContext(ctx, &m, query,
		id, req.Name, req.Email, req.Phone, req.MembershipStatus,
		req.SubscriptionStartDate, req.SubscriptionEndDate)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) SetPIN(ctx context.Context, id int, pinHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE members SET pin_hash = $2, updated_at = NOW() WHERE id = $1`,
		id, pinHash)
	return err
}

// ListBySubscriptionEndDate matches on the calendar date, not the full
// timestamp, so the expiry scanner can probe fixed day offsets.
func (r *repository) ListBySubscriptionEndDate(ctx context.Context, gymID int, endDate time.Time) ([]Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE gym_id = $1 AND subscription_end_date::date = $2::date
		ORDER BY id
	`

	var members []Member
	if err := r.db.SelectContext(ctx, &members, query, gymID, endDate); err != nil {
		return nil, err
	}

	return members, nil
}

func (r *repository) CountByStatus(ctx context.Context, gymID int) (map[string]int, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT membership_status, COUNT(*) AS count
		FROM members
		WHERE gym_id = $1
		GROUP BY membership_status
	`, gymID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

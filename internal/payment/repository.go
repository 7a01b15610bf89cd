package payment

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, gymID int, req CreatePaymentRequest, currency string, paidAt time.Time) (*Payment, error)
	ListByGym(ctx context.Context, gymID int, limit, offset int) ([]Payment, error)
	ListByMember(ctx context.Context, memberID int) ([]Payment, error)
	RevenueSince(ctx context.Context, gymID int, since time.Time) (*RevenueSummary, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const paymentColumns = `id, gym_id, member_id, amount_cents, currency, type, status, method, paid_at, created_at`

func (r *repository) Create(ctx context.Context, gymID int, req CreatePaymentRequest, currency string, paidAt time.Time) (*Payment, error) {
	status := req.Status
	if status == "" {
		status = "paid"
	}
	method := req.Method
	if method == "" {
		method = "cash"
	}

	query := `
		INSERT INTO payments (gym_id, member_id, amount_cents, currency, type, status, method, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + paymentColumns

	var p Payment
	err := r.db.GetContext(ctx, &p, query,
		gymID, req.MemberID, req.AmountCents, currency, req.Type, status, method, paidAt)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) ListByGym(ctx context.Context, gymID int, limit, offset int) ([]Payment, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE gym_id = $1
		ORDER BY paid_at DESC
		LIMIT $2 OFFSET $3
	`

	var list []Payment
	if err := r.db.SelectContext(ctx, &list, query, gymID, limit, offset); err != nil {
		return nil, err
	}

	return list, nil
}

func (r *repository) ListByMember(ctx context.Context, memberID int) ([]Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE member_id = $1
		ORDER BY paid_at DESC
	`

	var list []Payment
	if err := r.db.SelectContext(ctx, &list, query, memberID); err != nil {
		return nil, err
	}

	return list, nil
}

func (r *repository) RevenueSince(ctx context.Context, gymID int, since time.Time) (*RevenueSummary, error) {
	query := `
		SELECT COALESCE(SUM(amount_cents), 0) AS total_cents, COUNT(*) AS count
		FROM payments
		WHERE gym_id = $1 AND status = 'paid' AND paid_at >= $2
	`

	var summary RevenueSummary
	if err := r.db.GetContext(ctx, &summary, query, gymID, since); err != nil {
		return nil, err
	}

	return &summary, nil
}

package qrcode

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrCodeCollision = errors.New("qr code collision not resolved after retries")

const createRetries = 3

type Repository interface {
	Create(ctx context.Context, gymID int, qrType QRType, label string, redirectURL *string, expiresAt *time.Time, scanLimit *int) (*QRCode, error)
	GetByID(ctx context.Context, id int) (*QRCode, error)
	GetActiveByCode(ctx context.Context, code string) (*QRCode, error)
	ResolveCodeID(ctx context.Context, code string) (*int, error)
	ListByGym(ctx context.Context, gymID int) ([]QRCode, error)
	IncrementScans(ctx context.Context, id int) error
	Deactivate(ctx context.Context, id int) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const qrColumns = `id, gym_id, code, type, label, redirect_url, expires_at, scan_limit, total_scans, is_active, created_at, updated_at`

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// Create generates a fresh code per attempt and retries when the unique
// constraint on codes fires.
func (r *repository) Create(ctx context.Context, gymID int, qrType QRType, label string, redirectURL *string, expiresAt *time.Time, scanLimit *int) (*QRCode, error) {
	query := `
		INSERT INTO qr_codes (gym_id, code, type, label, redirect_url, expires_at, scan_limit)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + qrColumns

	var lastErr error
	for attempt := 0; attempt < createRetries; attempt++ {
		var qr QRCode
		err := r.db.GetContext(ctx, &qr, query,
			gymID, GenerateCode(), qrType, label, redirectURL, expiresAt, scanLimit)
		if err == nil {
			return &qr, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, errors.Join(ErrCodeCollision, lastErr)
}

func (r *repository) GetByID(ctx context.Context, id int) (*QRCode, error) {
	query := `SELECT ` + qrColumns + ` FROM qr_codes WHERE id = $1`

	var qr QRCode
	if err := r.db.GetContext(ctx, &qr, query, id); err != nil {
		return nil, err
	}

	return &qr, nil
}

func (r *repository) GetActiveByCode(ctx context.Context, code string) (*QRCode, error) {
	query := `SELECT ` + qrColumns + ` FROM qr_codes WHERE code = $1 AND is_active = true`

	var qr QRCode
	if err := r.db.GetContext(ctx, &qr, query, code); err != nil {
		return nil, err
	}

	return &qr, nil
}

// ResolveCodeID maps a code string to its row id; a missing code is not
// an error, callers store null.
func (r *repository) ResolveCodeID(ctx context.Context, code string) (*int, error) {
	var id int
	err := r.db.GetContext(ctx, &id, `SELECT id FROM qr_codes WHERE code = $1`, code)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (r *repository) ListByGym(ctx context.Context, gymID int) ([]QRCode, error) {
	query := `SELECT ` + qrColumns + ` FROM qr_codes WHERE gym_id = $1 ORDER BY created_at DESC`

	var codes []QRCode
	if err := r.db.SelectContext(ctx, &codes, query, gymID); err != nil {
		return nil, err
	}

	return codes, nil
}

// IncrementScans is a single atomic update; concurrent check-ins against
// the same code cannot lose increments.
func (r *repository) IncrementScans(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE qr_codes
		SET total_scans = total_scans + 1,
		    updated_at = NOW()
		WHERE id = $1
	`, id)
	return err
}

func (r *repository) Deactivate(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE qr_codes SET is_active = false, updated_at = NOW() WHERE id = $1`, id)
	return err
}

package gym

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, ownerID int, req CreateGymRequest) (*Gym, error)
	GetByID(ctx context.Context, id int) (*Gym, error)
	GetBySlug(ctx context.Context, slug string) (*Gym, error)
	ListByOwner(ctx context.Context, ownerID int) ([]Gym, error)
	ListActive(ctx context.Context) ([]Gym, error)
	Update(ctx context.Context, id int, req UpdateGymRequest) (*Gym, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const gymColumns = `id, owner_id, name, slug, email, phone, address, city, currency, is_active, settings, created_at, updated_at`

func (r *repository) Create(ctx context.Context, ownerID int, req CreateGymRequest) (*Gym, error) {
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	query := `
		INSERT INTO gyms (owner_id, name, slug, email, phone, address, city, currency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + gymColumns

	var gym Gym
	err := r.db.GetContext(ctx, &gym, query,
		ownerID, req.Name, strings.ToLower(req.Slug), req.Email, req.Phone, req.Address, req.City, currency)
	if err != nil {
		return nil, err
	}

	return &gym, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Gym, error) {
	query := `SELECT ` + gymColumns + ` FROM gyms WHERE id = $1`

	var gym Gym
	if err := r.db.GetContext(ctx, &gym, query, id); err != nil {
		return nil, err
	}

	return &gym, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Gym, error) {
	query := `SELECT ` + gymColumns + ` FROM gyms WHERE slug = $1`

	var gym Gym
	if err := r.db.GetContext(ctx, &gym, query, strings.ToLower(slug)); err != nil {
		return nil, err
	}

	return &gym, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID int) ([]Gym, error) {
	query := `SELECT ` + gymColumns + ` FROM gyms WHERE owner_id = $1 ORDER BY created_at DESC`

	var gyms []Gym
	if err := r.db.SelectContext(ctx, &gyms, query, ownerID); err != nil {
		return nil, err
	}

	return gyms, nil
}

func (r *repository) ListActive(ctx context.Context) ([]Gym, error) {
	query := `SELECT ` + gymColumns + ` FROM gyms WHERE is_active = true ORDER BY created_at DESC`

	var gyms []Gym
	if err := r.db.SelectContext(ctx, &gyms, query); err != nil {
		return nil, err
	}

	return gyms, nil
}

func (r *repository) Update(ctx context.Context, id int, req UpdateGymRequest) (*Gym, error) {
	query := `
		UPDATE gyms SET
			name = COALESCE($2, name),
			email = COALESCE($3, email),
			phone = COALESCE($4, phone),
			address = COALESCE($5, address),
			city = COALESCE($6, city),
			currency = COALESCE($7, currency),
			is_active = COALESCE($8, is_active),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + gymColumns

	var gym Gym
	err := r.db.GetContext(ctx, &gym, query,
		id, req.Name, req.Email, req.Phone, req.Address, req.City, req.Currency, req.IsActive)
	if err != nil {
		return nil, err
	}

	return &gym, nil
}

package gym

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

type Gym struct {
	ID        int            `db:"id" json:"id"`
	OwnerID   int            `db:"owner_id" json:"owner_id"`
	Name      string         `db:"name" json:"name"`
	Slug      string         `db:"slug" json:"slug"`
	Email     string         `db:"email" json:"email"`
	Phone     string         `db:"phone" json:"phone"`
	Address   string         `db:"address" json:"address"`
	City      string         `db:"city" json:"city"`
	Currency  string         `db:"currency" json:"currency"`
	IsActive  bool           `db:"is_active" json:"is_active"`
	Settings  types.JSONText `db:"settings" json:"settings,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

type CreateGymRequest struct {
	Name     string `json:"name" binding:"required"`
	Slug     string `json:"slug" binding:"required,min=3,max=60"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Currency string `json:"currency"`
}

type UpdateGymRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	Currency *string `json:"currency"`
	IsActive *bool   `json:"is_active"`
}

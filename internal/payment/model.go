package payment

import "time"

type Payment struct {
	ID          int       `db:"id" json:"id"`
	GymID       int       `db:"gym_id" json:"gym_id"`
	MemberID    int       `db:"member_id" json:"member_id"`
	AmountCents int64     `db:"amount_cents" json:"amount_cents"`
	Currency    string    `db:"currency" json:"currency"`
	Type        string    `db:"type" json:"type"`
	Status      string    `db:"status" json:"status"`
	Method      string    `db:"method" json:"method"`
	PaidAt      time.Time `db:"paid_at" json:"paid_at"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type CreatePaymentRequest struct {
	MemberID    int    `json:"member_id" binding:"required"`
	AmountCents int64  `json:"amount_cents" binding:"required,gt=0"`
	Currency    string `json:"currency"`
	Type        string `json:"type" binding:"required,oneof=membership renewal day_pass personal_training other"`
	Status      string `json:"status" binding:"omitempty,oneof=paid pending refunded"`
	Method      string `json:"method" binding:"omitempty,oneof=cash card transfer other"`
	PaidAt      string `json:"paid_at"`
}

type RevenueSummary struct {
	TotalCents int64 `db:"total_cents" json:"total_cents"`
	Count      int   `db:"count" json:"count"`
}

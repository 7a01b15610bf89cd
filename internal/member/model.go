package member

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

type MembershipStatus string

const (
	StatusActive    MembershipStatus = "active"
	StatusTrial     MembershipStatus = "trial"
	StatusExpired   MembershipStatus = "expired"
	StatusSuspended MembershipStatus = "suspended"
	StatusCancelled MembershipStatus = "cancelled"
	StatusPending   MembershipStatus = "pending"
)

type Member struct {
	ID                    int              `db:"id" json:"id"`
	GymID                 int              `db:"gym_id" json:"gym_id"`
	Name                  string           `db:"name" json:"name"`
	Email                 string           `db:"email" json:"email"`
	Phone                 string           `db:"phone" json:"phone"`
	PINHash               string           `db:"pin_hash" json:"-"`
	MembershipStatus      MembershipStatus `db:"membership_status" json:"membership_status"`
	SubscriptionStartDate *time.Time       `db:"subscription_start_date" json:"subscription_start_date,omitempty"`
	SubscriptionEndDate   *time.Time       `db:"subscription_end_date" json:"subscription_end_date,omitempty"`
	Metadata              types.JSONText   `db:"metadata" json:"metadata,omitempty"`
	CreatedAt             time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time        `db:"updated_at" json:"updated_at"`
}

type CreateMemberRequest struct {
	Name                  string `json:"name" binding:"required"`
	Email                 string `json:"email" binding:"omitempty,email"`
	Phone                 string `json:"phone" binding:"required"`
	PIN                   string `json:"pin" binding:"required,len=4,numeric"`
	MembershipStatus      string `json:"membership_status" binding:"omitempty,oneof=active trial expired suspended cancelled pending"`
	SubscriptionStartDate string `json:"subscription_start_date"`
	SubscriptionEndDate   string `json:"subscription_end_date"`
}

type UpdateMemberRequest struct {
	Name                  *string `json:"name"`
	Email                 *string `json:"email" binding:"omitempty,email"`
	Phone                 *string `json:"phone"`
	MembershipStatus      *string `json:"membership_status" binding:"omitempty,oneof=active trial expired suspended cancelled pending"`
	SubscriptionStartDate *string `json:"subscription_start_date"`
	SubscriptionEndDate   *string `json:"subscription_end_date"`
}

type PortalSignInRequest struct {
	GymSlug string `json:"gym_slug" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	PIN     string `json:"pin" binding:"required"`
}

type PortalSignInResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Member       Member `json:"member"`
}

package notification

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

const (
	TypeTrialCheckIn       = "trial_checkin"
	TypeInactiveCheckIn    = "inactive_checkin"
	TypeSubscriptionExpiry = "subscription_expiry"
)

type Notification struct {
	ID        int            `db:"id" json:"id"`
	GymID     int            `db:"gym_id" json:"gym_id"`
	UserID    int            `db:"user_id" json:"user_id"`
	Type      string         `db:"type" json:"type"`
	Title     string         `db:"title" json:"title"`
	Message   string         `db:"message" json:"message"`
	Metadata  types.JSONText `db:"metadata" json:"metadata,omitempty"`
	IsRead    bool           `db:"is_read" json:"is_read"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

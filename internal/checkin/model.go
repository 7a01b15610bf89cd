package checkin

import (
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

type CheckIn struct {
	ID           int            `db:"id" json:"id"`
	GymID        int            `db:"gym_id" json:"gym_id"`
	MemberID     *int           `db:"member_id" json:"member_id,omitempty"`
	QRCodeID     *int           `db:"qr_code_id" json:"qr_code_id,omitempty"`
	ScanID       *string        `db:"scan_id" json:"scan_id,omitempty"`
	CheckInTime  time.Time      `db:"check_in_time" json:"check_in_time"`
	CheckOutTime *time.Time     `db:"check_out_time" json:"check_out_time,omitempty"`
	Duration     *int           `db:"duration_minutes" json:"duration_minutes,omitempty"`
	Tags         pq.StringArray `db:"tags" json:"tags"`
	Metadata     types.JSONText `db:"metadata" json:"metadata,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

type RecordRequest struct {
	ScanID string `json:"scan_id"`
	QRCode string `json:"qr_code"`
}

// RecordResult is what the portal shows the member right after a
// successful check-in.
type RecordResult struct {
	CheckInID           int       `json:"check_in_id"`
	CheckInTime         time.Time `json:"check_in_time"`
	MemberName          string    `json:"member_name"`
	MembershipStatus    string    `json:"membership_status"`
	SubscriptionEndDate *string   `json:"subscription_end_date,omitempty"`
	SubscriptionWarning bool      `json:"subscription_warning"`
}

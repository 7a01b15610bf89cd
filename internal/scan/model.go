package scan

import "time"

// Scan is an immutable event row recorded once per visit to a QR code's
// public URL. It is never updated or deleted.
type Scan struct {
	ID          string    `db:"id" json:"id"`
	QRCodeID    int       `db:"qr_code_id" json:"qr_code_id"`
	GymID       int       `db:"gym_id" json:"gym_id"`
	DeviceType  string    `db:"device_type" json:"device_type"`
	Browser     string    `db:"browser" json:"browser"`
	OS          string    `db:"os" json:"os"`
	Referrer    string    `db:"referrer" json:"referrer"`
	UTMSource   string    `db:"utm_source" json:"utm_source"`
	UTMMedium   string    `db:"utm_medium" json:"utm_medium"`
	UTMCampaign string    `db:"utm_campaign" json:"utm_campaign"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type DeviceInfo struct {
	DeviceType string
	Browser    string
	OS         string
}

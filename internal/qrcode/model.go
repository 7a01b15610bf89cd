package qrcode

import "time"

type QRType string

const (
	TypeCheckIn   QRType = "check-in"
	TypeEquipment QRType = "equipment"
	TypeClass     QRType = "class"
	TypePromotion QRType = "promotion"
	TypeCustom    QRType = "custom"
)

type QRCode struct {
	ID          int        `db:"id" json:"id"`
	GymID       int        `db:"gym_id" json:"gym_id"`
	Code        string     `db:"code" json:"code"`
	Type        QRType     `db:"type" json:"type"`
	Label       string     `db:"label" json:"label"`
	RedirectURL *string    `db:"redirect_url" json:"redirect_url,omitempty"`
	ExpiresAt   *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	ScanLimit   *int       `db:"scan_limit" json:"scan_limit,omitempty"`
	TotalScans  int        `db:"total_scans" json:"total_scans"`
	IsActive    bool       `db:"is_active" json:"is_active"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// ScanURL is the public URL encoded into the printed QR image.
func (q *QRCode) ScanURL(baseURL string) string {
	return baseURL + "/s/" + q.Code
}

type CreateQRCodeRequest struct {
	Type        string  `json:"type" binding:"required,oneof=check-in equipment class promotion custom"`
	Label       string  `json:"label"`
	RedirectURL *string `json:"redirect_url" binding:"omitempty,url"`
	ExpiresAt   *string `json:"expires_at"`
	ScanLimit   *int    `json:"scan_limit" binding:"omitempty,min=1"`
}

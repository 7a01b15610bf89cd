package scan

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, qrCodeID, gymID int, device DeviceInfo, referrer, utmSource, utmMedium, utmCampaign string) (*Scan, error)
	GetByID(ctx context.Context, id string) (*Scan, error)
	CountByDevice(ctx context.Context, gymID int) (map[string]int, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, qrCodeID, gymID int, device DeviceInfo, referrer, utmSource, utmMedium, utmCampaign string) (*Scan, error) {
	query := `
		INSERT INTO scans (id, qr_code_id, gym_id, device_type, browser, os, referrer, utm_source, utm_medium, utm_campaign)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, qr_code_id, gym_id, device_type, browser, os, referrer, utm_source, utm_medium, utm_campaign, created_at
	`

	var s Scan
	err := r.db.GetContext(ctx, &s, query,
		uuid.NewString(), qrCodeID, gymID,
		device.DeviceType, device.Browser, device.OS,
		referrer, utmSource, utmMedium, utmCampaign)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Scan, error) {
	query := `
		SELECT id, qr_code_id, gym_id, device_type, browser, os, referrer, utm_source, utm_medium, utm_campaign, created_at
		FROM scans
		WHERE id = $1
	`

	var s Scan
	if err := r.db.GetContext(ctx, &s, query, id); err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) CountByDevice(ctx context.Context, gymID int) (map[string]int, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT device_type, COUNT(*) AS count
		FROM scans
		WHERE gym_id = $1
		GROUP BY device_type
	`, gymID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var device string
		var count int
		if err := rows.Scan(&device, &count); err != nil {
			return nil, err
		}
		counts[device] = count
	}

	return counts, rows.Err()
}

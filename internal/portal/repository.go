package portal

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	SaveWorkoutFocus(ctx context.Context, memberID int, day time.Time, focus, notes string) (*WorkoutFocus, error)
	GetWorkoutFocus(ctx context.Context, memberID int, day time.Time) (*WorkoutFocus, error)
	CreateReview(ctx context.Context, gymID, memberID, rating int, comment string) (*Review, error)
	ListReviews(ctx context.Context, gymID, limit, offset int) ([]Review, error)
	CreateReferral(ctx context.Context, gymID, memberID int, friendName, friendPhone string) (*Referral, error)
	ListReferrals(ctx context.Context, memberID int) ([]Referral, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SaveWorkoutFocus(ctx context.Context, memberID int, day time.Time, focus, notes string) (*WorkoutFocus, error) {
	query := `
		INSERT INTO workout_focus (member_id, day, focus, notes)
		VALUES ($1, $2::date, $3, $4)
		ON CONFLICT (member_id, day)
		DO UPDATE SET focus = EXCLUDED.focus, notes = EXCLUDED.notes, updated_at = NOW()
		RETURNING id, member_id, day, focus, notes, created_at, updated_at`

	var wf WorkoutFocus
	err := r.db.GetContext(ctx, &wf, query, memberID, day.Format("2006-01-02"), focus, notes)
	if err != nil {
		return nil, err
	}
	return &wf, nil
}

func (r *repository) GetWorkoutFocus(ctx context.Context, memberID int, day time.Time) (*WorkoutFocus, error) {
	query := `
		SELECT id, member_id, day, focus, notes, created_at, updated_at
		FROM workout_focus
		WHERE member_id = $1 AND day = $2::date`

	var wf WorkoutFocus
	err := r.db.GetContext(ctx, &wf, query, memberID, day.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	return &wf, nil
}

func (r *repository) CreateReview(ctx context.Context, gymID, memberID, rating int, comment string) (*Review, error) {
	query := `
		INSERT INTO reviews (gym_id, member_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, gym_id, member_id, rating, comment, created_at`

	var rev Review
	err := r.db.GetContext(ctx, &rev, query, gymID, memberID, rating, comment)
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *repository) ListReviews(ctx context.Context, gymID, limit, offset int) ([]Review, error) {
	query := `
		SELECT id, gym_id, member_id, rating, comment, created_at
		FROM reviews
		WHERE gym_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	reviews := []Review{}
	err := r.db.SelectContext(ctx, &reviews, query, gymID, limit, offset)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *repository) CreateReferral(ctx context.Context, gymID, memberID int, friendName, friendPhone string) (*Referral, error) {
	query := `
		INSERT INTO referrals (gym_id, member_id, code, friend_name, friend_phone, status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
		RETURNING id, gym_id, member_id, code, friend_name, friend_phone, status, created_at`

	var ref Referral
	err := r.db.GetContext(ctx, &ref, query, gymID, memberID, referralCode(), friendName, friendPhone)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func (r *repository) ListReferrals(ctx context.Context, memberID int) ([]Referral, error) {
	query := `
		SELECT id, gym_id, member_id, code, friend_name, friend_phone, status, created_at
		FROM referrals
		WHERE member_id = $1
		ORDER BY created_at DESC`

	refs := []Referral{}
	err := r.db.SelectContext(ctx, &refs, query, memberID)
	if err != nil {
		return nil, err
	}
	return refs, nil
}

const referralAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func referralCode() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		for i := range buf {
			buf[i] = referralAlphabet[0]
		}
		return "REF-" + string(buf)
	}
	for i, b := range buf {
		buf[i] = referralAlphabet[int(b)%len(referralAlphabet)]
	}
	return "REF-" + string(buf)
}

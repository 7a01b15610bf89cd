package portal

import (
	"context"
	"database/sql"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	return repo, mock, func() { sqlxDB.Close() }
}

func TestSaveWorkoutFocus(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "member_id", "day", "focus", "notes", "created_at", "updated_at"}).
		AddRow(1, 5, day, "legs", "squats heavy", now, now)

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (member_id, day)")).
		WithArgs(5, "2026-08-31", "legs", "squats heavy").
		WillReturnRows(rows)

	wf, err := repo.SaveWorkoutFocus(context.Background(), 5, day, "legs", "squats heavy")
	require.NoError(t, err)
	assert.Equal(t, "legs", wf.Focus)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetWorkoutFocus_NotFound(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM workout_focus")).
		WithArgs(5, "2026-08-31").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetWorkoutFocus(context.Background(), 5, day)
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReview(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "gym_id", "member_id", "rating", "comment", "created_at"}).
		AddRow(1, 1, 5, 4, "good vibes", now)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reviews (gym_id, member_id, rating, comment)")).
		WithArgs(1, 5, 4, "good vibes").
		WillReturnRows(rows)

	rev, err := repo.CreateReview(context.Background(), 1, 5, 4, "good vibes")
	require.NoError(t, err)
	assert.Equal(t, 4, rev.Rating)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListReviews(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "gym_id", "member_id", "rating", "comment", "created_at"}).
		AddRow(2, 1, 5, 5, "", now).
		AddRow(1, 1, 6, 3, "meh", now.Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $2 OFFSET $3")).
		WithArgs(1, 20, 0).
		WillReturnRows(rows)

	reviews, err := repo.ListReviews(context.Background(), 1, 20, 0)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, 5, reviews[0].Rating)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReferral(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "gym_id", "member_id", "code", "friend_name", "friend_phone", "status", "created_at"}).
		AddRow(1, 1, 5, "REF-ABCD2345", "Sam", "+15550002222", "pending", now)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO referrals (gym_id, member_id, code, friend_name, friend_phone, status)")).
		WithArgs(1, 5, sqlmock.AnyArg(), "Sam", "+15550002222").
		WillReturnRows(rows)

	ref, err := repo.CreateReferral(context.Background(), 1, 5, "Sam", "+15550002222")
	require.NoError(t, err)
	assert.Equal(t, "pending", ref.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReferralCodeShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code := referralCode()
		assert.True(t, strings.HasPrefix(code, "REF-"))
		assert.Len(t, code, 12)
		for _, c := range code[4:] {
			assert.Contains(t, referralAlphabet, string(c))
		}
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1)
}

package payment

import (
	"context"
	"regexp"
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

func paymentRows(id int, amountCents int64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "gym_id", "member_id", "amount_cents", "currency",
		"type", "status", "method", "paid_at", "created_at",
	}).AddRow(id, 1, 5, amountCents, "USD", "membership", "paid", "cash", now, now)
}

func TestCreatePayment(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	paidAt := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments (gym_id, member_id, amount_cents, currency, type, status, method, paid_at)")).
		WithArgs(1, 5, int64(4999), "USD", "membership", "paid", "cash", paidAt).
		WillReturnRows(paymentRows(10, 4999))

	p, err := repo.Create(context.Background(), 1, CreatePaymentRequest{
		MemberID:    5,
		AmountCents: 4999,
		Type:        "membership",
	}, "USD", paidAt)
	require.NoError(t, err)
	assert.Equal(t, int64(4999), p.AmountCents)
	assert.Equal(t, "paid", p.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePayment_DefaultsApplied(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	paidAt := time.Now()

	// empty status and method fall back to paid/cash before hitting the db
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments")).
		WithArgs(1, 5, int64(1500), "USD", "day_pass", "paid", "cash", paidAt).
		WillReturnRows(paymentRows(11, 1500))

	_, err := repo.Create(context.Background(), 1, CreatePaymentRequest{
		MemberID:    5,
		AmountCents: 1500,
		Type:        "day_pass",
	}, "USD", paidAt)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByGym_DefaultLimit(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE gym_id = $1")).
		WithArgs(1, 50, 0).
		WillReturnRows(paymentRows(10, 4999))

	list, err := repo.ListByGym(context.Background(), 1, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRevenueSince(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	since := time.Now().AddDate(0, -1, 0)

	rows := sqlmock.NewRows([]string{"total_cents", "count"}).AddRow(249950, 50)

	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(SUM(amount_cents), 0)")).
		WithArgs(1, since).
		WillReturnRows(rows)

	summary, err := repo.RevenueSince(context.Background(), 1, since)
	require.NoError(t, err)
	assert.Equal(t, int64(249950), summary.TotalCents)
	assert.Equal(t, 50, summary.Count)
	require.NoError(t, mock.ExpectationsWereMet())
}

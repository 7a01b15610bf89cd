package stats

import (
	"context"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitgate/internal/checkin"
	"fitgate/internal/gym"
	"fitgate/internal/logger"
	"fitgate/internal/member"
	"fitgate/internal/notification"
	"fitgate/internal/payment"
	"fitgate/internal/scan"
	"fitgate/internal/user"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock
}

// LoadDashboard issues its reads in a fixed order; the expectations below
// follow that order on the primary connection.
func expectDashboardReads(mock sqlmock.Sqlmock, gymID int) {
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY membership_status")).
		WithArgs(gymID).
		WillReturnRows(sqlmock.NewRows([]string{"membership_status", "count"}).
			AddRow("active", 12).
			AddRow("trial", 3))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM check_ins")).
		WithArgs(gymID, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM check_ins")).
		WithArgs(gymID, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(18))

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY device_type")).
		WithArgs(gymID).
		WillReturnRows(sqlmock.NewRows([]string{"device_type", "count"}).
			AddRow("mobile", 30).
			AddRow("desktop", 5))

	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(SUM(amount_cents), 0)")).
		WithArgs(gymID, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"total_cents", "count"}).AddRow(99900, 20))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM notifications WHERE gym_id = $1 AND is_read = false")).
		WithArgs(gymID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
}

func emptyMemberRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "gym_id", "name", "email", "phone", "pin_hash",
		"membership_status", "subscription_start_date", "subscription_end_date",
		"metadata", "created_at", "updated_at",
	})
}

func TestLoadDashboard(t *testing.T) {
	readDB, readMock := newMockDB(t)
	defer readDB.Close()

	// The expiry probe runs on its own connection so its queries don't
	// interleave with the dashboard reads.
	scanDB, scanMock := newMockDB(t)
	defer scanDB.Close()

	rdb, _ := redismock.NewClientMock()
	notifier := notification.NewNotifierWithClient(rdb, notification.NewRepository(scanDB))
	expiry := notification.NewExpiryScanner(
		member.NewRepository(scanDB),
		notification.NewRepository(scanDB),
		notifier,
		gym.NewRepository(scanDB),
		user.NewRepository(scanDB),
		nil,
	)

	svc := NewService(
		member.NewRepository(readDB),
		checkin.NewRepository(readDB),
		scan.NewRepository(readDB),
		payment.NewRepository(readDB),
		notification.NewRepository(readDB),
		expiry,
	)

	expectDashboardReads(readMock, 1)

	now := time.Now()
	scanMock.ExpectQuery(regexp.QuoteMeta("FROM gyms WHERE id = $1")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "owner_id", "name", "slug", "email", "phone", "address",
			"city", "currency", "is_active", "settings", "created_at", "updated_at",
		}).AddRow(1, 7, "Iron Temple", "iron-temple", "", "", "", "", "USD", true, []byte("{}"), now, now))
	scanMock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at"}).
			AddRow(7, "Owner", "owner@example.com", "$2a$10$hash", "owner", now))
	for i := 0; i < 4; i++ {
		scanMock.ExpectQuery(regexp.QuoteMeta("subscription_end_date::date = $2::date")).
			WithArgs(1, sqlmock.AnyArg()).
			WillReturnRows(emptyMemberRows())
	}

	d, err := svc.LoadDashboard(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 12, d.MembersByStatus["active"])
	assert.Equal(t, 3, d.MembersByStatus["trial"])
	assert.Equal(t, 4, d.CheckInsToday)
	assert.Equal(t, 18, d.CheckInsWeek)
	assert.Equal(t, 30, d.ScansByDevice["mobile"])
	assert.Equal(t, 5, d.ScansByDevice["desktop"])
	assert.Equal(t, int64(99900), d.RevenueMonth.TotalCents)
	assert.Equal(t, 7, d.UnreadNotices)

	require.NoError(t, readMock.ExpectationsWereMet())

	// The response returned before the probe necessarily finished; it
	// runs in the background and must still walk all four offsets.
	require.Eventually(t, func() bool {
		return scanMock.ExpectationsWereMet() == nil
	}, 2*time.Second, 20*time.Millisecond)
}

func TestLoadDashboard_WithoutScanner(t *testing.T) {
	readDB, readMock := newMockDB(t)
	defer readDB.Close()

	svc := NewService(
		member.NewRepository(readDB),
		checkin.NewRepository(readDB),
		scan.NewRepository(readDB),
		payment.NewRepository(readDB),
		notification.NewRepository(readDB),
		nil,
	)

	expectDashboardReads(readMock, 1)

	d, err := svc.LoadDashboard(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, d.CheckInsToday)
	require.NoError(t, readMock.ExpectationsWereMet())
}

func TestLoadDashboard_ReadFailure(t *testing.T) {
	readDB, readMock := newMockDB(t)
	defer readDB.Close()

	svc := NewService(
		member.NewRepository(readDB),
		checkin.NewRepository(readDB),
		scan.NewRepository(readDB),
		payment.NewRepository(readDB),
		notification.NewRepository(readDB),
		nil,
	)

	readMock.ExpectQuery(regexp.QuoteMeta("GROUP BY membership_status")).
		WithArgs(1).
		WillReturnError(assert.AnError)

	_, err := svc.LoadDashboard(context.Background(), 1)
	require.Error(t, err)
}

package scan

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitgate/internal/gym"
	"fitgate/internal/logger"
	"fitgate/internal/qrcode"
)

const baseURL = "https://app.example.com"

func TestMain(m *testing.M) {
	logger.Init()
	gin.SetMode(gin.TestMode)

	code := m.Run()
	os.Exit(code)
}

func setupScanRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	handler := NewHandler(
		NewRepository(sqlxDB),
		qrcode.NewRepository(sqlxDB),
		gym.NewRepository(sqlxDB),
		baseURL,
	)

	router := gin.New()
	router.GET("/s/:code", handler.HandleScan)

	return router, mock, func() { sqlxDB.Close() }
}

func qrCodeRows(id int, code, qrType string, redirectURL interface{}, expiresAt interface{}, scanLimit interface{}, totalScans int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "gym_id", "code", "type", "label", "redirect_url",
		"expires_at", "scan_limit", "total_scans", "is_active",
		"created_at", "updated_at",
	}).AddRow(id, 1, code, qrType, "", redirectURL, expiresAt, scanLimit, totalScans, true, now, now)
}

func gymRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "owner_id", "name", "slug", "email", "phone", "address",
		"city", "currency", "is_active", "settings", "created_at", "updated_at",
	}).AddRow(1, 7, "Iron Temple", "iron-temple", "owner@example.com", "", "", "", "USD", true, []byte("{}"), now, now)
}

func scanRows(id string, qrCodeID int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "qr_code_id", "gym_id", "device_type", "browser", "os",
		"referrer", "utm_source", "utm_medium", "utm_campaign", "created_at",
	}).AddRow(id, qrCodeID, 1, "mobile", "Safari", "iOS", "", "", "", "", time.Now())
}

func doScan(router *gin.Engine, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", target, nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 Mobile/15E148 Safari/604.1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleScan_MalformedCode(t *testing.T) {
	router, mock, close := setupScanRouter(t)
	defer close()

	// no query expected: validation rejects before the DB is touched
	w := doScan(router, "/s/not-a-real-code")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, baseURL+"/qr/not-found", w.Header().Get("Location"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleScan_UnknownCode(t *testing.T) {
	router, mock, close := setupScanRouter(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM qr_codes WHERE code = $1 AND is_active = true")).
		WithArgs("GYM-ABC123-XY9Z").
		WillReturnError(sql.ErrNoRows)

	w := doScan(router, "/s/GYM-ABC123-XY9Z")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, baseURL+"/qr/not-found", w.Header().Get("Location"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleScan_Expired(t *testing.T) {
	router, mock, close := setupScanRouter(t)
	defer close()

	past := time.Now().Add(-time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta("FROM qr_codes WHERE code = $1 AND is_active = true")).
		WithArgs("GYM-ABC123-XY9Z").
		WillReturnRows(qrCodeRows(10, "GYM-ABC123-XY9Z", "check-in", nil, past, nil, 0))

	w := doScan(router, "/s/GYM-ABC123-XY9Z")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, baseURL+"/qr/expired", w.Header().Get("Location"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleScan_LimitReached(t *testing.T) {
	router, mock, close := setupScanRouter(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM qr_codes WHERE code = $1 AND is_active = true")).
		WithArgs("GYM-ABC123-XY9Z").
		WillReturnRows(qrCodeRows(10, "GYM-ABC123-XY9Z", "check-in", nil, nil, 5, 5))

	w := doScan(router, "/s/GYM-ABC123-XY9Z")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, baseURL+"/qr/limit-reached", w.Header().Get("Location"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleScan_CheckInRedirect(t *testing.T) {
	router, mock, close := setupScanRouter(t)
	defer close()

	scanID := "3f1d2f6a-0000-4000-8000-000000000001"

	mock.ExpectQuery(regexp.QuoteMeta("FROM qr_codes WHERE code = $1 AND is_active = true")).
		WithArgs("GYM-ABC123-XY9Z").
		WillReturnRows(qrCodeRows(10, "GYM-ABC123-XY9Z", "check-in", nil, nil, nil, 2))
	mock.ExpectQuery(regexp.QuoteMeta("FROM gyms WHERE id = $1")).
		WithArgs(1).
		WillReturnRows(gymRows())
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO scans (id, qr_code_id, gym_id, device_type, browser, os, referrer, utm_source, utm_medium, utm_campaign)")).
		WithArgs(sqlmock.AnyArg(), 10, 1, "mobile", sqlmock.AnyArg(), sqlmock.AnyArg(), "", "", "", "").
		WillReturnRows(scanRows(scanID, 10))

	w := doScan(router, "/s/GYM-ABC123-XY9Z")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t,
		baseURL+"/iron-temple/portal/sign-in?checkin=true&qr_code=GYM-ABC123-XY9Z&scan_id="+scanID,
		w.Header().Get("Location"))
	assert.Equal(t, scanID, w.Header().Get("X-Scan-ID"))
	assert.Equal(t, "GYM-ABC123-XY9Z", w.Header().Get("X-QR-Code"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleScan_CustomRedirectWins(t *testing.T) {
	router, mock, close := setupScanRouter(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM qr_codes WHERE code = $1 AND is_active = true")).
		WithArgs("GYM-ABC123-XY9Z").
		WillReturnRows(qrCodeRows(10, "GYM-ABC123-XY9Z", "check-in", "https://promo.example.com/offer", nil, nil, 0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM gyms WHERE id = $1")).
		WithArgs(1).
		WillReturnRows(gymRows())
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO scans")).
		WithArgs(sqlmock.AnyArg(), 10, 1, "mobile", sqlmock.AnyArg(), sqlmock.AnyArg(), "", "", "", "").
		WillReturnRows(scanRows("3f1d2f6a-0000-4000-8000-000000000002", 10))

	w := doScan(router, "/s/GYM-ABC123-XY9Z")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://promo.example.com/offer", w.Header().Get("Location"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleScan_LandingWithUTM(t *testing.T) {
	router, mock, close := setupScanRouter(t)
	defer close()

	scanID := "3f1d2f6a-0000-4000-8000-000000000003"

	mock.ExpectQuery(regexp.QuoteMeta("FROM qr_codes WHERE code = $1 AND is_active = true")).
		WithArgs("GYM-ABC123-XY9Z").
		WillReturnRows(qrCodeRows(10, "GYM-ABC123-XY9Z", "marketing", nil, nil, nil, 0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM gyms WHERE id = $1")).
		WithArgs(1).
		WillReturnRows(gymRows())
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO scans")).
		WithArgs(sqlmock.AnyArg(), 10, 1, "mobile", sqlmock.AnyArg(), sqlmock.AnyArg(), "", "flyer", "print", "summer").
		WillReturnRows(scanRows(scanID, 10))

	w := doScan(router, "/s/GYM-ABC123-XY9Z?utm_source=flyer&utm_medium=print&utm_campaign=summer")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t,
		baseURL+"/iron-temple?qr_code=GYM-ABC123-XY9Z&scan_id="+scanID+"&utm_campaign=summer&utm_medium=print&utm_source=flyer",
		w.Header().Get("Location"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleScan_InsertFailureStillRedirects(t *testing.T) {
	router, mock, close := setupScanRouter(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM qr_codes WHERE code = $1 AND is_active = true")).
		WithArgs("GYM-ABC123-XY9Z").
		WillReturnRows(qrCodeRows(10, "GYM-ABC123-XY9Z", "check-in", nil, nil, nil, 0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM gyms WHERE id = $1")).
		WithArgs(1).
		WillReturnRows(gymRows())
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO scans")).
		WithArgs(sqlmock.AnyArg(), 10, 1, "mobile", sqlmock.AnyArg(), sqlmock.AnyArg(), "", "", "", "").
		WillReturnError(sql.ErrConnDone)

	w := doScan(router, "/s/GYM-ABC123-XY9Z")

	// redirect still happens, just without a scan reference
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t,
		baseURL+"/iron-temple/portal/sign-in?checkin=true&qr_code=GYM-ABC123-XY9Z",
		w.Header().Get("Location"))
	assert.Empty(t, w.Header().Get("X-Scan-ID"))
	require.NoError(t, mock.ExpectationsWereMet())
}

package scan

import (
	"net/http"
	"net/url"
	"time"

	"fitgate/internal/gym"
	"fitgate/internal/logger"
	"fitgate/internal/metrics"
	"fitgate/internal/qrcode"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo    Repository
	qrRepo  qrcode.Repository
	gymRepo gym.Repository
	baseURL string
}

func NewHandler(repo Repository, qrRepo qrcode.Repository, gymRepo gym.Repository, baseURL string) *Handler {
	return &Handler{
		repo:    repo,
		qrRepo:  qrRepo,
		gymRepo: gymRepo,
		baseURL: baseURL,
	}
}

func (h *Handler) page(name string) string {
	return h.baseURL + "/qr/" + name
}

// HandleScan godoc
// @Summary      Resolve a scanned QR code
// @Description  Records a scan event and redirects based on the QR type.
// @Tags         scan
// @Param        code path string true "Opaque scan code"
// @Param        utm_source query string false "UTM source"
// @Param        utm_medium query string false "UTM medium"
// @Param        utm_campaign query string false "UTM campaign"
// @Success      302 {string} string "redirect"
// @Router       /s/{code} [get]
func (h *Handler) HandleScan(c *gin.Context) {
	// The scanner is a person holding a phone at the gym door. Whatever
	// goes wrong, they get a redirect to a friendly page, never an error
	// body.
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("scan handler panic", "panic", rec)
			metrics.RecordScan("error")
			c.Redirect(http.StatusFound, h.page("error"))
		}
	}()

	ctx := c.Request.Context()
	code := c.Param("code")

	if !qrcode.IsValidCode(code) {
		metrics.RecordScan("not_found")
		c.Redirect(http.StatusFound, h.page("not-found"))
		return
	}

	qr, err := h.qrRepo.GetActiveByCode(ctx, code)
	if err != nil {
		metrics.RecordScan("not_found")
		c.Redirect(http.StatusFound, h.page("not-found"))
		return
	}

	if qr.ExpiresAt != nil && qr.ExpiresAt.Before(time.Now()) {
		metrics.RecordScan("expired")
		c.Redirect(http.StatusFound, h.page("expired"))
		return
	}

	if qr.ScanLimit != nil && qr.TotalScans >= *qr.ScanLimit {
		metrics.RecordScan("limit_reached")
		c.Redirect(http.StatusFound, h.page("limit-reached"))
		return
	}

	g, err := h.gymRepo.GetByID(ctx, qr.GymID)
	if err != nil {
		logger.Error("scan: gym lookup failed", "gym_id", qr.GymID, "error", err)
		metrics.RecordScan("error")
		c.Redirect(http.StatusFound, h.page("error"))
		return
	}

	device := ParseUserAgent(c.Request.UserAgent())
	utmSource := c.Query("utm_source")
	utmMedium := c.Query("utm_medium")
	utmCampaign := c.Query("utm_campaign")

	// Scan recording is fire-and-forget relative to the redirect; a
	// failed insert costs an analytics row, not the user's check-in.
	scanID := ""
	s, err := h.repo.Create(ctx, qr.ID, qr.GymID, device, c.Request.Referer(), utmSource, utmMedium, utmCampaign)
	if err != nil {
		logger.Error("scan: failed to record scan", "code", code, "error", err)
	} else {
		scanID = s.ID
		c.Header("X-Scan-ID", s.ID)
		c.Header("X-QR-Code", qr.Code)
	}

	metrics.RecordScan("ok")
	c.Redirect(http.StatusFound, h.redirectTarget(qr, g, scanID, utmSource, utmMedium, utmCampaign))
}

// redirectTarget applies the precedence: custom URL, then check-in
// sign-in, then the gym landing page with UTM passthrough.
func (h *Handler) redirectTarget(qr *qrcode.QRCode, g *gym.Gym, scanID, utmSource, utmMedium, utmCampaign string) string {
	if qr.RedirectURL != nil && *qr.RedirectURL != "" {
		return *qr.RedirectURL
	}

	if qr.Type == qrcode.TypeCheckIn {
		q := url.Values{}
		if scanID != "" {
			q.Set("scan_id", scanID)
		}
		q.Set("qr_code", qr.Code)
		q.Set("checkin", "true")
		return h.baseURL + "/" + g.Slug + "/portal/sign-in?" + q.Encode()
	}

	q := url.Values{}
	if scanID != "" {
		q.Set("scan_id", scanID)
	}
	q.Set("qr_code", qr.Code)
	if utmSource != "" {
		q.Set("utm_source", utmSource)
	}
	if utmMedium != "" {
		q.Set("utm_medium", utmMedium)
	}
	if utmCampaign != "" {
		q.Set("utm_campaign", utmCampaign)
	}
	return h.baseURL + "/" + g.Slug + "?" + q.Encode()
}

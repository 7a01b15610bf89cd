package qrcode

import (
	"net/http"
	"strconv"
	"time"

	"fitgate/internal/api"
	"fitgate/internal/auth"
	"fitgate/internal/gym"

	"github.com/gin-gonic/gin"
	qr "github.com/skip2/go-qrcode"
)

type Handler struct {
	repo       Repository
	gymService gym.Service
	baseURL    string
}

func NewHandler(repo Repository, gymService gym.Service, baseURL string) *Handler {
	return &Handler{
		repo:       repo,
		gymService: gymService,
		baseURL:    baseURL,
	}
}

// @Summary      Create a QR code
// @Tags         qrcodes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path int true "Gym ID"
// @Param        request body qrcode.CreateQRCodeRequest true "QR code payload"
// @Success      201 {object} api.Result
// @Router       /owner/gyms/{gymID}/qr-codes [post]
func (h *Handler) CreateQRCode(c *gin.Context) {
	ownerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.Fail("User not authenticated"))
		return
	}

	gymID, err := strconv.Atoi(c.Param("gymID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("Invalid gym ID"))
		return
	}

	var req CreateQRCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details := api.BindingErrors(err); details != nil {
			api.RespondWithValidationErrors(c, details)
			return
		}
		c.JSON(http.StatusBadRequest, api.Fail(err.Error()))
		return
	}

	ctx := c.Request.Context()
	if _, err := h.gymService.GetOwnedGym(ctx, ownerID, gymID); err != nil {
		c.JSON(http.StatusNotFound, api.Fail("Gym not found"))
		return
	}

	var expiresAt *time.Time
	if req.ExpiresAt != nil && *req.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, *req.ExpiresAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.Fail("invalid expires_at, use RFC3339"))
			return
		}
		expiresAt = &t
	}

	code, err := h.repo.Create(ctx, gymID, QRType(req.Type), req.Label, req.RedirectURL, expiresAt, req.ScanLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Fail("Failed to create QR code"))
		return
	}

	c.JSON(http.StatusCreated, api.OK(gin.H{
		"qr_code":  code,
		"scan_url": code.ScanURL(h.baseURL),
	}))
}

// @Summary      List QR codes of a gym
// @Tags         qrcodes
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path int true "Gym ID"
// @Success      200 {array} qrcode.QRCode
// @Router       /owner/gyms/{gymID}/qr-codes [get]
func (h *Handler) ListQRCodes(c *gin.Context) {
	ownerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	gymID, err := strconv.Atoi(c.Param("gymID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid gym ID"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.gymService.GetOwnedGym(ctx, ownerID, gymID); err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Gym not found"})
		return
	}

	codes, err := h.repo.ListByGym(ctx, gymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch QR codes"})
		return
	}

	c.JSON(http.StatusOK, codes)
}

// @Summary      Deactivate a QR code
// @Tags         qrcodes
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path int true "Gym ID"
// @Param        qrID path int true "QR code ID"
// @Success      200 {object} api.Result
// @Router       /owner/gyms/{gymID}/qr-codes/{qrID} [delete]
func (h *Handler) DeactivateQRCode(c *gin.Context) {
	ownerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.Fail("User not authenticated"))
		return
	}

	gymID, err := strconv.Atoi(c.Param("gymID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("Invalid gym ID"))
		return
	}

	qrID, err := strconv.Atoi(c.Param("qrID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("Invalid QR code ID"))
		return
	}

	ctx := c.Request.Context()
	if _, err := h.gymService.GetOwnedGym(ctx, ownerID, gymID); err != nil {
		c.JSON(http.StatusNotFound, api.Fail("Gym not found"))
		return
	}

	code, err := h.repo.GetByID(ctx, qrID)
	if err != nil || code.GymID != gymID {
		c.JSON(http.StatusNotFound, api.Fail("QR code not found"))
		return
	}

	if err := h.repo.Deactivate(ctx, qrID); err != nil {
		c.JSON(http.StatusInternalServerError, api.Fail("Failed to deactivate QR code"))
		return
	}

	c.JSON(http.StatusOK, api.OK(gin.H{"deactivated": true}))
}

// @Summary      QR code PNG image
// @Description  Renders the printable QR image for a code.
// @Tags         qrcodes
// @Security     BearerAuth
// @Produce      image/png
// @Param        gymID path int true "Gym ID"
// @Param        qrID path int true "QR code ID"
// @Success      200 {string} binary
// @Router       /owner/gyms/{gymID}/qr-codes/{qrID}/image [get]
func (h *Handler) QRCodeImage(c *gin.Context) {
	ownerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	gymID, err := strconv.Atoi(c.Param("gymID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid gym ID"})
		return
	}

	qrID, err := strconv.Atoi(c.Param("qrID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid QR code ID"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.gymService.GetOwnedGym(ctx, ownerID, gymID); err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Gym not found"})
		return
	}

	code, err := h.repo.GetByID(ctx, qrID)
	if err != nil || code.GymID != gymID {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "QR code not found"})
		return
	}

	png, err := qr.Encode(code.ScanURL(h.baseURL), qr.Medium, 512)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to render QR image"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

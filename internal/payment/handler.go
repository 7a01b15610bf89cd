package payment

import (
	"net/http"
	"strconv"
	"time"

	"fitgate/internal/api"
	"fitgate/internal/auth"
	"fitgate/internal/gym"
	"fitgate/internal/metrics"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo       Repository
	gymService gym.Service
}

func NewHandler(repo Repository, gymService gym.Service) *Handler {
	return &Handler{repo: repo, gymService: gymService}
}

// @Summary      Record a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path int true "Gym ID"
// @Param        request body payment.CreatePaymentRequest true "Payment payload"
// @Success      201 {object} api.Result
// @Router       /owner/gyms/{gymID}/payments [post]
func (h *Handler) RecordPayment(c *gin.Context) {
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

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail(err.Error()))
		return
	}

	ctx := c.Request.Context()
	g, err := h.gymService.GetOwnedGym(ctx, ownerID, gymID)
	if err != nil {
		c.JSON(http.StatusNotFound, api.Fail("Gym not found"))
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = g.Currency
	}

	paidAt := time.Now()
	if req.PaidAt != "" {
		t, err := time.Parse(time.RFC3339, req.PaidAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.Fail("invalid paid_at, use RFC3339"))
			return
		}
		paidAt = t
	}

	p, err := h.repo.Create(ctx, gymID, req, currency, paidAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Fail("Failed to record payment"))
		return
	}

	metrics.RecordPayment(req.Type)
	c.JSON(http.StatusCreated, api.OK(p))
}

// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path int true "Gym ID"
// @Success      200 {array} payment.Payment
// @Router       /owner/gyms/{gymID}/payments [get]
func (h *Handler) ListPayments(c *gin.Context) {
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

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.repo.ListByGym(ctx, gymID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, list)
}

package checkin

import (
	"net/http"
	"strconv"
	"time"

	"fitgate/internal/api"
	"fitgate/internal/auth"
	"fitgate/internal/gym"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service    Service
	repo       Repository
	gymService gym.Service
}

func NewHandler(service Service, repo Repository, gymService gym.Service) *Handler {
	return &Handler{
		service:    service,
		repo:       repo,
		gymService: gymService,
	}
}

// Record godoc
// @Summary      Record a member check-in
// @Description  Persists a check-in for the authenticated member, linked
// @Description  to the scan that brought them here when one is supplied.
// @Tags         portal
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body checkin.RecordRequest true "Scan reference"
// @Success      201 {object} api.Result
// @Failure      404 {object} api.Result
// @Router       /portal/check-in [post]
func (h *Handler) Record(c *gin.Context) {
	memberID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.Fail("Member not authenticated"))
		return
	}

	gymID, exists := auth.GetGymID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.Fail("Member not authenticated"))
		return
	}

	var req RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// An empty body is a valid manual check-in.
		req = RecordRequest{}
	}

	result, err := h.service.RecordCheckIn(c.Request.Context(), memberID, gymID, req.ScanID, req.QRCode)
	if err != nil {
		switch err {
		case ErrMemberNotFound:
			c.JSON(http.StatusNotFound, api.Fail("Member not found"))
		case ErrWrongGym:
			c.JSON(http.StatusForbidden, api.Fail("Member does not belong to this gym"))
		default:
			c.JSON(http.StatusInternalServerError, api.Fail("Failed to record check-in"))
		}
		return
	}

	c.JSON(http.StatusCreated, api.OK(result))
}

// ListByGym godoc
// @Summary      List gym check-ins
// @Tags         checkins
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path int true "Gym ID"
// @Param        from query string false "Start datetime (RFC3339)"
// @Param        to query string false "End datetime (RFC3339)"
// @Success      200 {array} checkin.CheckIn
// @Router       /owner/gyms/{gymID}/check-ins [get]
func (h *Handler) ListByGym(c *gin.Context) {
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

	now := time.Now()
	from := now.AddDate(0, -1, 0)
	to := now

	if fromStr := c.Query("from"); fromStr != "" {
		t, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid from format, use RFC3339"})
			return
		}
		from = t
	}

	if toStr := c.Query("to"); toStr != "" {
		t, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid to format, use RFC3339"})
			return
		}
		to = t
	}

	list, err := h.repo.ListByGym(ctx, gymID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch check-ins"})
		return
	}

	c.JSON(http.StatusOK, list)
}

package stats

import (
	"net/http"
	"strconv"

	"fitgate/internal/api"
	"fitgate/internal/auth"
	"fitgate/internal/gym"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service    *Service
	gymService gym.Service
}

func NewHandler(service *Service, gymService gym.Service) *Handler {
	return &Handler{service: service, gymService: gymService}
}

// @Summary      Owner dashboard
// @Description  Aggregated stats for one gym; loading it also kicks off
// @Description  the subscription expiry probe in the background.
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path int true "Gym ID"
// @Success      200 {object} stats.Dashboard
// @Router       /owner/gyms/{gymID}/dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
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

	dashboard, err := h.service.LoadDashboard(ctx, gymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load dashboard"})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

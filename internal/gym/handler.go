package gym

import (
	"net/http"
	"strconv"

	"fitgate/internal/api"
	"fitgate/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Create a gym
// @Tags         gyms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body gym.CreateGymRequest true "Gym payload"
// @Success      201 {object} api.Result
// @Failure      400 {object} api.Result
// @Router       /owner/gyms [post]
func (h *Handler) CreateGym(c *gin.Context) {
	ownerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.Fail("User not authenticated"))
		return
	}

	var req CreateGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail(err.Error()))
		return
	}

	gym, err := h.service.CreateGym(c.Request.Context(), ownerID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Fail("Failed to create gym"))
		return
	}

	c.JSON(http.StatusCreated, api.OK(gym))
}

// @Summary      List own gyms
// @Tags         gyms
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} gym.Gym
// @Router       /owner/gyms [get]
func (h *Handler) ListGyms(c *gin.Context) {
	ownerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	gyms, err := h.service.ListGyms(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch gyms"})
		return
	}

	c.JSON(http.StatusOK, gyms)
}

// @Summary      Get a gym
// @Tags         gyms
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path int true "Gym ID"
// @Success      200 {object} gym.Gym
// @Router       /owner/gyms/{gymID} [get]
func (h *Handler) GetGym(c *gin.Context) {
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

	gym, err := h.service.GetOwnedGym(c.Request.Context(), ownerID, gymID)
	if err != nil {
		switch err {
		case ErrGymNotFound:
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Gym not found"})
		case ErrNotOwner:
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Gym does not belong to you"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch gym"})
		}
		return
	}

	c.JSON(http.StatusOK, gym)
}

// @Summary      Update a gym
// @Tags         gyms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path int true "Gym ID"
// @Param        request body gym.UpdateGymRequest true "Fields to update"
// @Success      200 {object} api.Result
// @Router       /owner/gyms/{gymID} [patch]
func (h *Handler) UpdateGym(c *gin.Context) {
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

	var req UpdateGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail(err.Error()))
		return
	}

	gym, err := h.service.UpdateGym(c.Request.Context(), ownerID, gymID, req)
	if err != nil {
		switch err {
		case ErrGymNotFound:
			c.JSON(http.StatusNotFound, api.Fail("Gym not found"))
		case ErrNotOwner:
			c.JSON(http.StatusForbidden, api.Fail("Gym does not belong to you"))
		default:
			c.JSON(http.StatusInternalServerError, api.Fail("Failed to update gym"))
		}
		return
	}

	c.JSON(http.StatusOK, api.OK(gym))
}

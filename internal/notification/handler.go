package notification

import (
	"net/http"
	"strconv"

	"fitgate/internal/api"
	"fitgate/internal/auth"
	"fitgate/internal/gym"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo       Repository
	gymService gym.Service
}

func NewHandler(repo Repository, gymService gym.Service) *Handler {
	return &Handler{repo: repo, gymService: gymService}
}

func (h *Handler) ownedGymID(c *gin.Context) (int, bool) {
	ownerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return 0, false
	}

	gymID, err := strconv.Atoi(c.Param("gymID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid gym ID"})
		return 0, false
	}

	if _, err := h.gymService.GetOwnedGym(c.Request.Context(), ownerID, gymID); err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Gym not found"})
		return 0, false
	}

	return gymID, true
}

// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path int true "Gym ID"
// @Param        limit query int false "Page size"
// @Param        offset query int false "Offset"
// @Success      200 {array} notification.Notification
// @Router       /owner/gyms/{gymID}/notifications [get]
func (h *Handler) List(c *gin.Context) {
	gymID, ok := h.ownedGymID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.repo.ListByGym(c.Request.Context(), gymID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// @Summary      Unread notification count
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path int true "Gym ID"
// @Success      200 {object} gin.H
// @Router       /owner/gyms/{gymID}/notifications/unread-count [get]
func (h *Handler) UnreadCount(c *gin.Context) {
	gymID, ok := h.ownedGymID(c)
	if !ok {
		return
	}

	count, err := h.repo.UnreadCount(c.Request.Context(), gymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to count notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// @Summary      Mark a notification read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path int true "Gym ID"
// @Param        notificationID path int true "Notification ID"
// @Success      200 {object} api.Result
// @Router       /owner/gyms/{gymID}/notifications/{notificationID}/read [post]
func (h *Handler) MarkRead(c *gin.Context) {
	gymID, ok := h.ownedGymID(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("notificationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("Invalid notification ID"))
		return
	}

	if err := h.repo.MarkRead(c.Request.Context(), gymID, id); err != nil {
		c.JSON(http.StatusInternalServerError, api.Fail("Failed to mark notification read"))
		return
	}

	c.JSON(http.StatusOK, api.OK(gin.H{"read": true}))
}

// @Summary      Mark all notifications read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path int true "Gym ID"
// @Success      200 {object} api.Result
// @Router       /owner/gyms/{gymID}/notifications/read-all [post]
func (h *Handler) MarkAllRead(c *gin.Context) {
	gymID, ok := h.ownedGymID(c)
	if !ok {
		return
	}

	if err := h.repo.MarkAllRead(c.Request.Context(), gymID); err != nil {
		c.JSON(http.StatusInternalServerError, api.Fail("Failed to mark notifications read"))
		return
	}

	c.JSON(http.StatusOK, api.OK(gin.H{"read": true}))
}

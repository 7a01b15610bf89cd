package portal

import (
	"net/http"
	"strconv"
	"time"

	"fitgate/internal/api"
	"fitgate/internal/auth"
	"fitgate/internal/checkin"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo        Repository
	checkinRepo checkin.Repository
}

func NewHandler(repo Repository, checkinRepo checkin.Repository) *Handler {
	return &Handler{repo: repo, checkinRepo: checkinRepo}
}

func memberContext(c *gin.Context) (memberID, gymID int, ok bool) {
	memberID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.Fail("User not authenticated"))
		return 0, 0, false
	}
	gymID, exists = auth.GetGymID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.Fail("Gym membership missing from token"))
		return 0, 0, false
	}
	return memberID, gymID, true
}

// @Summary      My check-in history
// @Description  Recent check-ins for the signed-in member plus the
// @Description  current consecutive-day streak.
// @Tags         portal
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} portal.HistoryResponse
// @Router       /portal/check-ins [get]
func (h *Handler) History(c *gin.Context) {
	memberID, _, ok := memberContext(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))

	ctx := c.Request.Context()
	checkins, err := h.checkinRepo.ListByMember(ctx, memberID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch check-ins"})
		return
	}

	days, err := h.checkinRepo.CheckInDates(ctx, memberID, 60)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch check-ins"})
		return
	}

	c.JSON(http.StatusOK, HistoryResponse{
		CheckIns:      checkins,
		CurrentStreak: CurrentStreak(days, time.Now()),
	})
}

// @Summary      Save today's workout focus
// @Tags         portal
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body portal.SaveWorkoutFocusRequest true "Focus payload"
// @Success      200 {object} api.Result
// @Router       /portal/workout-focus [put]
func (h *Handler) SaveWorkoutFocus(c *gin.Context) {
	memberID, _, ok := memberContext(c)
	if !ok {
		return
	}

	var req SaveWorkoutFocusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail(err.Error()))
		return
	}

	wf, err := h.repo.SaveWorkoutFocus(c.Request.Context(), memberID, time.Now(), req.Focus, req.Notes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Fail("Failed to save workout focus"))
		return
	}

	c.JSON(http.StatusOK, api.OK(wf))
}

// @Summary      Today's workout focus
// @Tags         portal
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} portal.WorkoutFocus
// @Router       /portal/workout-focus [get]
func (h *Handler) GetWorkoutFocus(c *gin.Context) {
	memberID, _, ok := memberContext(c)
	if !ok {
		return
	}

	wf, err := h.repo.GetWorkoutFocus(c.Request.Context(), memberID, time.Now())
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "No workout focus set for today"})
		return
	}

	c.JSON(http.StatusOK, wf)
}

// @Summary      Leave a review
// @Tags         portal
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body portal.CreateReviewRequest true "Review payload"
// @Success      201 {object} api.Result
// @Router       /portal/reviews [post]
func (h *Handler) CreateReview(c *gin.Context) {
	memberID, gymID, ok := memberContext(c)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail(err.Error()))
		return
	}

	rev, err := h.repo.CreateReview(c.Request.Context(), gymID, memberID, req.Rating, req.Comment)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Fail("Failed to save review"))
		return
	}

	c.JSON(http.StatusCreated, api.OK(rev))
}

// @Summary      List gym reviews
// @Tags         portal
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} portal.Review
// @Router       /portal/reviews [get]
func (h *Handler) ListReviews(c *gin.Context) {
	_, gymID, ok := memberContext(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	reviews, err := h.repo.ListReviews(c.Request.Context(), gymID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// @Summary      Refer a friend
// @Tags         portal
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body portal.CreateReferralRequest true "Referral payload"
// @Success      201 {object} api.Result
// @Router       /portal/referrals [post]
func (h *Handler) CreateReferral(c *gin.Context) {
	memberID, gymID, ok := memberContext(c)
	if !ok {
		return
	}

	var req CreateReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail(err.Error()))
		return
	}

	ref, err := h.repo.CreateReferral(c.Request.Context(), gymID, memberID, req.FriendName, req.FriendPhone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Fail("Failed to create referral"))
		return
	}

	c.JSON(http.StatusCreated, api.OK(ref))
}

// @Summary      My referrals
// @Tags         portal
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} portal.Referral
// @Router       /portal/referrals [get]
func (h *Handler) ListReferrals(c *gin.Context) {
	memberID, _, ok := memberContext(c)
	if !ok {
		return
	}

	refs, err := h.repo.ListReferrals(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch referrals"})
		return
	}

	c.JSON(http.StatusOK, refs)
}

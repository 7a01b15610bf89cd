package member

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
	repo       Repository
	gymService gym.Service
	gymRepo    gym.Repository
	jwtSecret  string
}

func NewHandler(repo Repository, gymService gym.Service, gymRepo gym.Repository, jwtSecret string) *Handler {
	return &Handler{
		repo:       repo,
		gymService: gymService,
		gymRepo:    gymRepo,
		jwtSecret:  jwtSecret,
	}
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// @Summary      Create a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path int true "Gym ID"
// @Param        request body member.CreateMemberRequest true "Member payload"
// @Success      201 {object} api.Result
// @Router       /owner/gyms/{gymID}/members [post]
func (h *Handler) CreateMember(c *gin.Context) {
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

	var req CreateMemberRequest
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

	pinHash, err := auth.HashPIN(req.PIN)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Fail("Failed to hash PIN"))
		return
	}

	m, err := h.repo.Create(ctx, gymID, req.Name, req.Email, req.Phone, pinHash,
		MembershipStatus(req.MembershipStatus),
		parseDate(req.SubscriptionStartDate), parseDate(req.SubscriptionEndDate))
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Fail("Failed to create member"))
		return
	}

	c.JSON(http.StatusCreated, api.OK(m))
}

// @Summary      List members of a gym
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path int true "Gym ID"
// @Success      200 {array} member.Member
// @Router       /owner/gyms/{gymID}/members [get]
func (h *Handler) ListMembers(c *gin.Context) {
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

	members, err := h.repo.ListByGym(ctx, gymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch members"})
		return
	}

	c.JSON(http.StatusOK, members)
}

// @Summary      Update a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path int true "Gym ID"
// @Param        memberID path int true "Member ID"
// @Param        request body member.UpdateMemberRequest true "Fields to update"
// @Success      200 {object} api.Result
// @Router       /owner/gyms/{gymID}/members/{memberID} [patch]
func (h *Handler) UpdateMember(c *gin.Context) {
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

	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("Invalid member ID"))
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail(err.Error()))
		return
	}

	ctx := c.Request.Context()
	if _, err := h.gymService.GetOwnedGym(ctx, ownerID, gymID); err != nil {
		c.JSON(http.StatusNotFound, api.Fail("Gym not found"))
		return
	}

	existing, err := h.repo.GetByID(ctx, memberID)
	if err != nil || existing.GymID != gymID {
		c.JSON(http.StatusNotFound, api.Fail("Member not found"))
		return
	}

	m, err := h.repo.Update(ctx, memberID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Fail("Failed to update member"))
		return
	}

	c.JSON(http.StatusOK, api.OK(m))
}

// PortalSignIn godoc
// @Summary      Member portal sign-in
// @Description  Authenticates a gym member by gym slug, phone and PIN.
// @Tags         portal
// @Accept       json
// @Produce      json
// @Param        request body member.PortalSignInRequest true "Member credentials"
// @Success      200 {object} member.PortalSignInResponse
// @Failure      401 {object} gin.H
// @Router       /portal/sign-in [post]
func (h *Handler) PortalSignIn(c *gin.Context) {
	var req PortalSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	g, err := h.gymRepo.GetBySlug(ctx, req.GymSlug)
	if err != nil || !g.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	m, err := h.repo.GetByGymAndPhone(ctx, g.ID, req.Phone)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !auth.CheckPIN(m.PINHash, req.PIN) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	accessToken, refreshToken, err := auth.GenerateTokens(m.ID, g.ID, m.Email, auth.RoleMember, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusOK, PortalSignInResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Member:       *m,
	})
}

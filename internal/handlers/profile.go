package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"tcg-card-studio/internal/middleware"
	"tcg-card-studio/internal/models"
)

type ProfileService interface {
	SignIn(ctx context.Context, userID, tokenEmail string, req *models.UpsertProfileRequest) (*models.UserProfile, bool)
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
	UpdateAPIKeys(ctx context.Context, userID string, keys map[string]string) (*models.UserProfile, error)
}

type ProfileHandler struct {
	profiles ProfileService
	logger   *slog.Logger
}

func NewProfileHandler(profiles ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger}
}

// SignIn godoc
// @Summary     Record sign-in
// @Description Upserts the caller's profile. A storage failure is reported with profileSaved=false and never fails the sign-in.
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.UpsertProfileRequest false "Profile fields"
// @Success     200 {object} models.SignInResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /profile [put]
func (h *ProfileHandler) SignIn(c *gin.Context) {
	userID, ok := currentUser(c, "")
	if !ok {
		return
	}
	var req models.UpsertProfileRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warn("ignoring malformed profile body", "user_id", userID, "error", err)
		}
	}

	profile, saved := h.profiles.SignIn(c.Request.Context(), userID, middleware.UserEmail(c), &req)
	c.JSON(http.StatusOK, models.SignInResponse{
		Profile:      models.NewProfileResponse(profile),
		ProfileSaved: saved,
	})
}

// GetProfile godoc
// @Summary     Get profile
// @Description Returns the caller's profile. API keys are never returned; configuredProviders lists which are set.
// @Tags        profile
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.ProfileResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c, "")
	if !ok {
		return
	}

	profile, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.NewProfileResponse(profile))
}

// UpdateAPIKeys godoc
// @Summary     Set API keys
// @Description Sets per-provider API keys (image, vision, video). An empty value removes a key.
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.UpdateAPIKeysRequest true "Keys by provider"
// @Success     200 {object} models.ProfileResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /profile/api-keys [put]
func (h *ProfileHandler) UpdateAPIKeys(c *gin.Context) {
	userID, ok := currentUser(c, "")
	if !ok {
		return
	}
	var req models.UpdateAPIKeysRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profiles.UpdateAPIKeys(c.Request.Context(), userID, req.APIKeys)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.NewProfileResponse(profile))
}

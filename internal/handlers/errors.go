package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"tcg-card-studio/internal/fetch"
	"tcg-card-studio/internal/genai"
	"tcg-card-studio/internal/middleware"
	"tcg-card-studio/internal/models"
	"tcg-card-studio/internal/services"
	"tcg-card-studio/internal/supabase"
)

const codeAPIKeyRequired = "api_key_required"

// respondError maps service errors onto status codes. Internal detail goes to
// the log; the response carries a sanitized message.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	var (
		validationErr *models.ValidationError
		credentialErr *genai.CredentialError
		providerErr   *genai.ProviderError
		uploadErr     *services.UploadError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:  "invalid request",
			Fields: validationErr.Fields,
		})
	case errors.As(err, &credentialErr), errors.Is(err, genai.ErrAPIKeyRequired):
		provider := ""
		if credentialErr != nil {
			provider = credentialErr.Provider
		}
		c.JSON(http.StatusPreconditionFailed, models.ErrorResponse{
			Error:   "api key required",
			Message: "Add an API key for " + providerLabel(provider) + " in your profile.",
			Code:    codeAPIKeyRequired,
		})
	case errors.Is(err, models.ErrMissingUserID):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
	case errors.Is(err, supabase.ErrObjectNotOwned), errors.Is(err, fetch.ErrHostNotAllowed):
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "forbidden"})
	case errors.Is(err, models.ErrCardNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "card not found"})
	case errors.Is(err, models.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "profile not found"})
	case errors.Is(err, services.ErrGenerationInProgress):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "video generation already in progress",
			Message: "Wait for the current video to finish before requesting another.",
		})
	case errors.Is(err, models.ErrFieldTooLarge), errors.Is(err, models.ErrDocumentTooLarge), errors.Is(err, models.ErrInlineVideo):
		c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: "card too large", Message: err.Error()})
	case errors.As(err, &providerErr):
		logger.Error("ai provider error", "status", providerErr.StatusCode, "error", providerErr.Message, "path", c.FullPath())
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "ai provider error",
			Message: providerErr.UserMessage(),
		})
	case errors.As(err, &uploadErr):
		logger.Error("media upload failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to upload media"})
	default:
		logger.Error("request failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal error"})
	}
	_ = c.Error(err)
}

// currentUser reads the token identity and rejects a conflicting body hint.
func currentUser(c *gin.Context, hint string) (string, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return "", false
	}
	if !middleware.SameUser(c, hint) {
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Error:   "forbidden",
			Message: "userId does not match the authenticated user",
		})
		return "", false
	}
	return userID, true
}

func bindJSON(c *gin.Context, target any) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
				Error:   "request body too large",
				Message: fmt.Sprintf("the request body exceeds %d bytes", maxErr.Limit),
			})
			return false
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return false
	}
	return true
}

func providerLabel(provider string) string {
	switch models.Provider(provider) {
	case models.ProviderImage:
		return "image generation"
	case models.ProviderVision:
		return "card scanning"
	case models.ProviderVideo:
		return "video generation"
	}
	return "this feature"
}

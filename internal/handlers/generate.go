package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"tcg-card-studio/internal/genai"
	"tcg-card-studio/internal/models"
)

// Generator is the AI surface behind the generation routes. Results are
// returned to the caller and never persisted here.
type Generator interface {
	GenerateCard(ctx context.Context, userID string, p genai.CardParams) (*genai.ImageResult, error)
	GenerateCardFromPhoto(ctx context.Context, userID string, p genai.PhotoParams) (*genai.ImageResult, error)
	ScanCard(ctx context.Context, userID, photoDataURI string) (*models.CardDetails, error)
	GradeCard(ctx context.Context, userID string, p genai.GradeParams) (*models.GradingResult, error)
}

type GenerateHandler struct {
	gen    Generator
	logger *slog.Logger
}

func NewGenerateHandler(gen Generator, logger *slog.Logger) *GenerateHandler {
	return &GenerateHandler{gen: gen, logger: logger}
}

// GenerateCard godoc
// @Summary     Generate card art
// @Description Generates card artwork for a character. The image is returned as a data URL; save it with POST /cards.
// @Tags        generate
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.GenerateCardRequest true "Card parameters"
// @Success     200 {object} models.GenerateImageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     412 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /generate-card [post]
func (h *GenerateHandler) GenerateCard(c *gin.Context) {
	var req models.GenerateCardRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUser(c, req.UserID)
	if !ok {
		return
	}
	game, err := requireGame(map[string]string{
		"characterName": req.CharacterName,
		"game":          req.Game,
	}, req.Game)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := h.gen.GenerateCard(c.Request.Context(), userID, genai.CardParams{
		CharacterName: req.CharacterName,
		CharacterType: req.CharacterType,
		Game:          game,
		Rarity:        req.Rarity,
		Set:           req.Set,
		Style:         req.Style,
		Description:   req.Description,
		Attacks:       req.Attacks,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.GenerateImageResponse{ImageBase64: result.ImageBase64, Prompt: result.Prompt})
}

// GenerateCardFromPhoto godoc
// @Summary     Generate card art from a photo
// @Tags        generate
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.GenerateFromPhotoRequest true "Photo and card parameters"
// @Success     200 {object} models.GenerateImageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     412 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /generate-card-from-photo [post]
func (h *GenerateHandler) GenerateCardFromPhoto(c *gin.Context) {
	var req models.GenerateFromPhotoRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUser(c, req.UserID)
	if !ok {
		return
	}
	game, err := requireGame(map[string]string{
		"photoDataUri":  req.PhotoDataURI,
		"characterName": req.CharacterName,
		"game":          req.Game,
	}, req.Game)
	if err == nil {
		err = validatePhotos(map[string]string{"photoDataUri": req.PhotoDataURI})
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := h.gen.GenerateCardFromPhoto(c.Request.Context(), userID, genai.PhotoParams{
		PhotoDataURI:  req.PhotoDataURI,
		CharacterName: req.CharacterName,
		Game:          game,
		Style:         req.Style,
		Description:   req.Description,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.GenerateImageResponse{ImageBase64: result.ImageBase64, Prompt: result.Prompt})
}

// ScanCard godoc
// @Summary     Scan a physical card
// @Description Reads card details from a photo of a physical card
// @Tags        generate
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.ScanCardRequest true "Card photo"
// @Success     200 {object} models.ScanCardResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     412 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /scan-card [post]
func (h *GenerateHandler) ScanCard(c *gin.Context) {
	var req models.ScanCardRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUser(c, req.UserID)
	if !ok {
		return
	}
	err := models.RequireFields(map[string]string{"photoDataUri": req.PhotoDataURI})
	if err == nil {
		err = validatePhotos(map[string]string{"photoDataUri": req.PhotoDataURI})
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	details, err := h.gen.ScanCard(c.Request.Context(), userID, req.PhotoDataURI)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.ScanCardResponse{CardDetails: *details})
}

// GradeCard godoc
// @Summary     Grade a physical card
// @Description Estimates a condition grade on the PSA, BGS or CGC scale
// @Tags        generate
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.GradeCardRequest true "Card photos"
// @Success     200 {object} models.GradeCardResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     412 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /grade-card [post]
func (h *GenerateHandler) GradeCard(c *gin.Context) {
	var req models.GradeCardRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUser(c, req.UserID)
	if !ok {
		return
	}
	err := models.RequireFields(map[string]string{
		"frontPhotoDataUri": req.FrontPhotoDataURI,
		"gradingScale":      req.GradingScale,
	})
	scale, valid := genai.ParseGradingScale(req.GradingScale)
	if err == nil && !valid {
		err = &models.ValidationError{Fields: []string{"gradingScale"}}
	}
	if err == nil {
		photos := map[string]string{"frontPhotoDataUri": req.FrontPhotoDataURI}
		if req.BackPhotoDataURI != "" {
			photos["backPhotoDataUri"] = req.BackPhotoDataURI
		}
		err = validatePhotos(photos)
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := h.gen.GradeCard(c.Request.Context(), userID, genai.GradeParams{
		FrontPhotoDataURI: req.FrontPhotoDataURI,
		BackPhotoDataURI:  req.BackPhotoDataURI,
		CardName:          req.CardName,
		Game:              req.Game,
		Set:               req.Set,
		GradingScale:      scale,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.GradeCardResponse{GradingResult: *result})
}

// requireGame checks the required fields and parses the game.
func requireGame(fields map[string]string, raw string) (models.Game, error) {
	if err := models.RequireFields(fields); err != nil {
		return "", err
	}
	game, err := models.ParseGame(raw)
	if err != nil {
		return "", &models.ValidationError{Fields: []string{"game"}}
	}
	return game, nil
}

// validatePhotos rejects photos that are not images or exceed the pixel
// budget, naming every offending field.
func validatePhotos(photos map[string]string) error {
	var bad []string
	for field, photo := range photos {
		if genai.ValidatePhoto(photo) != nil {
			bad = append(bad, field)
		}
	}
	if len(bad) == 0 {
		return nil
	}
	sort.Strings(bad)
	return &models.ValidationError{Fields: bad}
}

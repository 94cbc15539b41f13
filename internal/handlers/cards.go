package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"tcg-card-studio/internal/models"
)

// CardService is the collection surface behind the card routes.
type CardService interface {
	ListCards(ctx context.Context, userID string) ([]models.Card, error)
	GetCard(ctx context.Context, userID, cardID string) (*models.Card, error)
	SaveCard(ctx context.Context, userID string, req *models.SaveCardRequest) (*models.Card, error)
	UpdateCard(ctx context.Context, userID, cardID string, req *models.UpdateCardRequest) (*models.Card, error)
	DeleteCard(ctx context.Context, userID, cardID string) error
}

type CardsHandler struct {
	cards  CardService
	logger *slog.Logger
}

func NewCardsHandler(cards CardService, logger *slog.Logger) *CardsHandler {
	return &CardsHandler{cards: cards, logger: logger}
}

// ListCards godoc
// @Summary     List cards
// @Description Returns the caller's cards, most recently updated first
// @Tags        cards
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.CardListResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /cards [get]
func (h *CardsHandler) ListCards(c *gin.Context) {
	userID, ok := currentUser(c, "")
	if !ok {
		return
	}

	cards, err := h.cards.ListCards(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if cards == nil {
		cards = []models.Card{}
	}
	c.JSON(http.StatusOK, models.CardListResponse{Cards: cards})
}

// GetCard godoc
// @Summary     Get card
// @Tags        cards
// @Produce     json
// @Security    Bearer
// @Param       card_id path string true "Card ID"
// @Success     200 {object} models.CardResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /cards/{card_id} [get]
func (h *CardsHandler) GetCard(c *gin.Context) {
	userID, ok := currentUser(c, "")
	if !ok {
		return
	}

	card, err := h.cards.GetCard(c.Request.Context(), userID, c.Param("card_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.CardResponse{Card: *card})
}

// SaveCard godoc
// @Summary     Save card
// @Description Persists a generated or scanned card. The image is uploaded to blob storage, or stored inline when the server runs in inline mode and the compressed image fits.
// @Tags        cards
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.SaveCardRequest true "Card"
// @Success     201 {object} models.SaveCardResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /cards [post]
func (h *CardsHandler) SaveCard(c *gin.Context) {
	var req models.SaveCardRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUser(c, req.UserID)
	if !ok {
		return
	}

	card, err := h.cards.SaveCard(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, models.SaveCardResponse{CardID: card.ID, Card: *card})
}

// UpdateCard godoc
// @Summary     Update card
// @Description Edits card metadata or replaces its image. Video fields are managed by the video pipeline.
// @Tags        cards
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       card_id path string true "Card ID"
// @Param       request body models.UpdateCardRequest true "Fields to change"
// @Success     200 {object} models.CardResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /cards/{card_id} [patch]
func (h *CardsHandler) UpdateCard(c *gin.Context) {
	var req models.UpdateCardRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUser(c, req.UserID)
	if !ok {
		return
	}

	card, err := h.cards.UpdateCard(c.Request.Context(), userID, c.Param("card_id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.CardResponse{Card: *card})
}

// DeleteCard godoc
// @Summary     Delete card
// @Description Deletes the card and, best-effort, its image and video blobs. Deleting a missing card succeeds.
// @Tags        cards
// @Security    Bearer
// @Param       card_id path string true "Card ID"
// @Success     204
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /cards/{card_id} [delete]
func (h *CardsHandler) DeleteCard(c *gin.Context) {
	userID, ok := currentUser(c, "")
	if !ok {
		return
	}

	if err := h.cards.DeleteCard(c.Request.Context(), userID, c.Param("card_id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"tcg-card-studio/internal/events"
	"tcg-card-studio/internal/models"
)

const heartbeatInterval = 15 * time.Second

type VideoService interface {
	Request(ctx context.Context, userID, cardID string) (*models.Card, error)
	Status(ctx context.Context, userID, cardID string) (*models.VideoStatusResponse, error)
}

type Subscriber interface {
	Subscribe(userID, cardID string, buf int) (string, <-chan events.VideoEvent, func())
}

type VideoHandler struct {
	videos    VideoService
	hub       Subscriber
	heartbeat time.Duration
	logger    *slog.Logger
}

func NewVideoHandler(videos VideoService, hub Subscriber, logger *slog.Logger) *VideoHandler {
	return &VideoHandler{videos: videos, hub: hub, heartbeat: heartbeatInterval, logger: logger}
}

// GenerateVideo godoc
// @Summary     Generate card video
// @Description Starts video generation for a card and returns immediately with the card in the generating state. Poll /cards/{card_id}/video-status or subscribe to /cards/{card_id}/events for completion.
// @Tags        video
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.GenerateVideoRequest true "Card to animate"
// @Success     200 {object} models.GenerateVideoResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     412 {object} models.ErrorResponse
// @Router      /generate-video [post]
func (h *VideoHandler) GenerateVideo(c *gin.Context) {
	var req models.GenerateVideoRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUser(c, req.UserID)
	if !ok {
		return
	}
	if err := models.RequireFields(map[string]string{"cardId": req.CardID}); err != nil {
		respondError(c, h.logger, err)
		return
	}

	card, err := h.videos.Request(c.Request.Context(), userID, req.CardID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.GenerateVideoResponse{
		Success: true,
		Message: "Video generation started. This can take a few minutes.",
		Card:    card,
	})
}

// VideoStatus godoc
// @Summary     Video generation status
// @Tags        video
// @Produce     json
// @Security    Bearer
// @Param       card_id path string true "Card ID"
// @Success     200 {object} models.VideoStatusResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /cards/{card_id}/video-status [get]
func (h *VideoHandler) VideoStatus(c *gin.Context) {
	userID, ok := currentUser(c, "")
	if !ok {
		return
	}

	status, err := h.videos.Status(c.Request.Context(), userID, c.Param("card_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// Events godoc
// @Summary     Video status events
// @Description Server-sent events for a card's video status. The first event is the current state. The stream ends when a running generation completes or fails, or right away when the video is already completed.
// @Tags        video
// @Produce     text/event-stream
// @Security    Bearer
// @Param       card_id path string true "Card ID"
// @Success     200 {object} events.VideoEvent
// @Failure     404 {object} models.ErrorResponse
// @Router      /cards/{card_id}/events [get]
func (h *VideoHandler) Events(c *gin.Context) {
	userID, ok := currentUser(c, "")
	if !ok {
		return
	}
	cardID := c.Param("card_id")

	// Subscribe before reading the state so a transition in between is not lost
	_, sub, unsubscribe := h.hub.Subscribe(userID, cardID, 8)
	defer unsubscribe()

	status, err := h.videos.Status(c.Request.Context(), userID, cardID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "streaming unsupported"})
		return
	}
	c.Status(http.StatusOK)

	writeSSE(c, events.VideoEvent{
		Type:     events.EventVideoStatus,
		CardID:   cardID,
		Status:   status.Status,
		VideoURL: status.VideoURL,
		TS:       status.UpdatedAt,
	})
	flusher.Flush()
	if status.Terminal && status.Status == models.VideoCompleted {
		return
	}

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case evt, ok := <-sub:
			if !ok {
				return
			}
			writeSSE(c, evt)
			flusher.Flush()
			if evt.Status.Terminal() {
				return
			}
		case <-heartbeat.C:
			fmt.Fprintf(c.Writer, ": ping %d\n\n", time.Now().Unix())
			flusher.Flush()
		}
	}
}

func writeSSE(c *gin.Context, evt events.VideoEvent) {
	payload, _ := json.Marshal(evt)
	if evt.Seq > 0 {
		fmt.Fprintf(c.Writer, "id: %d\n", evt.Seq)
	}
	fmt.Fprintf(c.Writer, "event: %s\n", evt.Type)
	fmt.Fprintf(c.Writer, "data: %s\n\n", payload)
}

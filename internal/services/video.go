package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tcg-card-studio/internal/events"
	"tcg-card-studio/internal/genai"
	"tcg-card-studio/internal/imaging"
	"tcg-card-studio/internal/models"
)

const (
	maxCardImageBytes = 20 << 20
	finalWriteTimeout = 30 * time.Second
)

// VideoService drives the video lifecycle of a card:
// pending|failed -> generating -> completed|failed.
type VideoService struct {
	store   CardStore
	blobs   BlobStore
	gen     VideoGenerator
	images  ImageSource
	events  Publisher
	timeout time.Duration
	logger  *slog.Logger

	wg sync.WaitGroup
}

func NewVideoService(store CardStore, blobs BlobStore, gen VideoGenerator, images ImageSource, pub Publisher, timeout time.Duration, logger *slog.Logger) *VideoService {
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &VideoService{
		store:   store,
		blobs:   blobs,
		gen:     gen,
		images:  images,
		events:  pub,
		timeout: timeout,
		logger:  logger,
	}
}

// Request moves the card to generating and starts the background job. The
// returned card already shows the generating status.
func (s *VideoService) Request(ctx context.Context, userID, cardID string) (*models.Card, error) {
	card, err := s.store.GetCard(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}
	if !card.VideoGenerationStatus.CanRequest() {
		return nil, ErrGenerationInProgress
	}
	if err := s.gen.CheckCredential(ctx, userID, models.ProviderVideo); err != nil {
		return nil, err
	}

	prompt := genai.VideoPrompt(card)
	ok, err := s.store.TransitionVideoStatus(ctx, userID, cardID,
		[]models.VideoStatus{models.VideoPending, models.VideoFailed},
		models.CardUpdate{
			VideoGenerationStatus: models.StatusPtr(models.VideoGenerating),
			VideoPrompt:           models.StringPtr(prompt),
		})
	if err != nil {
		return nil, fmt.Errorf("failed to mark video generating: %w", err)
	}
	if !ok {
		return nil, ErrGenerationInProgress
	}

	updated, err := s.store.GetCard(ctx, userID, cardID)
	if err != nil {
		updated = card
		card.VideoGenerationStatus = models.VideoGenerating
		card.VideoURL = ""
		card.VideoPrompt = prompt
	}

	s.publish(userID, cardID, models.VideoGenerating, "", "")
	s.logger.Info("video generation started", "user_id", userID, "card_id", cardID)

	s.wg.Add(1)
	go s.run(userID, *updated, prompt)
	return updated, nil
}

// Status is the read behind client polling.
func (s *VideoService) Status(ctx context.Context, userID, cardID string) (*models.VideoStatusResponse, error) {
	card, err := s.store.GetCard(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}
	status := card.VideoGenerationStatus
	if status == "" {
		status = models.VideoPending
	}
	return &models.VideoStatusResponse{
		CardID:    card.ID,
		Status:    status,
		VideoURL:  card.VideoURL,
		Terminal:  status.Terminal(),
		UpdatedAt: card.UpdatedAt,
	}, nil
}

// Wait blocks until every started job has finished.
func (s *VideoService) Wait() {
	s.wg.Wait()
}

func (s *VideoService) run(userID string, card models.Card, prompt string) {
	defer s.wg.Done()

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	url, err := s.generate(ctx, userID, &card, prompt)
	if err != nil {
		s.fail(userID, card.ID, err)
		return
	}

	writeCtx, writeCancel := context.WithTimeout(context.Background(), finalWriteTimeout)
	defer writeCancel()

	ok, err := s.store.TransitionVideoStatus(writeCtx, userID, card.ID,
		[]models.VideoStatus{models.VideoGenerating},
		models.CardUpdate{
			VideoGenerationStatus: models.StatusPtr(models.VideoCompleted),
			VideoURL:              models.StringPtr(url),
		})
	if err != nil || !ok {
		if err == nil {
			err = errors.New("card left the generating state")
		}
		if delErr := s.blobs.DeleteObject(writeCtx, url, userID); delErr != nil {
			s.logger.Warn("orphaned video cleanup failed", "user_id", userID, "card_id", card.ID, "error", delErr)
		}
		s.fail(userID, card.ID, fmt.Errorf("failed to record completed video: %w", err))
		return
	}

	s.publish(userID, card.ID, models.VideoCompleted, url, "")
	s.logger.Info("video generation completed",
		"user_id", userID,
		"card_id", card.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func (s *VideoService) generate(ctx context.Context, userID string, card *models.Card, prompt string) (string, error) {
	image, err := s.loadImage(ctx, card.ImageURL)
	if err != nil {
		s.logger.Warn("card image unavailable, generating video from prompt", "card_id", card.ID, "error", err)
	}

	video, err := s.gen.GenerateVideo(ctx, userID, genai.VideoRequest{
		CardName: card.Name,
		Prompt:   prompt,
		Image:    image,
	})
	if err != nil {
		return "", err
	}
	s.logger.Debug("video rendered", "card_id", card.ID, "bytes", len(video))

	url, err := s.blobs.UploadVideo(ctx, video, userID, card.Name)
	if err != nil {
		return "", &UploadError{Err: err}
	}
	return url, nil
}

func (s *VideoService) loadImage(ctx context.Context, imageURL string) ([]byte, error) {
	switch {
	case imageURL == "":
		return nil, nil
	case models.IsDataURL(imageURL):
		raw, _, err := imaging.DecodeImagePayload([]byte(imageURL))
		return raw, err
	case s.images == nil:
		return nil, errors.New("no image source configured")
	default:
		return s.images.Get(ctx, imageURL, maxCardImageBytes)
	}
}

// fail records the failed state. The final write gets its own deadline so a
// job that timed out can still leave the card in a terminal state.
func (s *VideoService) fail(userID, cardID string, cause error) {
	s.logger.Error("video generation failed", "user_id", userID, "card_id", cardID, "error", cause)

	ctx, cancel := context.WithTimeout(context.Background(), finalWriteTimeout)
	defer cancel()

	ok, err := s.store.TransitionVideoStatus(ctx, userID, cardID,
		[]models.VideoStatus{models.VideoGenerating},
		models.CardUpdate{VideoGenerationStatus: models.StatusPtr(models.VideoFailed)})
	if err != nil {
		s.logger.Error("failed to mark video failed", "user_id", userID, "card_id", cardID, "error", err)
		return
	}
	if !ok {
		s.logger.Warn("card no longer generating, failure not recorded", "user_id", userID, "card_id", cardID)
		return
	}
	s.publish(userID, cardID, models.VideoFailed, "", failureMessage(cause))
}

func (s *VideoService) publish(userID, cardID string, status models.VideoStatus, url, message string) {
	if s.events == nil {
		return
	}
	s.events.Publish(userID, events.VideoEvent{
		Type:     events.EventVideoStatus,
		CardID:   cardID,
		Status:   status,
		VideoURL: url,
		Message:  message,
	})
}

func failureMessage(err error) string {
	var providerErr *genai.ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.UserMessage()
	}
	var credErr *genai.CredentialError
	if errors.As(err, &credErr) {
		return "an API key for video generation is required"
	}
	return "video generation failed"
}

package services

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"

	"tcg-card-studio/internal/cache"
	"tcg-card-studio/internal/config"
	"tcg-card-studio/internal/imaging"
	"tcg-card-studio/internal/models"
)

const legacyCardsPrefix = "cards/"

// CardService sequences card writes: decode the image, compress or upload it,
// then persist.
type CardService struct {
	store   CardStore
	blobs   BlobStore
	uploads cache.URLCache
	mode    string
	policy  imaging.Policy
	logger  *slog.Logger
}

func NewCardService(store CardStore, blobs BlobStore, uploads cache.URLCache, mode string, logger *slog.Logger) *CardService {
	if mode == "" {
		mode = config.ImageStorageBlob
	}
	return &CardService{
		store:   store,
		blobs:   blobs,
		uploads: uploads,
		mode:    mode,
		policy:  imaging.InlinePolicy,
		logger:  logger,
	}
}

func (s *CardService) ListCards(ctx context.Context, userID string) ([]models.Card, error) {
	return s.store.GetCards(ctx, userID)
}

func (s *CardService) GetCard(ctx context.Context, userID, cardID string) (*models.Card, error) {
	return s.store.GetCard(ctx, userID, cardID)
}

// SaveCard stores the image and persists a new card owned by userID.
func (s *CardService) SaveCard(ctx context.Context, userID string, req *models.SaveCardRequest) (*models.Card, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, models.ErrMissingUserID
	}

	image := strings.TrimSpace(req.ImageBase64)
	if image == "" && models.IsDataURL(req.ImageURL) {
		image = strings.TrimSpace(req.ImageURL)
	}
	fields := map[string]string{"name": req.Name, "game": req.Game}
	if image == "" {
		fields["imageUrl"] = req.ImageURL
	}
	if err := models.RequireFields(fields); err != nil {
		return nil, err
	}
	game, err := models.ParseGame(req.Game)
	if err != nil {
		return nil, &models.ValidationError{Fields: []string{"game"}}
	}
	if image == "" && !s.durableImageURL(userID, req.ImageURL) {
		return nil, &models.ValidationError{Fields: []string{"imageUrl"}}
	}

	imageURL := strings.TrimSpace(req.ImageURL)
	if image != "" {
		if imageURL, err = s.storeImage(ctx, userID, req.Name, image); err != nil {
			return nil, err
		}
	}

	card := &models.Card{
		Name:                  strings.TrimSpace(req.Name),
		Set:                   req.Set,
		Rarity:                req.Rarity,
		Game:                  game,
		ImageURL:              imageURL,
		IsGenerated:           req.IsGenerated,
		IsPhotoGenerated:      req.IsPhotoGenerated,
		Prompt:                req.Prompt,
		GenerationParams:      req.GenerationParams,
		PhotoGenerationParams: req.PhotoGenerationParams,
		Details:               req.Details,
		VideoGenerationStatus: models.VideoPending,
	}
	if _, err := s.store.AddCard(ctx, userID, card); err != nil {
		return nil, err
	}

	s.logger.Info("card saved",
		"user_id", userID,
		"card_id", card.ID,
		"image_inline", models.IsDataURL(card.ImageURL),
		"image_bytes", len(card.ImageURL),
	)
	return card, nil
}

// UpdateCard edits metadata and optionally replaces the image. The replaced
// blob is removed best-effort after the write succeeds.
func (s *CardService) UpdateCard(ctx context.Context, userID, cardID string, req *models.UpdateCardRequest) (*models.Card, error) {
	existing, err := s.store.GetCard(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}

	update := models.CardUpdate{
		Name:                  req.Name,
		Set:                   req.Set,
		Rarity:                req.Rarity,
		Prompt:                req.Prompt,
		GenerationParams:      req.GenerationParams,
		PhotoGenerationParams: req.PhotoGenerationParams,
		Details:               req.Details,
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, &models.ValidationError{Fields: []string{"name"}}
	}
	if req.Game != nil {
		game, err := models.ParseGame(*req.Game)
		if err != nil {
			return nil, &models.ValidationError{Fields: []string{"game"}}
		}
		update.Game = &game
	}
	if req.ImageBase64 != nil && strings.TrimSpace(*req.ImageBase64) != "" {
		name := existing.Name
		if req.Name != nil {
			name = *req.Name
		}
		imageURL, err := s.storeImage(ctx, userID, name, *req.ImageBase64)
		if err != nil {
			return nil, err
		}
		update.ImageURL = &imageURL
	}

	if err := s.store.UpdateCard(ctx, userID, cardID, update); err != nil {
		return nil, err
	}
	if update.ImageURL != nil && *update.ImageURL != existing.ImageURL {
		s.deleteBlob(ctx, userID, cardID, existing.ImageURL)
	}
	return s.store.GetCard(ctx, userID, cardID)
}

// DeleteCard removes the card, then its blobs best-effort. Deleting a card
// that does not exist succeeds.
func (s *CardService) DeleteCard(ctx context.Context, userID, cardID string) error {
	existing, err := s.store.GetCard(ctx, userID, cardID)
	if errors.Is(err, models.ErrCardNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.store.DeleteCard(ctx, userID, cardID); err != nil {
		return err
	}
	s.deleteBlob(ctx, userID, cardID, existing.ImageURL)
	s.deleteBlob(ctx, userID, cardID, existing.VideoURL)
	s.logger.Info("card deleted", "user_id", userID, "card_id", cardID)
	return nil
}

// storeImage turns a client image payload into the value stored in imageUrl:
// a blob URL, or in inline mode a data URL that fits the field ceiling.
func (s *CardService) storeImage(ctx context.Context, userID, name, payload string) (string, error) {
	raw, _, err := imaging.DecodeImagePayload([]byte(payload))
	if err != nil {
		return "", &models.ValidationError{Fields: []string{"imageBase64"}}
	}
	mime := imaging.MimeType(raw)
	if mime == "application/octet-stream" {
		return "", &models.ValidationError{Fields: []string{"imageBase64"}}
	}
	if err := imaging.CheckDimensions(raw); err != nil {
		return "", &models.ValidationError{Fields: []string{"imageBase64"}}
	}

	if s.mode == config.ImageStorageInline {
		dataURL := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw)
		result, err := s.policy.Fit([]byte(dataURL), s.logger)
		if err != nil {
			return "", &models.ValidationError{Fields: []string{"imageBase64"}}
		}
		if result.Fits {
			return string(result.Data), nil
		}
		s.logger.Info("inline image over ceiling, uploading to blob storage",
			"user_id", userID,
			"bytes", len(result.Data),
			"passes", result.Passes,
		)
	}

	return s.upload(ctx, userID, name, raw)
}

// upload stores raw in blob storage. A cached URL for the same bytes is reused
// only while some card of the user still references it; once the last
// reference is gone the object may have been deleted.
func (s *CardService) upload(ctx context.Context, userID, name string, raw []byte) (string, error) {
	key := cache.ContentKey(userID, "image", raw)
	if s.uploads != nil {
		if url, ok := s.uploads.Get(ctx, key); ok {
			if live, err := s.referenced(ctx, userID, "", url); err == nil && live {
				s.logger.Debug("image upload cache hit", "user_id", userID)
				return url, nil
			}
		}
	}

	url, err := s.blobs.UploadImage(ctx, raw, userID, name)
	if err != nil {
		return "", &UploadError{Err: err}
	}
	if s.uploads != nil {
		s.uploads.Set(ctx, key, url)
	}
	return url, nil
}

// deleteBlob removes the object behind url unless another card still uses it.
// Identical uploads share one object through the upload cache.
func (s *CardService) deleteBlob(ctx context.Context, userID, cardID, url string) {
	if url == "" || models.IsDataURL(url) {
		return
	}
	shared, err := s.referenced(ctx, userID, cardID, url)
	if err != nil {
		s.logger.Warn("blob reference check failed, keeping blob", "user_id", userID, "card_id", cardID, "error", err)
		return
	}
	if shared {
		s.logger.Debug("blob still referenced, keeping it", "user_id", userID, "card_id", cardID)
		return
	}
	if err := s.blobs.DeleteObject(ctx, url, userID); err != nil {
		s.logger.Warn("blob cleanup failed", "user_id", userID, "card_id", cardID, "error", err)
	}
}

// referenced reports whether a card of userID other than exceptID points at url.
func (s *CardService) referenced(ctx context.Context, userID, exceptID, url string) (bool, error) {
	cards, err := s.store.GetCards(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, card := range cards {
		if card.ID != exceptID && (card.ImageURL == url || card.VideoURL == url) {
			return true, nil
		}
	}
	return false, nil
}

// durableImageURL accepts only objects in this service's blob storage that
// belong to userID or to the legacy shared cards/ folder.
func (s *CardService) durableImageURL(userID, raw string) bool {
	path, ok := s.blobs.ObjectPath(strings.TrimSpace(raw))
	if !ok || strings.Contains(path, "..") {
		return false
	}
	return strings.HasPrefix(path, "users/"+userID+"/") || strings.HasPrefix(path, legacyCardsPrefix)
}

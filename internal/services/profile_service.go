package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"tcg-card-studio/internal/models"
)

type ProfileService struct {
	store  ProfileStore
	logger *slog.Logger
}

func NewProfileService(store ProfileStore, logger *slog.Logger) *ProfileService {
	return &ProfileService{store: store, logger: logger}
}

// SignIn upserts the profile of the authenticated identity. A failed write is
// logged and reported through saved=false; it never fails the sign-in.
func (s *ProfileService) SignIn(ctx context.Context, userID, tokenEmail string, req *models.UpsertProfileRequest) (*models.UserProfile, bool) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = tokenEmail
	}
	profile := &models.UserProfile{
		ID:          userID,
		Email:       email,
		DisplayName: strings.TrimSpace(req.DisplayName),
		PhotoURL:    strings.TrimSpace(req.PhotoURL),
	}

	if err := s.store.UpsertProfile(ctx, profile); err != nil {
		s.logger.Error("profile upsert failed", "user_id", userID, "error", err)
		return profile, false
	}

	stored, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		s.logger.Warn("profile reread failed", "user_id", userID, "error", err)
		return profile, true
	}
	return stored, true
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	return s.store.GetProfile(ctx, userID)
}

// UpdateAPIKeys merges keys into the stored set. An empty value removes the
// provider's key.
func (s *ProfileService) UpdateAPIKeys(ctx context.Context, userID string, keys map[string]string) (*models.UserProfile, error) {
	if len(keys) == 0 {
		return nil, &models.ValidationError{Fields: []string{"apiKeys"}}
	}
	var invalid []string
	for name := range keys {
		if !models.Provider(name).Valid() {
			invalid = append(invalid, "apiKeys."+name)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return nil, &models.ValidationError{Fields: invalid}
	}

	profile, err := s.store.GetProfile(ctx, userID)
	if errors.Is(err, models.ErrProfileNotFound) {
		if err := s.store.UpsertProfile(ctx, &models.UserProfile{ID: userID}); err != nil {
			return nil, err
		}
		profile, err = s.store.GetProfile(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	merged := make(map[models.Provider]string, len(profile.APIKeys)+len(keys))
	for provider, key := range profile.APIKeys {
		merged[provider] = key
	}
	for name, key := range keys {
		provider := models.Provider(name)
		if key = strings.TrimSpace(key); key == "" {
			delete(merged, provider)
			continue
		}
		merged[provider] = key
	}

	if err := s.store.SaveAPIKeys(ctx, userID, merged); err != nil {
		return nil, err
	}
	s.logger.Info("api keys updated", "user_id", userID, "providers", len(merged))

	profile.APIKeys = merged
	return profile, nil
}

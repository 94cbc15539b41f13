// Package store holds the in-process card and profile stores used when no
// database is configured, and by tests.
package store

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"tcg-card-studio/internal/models"
)

type MemoryStore struct {
	mu       sync.RWMutex
	cards    map[string]models.Card
	profiles map[string]models.UserProfile
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cards:    make(map[string]models.Card),
		profiles: make(map[string]models.UserProfile),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source. Used by tests that need distinct
// updated_at values.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) AddCard(ctx context.Context, userID string, card *models.Card) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", models.ErrMissingUserID
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The caller's card only receives the stored values once the write succeeds.
	now := s.now()
	row := *card
	row.ID = uuid.NewString()
	row.UserID = userID
	row.CreatedAt = now
	row.UpdatedAt = now
	if row.VideoGenerationStatus == "" {
		row.VideoGenerationStatus = models.VideoPending
	}
	if err := row.CheckVideoInvariant(); err != nil {
		return "", err
	}
	if err := models.ValidateDocument(&row); err != nil {
		return "", err
	}

	s.cards[row.ID] = row
	*card = row
	return row.ID, nil
}

func (s *MemoryStore) GetCards(ctx context.Context, userID string) ([]models.Card, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, models.ErrMissingUserID
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	cards := []models.Card{}
	for _, card := range s.cards {
		if card.UserID == userID {
			cards = append(cards, card)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(cards, func(a, b models.Card) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return cards, nil
}

func (s *MemoryStore) GetCard(ctx context.Context, userID, cardID string) (*models.Card, error) {
	if err := checkIDs(userID, cardID); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	card, ok := s.cards[cardID]
	if !ok || card.UserID != userID {
		return nil, models.ErrCardNotFound
	}
	return &card, nil
}

func (s *MemoryStore) UpdateCard(ctx context.Context, userID, cardID string, update models.CardUpdate) error {
	_, err := s.apply(ctx, userID, cardID, nil, update)
	return err
}

func (s *MemoryStore) TransitionVideoStatus(ctx context.Context, userID, cardID string, from []models.VideoStatus, update models.CardUpdate) (bool, error) {
	applied, err := s.apply(ctx, userID, cardID, from, update)
	if errors.Is(err, models.ErrCardNotFound) {
		return false, nil
	}
	return applied, err
}

// apply mutates one card under the write lock. When from is non-nil the
// update only lands if the stored status is one of from.
func (s *MemoryStore) apply(ctx context.Context, userID, cardID string, from []models.VideoStatus, update models.CardUpdate) (bool, error) {
	if err := checkIDs(userID, cardID); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := update.Normalize(); err != nil {
		return false, err
	}
	if err := models.ValidateUpdate(&update); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards[cardID]
	if !ok || card.UserID != userID {
		return false, models.ErrCardNotFound
	}
	if from != nil && !slices.Contains(from, card.VideoGenerationStatus) {
		return false, nil
	}

	update.Apply(&card)
	card.UpdatedAt = s.now()
	if err := card.CheckVideoInvariant(); err != nil {
		return false, err
	}
	s.cards[cardID] = card
	return true, nil
}

func (s *MemoryStore) DeleteCard(ctx context.Context, userID, cardID string) error {
	if err := checkIDs(userID, cardID); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if card, ok := s.cards[cardID]; ok && card.UserID == userID {
		delete(s.cards, cardID)
	}
	return nil
}

func (s *MemoryStore) UpsertProfile(ctx context.Context, profile *models.UserProfile) error {
	if strings.TrimSpace(profile.ID) == "" {
		return models.ErrMissingUserID
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	existing, ok := s.profiles[profile.ID]
	if !ok {
		existing = models.UserProfile{ID: profile.ID, CreatedAt: now, APIKeys: map[models.Provider]string{}}
	}
	existing.Email = profile.Email
	existing.DisplayName = profile.DisplayName
	existing.PhotoURL = profile.PhotoURL
	existing.UpdatedAt = now
	s.profiles[profile.ID] = existing
	return nil
}

func (s *MemoryStore) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, models.ErrMissingUserID
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return nil, models.ErrProfileNotFound
	}
	keys := make(map[models.Provider]string, len(profile.APIKeys))
	for provider, key := range profile.APIKeys {
		keys[provider] = key
	}
	profile.APIKeys = keys
	return &profile, nil
}

func (s *MemoryStore) SaveAPIKeys(ctx context.Context, userID string, keys map[models.Provider]string) error {
	if strings.TrimSpace(userID) == "" {
		return models.ErrMissingUserID
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return models.ErrProfileNotFound
	}
	stored := make(map[models.Provider]string, len(keys))
	for provider, key := range keys {
		if key != "" {
			stored[provider] = key
		}
	}
	profile.APIKeys = stored
	profile.UpdatedAt = s.now()
	s.profiles[userID] = profile
	return nil
}

func checkIDs(userID, cardID string) error {
	if strings.TrimSpace(userID) == "" {
		return models.ErrMissingUserID
	}
	if strings.TrimSpace(cardID) == "" {
		return models.ErrMissingCardID
	}
	return nil
}

package supabase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/supabase-community/supabase-go"
	"tcg-card-studio/internal/models"
)

const profilesTable = "profiles"

type profileRow struct {
	ID          string            `json:"id"`
	Email       string            `json:"email"`
	DisplayName string            `json:"display_name"`
	PhotoURL    string            `json:"photo_url"`
	APIKeys     map[string]string `json:"api_keys"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// signInRow leaves api_keys and created_at out so a merge upsert keeps them.
type signInRow struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	PhotoURL    string    `json:"photo_url"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProfileStore keeps user profiles in the profiles table through PostgREST.
type ProfileStore struct {
	client *supabase.Client
	now    func() time.Time
}

func NewProfileStore(client *supabase.Client) *ProfileStore {
	return &ProfileStore{client: client, now: func() time.Time { return time.Now().UTC() }}
}

// UpsertProfile creates the profile on first sign-in and refreshes the
// identity fields afterwards. Stored API keys are left untouched.
func (p *ProfileStore) UpsertProfile(ctx context.Context, profile *models.UserProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(profile.ID) == "" {
		return models.ErrMissingUserID
	}

	row := signInRow{
		ID:          profile.ID,
		Email:       profile.Email,
		DisplayName: profile.DisplayName,
		PhotoURL:    profile.PhotoURL,
		UpdatedAt:   p.now(),
	}
	if _, _, err := p.client.From(profilesTable).Upsert(row, "id", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

func (p *ProfileStore) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(userID) == "" {
		return nil, models.ErrMissingUserID
	}

	var rows []profileRow
	if _, err := p.client.From(profilesTable).Select("*", "", false).Eq("id", userID).ExecuteTo(&rows); err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if len(rows) == 0 {
		return nil, models.ErrProfileNotFound
	}

	row := rows[0]
	profile := &models.UserProfile{
		ID:          row.ID,
		Email:       row.Email,
		DisplayName: row.DisplayName,
		PhotoURL:    row.PhotoURL,
		APIKeys:     make(map[models.Provider]string, len(row.APIKeys)),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	for provider, key := range row.APIKeys {
		profile.APIKeys[models.Provider(provider)] = key
	}
	return profile, nil
}

// SaveAPIKeys replaces the stored key map.
func (p *ProfileStore) SaveAPIKeys(ctx context.Context, userID string, keys map[models.Provider]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(userID) == "" {
		return models.ErrMissingUserID
	}

	stored := make(map[string]string, len(keys))
	for provider, key := range keys {
		if key != "" {
			stored[string(provider)] = key
		}
	}
	update := map[string]any{
		"api_keys":   stored,
		"updated_at": p.now(),
	}
	if _, _, err := p.client.From(profilesTable).Update(update, "minimal", "").Eq("id", userID).Execute(); err != nil {
		return fmt.Errorf("failed to save api keys: %w", err)
	}
	return nil
}

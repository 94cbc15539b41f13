package genai

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"tcg-card-studio/internal/models"
)

// ProfileLookup is the part of the profile store the resolver needs.
type ProfileLookup interface {
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
}

// CredentialResolver picks the API key for a call: the user's own key for the
// provider, then the deployment default.
type CredentialResolver struct {
	profiles ProfileLookup
	defaults map[models.Provider]string
	logger   *slog.Logger
}

func NewCredentialResolver(profiles ProfileLookup, defaults map[models.Provider]string, logger *slog.Logger) *CredentialResolver {
	return &CredentialResolver{profiles: profiles, defaults: defaults, logger: logger}
}

// Resolve returns the key to use, or a *CredentialError matching
// ErrAPIKeyRequired. Profile lookup failures fall back to the default.
func (r *CredentialResolver) Resolve(ctx context.Context, userID string, provider models.Provider) (string, error) {
	if r.profiles != nil && strings.TrimSpace(userID) != "" {
		profile, err := r.profiles.GetProfile(ctx, userID)
		switch {
		case err == nil:
			if key := strings.TrimSpace(profile.APIKeys[provider]); key != "" {
				return key, nil
			}
		case errors.Is(err, models.ErrProfileNotFound):
		default:
			r.logger.Warn("api key lookup failed, using default",
				"user_id", userID,
				"provider", provider,
				"error", err,
			)
		}
	}

	if key := strings.TrimSpace(r.defaults[provider]); key != "" {
		return key, nil
	}
	return "", &CredentialError{Provider: string(provider)}
}

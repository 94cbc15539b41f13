package models

import (
	"sort"
	"time"
)

// Provider names a class of AI model a user can bring their own key for.
type Provider string

const (
	ProviderImage  Provider = "image"
	ProviderVision Provider = "vision"
	ProviderVideo  Provider = "video"
)

func (p Provider) Valid() bool {
	return p == ProviderImage || p == ProviderVision || p == ProviderVideo
}

// UserProfile is stored in the profiles table, one row per auth identity.
type UserProfile struct {
	ID          string              `json:"id"`
	Email       string              `json:"email"`
	DisplayName string              `json:"display_name,omitempty"`
	PhotoURL    string              `json:"photo_url,omitempty"`
	APIKeys     map[Provider]string `json:"api_keys,omitempty"`
	CreatedAt   time.Time           `json:"created_at,omitempty"`
	UpdatedAt   time.Time           `json:"updated_at,omitempty"`
}

// ConfiguredProviders lists providers with a non-empty key, sorted.
func (p *UserProfile) ConfiguredProviders() []string {
	out := make([]string, 0, len(p.APIKeys))
	for provider, key := range p.APIKeys {
		if key != "" {
			out = append(out, string(provider))
		}
	}
	sort.Strings(out)
	return out
}

package supabase

import (
	"fmt"

	"github.com/supabase-community/supabase-go"
	"tcg-card-studio/internal/config"
)

// Client is the service-role Supabase client used for the PostgREST tables.
type Client struct {
	Supabase *supabase.Client
	Config   *config.Config
}

func NewClient(cfg *config.Config) (*Client, error) {
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &Client{
		Supabase: client,
		Config:   cfg,
	}, nil
}

// Profiles returns the profile store backed by this client.
func (c *Client) Profiles() *ProfileStore {
	return NewProfileStore(c.Supabase)
}

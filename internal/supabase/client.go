package supabase

import (
	"fmt"
	"net/http"

	"github.com/supabase-community/supabase-go"

	"visual-library-backend/internal/config"
)

// Client is the project facade. Table access goes through DatabaseClient;
// the facade supplies the Auth API and the broadcast endpoint settings.
type Client struct {
	Supabase *supabase.Client
	Config   *config.Config
}

func NewClient(cfg *config.Config) (*Client, error) {
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &Client{
		Supabase: client,
		Config:   cfg,
	}, nil
}

// Profiles returns the Auth-backed profile store.
func (c *Client) Profiles() *AuthClient {
	return NewAuthClient(c.Supabase.Auth)
}

// Realtime returns a broadcast publisher for the same project and key.
func (c *Client) Realtime(httpClient *http.Client) *RealtimeClient {
	return NewRealtimeClient(c.Config.SupabaseURL, c.Config.SupabasePublishableKey, httpClient)
}

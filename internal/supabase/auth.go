package supabase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	gotrue "github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"

	"visual-library-backend/internal/models"
)

// AuthClient reads and writes the signed-in user's profile through Supabase Auth.
// Every call runs with the caller's own access token.
type AuthClient struct {
	auth gotrue.Client
}

func NewAuthClient(auth gotrue.Client) *AuthClient {
	return &AuthClient{auth: auth}
}

type ProfileUpdate struct {
	DisplayName *string
	Username    *string
	Metadata    *models.UserMetadata
}

func (a *AuthClient) GetProfile(_ context.Context, accessToken string) (*models.Profile, error) {
	resp, err := a.auth.WithToken(accessToken).GetUser()
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toProfile(resp.User)
}

// UpdateProfile merges the given fields into the user's metadata.
func (a *AuthClient) UpdateProfile(ctx context.Context, accessToken string, update ProfileUpdate) (*models.Profile, error) {
	data := map[string]interface{}{}
	if update.DisplayName != nil {
		data["display_name"] = *update.DisplayName
	}
	if update.Username != nil {
		data["username"] = *update.Username
	}
	if update.Metadata != nil {
		data[models.MetadataKey] = update.Metadata.Encode()
	}
	if len(data) == 0 {
		return a.GetProfile(ctx, accessToken)
	}

	resp, err := a.auth.WithToken(accessToken).UpdateUser(types.UpdateUserRequest{Data: data})
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return toProfile(resp.User)
}

// FigmaToken returns the design-tool token stored in the profile, or "" if none.
func (a *AuthClient) FigmaToken(ctx context.Context, accessToken string) (string, error) {
	profile, err := a.GetProfile(ctx, accessToken)
	if err != nil {
		return "", err
	}
	return profile.Metadata.FigmaToken, nil
}

// SaveTheme stores a derived palette while keeping the rest of the metadata.
func (a *AuthClient) SaveTheme(ctx context.Context, accessToken string, theme models.Theme) (*models.Profile, error) {
	profile, err := a.GetProfile(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	meta := profile.Metadata
	meta.Theme = &theme
	return a.UpdateProfile(ctx, accessToken, ProfileUpdate{Metadata: &meta})
}

func toProfile(u types.User) (*models.Profile, error) {
	meta, err := models.DecodeUserMetadata(u.UserMetadata)
	if err != nil {
		return nil, err
	}
	if meta.Newer() {
		log.Warn().
			Str("userID", u.ID.String()).
			Int("version", meta.Version).
			Msg("user metadata written by a newer schema; using known fields")
	}
	profile := &models.Profile{
		ID:       u.ID,
		Email:    u.Email,
		Metadata: meta,
	}
	if v, ok := u.UserMetadata["username"].(string); ok {
		profile.Username = v
	}
	if v, ok := u.UserMetadata["display_name"].(string); ok {
		profile.DisplayName = v
	}
	return profile, nil
}

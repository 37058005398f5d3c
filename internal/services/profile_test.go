package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visual-library-backend/internal/errs"
	"visual-library-backend/internal/models"
	"visual-library-backend/internal/supabase"
	"visual-library-backend/internal/theme"
)

type fakeProfiles struct {
	profile models.Profile
	updates []supabase.ProfileUpdate
}

func (f *fakeProfiles) GetProfile(context.Context, string) (*models.Profile, error) {
	p := f.profile
	return &p, nil
}

func (f *fakeProfiles) UpdateProfile(_ context.Context, _ string, u supabase.ProfileUpdate) (*models.Profile, error) {
	f.updates = append(f.updates, u)
	if u.Username != nil {
		f.profile.Username = *u.Username
	}
	if u.DisplayName != nil {
		f.profile.DisplayName = *u.DisplayName
	}
	if u.Metadata != nil {
		f.profile.Metadata = *u.Metadata
	}
	p := f.profile
	return &p, nil
}

func (f *fakeProfiles) SaveTheme(_ context.Context, _ string, t models.Theme) (*models.Profile, error) {
	f.profile.Metadata.Theme = &t
	p := f.profile
	return &p, nil
}

type fakeDeriver struct {
	theme models.Theme
	err   error
	urls  []string
}

func (f *fakeDeriver) Derive(_ context.Context, url string) (models.Theme, error) {
	f.urls = append(f.urls, url)
	return f.theme, f.err
}

func TestProfileUpdate(t *testing.T) {
	profiles := &fakeProfiles{profile: models.Profile{Metadata: models.UserMetadata{
		Version: models.UserMetadataVersion,
		Theme:   &models.Theme{Primary: "1 2% 3%", Secondary: "1 2% 3%"},
	}}}
	svc := NewProfileService(profiles, &memStore{}, &fakeDeriver{})

	name, username, token := " Ada ", "Ada_L", " figd_x "
	p, err := svc.Update(context.Background(), "tok", models.UpdateProfileRequest{
		DisplayName: &name, Username: &username, FigmaToken: &token,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.DisplayName)
	assert.Equal(t, "ada_l", p.Username)
	assert.Equal(t, "figd_x", p.Metadata.FigmaToken)
	require.NotNil(t, p.Metadata.Theme)
	assert.Equal(t, "1 2% 3%", p.Metadata.Theme.Primary)
}

func TestProfileUpdate_InvalidUsername(t *testing.T) {
	profiles := &fakeProfiles{}
	bad := "no spaces allowed"
	_, err := NewProfileService(profiles, &memStore{}, &fakeDeriver{}).Update(context.Background(), "tok", models.UpdateProfileRequest{Username: &bad})
	assert.True(t, errs.IsBadRequest(err))
	assert.Empty(t, profiles.updates)
}

func TestSyncTheme_UsesNewestCover(t *testing.T) {
	owner := uuid.New()
	store := &memStore{projects: []models.Project{
		{ID: uuid.New(), UserID: owner, Title: "No Cover"},
		{ID: uuid.New(), UserID: owner, Title: "Newest", ImageURL: "https://cdn.test/new.png"},
		{ID: uuid.New(), UserID: owner, Title: "Older", ImageURL: "https://cdn.test/old.png"},
	}}
	profiles := &fakeProfiles{}
	deriver := &fakeDeriver{theme: models.Theme{Primary: "210 40% 50%", Secondary: "30 60% 45%"}}

	resp, err := NewProfileService(profiles, store, deriver).SyncTheme(context.Background(), "tok", owner)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.test/new.png"}, deriver.urls)
	assert.Equal(t, "Newest", resp.SourceName)
	assert.Equal(t, "210 40% 50%", resp.Theme.Primary)
	require.NotNil(t, profiles.profile.Metadata.Theme)
	assert.Equal(t, "30 60% 45%", profiles.profile.Metadata.Theme.Secondary)
}

func TestSyncTheme_Failures(t *testing.T) {
	owner := uuid.New()
	_, err := NewProfileService(&fakeProfiles{}, &memStore{}, &fakeDeriver{}).SyncTheme(context.Background(), "tok", owner)
	assert.True(t, errs.IsBadRequest(err))

	store := &memStore{projects: []models.Project{{UserID: owner, ImageURL: "https://cdn.test/a.png"}}}
	profiles := &fakeProfiles{}
	deriver := &fakeDeriver{err: fmt.Errorf("%w: bad json", theme.ErrInvalidPalette)}
	_, err = NewProfileService(profiles, store, deriver).SyncTheme(context.Background(), "tok", owner)
	assert.Equal(t, 502, errs.StatusCode(err))
	assert.ErrorIs(t, err, theme.ErrInvalidPalette)
	assert.Nil(t, profiles.profile.Metadata.Theme)
}

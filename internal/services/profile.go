package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"visual-library-backend/internal/errs"
	"visual-library-backend/internal/models"
	"visual-library-backend/internal/supabase"
	"visual-library-backend/internal/theme"
)

type ProfileStore interface {
	GetProfile(ctx context.Context, accessToken string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, accessToken string, update supabase.ProfileUpdate) (*models.Profile, error)
	SaveTheme(ctx context.Context, accessToken string, t models.Theme) (*models.Profile, error)
}

type ThemeDeriver interface {
	Derive(ctx context.Context, imageURL string) (models.Theme, error)
}

type ProjectLister interface {
	ListProjects(ctx context.Context, ownerID uuid.UUID) ([]models.Project, error)
}

type ProfileService struct {
	profiles ProfileStore
	projects ProjectLister
	deriver  ThemeDeriver
	logger   zerolog.Logger
}

func NewProfileService(profiles ProfileStore, projects ProjectLister, deriver ThemeDeriver) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		projects: projects,
		deriver:  deriver,
		logger:   log.With().Str("service", "profile").Logger(),
	}
}

func (s *ProfileService) Get(ctx context.Context, accessToken string) (*models.Profile, error) {
	return s.profiles.GetProfile(ctx, accessToken)
}

// Update writes display name, username and design-tool token. Nil fields are left alone.
func (s *ProfileService) Update(ctx context.Context, accessToken string, req models.UpdateProfileRequest) (*models.Profile, error) {
	update := supabase.ProfileUpdate{}
	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		update.DisplayName = &name
	}
	if req.Username != nil {
		username, err := models.NormalizeUsername(*req.Username)
		if err != nil {
			return nil, errs.NewBadRequestError(err.Error()).WithField("username")
		}
		update.Username = &username
	}
	if req.FigmaToken != nil {
		current, err := s.profiles.GetProfile(ctx, accessToken)
		if err != nil {
			return nil, err
		}
		meta := current.Metadata
		meta.FigmaToken = strings.TrimSpace(*req.FigmaToken)
		update.Metadata = &meta
	}
	return s.profiles.UpdateProfile(ctx, accessToken, update)
}

// SyncTheme derives a palette from the newest project cover and stores it in the profile.
func (s *ProfileService) SyncTheme(ctx context.Context, accessToken string, ownerID uuid.UUID) (*models.ThemeResponse, error) {
	if s.projects == nil {
		return nil, errs.NewInternalError("database not available")
	}
	projects, err := s.projects.ListProjects(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	var source *models.Project
	for i := range projects {
		if projects[i].ImageURL != "" {
			source = &projects[i]
			break
		}
	}
	if source == nil {
		return nil, errs.NewBadRequestError("archive a project with a cover image before syncing the theme")
	}

	t, err := s.deriver.Derive(ctx, source.ImageURL)
	if err != nil {
		if errors.Is(err, theme.ErrInvalidPalette) {
			return nil, errs.NewUpstreamError("model returned an unusable palette").WithCause(err)
		}
		return nil, errs.NewUpstreamError("failed to derive theme").WithCause(err)
	}
	if _, err := s.profiles.SaveTheme(ctx, accessToken, t); err != nil {
		return nil, err
	}

	s.logger.Info().Str("source_project", source.ID.String()).Str("primary", t.Primary).Msg("theme synced")
	return &models.ThemeResponse{Theme: t, SourceURL: source.ImageURL, SourceName: source.Title}, nil
}

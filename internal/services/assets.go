package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"visual-library-backend/internal/ai"
	"visual-library-backend/internal/errs"
	"visual-library-backend/internal/intake"
	"visual-library-backend/internal/models"
	"visual-library-backend/internal/supabase"
)

var visualLabels = map[models.VisualType]string{
	models.VisualInfographic:  "Infographic",
	models.VisualUserFlow:     "User Flow",
	models.VisualArchitecture: "Architecture",
	models.VisualGantt:        "Gantt Chart",
	models.VisualMindmap:      "Mindmap",
}

type AssetStore interface {
	GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error)
	CountMilestones(ctx context.Context, projectID uuid.UUID) (int, error)
	CreateMilestone(ctx context.Context, m *models.ProjectMilestone) error
	CreateVisual(ctx context.Context, v *models.ProjectVisual) error
}

type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (ai.Image, error)
}

// AssetService stores the media attached to a project after intake:
// milestone images and generated diagrams.
type AssetService struct {
	store   AssetStore
	objects ObjectStore
	images  ImageGenerator
	now     func() time.Time
	logger  zerolog.Logger
}

func NewAssetService(store AssetStore, objects ObjectStore, images ImageGenerator) *AssetService {
	return &AssetService{
		store:   store,
		objects: objects,
		images:  images,
		now:     time.Now,
		logger:  log.With().Str("service", "assets").Logger(),
	}
}

// ownedProject loads a project and hides it from anyone but its owner.
func (s *AssetService) ownedProject(ctx context.Context, projectID, ownerID uuid.UUID) (*models.Project, error) {
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != ownerID {
		return nil, fmt.Errorf("failed to load project: %w", supabase.ErrNotFound)
	}
	return project, nil
}

type MilestoneInput struct {
	Title       string
	Description string
	Image       *Upload
}

// CreateMilestone appends a milestone at position count+1. Gaps left by
// deletions are not filled.
func (s *AssetService) CreateMilestone(ctx context.Context, ownerID, projectID uuid.UUID, in MilestoneInput) (*models.ProjectMilestone, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, errs.NewBadRequestError("milestone title is required")
	}
	if _, err := s.ownedProject(ctx, projectID, ownerID); err != nil {
		return nil, err
	}

	count, err := s.store.CountMilestones(ctx, projectID)
	if err != nil {
		return nil, err
	}

	m := &models.ProjectMilestone{
		ProjectID:   projectID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Order:       count + 1,
	}
	if in.Image != nil && len(in.Image.Data) > 0 {
		url, err := s.objects.Upload(ctx, intake.MilestonePath(projectID, s.now(), in.Image.Name), in.Image.Data, in.Image.ContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to upload milestone image: %w", err)
		}
		m.ImageURL = url
	}

	if err := s.store.CreateMilestone(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// GenerateVisual renders a diagram of the given type for a project and stores it.
func (s *AssetService) GenerateVisual(ctx context.Context, userID, projectID uuid.UUID, visualType models.VisualType, request string) (*models.ProjectVisual, error) {
	label, ok := visualLabels[visualType]
	if !ok {
		return nil, errs.NewBadRequestError(fmt.Sprintf("unknown visual type %q", visualType))
	}
	request = strings.TrimSpace(request)
	if request == "" {
		return nil, errs.NewBadRequestError("prompt is required")
	}

	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	img, err := s.images.GenerateImage(ctx, ai.VisualPrompt(label, project.Title, project.Description, request))
	if err != nil {
		return nil, errs.NewUpstreamError("failed to generate visual").WithCause(err)
	}
	path := fmt.Sprintf("visuals/%s-%s.%s", projectID, uuid.New(), img.Extension())
	url, err := s.objects.Upload(ctx, path, img.Data, img.MIMEType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload visual: %w", err)
	}

	v := &models.ProjectVisual{
		ProjectID:  projectID,
		UserID:     userID,
		VisualType: visualType,
		ImageURL:   url,
		Prompt:     request,
	}
	if err := s.store.CreateVisual(ctx, v); err != nil {
		return nil, err
	}
	s.logger.Info().Str("project_id", projectID.String()).Str("visual_type", string(visualType)).Msg("visual generated")
	return v, nil
}

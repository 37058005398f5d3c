// Package intake turns sources (URLs, connector accounts, uploaded files)
// into archived projects. Every pipeline runs its remote calls strictly in
// sequence, reports each failure once and never retries.
package intake

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"visual-library-backend/internal/ai"
	"visual-library-backend/internal/figma"
	"visual-library-backend/internal/importer"
	"visual-library-backend/internal/models"
	"visual-library-backend/internal/supabase"
)

// CoverSuffix is appended to every cover image prompt.
const CoverSuffix = " -- High quality, architectural, clean, professional aesthetic."

type Generator interface {
	SynthesizeProject(ctx context.Context, src ai.Sources) (ai.ProjectSynthesis, error)
	DescribeImage(ctx context.Context, data []byte, mimeType, publicURL string) (ai.ImageDescription, error)
	SynthesizePlaceholder(ctx context.Context, platform, value string) (ai.Placeholder, error)
	AuditProject(ctx context.Context, title, description, category string) (ai.Audit, error)
	GenerateImage(ctx context.Context, prompt string) (ai.Image, error)
}

type ObjectStore interface {
	Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error)
}

type ProjectStore interface {
	CreateProject(ctx context.Context, p *models.Project) error
	CreateAudit(ctx context.Context, a *models.ProjectAudit) error
}

type Importer interface {
	Import(ctx context.Context, url, provider string) ([]importer.Item, error)
}

type DesignImporter interface {
	ImportFile(ctx context.Context, token, fileKey string) (*figma.Design, error)
}

// TokenSource reads the design-tool token from the owner's profile.
type TokenSource interface {
	FigmaToken(ctx context.Context, accessToken string) (string, error)
}

type Publisher interface {
	PublishUserEvent(ctx context.Context, userID uuid.UUID, event string, payload map[string]interface{}) error
}

type Dependencies struct {
	Generator Generator
	Store     ObjectStore
	Projects  ProjectStore
	Importer  Importer
	Designs   DesignImporter
	Tokens    TokenSource
	Publisher Publisher
}

type Pipeline struct {
	gen       Generator
	store     ObjectStore
	projects  ProjectStore
	importer  Importer
	designs   DesignImporter
	tokens    TokenSource
	publisher Publisher
	now       func() time.Time
	newID     func() uuid.UUID
	logger    zerolog.Logger
}

func NewPipeline(deps Dependencies) *Pipeline {
	return &Pipeline{
		gen:       deps.Generator,
		store:     deps.Store,
		projects:  deps.Projects,
		importer:  deps.Importer,
		designs:   deps.Designs,
		tokens:    deps.Tokens,
		publisher: deps.Publisher,
		now:       time.Now,
		newID:     uuid.New,
		logger:    log.With().Str("service", "intake").Logger(),
	}
}

type GenerateInput struct {
	GithubURL string
	DemoURL   string
	Archive   *File
}

// Generate synthesizes a project from a repository URL, a demo URL and/or an
// archive, generates its cover, audits it and archives it.
func (p *Pipeline) Generate(ctx context.Context, owner Owner, in GenerateInput) (*Result, error) {
	in.GithubURL = strings.TrimSpace(in.GithubURL)
	in.DemoURL = strings.TrimSpace(in.DemoURL)
	if in.GithubURL == "" && in.DemoURL == "" && (in.Archive == nil || len(in.Archive.Data) == 0) {
		return nil, ErrNoSource
	}

	draft := Draft{GithubURL: in.GithubURL, DemoURL: in.DemoURL}

	if in.Archive != nil && len(in.Archive.Data) > 0 {
		url, err := p.store.Upload(ctx, ArchivePath(p.now(), in.Archive.Name), in.Archive.Data, in.Archive.contentType())
		if err != nil {
			return &Result{Draft: draft}, stepErr(StepUploadArchive, err)
		}
		draft.ArchiveURL = url
	}

	src := ai.Sources{SourceURL: draft.GithubURL, DemoURL: draft.DemoURL, ArchiveURL: draft.ArchiveURL}
	if err := p.synthesize(ctx, &draft, src); err != nil {
		return &Result{Draft: draft}, err
	}

	audit, err := p.gen.AuditProject(ctx, draft.Title, draft.Description, draft.Category)
	if err != nil {
		p.logger.Warn().Err(err).Str("title", draft.Title).Msg("project audit failed, archiving without audit")
		return p.save(ctx, owner, draft, nil)
	}
	return p.save(ctx, owner, draft, &audit)
}

// synthesize fills the draft from a structured model call, then generates its cover.
func (p *Pipeline) synthesize(ctx context.Context, draft *Draft, src ai.Sources) error {
	out, err := p.gen.SynthesizeProject(ctx, src)
	if err != nil {
		return stepErr(StepSynthesize, err)
	}
	if !out.Complete() {
		return stepErr(StepSynthesize, ErrSynthesisIncomplete)
	}

	draft.Title = strings.TrimSpace(out.Title)
	draft.Description = strings.TrimSpace(out.Description)
	draft.Category = strings.TrimSpace(out.Category)
	draft.MediaType = models.ParseMediaType(out.MediaType)
	draft.VideoURL = strings.TrimSpace(out.VideoURL)
	draft.Tags = models.JoinTags(out.Tags)

	cover, err := p.generateCover(ctx, out.SuggestedImagePrompt)
	if err != nil {
		return err
	}
	draft.ImageURL = cover
	return nil
}

// generateCover renders an image for prompt and stores it under generated/.
func (p *Pipeline) generateCover(ctx context.Context, prompt string) (string, error) {
	img, err := p.gen.GenerateImage(ctx, prompt+CoverSuffix)
	if err != nil {
		return "", stepErr(StepGenerateImage, err)
	}
	url, err := p.store.Upload(ctx, GeneratedPath(p.newID(), img.Extension()), img.Data, img.MIMEType)
	if err != nil {
		return "", stepErr(StepUploadImage, err)
	}
	return url, nil
}

// Save archives a manually completed draft.
func (p *Pipeline) Save(ctx context.Context, owner Owner, draft Draft) (*Result, error) {
	return p.save(ctx, owner, draft, nil)
}

func (p *Pipeline) save(ctx context.Context, owner Owner, draft Draft, audit *ai.Audit) (*Result, error) {
	if !draft.Ready() {
		return &Result{Draft: draft}, ErrIncompleteDraft
	}

	project := draft.project(owner.UserID)
	if err := p.projects.CreateProject(ctx, project); err != nil {
		return &Result{Draft: draft}, stepErr(StepSave, err)
	}
	result := &Result{Project: project, Draft: draft}

	if audit != nil {
		auditType := strings.TrimSpace(audit.AuditType)
		if auditType == "" {
			auditType = "Quality"
		}
		record := &models.ProjectAudit{
			ProjectID:       project.ID,
			UserID:          owner.UserID,
			AuditType:       auditType,
			Score:           models.ClampScore(audit.Score),
			Findings:        audit.Findings,
			Recommendations: audit.Recommendations,
			Status:          models.AuditStatusActive,
		}
		if err := p.projects.CreateAudit(ctx, record); err != nil {
			p.logger.Warn().Err(err).Str("project_id", project.ID.String()).Msg("failed to store project audit")
		} else {
			result.Audit = record
		}
	}

	p.publishArchived(ctx, owner, project)

	p.logger.Info().
		Str("project_id", project.ID.String()).
		Str("title", project.Title).
		Bool("audited", result.Audit != nil).
		Msg("project archived")
	return result, nil
}

func (p *Pipeline) publishArchived(ctx context.Context, owner Owner, project *models.Project) {
	if p.publisher == nil {
		return
	}
	err := p.publisher.PublishUserEvent(ctx, owner.UserID, supabase.EventProjectArchived, supabase.ProjectArchivedPayload(project))
	if err != nil {
		p.logger.Warn().Err(err).Str("project_id", project.ID.String()).Msg("failed to publish project_archived")
	}
}

package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"visual-library-backend/internal/ai"
	"visual-library-backend/internal/errs"
	"visual-library-backend/internal/models"
)

type Advisor interface {
	Recommend(ctx context.Context, portfolio ai.PortfolioContext) ([]ai.Recommendation, error)
	RewriteDescription(ctx context.Context, title, category, description string) (string, error)
	AuditProject(ctx context.Context, title, description, category string) (ai.Audit, error)
	Answer(ctx context.Context, portfolio ai.PortfolioContext, question string) (string, error)
}

type InsightStore interface {
	GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error)
	ListProjects(ctx context.Context, ownerID uuid.UUID) ([]models.Project, error)
	UpdateProject(ctx context.Context, p *models.Project) error
	CreateAudit(ctx context.Context, a *models.ProjectAudit) error
}

// InsightService runs the model-backed helpers around existing projects.
type InsightService struct {
	store   InsightStore
	advisor Advisor
	logger  zerolog.Logger
}

func NewInsightService(store InsightStore, advisor Advisor) *InsightService {
	return &InsightService{
		store:   store,
		advisor: advisor,
		logger:  log.With().Str("service", "insights").Logger(),
	}
}

// Portfolio summarizes projects as prompt context.
func Portfolio(projects []models.Project) ai.PortfolioContext {
	var pc ai.PortfolioContext
	categories := map[string]struct{}{}
	tags := map[string]struct{}{}
	for _, p := range projects {
		pc.Titles = append(pc.Titles, p.Title)
		if p.Category != "" {
			categories[p.Category] = struct{}{}
		}
		for _, t := range p.TagList() {
			tags[strings.ToLower(t)] = struct{}{}
		}
	}
	pc.Categories = sortedKeys(categories)
	pc.Tags = sortedKeys(tags)
	return pc
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (s *InsightService) Recommend(ctx context.Context, ownerID uuid.UUID) ([]ai.Recommendation, error) {
	projects, err := s.store.ListProjects(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	recs, err := s.advisor.Recommend(ctx, Portfolio(projects))
	if err != nil {
		return nil, errs.NewUpstreamError("failed to generate recommendations").WithCause(err)
	}
	return recs, nil
}

// Rewrite replaces a project's description with a professional rewrite.
func (s *InsightService) Rewrite(ctx context.Context, ownerID, projectID uuid.UUID) (*models.Project, error) {
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != ownerID {
		return nil, errs.NewNotFoundError("project not found")
	}

	text, err := s.advisor.RewriteDescription(ctx, project.Title, project.Category, project.Description)
	if err != nil {
		return nil, errs.NewUpstreamError("failed to rewrite description").WithCause(err)
	}
	text = strings.TrimSpace(ai.StripCodeFence(text))
	if text == "" {
		return nil, errs.NewUpstreamError("model returned an empty description")
	}

	project.Description = text
	if err := s.store.UpdateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// GenerateAudit runs a model audit on demand and stores it.
func (s *InsightService) GenerateAudit(ctx context.Context, ownerID, projectID uuid.UUID) (*models.ProjectAudit, error) {
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != ownerID {
		return nil, errs.NewNotFoundError("project not found")
	}

	out, err := s.advisor.AuditProject(ctx, project.Title, project.Description, project.Category)
	if err != nil {
		return nil, errs.NewUpstreamError("failed to audit project").WithCause(err)
	}
	auditType := strings.TrimSpace(out.AuditType)
	if auditType == "" {
		auditType = "Quality"
	}
	audit := &models.ProjectAudit{
		ProjectID:       project.ID,
		UserID:          ownerID,
		AuditType:       auditType,
		Score:           models.ClampScore(out.Score),
		Findings:        out.Findings,
		Recommendations: out.Recommendations,
		Status:          models.AuditStatusActive,
	}
	if err := s.store.CreateAudit(ctx, audit); err != nil {
		return nil, err
	}
	return audit, nil
}

// Ask answers a visitor's question with the public library as context.
func (s *InsightService) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", errs.NewBadRequestError("question is required")
	}
	projects, err := s.store.ListProjects(ctx, uuid.Nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("assistant answering without project context")
		projects = nil
	}
	var public []models.Project
	for _, p := range projects {
		if !p.IsPrivate() {
			public = append(public, p)
		}
	}
	answer, err := s.advisor.Answer(ctx, Portfolio(public), question)
	if err != nil {
		return "", errs.NewUpstreamError("assistant is unavailable").WithCause(err)
	}
	return strings.TrimSpace(answer), nil
}

// ManualAudit applies the defaults for an audit entered by hand.
func ManualAudit(projectID, ownerID uuid.UUID, req models.CreateAuditRequest) (*models.ProjectAudit, error) {
	audit := &models.ProjectAudit{
		ProjectID:       projectID,
		UserID:          ownerID,
		AuditType:       strings.TrimSpace(req.AuditType),
		Score:           100,
		Findings:        req.Findings,
		Recommendations: req.Recommendations,
		Status:          models.AuditStatusActive,
	}
	if audit.AuditType == "" {
		audit.AuditType = "Security"
	}
	if req.Score != nil {
		if *req.Score < 0 || *req.Score > 100 {
			return nil, errs.NewBadRequestError(fmt.Sprintf("score %d is outside 0-100", *req.Score))
		}
		audit.Score = *req.Score
	}
	return audit, nil
}

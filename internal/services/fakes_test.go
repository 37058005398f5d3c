package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"visual-library-backend/internal/ai"
	"visual-library-backend/internal/errs"
	"visual-library-backend/internal/models"
	"visual-library-backend/internal/supabase"
)

var errBoom = errors.New("boom")

// memStore is an in-memory stand-in for the database client.
type memStore struct {
	mu sync.Mutex

	projects      []models.Project
	testimonials  []models.Testimonial
	inquiries     []models.Inquiry
	reviews       []models.ProjectReview
	suggestions   []models.ProjectSuggestion
	audits        []models.ProjectAudit
	subscriptions []models.NewsletterSubscription
	milestones    []models.ProjectMilestone
	messages      []models.ProjectMessage
	views         []models.ProjectView
	clicks        []models.ProjectClick
	visuals       []models.ProjectVisual

	failOn  string
	deleted []string
}

func (s *memStore) fail(op string) error {
	if s.failOn == op {
		return errBoom
	}
	return nil
}

func (s *memStore) GetProject(_ context.Context, id uuid.UUID) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.projects {
		if s.projects[i].ID == id {
			p := s.projects[i]
			return &p, nil
		}
	}
	return nil, supabase.ErrNotFound
}

func (s *memStore) ListProjects(_ context.Context, owner uuid.UUID) ([]models.Project, error) {
	if err := s.fail("ListProjects"); err != nil {
		return nil, err
	}
	out := []models.Project{}
	for _, p := range s.projects {
		if owner == uuid.Nil || p.UserID == owner {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memStore) UpdateProject(_ context.Context, p *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.projects {
		if s.projects[i].ID == p.ID {
			s.projects[i] = *p
			return nil
		}
	}
	return supabase.ErrNotFound
}

func (s *memStore) ListTestimonials(context.Context, uuid.UUID) ([]models.Testimonial, error) {
	return s.testimonials, nil
}

func (s *memStore) ListInquiries(_ context.Context, owner uuid.UUID, siteWide bool) ([]models.Inquiry, error) {
	out := []models.Inquiry{}
	for _, i := range s.inquiries {
		if (i.UserID == nil && siteWide) || (i.UserID != nil && *i.UserID == owner) {
			out = append(out, i)
		}
	}
	return out, nil
}

func (s *memStore) ListOwnerReviews(context.Context, uuid.UUID) ([]models.ProjectReview, error) {
	return s.reviews, nil
}

func (s *memStore) ListOwnerSuggestions(context.Context, uuid.UUID) ([]models.ProjectSuggestion, error) {
	return s.suggestions, nil
}

func (s *memStore) ListOwnerAudits(context.Context, uuid.UUID) ([]models.ProjectAudit, error) {
	return s.audits, s.fail("ListOwnerAudits")
}

func (s *memStore) ListSubscriptions(context.Context) ([]models.NewsletterSubscription, error) {
	return s.subscriptions, nil
}

func (s *memStore) ListOwnerMilestones(context.Context, uuid.UUID) ([]models.ProjectMilestone, error) {
	return s.milestones, nil
}

func (s *memStore) ListOwnerMessages(context.Context, uuid.UUID) ([]models.ProjectMessage, error) {
	return s.messages, nil
}

func (s *memStore) ListOwnerViews(context.Context, uuid.UUID) ([]models.ProjectView, error) {
	return s.views, nil
}

func (s *memStore) ListOwnerClicks(context.Context, uuid.UUID) ([]models.ProjectClick, error) {
	return s.clicks, nil
}

func (s *memStore) record(kind string, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, kind+":"+id.String())
	return nil
}

func (s *memStore) DeleteProject(_ context.Context, id, _ uuid.UUID) error {
	return s.record("project", id)
}

func (s *memStore) DeleteTestimonial(_ context.Context, id, _ uuid.UUID) error {
	return s.record("testimonial", id)
}

func (s *memStore) DeleteInquiry(_ context.Context, id, _ uuid.UUID, _ bool) error {
	return s.record("inquiry", id)
}

func (s *memStore) DeleteReview(_ context.Context, id, _ uuid.UUID) error {
	return s.record("review", id)
}

func (s *memStore) DeleteSuggestion(_ context.Context, id, _ uuid.UUID) error {
	return s.record("suggestion", id)
}

func (s *memStore) DeleteAudit(_ context.Context, id, _ uuid.UUID) error {
	return s.record("audit", id)
}

func (s *memStore) DeleteSubscription(_ context.Context, id uuid.UUID) error {
	return s.record("subscription", id)
}

func (s *memStore) DeleteMilestone(_ context.Context, id, _ uuid.UUID) error {
	return s.record("milestone", id)
}

func (s *memStore) ClearMessages(_ context.Context, projectID, _ uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []models.ProjectMessage
	var n int64
	for _, m := range s.messages {
		if m.ProjectID == projectID {
			n++
			continue
		}
		kept = append(kept, m)
	}
	s.messages = kept
	s.deleted = append(s.deleted, "conversation:"+projectID.String())
	return n, nil
}

func (s *memStore) CreateMessage(_ context.Context, m *models.ProjectMessage) error {
	m.ID = uuid.New()
	s.messages = append(s.messages, *m)
	return nil
}

func (s *memStore) CreateInquiry(_ context.Context, i *models.Inquiry) error {
	if err := s.fail("CreateInquiry"); err != nil {
		return err
	}
	i.ID = uuid.New()
	s.inquiries = append(s.inquiries, *i)
	return nil
}

func (s *memStore) CreateSubscription(_ context.Context, sub *models.NewsletterSubscription) error {
	for _, existing := range s.subscriptions {
		if existing.Email == sub.Email {
			return fmt.Errorf("failed to create subscription: %w", errs.ErrConflict)
		}
	}
	sub.ID = uuid.New()
	s.subscriptions = append(s.subscriptions, *sub)
	return nil
}

func (s *memStore) CountMilestones(_ context.Context, projectID uuid.UUID) (int, error) {
	n := 0
	for _, m := range s.milestones {
		if m.ProjectID == projectID {
			n++
		}
	}
	return n, nil
}

func (s *memStore) CreateMilestone(_ context.Context, m *models.ProjectMilestone) error {
	m.ID = uuid.New()
	s.milestones = append(s.milestones, *m)
	return nil
}

func (s *memStore) CreateVisual(_ context.Context, v *models.ProjectVisual) error {
	v.ID = uuid.New()
	s.visuals = append(s.visuals, *v)
	return nil
}

func (s *memStore) CreateAudit(_ context.Context, a *models.ProjectAudit) error {
	a.ID = uuid.New()
	s.audits = append(s.audits, *a)
	return nil
}

type fakeObjects struct {
	paths []string
}

func (f *fakeObjects) Upload(_ context.Context, path string, _ []byte, _ string) (string, error) {
	f.paths = append(f.paths, path)
	return "https://cdn.test/" + path, nil
}

type fakePublisher struct {
	events []string
	err    error
}

func (f *fakePublisher) PublishProjectEvent(_ context.Context, projectID uuid.UUID, event string, _ map[string]interface{}) error {
	f.events = append(f.events, supabase.ProjectChannel(projectID)+"/"+event)
	return f.err
}

type fakeMailer struct {
	enabled       bool
	err           error
	confirmations []string
	approvals     []string
}

func (f *fakeMailer) Enabled() bool { return f.enabled }

func (f *fakeMailer) SendInquiryConfirmation(_ context.Context, _, email, _, _ string) error {
	f.confirmations = append(f.confirmations, email)
	return f.err
}

func (f *fakeMailer) SendApprovalNotice(_ context.Context, ownerEmail, title, feedback string) error {
	f.approvals = append(f.approvals, ownerEmail+"|"+title+"|"+feedback)
	return f.err
}

type fakeAdvisor struct {
	recs        []ai.Recommendation
	rewrite     string
	audit       ai.Audit
	answer      string
	err         error
	lastContext ai.PortfolioContext
}

func (f *fakeAdvisor) Recommend(_ context.Context, pc ai.PortfolioContext) ([]ai.Recommendation, error) {
	f.lastContext = pc
	return f.recs, f.err
}

func (f *fakeAdvisor) RewriteDescription(context.Context, string, string, string) (string, error) {
	return f.rewrite, f.err
}

func (f *fakeAdvisor) AuditProject(context.Context, string, string, string) (ai.Audit, error) {
	return f.audit, f.err
}

func (f *fakeAdvisor) Answer(_ context.Context, pc ai.PortfolioContext, _ string) (string, error) {
	f.lastContext = pc
	return f.answer, f.err
}

type fakeImages struct {
	prompts []string
	err     error
}

func (f *fakeImages) GenerateImage(_ context.Context, prompt string) (ai.Image, error) {
	f.prompts = append(f.prompts, prompt)
	return ai.Image{Data: []byte("img"), MIMEType: "image/jpeg"}, f.err
}

package intake

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"visual-library-backend/internal/ai"
	"visual-library-backend/internal/figma"
	"visual-library-backend/internal/importer"
	"visual-library-backend/internal/models"
)

var errBoom = errors.New("boom")

type fakeGenerator struct {
	synthesis   ai.ProjectSynthesis
	synthErr    error
	description ai.ImageDescription
	describeErr error
	placeholder ai.Placeholder
	audit       ai.Audit
	auditErr    error
	imageErr    error

	synthCalls       int
	describeCalls    int
	placeholderCalls int
	auditCalls       int
	imagePrompts     []string
	lastSources      ai.Sources
}

func (f *fakeGenerator) SynthesizeProject(_ context.Context, src ai.Sources) (ai.ProjectSynthesis, error) {
	f.synthCalls++
	f.lastSources = src
	return f.synthesis, f.synthErr
}

func (f *fakeGenerator) DescribeImage(_ context.Context, _ []byte, _, _ string) (ai.ImageDescription, error) {
	f.describeCalls++
	return f.description, f.describeErr
}

func (f *fakeGenerator) SynthesizePlaceholder(_ context.Context, _, _ string) (ai.Placeholder, error) {
	f.placeholderCalls++
	return f.placeholder, nil
}

func (f *fakeGenerator) AuditProject(_ context.Context, _, _, _ string) (ai.Audit, error) {
	f.auditCalls++
	return f.audit, f.auditErr
}

func (f *fakeGenerator) GenerateImage(_ context.Context, prompt string) (ai.Image, error) {
	f.imagePrompts = append(f.imagePrompts, prompt)
	if f.imageErr != nil {
		return ai.Image{}, f.imageErr
	}
	return ai.Image{Data: []byte("png"), MIMEType: "image/png"}, nil
}

type fakeStore struct {
	paths []string
	err   error
}

func (s *fakeStore) Upload(_ context.Context, path string, _ []byte, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.paths = append(s.paths, path)
	return "https://cdn.test/" + path, nil
}

type fakeProjects struct {
	mu       sync.Mutex
	projects []*models.Project
	audits   []*models.ProjectAudit
	err      error
}

func (s *fakeProjects) CreateProject(_ context.Context, p *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	p.ID = uuid.New()
	s.projects = append(s.projects, p)
	return nil
}

func (s *fakeProjects) CreateAudit(_ context.Context, a *models.ProjectAudit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = uuid.New()
	s.audits = append(s.audits, a)
	return nil
}

type fakeImporter struct {
	items []importer.Item
	err   error
	calls int
}

func (f *fakeImporter) Import(_ context.Context, _, _ string) ([]importer.Item, error) {
	f.calls++
	return f.items, f.err
}

type fakeDesigns struct {
	design *figma.Design
	err    error
	calls  int
}

func (f *fakeDesigns) ImportFile(_ context.Context, _, key string) (*figma.Design, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	d := *f.design
	d.FileKey = key
	return &d, nil
}

type fakeTokens struct {
	token string
}

func (f fakeTokens) FigmaToken(context.Context, string) (string, error) {
	return f.token, nil
}

type fakePublisher struct {
	events []string
}

func (f *fakePublisher) PublishUserEvent(_ context.Context, userID uuid.UUID, event string, _ map[string]interface{}) error {
	f.events = append(f.events, fmt.Sprintf("%s:%s", userID, event))
	return nil
}

type harness struct {
	gen       *fakeGenerator
	store     *fakeStore
	projects  *fakeProjects
	importer  *fakeImporter
	designs   *fakeDesigns
	publisher *fakePublisher
	pipeline  *Pipeline
	owner     Owner
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		gen:       &fakeGenerator{},
		store:     &fakeStore{},
		projects:  &fakeProjects{},
		importer:  &fakeImporter{},
		designs:   &fakeDesigns{},
		publisher: &fakePublisher{},
		owner:     Owner{UserID: uuid.New(), AccessToken: "token"},
	}
	h.pipeline = h.build(fakeTokens{})
	return h
}

func (h *harness) build(tokens TokenSource) *Pipeline {
	p := NewPipeline(Dependencies{
		Generator: h.gen,
		Store:     h.store,
		Projects:  h.projects,
		Importer:  h.importer,
		Designs:   h.designs,
		Tokens:    tokens,
		Publisher: h.publisher,
	})
	p.now = func() time.Time { return time.UnixMilli(1700000000000) }
	p.newID = func() uuid.UUID { return uuid.MustParse("11111111-2222-4333-8444-555555555555") }
	return p
}

func completeSynthesis() ai.ProjectSynthesis {
	return ai.ProjectSynthesis{
		Title:                "Orbit Dashboard",
		Description:          "A realtime analytics dashboard.",
		Category:             "Product",
		SuggestedImagePrompt: "isometric dashboard",
		MediaType:            "3d",
		Tags:                 []string{"react", "charts", "realtime", "saas", "ui"},
	}
}

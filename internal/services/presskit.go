package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/google/uuid"

	"visual-library-backend/internal/models"
)

var pressKitTemplate = template.Must(template.New("press-kit").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}} Press Kit</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; color: #18181b; max-width: 880px; margin: 48px auto; padding: 0 24px; }
h1 { font-size: 40px; letter-spacing: -0.02em; margin-bottom: 4px; }
h2 { font-size: 12px; text-transform: uppercase; letter-spacing: 0.2em; color: #71717a; margin-top: 48px; }
.project { display: flex; gap: 24px; margin: 24px 0; }
.project img { width: 240px; height: 160px; object-fit: cover; }
.meta { font-size: 12px; color: #71717a; text-transform: uppercase; letter-spacing: 0.1em; }
blockquote { margin: 16px 0; padding-left: 16px; border-left: 2px solid #18181b; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">Press kit generated {{.Generated}}</p>
<h2>Selected Work ({{len .Projects}})</h2>
{{range .Projects}}<div class="project">
{{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Title}}">{{end}}
<div>
<p class="meta">{{.Category}}</p>
<h3>{{.Title}}</h3>
<p>{{.Description}}</p>
{{if .DemoURL}}<p><a href="{{.DemoURL}}">{{.DemoURL}}</a></p>{{end}}
</div>
</div>
{{else}}<p>No public projects yet.</p>
{{end}}
{{if .Testimonials}}<h2>Testimonials</h2>
{{range .Testimonials}}<blockquote>
<p>{{.Content}}</p>
<p class="meta">{{.Name}}{{if .Role}}, {{.Role}}{{end}}{{if .Company}} at {{.Company}}{{end}}</p>
</blockquote>
{{end}}{{end}}
</body>
</html>
`))

type PressKitStore interface {
	ListProjects(ctx context.Context, ownerID uuid.UUID) ([]models.Project, error)
	ListTestimonials(ctx context.Context, ownerID uuid.UUID) ([]models.Testimonial, error)
}

type PressKitService struct {
	store PressKitStore
	title string
	now   func() time.Time
}

func NewPressKitService(store PressKitStore, title string) *PressKitService {
	return &PressKitService{store: store, title: title, now: time.Now}
}

// Render builds the press kit HTML from public projects and testimonials,
// optionally restricted to one owner.
func (s *PressKitService) Render(ctx context.Context, ownerID uuid.UUID) ([]byte, error) {
	projects, err := s.store.ListProjects(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	testimonials, err := s.store.ListTestimonials(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	public := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if !p.IsPrivate() {
			public = append(public, p)
		}
	}

	var buf bytes.Buffer
	err = pressKitTemplate.Execute(&buf, struct {
		Title        string
		Generated    string
		Projects     []models.Project
		Testimonials []models.Testimonial
	}{
		Title:        s.title,
		Generated:    s.now().Format("January 2, 2006"),
		Projects:     public,
		Testimonials: testimonials,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render press kit: %w", err)
	}
	return buf.Bytes(), nil
}

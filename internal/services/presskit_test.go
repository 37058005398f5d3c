package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visual-library-backend/internal/models"
)

func TestPressKitRender(t *testing.T) {
	store := &memStore{
		projects: []models.Project{
			{ID: uuid.New(), Title: "Atlas <Maps>", Category: "Web", Description: "Open maps.", ImageURL: "https://cdn.test/a.png", Visibility: models.VisibilityPublic},
			{ID: uuid.New(), Title: "Hidden Work", Visibility: models.VisibilityPrivate},
		},
		testimonials: []models.Testimonial{{Name: "Grace", Role: "CTO", Company: "Acme", Content: "Excellent."}},
	}
	svc := NewPressKitService(store, "LIBRARY01")
	svc.now = func() time.Time { return time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC) }

	html, err := svc.Render(context.Background(), uuid.Nil)
	require.NoError(t, err)
	out := string(html)

	assert.Contains(t, out, "<title>LIBRARY01 Press Kit</title>")
	assert.Contains(t, out, "Press kit generated May 4, 2026")
	assert.Contains(t, out, "Selected Work (1)")
	assert.Contains(t, out, "Atlas &lt;Maps&gt;")
	assert.NotContains(t, out, "Hidden Work")
	assert.Contains(t, out, "Grace, CTO at Acme")
}

func TestPressKitRender_Empty(t *testing.T) {
	html, err := NewPressKitService(&memStore{}, "LIBRARY01").Render(context.Background(), uuid.Nil)
	require.NoError(t, err)
	assert.Contains(t, string(html), "No public projects yet.")
	assert.NotContains(t, string(html), "Testimonials")
}

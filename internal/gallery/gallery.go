// Package gallery holds the read-side filters applied to project listings.
package gallery

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"visual-library-backend/internal/models"
)

// AllCategories disables the category filter.
const AllCategories = "All"

type Filter struct {
	Category string
	Query    string
}

// CanView reports whether viewer may see p. Private projects are visible to their owner only.
func CanView(p *models.Project, viewer uuid.UUID) bool {
	if !p.IsPrivate() {
		return true
	}
	return viewer != uuid.Nil && viewer == p.UserID
}

func VisibleTo(projects []models.Project, viewer uuid.UUID) []models.Project {
	out := make([]models.Project, 0, len(projects))
	for i := range projects {
		if CanView(&projects[i], viewer) {
			out = append(out, projects[i])
		}
	}
	return out
}

// Apply narrows projects by category equality and a case-insensitive
// substring match over title, description and tags.
func Apply(projects []models.Project, f Filter) []models.Project {
	category := strings.TrimSpace(f.Category)
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		if query != "" && !matches(p, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matches(p models.Project, query string) bool {
	return strings.Contains(strings.ToLower(p.Title), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.Tags), query)
}

// Categories returns "All" followed by the distinct categories, sorted.
func Categories(projects []models.Project) []string {
	seen := map[string]bool{}
	var cats []string
	for _, p := range projects {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		cats = append(cats, p.Category)
	}
	sort.Strings(cats)
	return append([]string{AllCategories}, cats...)
}

// SampleProjects is the curated set shown when the library is empty or unreadable.
func SampleProjects() []models.Project {
	return []models.Project{
		{
			ID:          uuid.MustParse("00000000-0000-4000-8000-000000000001"),
			Title:       "Abstract Architecture",
			Description: "A study of modern architectural forms and their interplay with natural light. This project explores the boundary between functionality and sculpture.",
			ImageURL:    "https://images.unsplash.com/photo-1486406146926-c627a92ad1ab?q=80&w=2070&auto=format&fit=crop",
			Category:    "Photography",
			MediaType:   models.MediaTypeImage,
			Visibility:  models.VisibilityPublic,
		},
		{
			ID:          uuid.MustParse("00000000-0000-4000-8000-000000000002"),
			Title:       "Oceanic Whispers",
			Description: "A collection of high-fashion editorials inspired by the fluid movement of deep-sea creatures and the iridescent textures of marine life.",
			ImageURL:    "https://images.unsplash.com/photo-1492691527719-9d1e07e534b4?q=80&w=2071&auto=format&fit=crop",
			Category:    "Fashion",
			MediaType:   models.MediaTypeImage,
			Visibility:  models.VisibilityPublic,
		},
		{
			ID:          uuid.MustParse("00000000-0000-4000-8000-000000000003"),
			Title:       "Urban Serenity",
			Description: "Finding peace within the chaos of metropolitan life. This series captures moments of stillness and beauty in unexpected city corners.",
			ImageURL:    "https://images.unsplash.com/photo-1449824913935-59a10b8d2000?q=80&w=2070&auto=format&fit=crop",
			Category:    "Editorial",
			MediaType:   models.MediaTypeImage,
			Visibility:  models.VisibilityPublic,
		},
	}
}

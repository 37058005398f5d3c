// Package analytics aggregates view and click records into dashboard figures.
package analytics

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"visual-library-backend/internal/models"
)

const (
	topProjectCount = 5
	nameLength      = 15
)

type ProjectStats struct {
	ProjectID  uuid.UUID `json:"project_id"`
	Name       string    `json:"name"`
	Views      int       `json:"views"`
	Clicks     int       `json:"clicks"`
	Engagement int       `json:"engagement"`
}

type Summary struct {
	TotalViews      int                      `json:"total_views"`
	TotalClicks     int                      `json:"total_clicks"`
	AvgViewDuration int                      `json:"avg_view_duration"`
	Projects        []ProjectStats           `json:"projects"`
	TopProjects     []ProjectStats           `json:"top_projects"`
	ClicksByType    map[models.ClickType]int `json:"clicks_by_type"`
}

func Summarize(projects []models.Project, views []models.ProjectView, clicks []models.ProjectClick) Summary {
	s := Summary{
		TotalViews:   len(views),
		TotalClicks:  len(clicks),
		Projects:     []ProjectStats{},
		TopProjects:  []ProjectStats{},
		ClicksByType: map[models.ClickType]int{},
	}

	viewsByProject := map[uuid.UUID]int{}
	total := 0
	for _, v := range views {
		viewsByProject[v.ProjectID]++
		total += v.ViewDuration
	}
	if len(views) > 0 {
		s.AvgViewDuration = roundDiv(total, len(views))
	}

	clicksByProject := map[uuid.UUID]int{}
	for _, c := range clicks {
		clicksByProject[c.ProjectID]++
		s.ClicksByType[c.ClickType]++
	}

	for _, p := range projects {
		stats := ProjectStats{
			ProjectID: p.ID,
			Name:      TruncateName(p.Title),
			Views:     viewsByProject[p.ID],
			Clicks:    clicksByProject[p.ID],
		}
		if stats.Views > 0 {
			stats.Engagement = roundDiv(stats.Clicks*100, stats.Views)
		}
		s.Projects = append(s.Projects, stats)
	}

	top := make([]ProjectStats, len(s.Projects))
	copy(top, s.Projects)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Views > top[j].Views })
	if len(top) > topProjectCount {
		top = top[:topProjectCount]
	}
	s.TopProjects = top
	return s
}

func roundDiv(a, b int) int {
	return int(math.Round(float64(a) / float64(b)))
}

// TruncateName shortens a title to 15 runes followed by "...".
func TruncateName(title string) string {
	r := []rune(title)
	if len(r) <= nameLength {
		return title
	}
	return string(r[:nameLength]) + "..."
}

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
	MediaType3D    MediaType = "3d"
)

// ParseMediaType falls back to image for unknown values.
func ParseMediaType(s string) MediaType {
	switch MediaType(strings.ToLower(strings.TrimSpace(s))) {
	case MediaTypeVideo:
		return MediaTypeVideo
	case MediaType3D:
		return MediaType3D
	default:
		return MediaTypeImage
	}
}

type Project struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	ImageURL    string     `json:"image_url"`
	MediaType   MediaType  `json:"media_type,omitempty"`
	VideoURL    string     `json:"video_url,omitempty"`
	GithubURL   string     `json:"github_url,omitempty"`
	DemoURL     string     `json:"demo_url,omitempty"`
	Tags        string     `json:"tags,omitempty"`
	ArchiveURL  string     `json:"archive_url,omitempty"`
	Visibility  Visibility `json:"visibility"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TagList splits the comma-joined tag string.
func (p *Project) TagList() []string {
	return SplitTags(p.Tags)
}

func (p *Project) IsPrivate() bool {
	return p.Visibility == VisibilityPrivate
}

func SplitTags(tags string) []string {
	var out []string
	for _, tag := range strings.Split(tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func JoinTags(tags []string) string {
	var kept []string
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			kept = append(kept, tag)
		}
	}
	return strings.Join(kept, ", ")
}

type AuditStatus string

const (
	AuditStatusActive   AuditStatus = "active"
	AuditStatusArchived AuditStatus = "archived"
)

type ProjectAudit struct {
	ID              uuid.UUID   `json:"id"`
	ProjectID       uuid.UUID   `json:"project_id"`
	UserID          uuid.UUID   `json:"user_id"`
	AuditType       string      `json:"audit_type"`
	Score           int         `json:"score"`
	Findings        string      `json:"findings"`
	Recommendations string      `json:"recommendations"`
	Status          AuditStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
}

// ClampScore keeps audit scores within 0..100.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

type ProjectMilestone struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"project_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url,omitempty"`
	Order       int       `json:"milestone_order"`
	CreatedAt   time.Time `json:"created_at"`
}

type VisualType string

const (
	VisualInfographic  VisualType = "infographic"
	VisualUserFlow     VisualType = "user_flow"
	VisualArchitecture VisualType = "architecture"
	VisualGantt        VisualType = "gantt"
	VisualMindmap      VisualType = "mindmap"
)

var VisualTypes = []VisualType{VisualInfographic, VisualUserFlow, VisualArchitecture, VisualGantt, VisualMindmap}

func (v VisualType) Valid() bool {
	for _, known := range VisualTypes {
		if v == known {
			return true
		}
	}
	return false
}

type ProjectVisual struct {
	ID         uuid.UUID  `json:"id"`
	ProjectID  uuid.UUID  `json:"project_id"`
	UserID     uuid.UUID  `json:"user_id"`
	VisualType VisualType `json:"visual_type"`
	ImageURL   string     `json:"image_url"`
	Prompt     string     `json:"prompt"`
	CreatedAt  time.Time  `json:"created_at"`
}

package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ProjectSynthesis is the structured description of a project derived from its sources.
type ProjectSynthesis struct {
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Category             string   `json:"category"`
	SuggestedImagePrompt string   `json:"suggestedImagePrompt"`
	MediaType            string   `json:"mediaType"`
	VideoURL             string   `json:"videoUrl"`
	Tags                 []string `json:"tags"`
}

// Complete reports whether every field the pipeline depends on is present.
func (s ProjectSynthesis) Complete() bool {
	return strings.TrimSpace(s.Title) != "" &&
		strings.TrimSpace(s.Description) != "" &&
		strings.TrimSpace(s.Category) != "" &&
		strings.TrimSpace(s.SuggestedImagePrompt) != ""
}

// Sources lists the locations a synthesis prompt may reference.
type Sources struct {
	SourceURL  string
	DemoURL    string
	ArchiveURL string
}

func synthesisPrompt(src Sources) string {
	var b strings.Builder
	b.WriteString("Analyze this project.\n")
	if src.SourceURL != "" {
		fmt.Fprintf(&b, "Source repository: %s\n", src.SourceURL)
	}
	if src.DemoURL != "" {
		fmt.Fprintf(&b, "Live demo: %s\n", src.DemoURL)
	}
	if src.ArchiveURL != "" {
		fmt.Fprintf(&b, "Project archive: %s\n", src.ArchiveURL)
	}
	b.WriteString(`Provide a professional title, a compelling 3-sentence description for a visual library,
and a broad category (e.g., Technology, Design, Fintech, Social).
Also suggest a prompt for a high-quality abstract background image representing this project.
Determine if this project would benefit from a video or 3D showcase and choose a media type ('image', 'video', '3d').
If a video walkthrough URL is known, include it as videoUrl.
Provide 5-8 relevant descriptive tags (e.g., "Minimalist", "React", "Visual", "Data-driven").`)
	return b.String()
}

func (c *Client) SynthesizeProject(ctx context.Context, src Sources) (ProjectSynthesis, error) {
	var out ProjectSynthesis
	if err := c.generateObject(ctx, []*genai.Part{genai.NewPartFromText(synthesisPrompt(src))}, synthesisSchema, &out); err != nil {
		return ProjectSynthesis{}, fmt.Errorf("failed to synthesize project: %w", err)
	}
	return out, nil
}

// ImageDescription is what the vision model reads off an uploaded cover.
type ImageDescription struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

func (c *Client) DescribeImage(ctx context.Context, data []byte, mimeType, publicURL string) (ImageDescription, error) {
	prompt := fmt.Sprintf(`Analyze this portfolio image (published at %s).
Provide a professional title, a 2-3 sentence description and a broad category.
Provide 5 professional descriptive tags that describe the visual style, colors, and content.
Focus on design aesthetics (e.g., "Minimalist", "High-contrast", "Geometric", "Vibrant").`, publicURL)

	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	if len(data) > 0 {
		parts = append(parts, genai.NewPartFromBytes(data, mimeType))
	}

	var out ImageDescription
	if err := c.generateObject(ctx, parts, imageDescriptionSchema, &out); err != nil {
		return ImageDescription{}, fmt.Errorf("failed to describe image: %w", err)
	}
	return out, nil
}

// Placeholder is a plausible stand-in project when a connector import fails.
type Placeholder struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	ImagePrompt string   `json:"imagePrompt"`
	Tags        []string `json:"tags"`
}

func (c *Client) SynthesizePlaceholder(ctx context.Context, platform, value string) (Placeholder, error) {
	prompt := fmt.Sprintf(`A portfolio owner linked their %s account (%s) but its projects could not be imported.
Create one representative placeholder project for a professional visual library that fits this platform.
Provide a title, a 2-3 sentence description, a broad category, 3-6 tags,
and a prompt for a high-quality cover image.`, platform, value)

	var out Placeholder
	if err := c.generateObject(ctx, []*genai.Part{genai.NewPartFromText(prompt)}, placeholderSchema, &out); err != nil {
		return Placeholder{}, fmt.Errorf("failed to synthesize placeholder: %w", err)
	}
	if strings.TrimSpace(out.Title) == "" || strings.TrimSpace(out.ImagePrompt) == "" {
		return Placeholder{}, fmt.Errorf("failed to synthesize placeholder: %w", ErrEmptyResponse)
	}
	return out, nil
}

// Audit is a scored review of a project against professional-portfolio criteria.
type Audit struct {
	AuditType       string `json:"auditType"`
	Score           int    `json:"score"`
	Findings        string `json:"findings"`
	Recommendations string `json:"recommendations"`
}

func (c *Client) AuditProject(ctx context.Context, title, description, category string) (Audit, error) {
	prompt := fmt.Sprintf(`Audit this portfolio project against professional-portfolio criteria:
presentation quality, clarity of the description, completeness of links and assets, and market positioning.
Title: %s
Category: %s
Description: %s
Return an audit type (e.g., "Quality", "Presentation", "Security"), a score from 0 to 100,
concise findings and actionable recommendations.`, title, category, description)

	var out Audit
	if err := c.generateObject(ctx, []*genai.Part{genai.NewPartFromText(prompt)}, auditSchema, &out); err != nil {
		return Audit{}, fmt.Errorf("failed to audit project: %w", err)
	}
	return out, nil
}

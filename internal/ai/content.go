package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ExtractedProject is one project read off an external portfolio page.
type ExtractedProject struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl"`
	DemoURL     string `json:"demoUrl,omitempty"`
}

// ExtractProjects asks the model for up to five projects found in html.
func (c *Client) ExtractProjects(ctx context.Context, html string) ([]ExtractedProject, error) {
	prompt := fmt.Sprintf(`Extract up to 5 portfolio projects from this HTML content: %s.
Return project titles, descriptions, categories, and image URLs.
The source is likely a portfolio site like Behance or Dribbble.`, html)

	var out struct {
		Projects []ExtractedProject `json:"projects"`
	}
	if err := c.generateObject(ctx, []*genai.Part{genai.NewPartFromText(prompt)}, extractionSchema, &out); err != nil {
		return nil, fmt.Errorf("failed to extract projects: %w", err)
	}
	if len(out.Projects) > 5 {
		out.Projects = out.Projects[:5]
	}
	return out.Projects, nil
}

// Recommendation is a suggested next project for the portfolio.
type Recommendation struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	ImagePrompt string   `json:"imagePrompt"`
}

// PortfolioContext summarizes the existing library for prompts.
type PortfolioContext struct {
	Titles     []string
	Categories []string
	Tags       []string
}

func (p PortfolioContext) describe() (titles, categories, tags string) {
	join := func(items []string) string {
		if len(items) == 0 {
			return "None"
		}
		return strings.Join(items, ", ")
	}
	return join(p.Titles), join(p.Categories), join(p.Tags)
}

func (c *Client) Recommend(ctx context.Context, portfolio PortfolioContext) ([]Recommendation, error) {
	titles, categories, tags := portfolio.describe()
	prompt := fmt.Sprintf(`You are a creative portfolio advisor. Generate 3 unique, compelling project suggestions for a professional portfolio.

EXISTING PORTFOLIO CONTEXT:
Projects: %s
Categories used: %s
Tags used: %s

REQUIREMENTS:
1. Suggest projects that COMPLEMENT the existing portfolio (don't duplicate categories if possible)
2. Each project should be realistic and showcase different skills
3. Include modern, trending project types that impress clients
4. Make descriptions compelling and professional (2-3 sentences)
5. Provide 4-6 specific tags for each project
6. Create an AI image generation prompt for a stunning cover image`, titles, categories, tags)

	var out struct {
		Suggestions []Recommendation `json:"suggestions"`
	}
	if err := c.generateObject(ctx, []*genai.Part{genai.NewPartFromText(prompt)}, recommendationSchema, &out); err != nil {
		return nil, fmt.Errorf("failed to generate recommendations: %w", err)
	}
	return out.Suggestions, nil
}

// RewriteDescription returns a professional rewrite of a project description.
func (c *Client) RewriteDescription(ctx context.Context, title, category, description string) (string, error) {
	prompt := fmt.Sprintf(`Rewrite the description of the portfolio project "%s" (%s) in a polished, professional register.
Keep it to 3 sentences, keep every factual claim, and return only the new description.

Current description:
%s`, title, category, description)

	text, err := c.generateText(ctx, "", []*genai.Part{genai.NewPartFromText(prompt)})
	if err != nil {
		return "", fmt.Errorf("failed to rewrite description: %w", err)
	}
	return text, nil
}

const assistantInstruction = `You are a professional AI assistant for a creative portfolio named "LIBRARY01".
Your goal is to answer questions about the portfolio projects, the creator's skills, and availability.
Style: High-end, minimalist, architectural, clean.
Services: Brand design, UI/UX, Web Development, 3D Visualization.
Tone: Sophisticated, helpful, concise, professional.
If you don't know specific details, suggest the user to use the contact form.`

// Answer replies to a visitor's question using the library as context.
func (c *Client) Answer(ctx context.Context, portfolio PortfolioContext, question string) (string, error) {
	titles, categories, _ := portfolio.describe()
	prompt := fmt.Sprintf("Projects: %s\nCategories: %s\n\nNew User Message: %s\n\nAssistant Response:",
		titles, categories, question)

	text, err := c.generateText(ctx, assistantInstruction, []*genai.Part{genai.NewPartFromText(prompt)})
	if err != nil {
		return "", fmt.Errorf("failed to answer: %w", err)
	}
	return text, nil
}

const paletteInstruction = `Analyze the provided portfolio image and extract a primary and secondary HSL color that represents the brand. Return ONLY a JSON object: {"primary": "H S% L%", "secondary": "H S% L%"}`

// PaletteReply fetches the image at imageURL and returns the model's raw palette reply.
func (c *Client) PaletteReply(ctx context.Context, imageURL string) (string, error) {
	data, mime, err := c.fetchImage(ctx, imageURL)
	if err != nil {
		return "", err
	}
	text, err := c.generateText(ctx, paletteInstruction, []*genai.Part{
		genai.NewPartFromText("Extract a palette from this image."),
		genai.NewPartFromBytes(data, mime),
	})
	if err != nil {
		return "", fmt.Errorf("failed to extract palette: %w", err)
	}
	return text, nil
}

// VisualPrompt builds the image prompt for a project diagram.
func VisualPrompt(label, title, description, request string) string {
	return fmt.Sprintf(`Generate a high-quality, professional %s for a project titled "%s".
Context: %s
User Request: %s
Style: Clean, minimalist, corporate aesthetic, architecturally inspired, professional diagrams.
Ensure all text in the diagram is legible and professionally formatted.`, label, title, description, request)
}

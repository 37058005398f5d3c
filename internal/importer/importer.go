// Package importer implements the generic external-import function and the
// client Connector Sync uses to call it.
package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"visual-library-backend/internal/ai"
)

// MaxHTMLChars is how much of a fetched page is handed to the model.
const MaxHTMLChars = 15000

var ErrURLRequired = errors.New("url is required")

// Item is one imported project.
type Item struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl"`
	DemoURL     string `json:"demoUrl,omitempty"`
}

type Request struct {
	URL      string `json:"url"`
	Provider string `json:"provider,omitempty"`
}

type Response struct {
	Projects []Item `json:"projects,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Extractor turns page HTML into projects.
type Extractor interface {
	ExtractProjects(ctx context.Context, html string) ([]ai.ExtractedProject, error)
}

// Function fetches a portfolio page and extracts up to five projects from it.
type Function struct {
	extractor  Extractor
	httpClient *http.Client
}

func NewFunction(extractor Extractor) *Function {
	return &Function{
		extractor:  extractor,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (f *Function) Run(ctx context.Context, req Request) ([]Item, error) {
	if strings.TrimSpace(req.URL) == "" {
		return nil, ErrURLRequired
	}

	html, err := f.fetch(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	extracted, err := f.extractor.ExtractProjects(ctx, Truncate(html, MaxHTMLChars))
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(extracted))
	for _, p := range extracted {
		items = append(items, Item{
			Title:       p.Title,
			Description: p.Description,
			Category:    p.Category,
			ImageURL:    p.ImageURL,
			DemoURL:     p.DemoURL,
		})
	}
	return items, nil
}

func (f *Function) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "visual-library-importer/1.0")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("failed to fetch page: status %d", resp.StatusCode)
	}

	// Only the first MaxHTMLChars runes are used; read a bounded prefix.
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxHTMLChars*4))
	if err != nil {
		return "", fmt.Errorf("failed to read page: %w", err)
	}
	return string(body), nil
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Client calls an import function over HTTP.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{endpoint: endpoint, httpClient: httpClient}
}

// Import returns the projects found at url. A response carrying an error field is an error.
func (c *Client) Import(ctx context.Context, url, provider string) ([]Item, error) {
	body, err := json.Marshal(Request{URL: url, Provider: provider})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var result Response
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: status %d, body: %s", resp.StatusCode, string(raw))
	}
	if result.Error != "" {
		return nil, fmt.Errorf("import failed: %s", result.Error)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("import failed: status %d", resp.StatusCode)
	}
	return result.Projects, nil
}

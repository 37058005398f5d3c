// Package figma reads design files through the Figma REST API.
package figma

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

var (
	ErrInvalidFileKey = errors.New("invalid figma file key")
	ErrNoFrames       = errors.New("figma file has no frames")
)

var (
	fileURLPattern = regexp.MustCompile(`figma\.com/(?:file|design|proto)/([A-Za-z0-9]+)`)
	fileKeyPattern = regexp.MustCompile(`^[A-Za-z0-9]{10,}$`)
)

// ParseFileKey accepts a bare file key or a figma.com file URL.
func ParseFileKey(value string) (string, error) {
	value = strings.TrimSpace(value)
	if m := fileURLPattern.FindStringSubmatch(value); m != nil {
		return m[1], nil
	}
	if fileKeyPattern.MatchString(value) {
		return value, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFileKey, value)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type node struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Children []node `json:"children"`
}

type fileResponse struct {
	Name         string `json:"name"`
	ThumbnailURL string `json:"thumbnailUrl"`
	LastModified string `json:"lastModified"`
	Document     node   `json:"document"`
}

type imagesResponse struct {
	Err    *string           `json:"err"`
	Images map[string]string `json:"images"`
}

// Design is what an import reads from one file.
type Design struct {
	FileKey      string
	Name         string
	PageName     string
	Frames       []string
	ImageURL     string
	ThumbnailURL string
}

// ImportFile reads the file name, the frames of its first page and a rendering of the first frame.
func (c *Client) ImportFile(ctx context.Context, token, fileKey string) (*Design, error) {
	var file fileResponse
	if err := c.get(ctx, token, "/v1/files/"+url.PathEscape(fileKey)+"?depth=2", &file); err != nil {
		return nil, fmt.Errorf("failed to get file: %w", err)
	}

	design := &Design{
		FileKey:      fileKey,
		Name:         file.Name,
		ThumbnailURL: file.ThumbnailURL,
	}
	if len(file.Document.Children) == 0 {
		return nil, ErrNoFrames
	}
	page := file.Document.Children[0]
	design.PageName = page.Name

	var firstFrame string
	for _, child := range page.Children {
		if child.Type != "FRAME" && child.Type != "COMPONENT" && child.Type != "SECTION" {
			continue
		}
		if firstFrame == "" {
			firstFrame = child.ID
		}
		design.Frames = append(design.Frames, child.Name)
	}
	if firstFrame == "" {
		return nil, ErrNoFrames
	}

	var images imagesResponse
	path := "/v1/images/" + url.PathEscape(fileKey) + "?ids=" + url.QueryEscape(firstFrame) + "&format=png"
	if err := c.get(ctx, token, path, &images); err != nil {
		return nil, fmt.Errorf("failed to render frame: %w", err)
	}
	if images.Err != nil && *images.Err != "" {
		return nil, fmt.Errorf("failed to render frame: %s", *images.Err)
	}
	design.ImageURL = images.Images[firstFrame]
	if design.ImageURL == "" {
		design.ImageURL = design.ThumbnailURL
	}
	return design, nil
}

func (c *Client) get(ctx context.Context, token, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Figma-Token", token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

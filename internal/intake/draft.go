package intake

import (
	"fmt"
	"mime"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"visual-library-backend/internal/models"
)

// Draft is the editable intake form. Pipelines fill it in; Save persists it.
type Draft struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	ImageURL    string            `json:"image_url"`
	MediaType   models.MediaType  `json:"media_type,omitempty"`
	VideoURL    string            `json:"video_url,omitempty"`
	GithubURL   string            `json:"github_url,omitempty"`
	DemoURL     string            `json:"demo_url,omitempty"`
	Tags        string            `json:"tags,omitempty"`
	ArchiveURL  string            `json:"archive_url,omitempty"`
	Visibility  models.Visibility `json:"visibility,omitempty"`
}

// Ready reports whether the draft satisfies the save precondition.
func (d Draft) Ready() bool {
	return strings.TrimSpace(d.Title) != "" && strings.TrimSpace(d.ImageURL) != ""
}

func (d Draft) project(ownerID uuid.UUID) *models.Project {
	visibility := d.Visibility
	if !visibility.Valid() {
		visibility = models.VisibilityPublic
	}
	mediaType := d.MediaType
	if mediaType == "" {
		mediaType = models.MediaTypeImage
	}
	return &models.Project{
		UserID:      ownerID,
		Title:       strings.TrimSpace(d.Title),
		Description: d.Description,
		Category:    d.Category,
		ImageURL:    d.ImageURL,
		MediaType:   mediaType,
		VideoURL:    d.VideoURL,
		GithubURL:   d.GithubURL,
		DemoURL:     d.DemoURL,
		Tags:        d.Tags,
		ArchiveURL:  d.ArchiveURL,
		Visibility:  visibility,
	}
}

// Owner is the authenticated admin running a pipeline.
type Owner struct {
	UserID      uuid.UUID
	AccessToken string
}

// File is an uploaded file held in memory.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f File) contentType() string {
	if f.ContentType != "" && f.ContentType != "application/octet-stream" {
		return f.ContentType
	}
	if t := mime.TypeByExtension(filepath.Ext(f.Name)); t != "" {
		return t
	}
	return "application/octet-stream"
}

// Result is what a pipeline run produced. Draft is always the latest form state.
type Result struct {
	Project *models.Project      `json:"project,omitempty"`
	Audit   *models.ProjectAudit `json:"audit,omitempty"`
	Draft   Draft                `json:"draft"`
}

// FileClass is the intake branch a file takes.
type FileClass string

const (
	ClassImage    FileClass = "image"
	ClassVideo    FileClass = "video"
	ClassArchive  FileClass = "archive"
	ClassDocument FileClass = "document"
	ClassFile     FileClass = "file"
)

var extensionClasses = map[string]FileClass{}

func init() {
	register := func(class FileClass, exts ...string) {
		for _, ext := range exts {
			extensionClasses[ext] = class
		}
	}
	register(ClassImage, "png", "jpg", "jpeg", "gif", "webp", "svg", "avif", "bmp")
	register(ClassVideo, "mp4", "mov", "webm", "avi", "mkv", "m4v")
	register(ClassArchive, "zip", "rar", "7z", "tar", "gz", "tgz")
	register(ClassDocument, "pdf", "doc", "docx", "txt", "md", "ppt", "pptx", "key", "pages", "rtf", "odt")
}

// Classify picks the intake branch from the file extension.
func Classify(name string) FileClass {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if class, ok := extensionClasses[ext]; ok {
		return class
	}
	return ClassFile
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.]`)

// Sanitize replaces every character outside [a-zA-Z0-9.] with an underscore.
func Sanitize(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}

func ArchivePath(now time.Time, name string) string {
	return fmt.Sprintf("archives/%d-%s", now.UnixMilli(), Sanitize(name))
}

func UploadPath(now time.Time, name string) string {
	return fmt.Sprintf("uploads/%d-%s", now.UnixMilli(), Sanitize(name))
}

func GeneratedPath(id uuid.UUID, ext string) string {
	return fmt.Sprintf("generated/%s.%s", id, ext)
}

func MilestonePath(projectID uuid.UUID, now time.Time, name string) string {
	return fmt.Sprintf("milestones/%s-%d-%s", projectID, now.UnixMilli(), Sanitize(name))
}

// TitleFromFilename turns "brand-logo.png" into "Brand Logo".
func TitleFromFilename(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	words := strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || unicode.IsSpace(r)
	})
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	if len(words) == 0 {
		return "Untitled"
	}
	return strings.Join(words, " ")
}

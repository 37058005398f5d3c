package intake

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visual-library-backend/internal/ai"
	"visual-library-backend/internal/models"
)

func TestIngestFile_Empty(t *testing.T) {
	h := newHarness(t)
	_, err := h.pipeline.IngestFile(context.Background(), h.owner, File{Name: "a.png"})
	assert.ErrorIs(t, err, ErrNoSource)
	assert.Empty(t, h.store.paths)
}

func TestIngestFile_Image(t *testing.T) {
	h := newHarness(t)
	h.gen.description = ai.ImageDescription{
		Title:       "Brand Mark",
		Description: "A geometric logo.",
		Category:    "Branding",
		Tags:        []string{"logo", "identity"},
	}

	res, err := h.pipeline.IngestFile(context.Background(), h.owner, File{Name: "brand-logo.png", ContentType: "image/png", Data: []byte("png")})
	require.NoError(t, err)

	assert.Equal(t, []string{"uploads/1700000000000-brand_logo.png"}, h.store.paths)
	assert.Equal(t, "https://cdn.test/uploads/1700000000000-brand_logo.png", res.Project.ImageURL)
	assert.Equal(t, "Brand Mark", res.Project.Title)
	assert.Equal(t, "logo, identity", res.Project.Tags)
	assert.Equal(t, 1, h.gen.describeCalls)
	assert.Empty(t, h.gen.imagePrompts)
}

func TestIngestFile_ImageTitleFallback(t *testing.T) {
	h := newHarness(t)
	h.gen.description = ai.ImageDescription{Category: "Photo"}

	res, err := h.pipeline.IngestFile(context.Background(), h.owner, File{Name: "sunset_pier.jpg", Data: []byte("jpg")})
	require.NoError(t, err)
	assert.Equal(t, "Sunset Pier", res.Project.Title)
}

func TestIngestFile_Video(t *testing.T) {
	h := newHarness(t)

	res, err := h.pipeline.IngestFile(context.Background(), h.owner, File{Name: "launch-teaser.mp4", Data: []byte("mp4")})
	require.NoError(t, err)

	p := res.Project
	assert.Equal(t, "Launch Teaser", p.Title)
	assert.Equal(t, "Video", p.Category)
	assert.Equal(t, models.MediaTypeVideo, p.MediaType)
	assert.Equal(t, "https://cdn.test/uploads/1700000000000-launch_teaser.mp4", p.VideoURL)
	assert.Equal(t, "https://cdn.test/generated/11111111-2222-4333-8444-555555555555.png", p.ImageURL)
	require.Len(t, h.gen.imagePrompts, 1)
	assert.Contains(t, h.gen.imagePrompts[0], "Launch Teaser")
}

func TestIngestFile_Archive(t *testing.T) {
	h := newHarness(t)
	h.gen.synthesis = completeSynthesis()

	res, err := h.pipeline.IngestFile(context.Background(), h.owner, File{Name: "orbit.zip", Data: []byte("zip")})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/uploads/1700000000000-orbit.zip", res.Project.ArchiveURL)
	assert.Equal(t, "https://cdn.test/uploads/1700000000000-orbit.zip", h.gen.lastSources.ArchiveURL)
	assert.Equal(t, "Orbit Dashboard", res.Project.Title)
}

func TestIngestFile_DocumentAndOther(t *testing.T) {
	h := newHarness(t)

	doc, err := h.pipeline.IngestFile(context.Background(), h.owner, File{Name: "case-study.pdf", Data: []byte("pdf")})
	require.NoError(t, err)
	assert.Equal(t, "Document", doc.Project.Category)
	assert.Equal(t, "Case Study", doc.Project.Title)
	assert.Equal(t, "https://cdn.test/uploads/1700000000000-case_study.pdf", doc.Project.ArchiveURL)

	other, err := h.pipeline.IngestFile(context.Background(), h.owner, File{Name: "scene.blend", Data: []byte("b")})
	require.NoError(t, err)
	assert.Equal(t, "File", other.Project.Category)
}

func TestIngestFile_LaterFailureKeepsUpload(t *testing.T) {
	h := newHarness(t)
	h.gen.imageErr = errBoom

	res, err := h.pipeline.IngestFile(context.Background(), h.owner, File{Name: "reel.mov", Data: []byte("mov")})
	assert.ErrorIs(t, err, errBoom)
	assert.Len(t, h.store.paths, 1)
	assert.Equal(t, "https://cdn.test/uploads/1700000000000-reel.mov", res.Draft.VideoURL)
	assert.Empty(t, h.projects.projects)
}

package intake

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"visual-library-backend/internal/models"
)

func TestDraftReady(t *testing.T) {
	assert.False(t, Draft{}.Ready())
	assert.False(t, Draft{Title: "x"}.Ready())
	assert.False(t, Draft{Title: "  ", ImageURL: "u"}.Ready())
	assert.True(t, Draft{Title: "x", ImageURL: "u"}.Ready())
}

func TestDraftProjectDefaults(t *testing.T) {
	owner := uuid.New()
	p := Draft{Title: " Poster ", ImageURL: "u", Visibility: "hidden"}.project(owner)

	assert.Equal(t, owner, p.UserID)
	assert.Equal(t, "Poster", p.Title)
	assert.Equal(t, models.VisibilityPublic, p.Visibility)
	assert.Equal(t, models.MediaTypeImage, p.MediaType)
}

func TestClassify(t *testing.T) {
	cases := map[string]FileClass{
		"brand-logo.png": ClassImage,
		"HERO.JPEG":      ClassImage,
		"reel.mov":       ClassVideo,
		"source.tgz":     ClassArchive,
		"deck.pptx":      ClassDocument,
		"notes.md":       ClassDocument,
		"model.blend":    ClassFile,
		"README":         ClassFile,
	}
	for name, want := range cases {
		assert.Equal(t, want, Classify(name), name)
	}
}

func TestPaths(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	assert.Equal(t, "uploads/1700000000123-my_file__1_.png", UploadPath(now, "my file (1).png"))
	assert.Equal(t, "archives/1700000000123-src.zip", ArchivePath(now, "src.zip"))

	id := uuid.MustParse("11111111-2222-4333-8444-555555555555")
	assert.Equal(t, "generated/11111111-2222-4333-8444-555555555555.png", GeneratedPath(id, "png"))
	assert.Equal(t, "milestones/11111111-2222-4333-8444-555555555555-1700000000123-v2.jpg", MilestonePath(id, now, "v2.jpg"))
}

func TestTitleFromFilename(t *testing.T) {
	assert.Equal(t, "Brand Logo", TitleFromFilename("brand-logo.png"))
	assert.Equal(t, "Case Study Final", TitleFromFilename("case_study final.pdf"))
	assert.Equal(t, "Untitled", TitleFromFilename(".png"))
}

func TestFileContentType(t *testing.T) {
	assert.Equal(t, "image/png", File{Name: "a.png", ContentType: "image/png"}.contentType())
	assert.Equal(t, "image/png", File{Name: "a.png", ContentType: "application/octet-stream"}.contentType())
	assert.Equal(t, "application/octet-stream", File{Name: "a.unknownext"}.contentType())
}

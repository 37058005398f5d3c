package intake

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visual-library-backend/internal/ai"
	"visual-library-backend/internal/figma"
	"visual-library-backend/internal/importer"
)

func TestSync_Preconditions(t *testing.T) {
	h := newHarness(t)

	_, err := h.pipeline.Sync(context.Background(), h.owner, "myspace", "x")
	assert.ErrorIs(t, err, ErrUnknownConnector)

	_, err = h.pipeline.Sync(context.Background(), h.owner, "behance", "   ")
	assert.ErrorIs(t, err, ErrMissingValue)

	assert.Zero(t, h.importer.calls)
}

func TestSync_FigmaWithoutToken(t *testing.T) {
	h := newHarness(t)

	res, err := h.pipeline.Sync(context.Background(), h.owner, "figma", "https://www.figma.com/file/AbCdEfGhIjKl/Brand")
	assert.ErrorIs(t, err, ErrConfigurationRequired)
	require.NotNil(t, res)
	assert.Equal(t, SyncFailed, res.State)
	assert.Zero(t, h.designs.calls)
	assert.Zero(t, h.gen.placeholderCalls)
	assert.Empty(t, h.projects.projects)
}

func TestSync_FigmaImport(t *testing.T) {
	h := newHarness(t)
	h.pipeline = h.build(fakeTokens{token: "figd_abc"})
	h.designs.design = &figma.Design{
		Name:     "Brand System",
		PageName: "Cover",
		Frames:   []string{"Logo", "Palette"},
		ImageURL: "https://figma-render.test/logo.png",
	}

	res, err := h.pipeline.Sync(context.Background(), h.owner, "figma", "https://www.figma.com/file/AbCdEfGhIjKl/Brand")
	require.NoError(t, err)
	assert.Equal(t, SyncSucceeded, res.State)
	assert.Equal(t, 1, h.designs.calls)

	require.Len(t, h.projects.projects, 1)
	p := h.projects.projects[0]
	assert.Equal(t, "Brand System", p.Title)
	assert.Equal(t, "Design", p.Category)
	assert.Equal(t, "https://figma-render.test/logo.png", p.ImageURL)
	assert.Equal(t, "https://www.figma.com/file/AbCdEfGhIjKl", p.DemoURL)
	assert.Equal(t, "figma, design", p.Tags)
	assert.Contains(t, p.Description, "Logo, Palette")
}

func TestSync_FigmaFailureFallsBack(t *testing.T) {
	h := newHarness(t)
	h.pipeline = h.build(fakeTokens{token: "figd_abc"})
	h.designs.err = errBoom
	h.gen.placeholder = ai.Placeholder{Title: "Brand Concept", Description: "d", Category: "Design", ImagePrompt: "brand board", Tags: []string{"brand"}}

	res, err := h.pipeline.Sync(context.Background(), h.owner, "figma", "AbCdEfGhIjKl")
	require.NoError(t, err)
	assert.Equal(t, SyncFallbackGenerated, res.State)
	assert.Equal(t, "boom", res.ImportError)
	assert.Equal(t, "brand, ai-placeholder", h.projects.projects[0].Tags)
}

func TestSync_ImportSucceeded(t *testing.T) {
	h := newHarness(t)
	h.importer.items = []importer.Item{
		{Title: "Shot One", Description: "first", Category: "Illustration", ImageURL: "https://img.test/1.png"},
		{Title: "Shot Two", ImageURL: "https://img.test/2.png"},
	}

	res, err := h.pipeline.Sync(context.Background(), h.owner, "dribbble", "https://dribbble.com/ada")
	require.NoError(t, err)
	assert.Equal(t, SyncSucceeded, res.State)
	assert.Empty(t, res.Notice)
	assert.Equal(t, "dribbble", res.Connector)

	require.Len(t, h.projects.projects, 1)
	p := h.projects.projects[0]
	assert.Equal(t, "Shot One", p.Title)
	assert.Equal(t, "https://img.test/1.png", p.ImageURL)
	assert.Equal(t, "https://dribbble.com/ada", p.DemoURL)
	assert.Equal(t, "dribbble", p.Tags)
	assert.Zero(t, h.gen.placeholderCalls)
}

func TestSync_ImportFailuresFallBack(t *testing.T) {
	cases := map[string]func(*fakeImporter){
		"error":      func(f *fakeImporter) { f.err = errBoom },
		"zero items": func(f *fakeImporter) { f.items = nil },
	}
	for name, setup := range cases {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			setup(h.importer)
			h.gen.placeholder = ai.Placeholder{
				Title:       "Motion Reel",
				Description: "placeholder",
				Category:    "Video",
				ImagePrompt: "film strip",
				Tags:        []string{"motion", "reel"},
			}

			res, err := h.pipeline.Sync(context.Background(), h.owner, "vimeo", "https://vimeo.com/123")
			require.NoError(t, err)
			assert.Equal(t, SyncFallbackGenerated, res.State)
			assert.Contains(t, res.Notice, "Vimeo import failed")
			assert.NotEmpty(t, res.ImportError)

			require.Len(t, h.projects.projects, 1)
			p := h.projects.projects[0]
			assert.Equal(t, "Motion Reel", p.Title)
			assert.Equal(t, "motion, reel, ai-placeholder", p.Tags)
			assert.Equal(t, "https://vimeo.com/123", p.DemoURL)
			assert.Equal(t, []string{"film strip" + CoverSuffix}, h.gen.imagePrompts)
		})
	}
}

func TestSync_HandleValueHasNoDemoURL(t *testing.T) {
	h := newHarness(t)
	h.importer.err = errBoom
	h.gen.placeholder = ai.Placeholder{Title: "Feed", ImagePrompt: "grid"}

	_, err := h.pipeline.Sync(context.Background(), h.owner, "instagram", "@ada")
	require.NoError(t, err)
	assert.Empty(t, h.projects.projects[0].DemoURL)
	assert.Equal(t, "Social", h.projects.projects[0].Category)
}

func TestSync_GithubDelegatesToGenerate(t *testing.T) {
	h := newHarness(t)
	h.gen.synthesis = completeSynthesis()

	res, err := h.pipeline.Sync(context.Background(), h.owner, "github", "https://github.com/acme/orbit")
	require.NoError(t, err)
	assert.Equal(t, SyncSucceeded, res.State)
	assert.Equal(t, 1, h.gen.synthCalls)
	assert.Equal(t, "https://github.com/acme/orbit", h.gen.lastSources.SourceURL)
	assert.Zero(t, h.importer.calls)
	assert.Equal(t, "https://github.com/acme/orbit", h.projects.projects[0].GithubURL)
}

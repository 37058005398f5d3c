package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	reply      string
	err        error
	images     []*genai.GeneratedImage
	imageErr   error
	gotModel   string
	gotConfig  *genai.GenerateContentConfig
	gotParts   []*genai.Part
	gotPrompt  string
	imageCalls int
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.gotModel = model
	f.gotConfig = config
	if len(contents) > 0 {
		f.gotParts = contents[0].Parts
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: f.reply}}},
		}},
	}, nil
}

func (f *fakeModels) GenerateImages(_ context.Context, _ string, prompt string, _ *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
	f.imageCalls++
	f.gotPrompt = prompt
	if f.imageErr != nil {
		return nil, f.imageErr
	}
	return &genai.GenerateImagesResponse{GeneratedImages: f.images}, nil
}

func TestSynthesizeProject(t *testing.T) {
	fake := &fakeModels{reply: "```json\n" + `{
		"title": "Ledger",
		"description": "A budgeting app.",
		"category": "Fintech",
		"suggestedImagePrompt": "abstract ledger lines",
		"mediaType": "video",
		"tags": ["react", "finance", "charts", "mobile", "ux"]
	}` + "\n```"}
	client := newClient(fake, "text-model", "image-model")

	out, err := client.SynthesizeProject(context.Background(), Sources{DemoURL: "https://ledger.app"})
	require.NoError(t, err)

	assert.Equal(t, "text-model", fake.gotModel)
	assert.Equal(t, "application/json", fake.gotConfig.ResponseMIMEType)
	assert.Same(t, synthesisSchema, fake.gotConfig.ResponseSchema)
	assert.Contains(t, fake.gotParts[0].Text, "Live demo: https://ledger.app")
	assert.NotContains(t, fake.gotParts[0].Text, "Source repository")

	assert.Equal(t, "Ledger", out.Title)
	assert.Equal(t, "video", out.MediaType)
	assert.Len(t, out.Tags, 5)
	assert.True(t, out.Complete())
}

func TestSynthesizeProject_Incomplete(t *testing.T) {
	fake := &fakeModels{reply: `{"title": "Ledger", "description": "", "category": "Fintech", "suggestedImagePrompt": "x"}`}
	out, err := newClient(fake, "t", "i").SynthesizeProject(context.Background(), Sources{SourceURL: "https://github.com/a/b"})
	require.NoError(t, err)
	assert.False(t, out.Complete())
}

func TestSynthesizeProject_ModelError(t *testing.T) {
	fake := &fakeModels{err: errors.New("quota exceeded")}
	_, err := newClient(fake, "t", "i").SynthesizeProject(context.Background(), Sources{SourceURL: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGenerateObject_EmptyReply(t *testing.T) {
	fake := &fakeModels{reply: ""}
	_, err := newClient(fake, "t", "i").AuditProject(context.Background(), "a", "b", "c")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGenerateImage(t *testing.T) {
	fake := &fakeModels{images: []*genai.GeneratedImage{
		{Image: &genai.Image{}},
		{Image: &genai.Image{ImageBytes: []byte{1, 2, 3}, MIMEType: "image/jpeg"}},
	}}
	img, err := newClient(fake, "t", "image-model").GenerateImage(context.Background(), "a cover")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, img.Data)
	assert.Equal(t, "jpg", img.Extension())
	assert.Equal(t, "a cover", fake.gotPrompt)
}

func TestGenerateImage_NoImages(t *testing.T) {
	_, err := newClient(&fakeModels{}, "t", "i").GenerateImage(context.Background(), "p")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestExtractProjects_CapsAtFive(t *testing.T) {
	fake := &fakeModels{reply: `{"projects": [
		{"title":"1","description":"d","category":"c","imageUrl":"u"},
		{"title":"2","description":"d","category":"c","imageUrl":"u"},
		{"title":"3","description":"d","category":"c","imageUrl":"u"},
		{"title":"4","description":"d","category":"c","imageUrl":"u"},
		{"title":"5","description":"d","category":"c","imageUrl":"u"},
		{"title":"6","description":"d","category":"c","imageUrl":"u"}
	]}`}
	projects, err := newClient(fake, "t", "i").ExtractProjects(context.Background(), "<html></html>")
	require.NoError(t, err)
	assert.Len(t, projects, 5)
}

func TestAnswer_UsesSystemInstruction(t *testing.T) {
	fake := &fakeModels{reply: "  I design brands.  "}
	answer, err := newClient(fake, "t", "i").Answer(context.Background(),
		PortfolioContext{Titles: []string{"Ledger"}}, "What do you do?")
	require.NoError(t, err)
	assert.Equal(t, "I design brands.", answer)
	require.NotNil(t, fake.gotConfig.SystemInstruction)
	assert.Contains(t, fake.gotParts[0].Text, "Projects: Ledger")
	assert.Contains(t, fake.gotParts[0].Text, "Categories: None")
}

func TestPaletteReply_SendsImageInline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("\x89PNG\r\n\x1a\nfake"))
	}))
	defer srv.Close()

	fake := &fakeModels{reply: `{"primary": "210 80% 50%", "secondary": "30 60% 45%"}`}
	reply, err := newClient(fake, "t", "i").PaletteReply(context.Background(), srv.URL+"/cover.png")
	require.NoError(t, err)
	assert.Contains(t, reply, "210 80% 50%")

	require.Len(t, fake.gotParts, 2)
	require.NotNil(t, fake.gotParts[1].InlineData)
	assert.Equal(t, "image/png", fake.gotParts[1].InlineData.MIMEType)
}

func TestPaletteReply_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	fake := &fakeModels{}
	_, err := newClient(fake, "t", "i").PaletteReply(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Nil(t, fake.gotConfig)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence("  {\"a\":1} "))
}

func TestVisualPrompt(t *testing.T) {
	p := VisualPrompt("Architecture", "Ledger", "A budgeting app.", "service map")
	assert.Contains(t, p, `professional Architecture for a project titled "Ledger"`)
	assert.Contains(t, p, "User Request: service map")
}

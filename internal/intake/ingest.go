package intake

import (
	"context"
	"fmt"
	"strings"

	"visual-library-backend/internal/ai"
	"visual-library-backend/internal/models"
)

// IngestFile uploads a file and builds a project around it according to its class.
// The upload is not removed when a later step fails.
func (p *Pipeline) IngestFile(ctx context.Context, owner Owner, f File) (*Result, error) {
	if strings.TrimSpace(f.Name) == "" || len(f.Data) == 0 {
		return nil, ErrNoSource
	}

	class := Classify(f.Name)
	contentType := f.contentType()
	url, err := p.store.Upload(ctx, UploadPath(p.now(), f.Name), f.Data, contentType)
	if err != nil {
		return nil, stepErr(StepUploadFile, err)
	}
	p.logger.Info().Str("file", f.Name).Str("class", string(class)).Msg("file uploaded")

	var draft Draft
	switch class {
	case ClassImage:
		draft, err = p.describeImage(ctx, f, contentType, url)
	case ClassVideo:
		draft = Draft{
			Title:     TitleFromFilename(f.Name),
			Category:  "Video",
			MediaType: models.MediaTypeVideo,
			VideoURL:  url,
		}
		draft.Description = fmt.Sprintf("Video work: %s.", draft.Title)
		draft.ImageURL, err = p.generateCover(ctx, filePrompt("a cinematic still frame for a video", f.Name))
	case ClassArchive:
		draft = Draft{ArchiveURL: url}
		err = p.synthesize(ctx, &draft, ai.Sources{ArchiveURL: url})
	default:
		category := "File"
		if class == ClassDocument {
			category = "Document"
		}
		draft = Draft{
			Title:      TitleFromFilename(f.Name),
			Category:   category,
			MediaType:  models.MediaTypeImage,
			ArchiveURL: url,
		}
		draft.Description = fmt.Sprintf("%s artifact: %s.", category, f.Name)
		draft.ImageURL, err = p.generateCover(ctx, filePrompt("an editorial cover for a "+strings.ToLower(category), f.Name))
	}
	if err != nil {
		return &Result{Draft: draft}, err
	}

	return p.save(ctx, owner, draft, nil)
}

func (p *Pipeline) describeImage(ctx context.Context, f File, contentType, url string) (Draft, error) {
	draft := Draft{ImageURL: url, MediaType: models.MediaTypeImage}
	desc, err := p.gen.DescribeImage(ctx, f.Data, contentType, url)
	if err != nil {
		draft.Title = TitleFromFilename(f.Name)
		return draft, stepErr(StepDescribeImage, err)
	}
	draft.Title = strings.TrimSpace(desc.Title)
	if draft.Title == "" {
		draft.Title = TitleFromFilename(f.Name)
	}
	draft.Description = strings.TrimSpace(desc.Description)
	draft.Category = strings.TrimSpace(desc.Category)
	draft.Tags = models.JoinTags(desc.Tags)
	return draft, nil
}

func filePrompt(kind, name string) string {
	return fmt.Sprintf("Create %s representing %q", kind, TitleFromFilename(name))
}

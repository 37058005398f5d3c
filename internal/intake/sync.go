package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"visual-library-backend/internal/connectors"
	"visual-library-backend/internal/figma"
	"visual-library-backend/internal/importer"
	"visual-library-backend/internal/models"
)

// PlaceholderTag marks projects synthesized because an import failed.
const PlaceholderTag = "ai-placeholder"

type SyncState string

const (
	SyncIdle              SyncState = "idle"
	SyncSyncing           SyncState = "syncing"
	SyncSucceeded         SyncState = "succeeded"
	SyncFallbackGenerated SyncState = "fallback_generated"
	SyncFailed            SyncState = "failed"
)

// SyncResult is the outcome of one sync attempt.
type SyncResult struct {
	Result
	Connector   string    `json:"connector"`
	State       SyncState `json:"state"`
	Notice      string    `json:"notice,omitempty"`
	ImportError string    `json:"import_error,omitempty"`
}

// Sync imports the latest work from a connector account or URL and archives it.
// A failed import falls back to an AI placeholder, reported as fallback_generated.
func (p *Pipeline) Sync(ctx context.Context, owner Owner, connectorID, value string) (*SyncResult, error) {
	conn, ok := connectors.Lookup(connectorID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConnector, connectorID)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, ErrMissingValue
	}

	out := &SyncResult{Connector: conn.ID, State: SyncSyncing}
	logger := p.logger.With().Str("connector", conn.ID).Logger()
	logger.Info().Str("value", value).Msg("connector sync started")

	var (
		res *Result
		err error
	)
	switch conn.Kind {
	case connectors.KindDesignFile:
		res, err = p.syncDesign(ctx, owner, conn, value, out)
	case connectors.KindSourceRepository:
		res, err = p.Generate(ctx, owner, GenerateInput{GithubURL: value})
	default:
		res, err = p.syncImport(ctx, owner, conn, value, out)
	}

	if res != nil {
		out.Result = *res
	}
	if err != nil {
		out.State = SyncFailed
		logger.Error().Err(err).Msg("connector sync failed")
		return out, err
	}
	if out.State == SyncSyncing {
		out.State = SyncSucceeded
	}
	logger.Info().Str("state", string(out.State)).Msg("connector sync finished")
	return out, nil
}

func (p *Pipeline) syncDesign(ctx context.Context, owner Owner, conn connectors.Connector, value string, out *SyncResult) (*Result, error) {
	token, err := p.tokens.FigmaToken(ctx, owner.AccessToken)
	if err != nil {
		return nil, stepErr(StepReadToken, err)
	}
	if strings.TrimSpace(token) == "" {
		return nil, ErrConfigurationRequired
	}

	key, err := figma.ParseFileKey(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}

	design, err := p.designs.ImportFile(ctx, token, key)
	if err != nil {
		return p.fallback(ctx, owner, conn, value, err, out)
	}

	return p.save(ctx, owner, designDraft(design), nil)
}

func designDraft(d *figma.Design) Draft {
	title := strings.TrimSpace(d.Name)
	if title == "" {
		title = "Figma File " + d.FileKey
	}
	desc := fmt.Sprintf("Design file imported from Figma (page %q).", d.PageName)
	if len(d.Frames) > 0 {
		desc += " Frames: " + strings.Join(d.Frames, ", ") + "."
	}
	image := d.ImageURL
	if image == "" {
		image = d.ThumbnailURL
	}
	return Draft{
		Title:       title,
		Description: desc,
		Category:    "Design",
		ImageURL:    image,
		MediaType:   models.MediaTypeImage,
		DemoURL:     "https://www.figma.com/file/" + d.FileKey,
		Tags:        models.JoinTags([]string{"figma", "design"}),
	}
}

func (p *Pipeline) syncImport(ctx context.Context, owner Owner, conn connectors.Connector, value string, out *SyncResult) (*Result, error) {
	items, err := p.importer.Import(ctx, value, conn.ID)
	if err == nil && len(items) == 0 {
		err = ErrNoItems
	}
	if err != nil {
		return p.fallback(ctx, owner, conn, value, err, out)
	}
	return p.save(ctx, owner, importDraft(items[0], conn, value), nil)
}

func importDraft(item importer.Item, conn connectors.Connector, value string) Draft {
	demo := strings.TrimSpace(item.DemoURL)
	if demo == "" && isHTTP(value) {
		demo = value
	}
	category := strings.TrimSpace(item.Category)
	if category == "" {
		category = conn.Category
	}
	return Draft{
		Title:       strings.TrimSpace(item.Title),
		Description: strings.TrimSpace(item.Description),
		Category:    category,
		ImageURL:    strings.TrimSpace(item.ImageURL),
		MediaType:   models.MediaTypeImage,
		DemoURL:     demo,
		Tags:        conn.ID,
	}
}

// fallback archives an AI placeholder after an import failed with cause.
func (p *Pipeline) fallback(ctx context.Context, owner Owner, conn connectors.Connector, value string, cause error, out *SyncResult) (*Result, error) {
	out.ImportError = cause.Error()
	p.logger.Warn().Err(cause).Str("connector", conn.ID).Msg("import failed, generating placeholder")

	ph, err := p.gen.SynthesizePlaceholder(ctx, conn.Name, value)
	if err != nil {
		return nil, stepErr(StepPlaceholder, errors.Join(err, cause))
	}

	draft := Draft{
		Title:       strings.TrimSpace(ph.Title),
		Description: strings.TrimSpace(ph.Description),
		Category:    strings.TrimSpace(ph.Category),
		MediaType:   models.MediaTypeImage,
		Tags:        models.JoinTags(append(append([]string{}, ph.Tags...), PlaceholderTag)),
	}
	if draft.Category == "" {
		draft.Category = conn.Category
	}
	if isHTTP(value) {
		draft.DemoURL = value
	}

	prompt := strings.TrimSpace(ph.ImagePrompt)
	if prompt == "" {
		prompt = fmt.Sprintf("%s work titled %q", conn.Name, draft.Title)
	}
	cover, err := p.generateCover(ctx, prompt)
	if err != nil {
		return &Result{Draft: draft}, err
	}
	draft.ImageURL = cover

	res, err := p.save(ctx, owner, draft, nil)
	if err != nil {
		return res, err
	}
	out.State = SyncFallbackGenerated
	out.Notice = fmt.Sprintf("%s import failed; an AI-generated placeholder was archived instead. Review and edit it before sharing.", conn.Name)
	return res, nil
}

func isHTTP(value string) bool {
	v := strings.ToLower(value)
	return strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://")
}

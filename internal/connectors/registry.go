package connectors

import (
	"sort"
	"strings"
)

// Kind selects how a sync against the connector is carried out.
type Kind string

const (
	// KindImport goes through the generic external import function.
	KindImport Kind = "import"
	// KindSourceRepository runs the full generation pipeline on the value.
	KindSourceRepository Kind = "source_repository"
	// KindDesignFile needs a design-tool access token from the profile.
	KindDesignFile Kind = "design_file"
)

type Connector struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Placeholder string `json:"placeholder"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Kind        Kind   `json:"kind"`
}

// RequiresToken reports whether a profile access token must exist before syncing.
func (c Connector) RequiresToken() bool {
	return c.Kind == KindDesignFile
}

const (
	GitHub = "github"
	Figma  = "figma"
)

var registry = []Connector{
	{ID: "behance", Name: "Behance", Placeholder: "behance.net/username", Description: "Import projects, moodboards, and case studies.", Category: "Design", Kind: KindImport},
	{ID: "dribbble", Name: "Dribbble", Placeholder: "dribbble.com/username", Description: "Sync shots and creative snippets.", Category: "Design", Kind: KindImport},
	{ID: Figma, Name: "Figma", Placeholder: "File Key", Description: "Extract design frames and prototypes.", Category: "Product", Kind: KindDesignFile},
	{ID: "instagram", Name: "Instagram", Placeholder: "instagram.com/p/ID", Description: "Import visual storytelling and media posts.", Category: "Social", Kind: KindImport},
	{ID: "pinterest", Name: "Pinterest", Placeholder: "pinterest.com/pin/ID", Description: "Sync inspiration boards and visual references.", Category: "Curation", Kind: KindImport},
	{ID: "artstation", Name: "ArtStation", Placeholder: "artstation.com/artwork/ID", Description: "Extract high-fidelity digital art and 3D renders.", Category: "Art", Kind: KindImport},
	{ID: "adobe_portfolio", Name: "Adobe Portfolio", Placeholder: "myportfolio.com/project", Description: "Sync your professional Adobe-hosted work.", Category: "Portfolio", Kind: KindImport},
	{ID: "carbonmade", Name: "Carbonmade", Placeholder: "carbonmade.com/portfolios/ID", Description: "Import projects from Carbonmade profiles.", Category: "Portfolio", Kind: KindImport},
	{ID: "vsco", Name: "VSCO", Placeholder: "vsco.co/username/media/ID", Description: "Extract aesthetic photography artifacts.", Category: "Photography", Kind: KindImport},
	{ID: "youtube", Name: "YouTube", Placeholder: "youtube.com/watch?v=ID", Description: "Sync video presentations and motion work.", Category: "Video", Kind: KindImport},
	{ID: "vimeo", Name: "Vimeo", Placeholder: "vimeo.com/ID", Description: "Import cinematic and professional video work.", Category: "Video", Kind: KindImport},
	{ID: "medium", Name: "Medium", Placeholder: "medium.com/@username/story", Description: "Extract design thinking and case studies.", Category: "Writing", Kind: KindImport},
	{ID: "substack", Name: "Substack", Placeholder: "substack.com/p/ID", Description: "Sync newsletter artifacts and deep dives.", Category: "Writing", Kind: KindImport},
	{ID: "linkedin", Name: "LinkedIn", Placeholder: "linkedin.com/posts/ID", Description: "Import professional milestones and articles.", Category: "Social", Kind: KindImport},
	{ID: "twitter", Name: "Twitter / X", Placeholder: "x.com/status/ID", Description: "Sync thread artifacts and media snippets.", Category: "Social", Kind: KindImport},
	{ID: "sketchfab", Name: "Sketchfab", Placeholder: "sketchfab.com/3d-models/ID", Description: "Import interactive 3D model artifacts.", Category: "3D", Kind: KindImport},
	{ID: "notion", Name: "Notion", Placeholder: "notion.so/page-ID", Description: "Extract structured project documentation.", Category: "Productivity", Kind: KindImport},
	{ID: GitHub, Name: "GitHub", Placeholder: "github.com/owner/repo", Description: "Generate a full project entry from a source repository.", Category: "Code", Kind: KindSourceRepository},
}

var byID = func() map[string]Connector {
	m := make(map[string]Connector, len(registry))
	for _, c := range registry {
		m[c.ID] = c
	}
	return m
}()

// All returns a copy of the catalog in display order.
func All() []Connector {
	out := make([]Connector, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds a connector by id, ignoring case and surrounding space.
func Lookup(id string) (Connector, bool) {
	c, ok := byID[strings.ToLower(strings.TrimSpace(id))]
	return c, ok
}

// Categories lists the distinct connector categories, sorted.
func Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range registry {
		if _, ok := seen[c.Category]; ok {
			continue
		}
		seen[c.Category] = struct{}{}
		out = append(out, c.Category)
	}
	sort.Strings(out)
	return out
}

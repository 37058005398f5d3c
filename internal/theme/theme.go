// Package theme derives a two-colour HSL palette from a portfolio image.
package theme

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"visual-library-backend/internal/ai"
	"visual-library-backend/internal/models"
)

var ErrInvalidPalette = errors.New("invalid palette")

var hslPattern = regexp.MustCompile(`^(\d{1,3}(?:\.\d+)?)\s+(\d{1,3}(?:\.\d+)?)%\s+(\d{1,3}(?:\.\d+)?)%$`)

// DeriveFromReply parses a model reply of the form
// {"primary": "H S% L%", "secondary": "H S% L%"}, optionally fenced.
func DeriveFromReply(reply string) (models.Theme, error) {
	var raw struct {
		Primary   string `json:"primary"`
		Secondary string `json:"secondary"`
	}
	if err := json.Unmarshal([]byte(ai.StripCodeFence(reply)), &raw); err != nil {
		return models.Theme{}, fmt.Errorf("%w: %v", ErrInvalidPalette, err)
	}

	primary, err := normalizeHSL(raw.Primary)
	if err != nil {
		return models.Theme{}, fmt.Errorf("%w: primary %v", ErrInvalidPalette, err)
	}
	// A missing secondary colour falls back to the primary.
	secondary := primary
	if strings.TrimSpace(raw.Secondary) != "" {
		if secondary, err = normalizeHSL(raw.Secondary); err != nil {
			return models.Theme{}, fmt.Errorf("%w: secondary %v", ErrInvalidPalette, err)
		}
	}
	return models.Theme{Primary: primary, Secondary: secondary}, nil
}

func normalizeHSL(value string) (string, error) {
	m := hslPattern.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return "", fmt.Errorf("%q is not \"H S%% L%%\"", value)
	}
	h, _ := strconv.ParseFloat(m[1], 64)
	s, _ := strconv.ParseFloat(m[2], 64)
	l, _ := strconv.ParseFloat(m[3], 64)
	if h > 360 || s > 100 || l > 100 {
		return "", fmt.Errorf("%q is out of range", value)
	}
	return fmt.Sprintf("%s %s%% %s%%", m[1], m[2], m[3]), nil
}

// PaletteSource returns the raw model reply for an image.
type PaletteSource interface {
	PaletteReply(ctx context.Context, imageURL string) (string, error)
}

type Deriver struct {
	source PaletteSource
}

func NewDeriver(source PaletteSource) *Deriver {
	return &Deriver{source: source}
}

func (d *Deriver) Derive(ctx context.Context, imageURL string) (models.Theme, error) {
	reply, err := d.source.PaletteReply(ctx, imageURL)
	if err != nil {
		return models.Theme{}, err
	}
	return DeriveFromReply(reply)
}

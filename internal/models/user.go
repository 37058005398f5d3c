package models

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// MetadataKey is the user_metadata entry holding UserMetadata.
const MetadataKey = "visual_library"

const UserMetadataVersion = 1

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

// Theme is a two-colour palette expressed as "H S% L%" strings.
type Theme struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// UserMetadata is the versioned sub-object this service owns inside the auth user's metadata.
type UserMetadata struct {
	Version    int    `json:"version"`
	FigmaToken string `json:"figma_token,omitempty"`
	Theme      *Theme `json:"theme,omitempty"`
}

// DecodeUserMetadata reads the sub-object from a raw user_metadata map.
// A missing entry yields an empty current-version value. A newer version
// decodes its known fields and keeps its version number so callers can tell.
func DecodeUserMetadata(raw map[string]interface{}) (UserMetadata, error) {
	meta := UserMetadata{Version: UserMetadataVersion}
	entry, ok := raw[MetadataKey]
	if !ok || entry == nil {
		return meta, nil
	}

	encoded, err := json.Marshal(entry)
	if err != nil {
		return meta, fmt.Errorf("failed to encode metadata: %w", err)
	}
	if err := json.Unmarshal(encoded, &meta); err != nil {
		return UserMetadata{Version: UserMetadataVersion}, fmt.Errorf("failed to decode metadata: %w", err)
	}
	if meta.Version > UserMetadataVersion {
		return meta, nil
	}
	meta.Version = UserMetadataVersion
	return meta, nil
}

// Newer reports whether the metadata was written by a later schema.
func (m UserMetadata) Newer() bool {
	return m.Version > UserMetadataVersion
}

// Encode renders the sub-object as a plain map for the auth API.
func (m UserMetadata) Encode() map[string]interface{} {
	out := map[string]interface{}{"version": UserMetadataVersion}
	if m.FigmaToken != "" {
		out["figma_token"] = m.FigmaToken
	}
	if m.Theme != nil {
		out["theme"] = map[string]interface{}{
			"primary":   m.Theme.Primary,
			"secondary": m.Theme.Secondary,
		}
	}
	return out
}

type Profile struct {
	ID          uuid.UUID    `json:"id"`
	Email       string       `json:"email"`
	Username    string       `json:"username,omitempty"`
	DisplayName string       `json:"display_name,omitempty"`
	Metadata    UserMetadata `json:"metadata"`
}

// NormalizeUsername lowercases and validates a username.
func NormalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if !usernamePattern.MatchString(username) {
		return "", fmt.Errorf("username must be 3-20 letters, digits or underscores")
	}
	return strings.ToLower(username), nil
}

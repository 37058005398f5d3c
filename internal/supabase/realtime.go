package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"visual-library-backend/internal/models"
)

const (
	EventProjectArchived   = "project_archived"
	EventProjectVisibility = "project_visibility"
	EventChatMessage       = "message"
	EventChatCleared       = "cleared"
)

// RealtimeClient publishes broadcast messages through the Realtime REST endpoint.
type RealtimeClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewRealtimeClient(supabaseURL, apiKey string, httpClient *http.Client) *RealtimeClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &RealtimeClient{
		endpoint:   strings.TrimRight(supabaseURL, "/") + "/realtime/v1/api/broadcast",
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

type broadcastMessage struct {
	Topic   string                 `json:"topic"`
	Event   string                 `json:"event"`
	Payload map[string]interface{} `json:"payload"`
}

type broadcastRequest struct {
	Messages []broadcastMessage `json:"messages"`
}

func (r *RealtimeClient) PublishEvent(ctx context.Context, channel string, event string, payload map[string]interface{}) error {
	body, err := json.Marshal(broadcastRequest{
		Messages: []broadcastMessage{{Topic: channel, Event: event, Payload: payload}},
	})
	if err != nil {
		return fmt.Errorf("failed to encode broadcast: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create broadcast request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", r.apiKey)
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to publish broadcast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("broadcast rejected with status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}

func ProjectChannel(projectID uuid.UUID) string {
	return fmt.Sprintf("project-chat:%s", projectID.String())
}

func UserChannel(userID uuid.UUID) string {
	return fmt.Sprintf("user:%s", userID.String())
}

func (r *RealtimeClient) PublishProjectEvent(ctx context.Context, projectID uuid.UUID, event string, payload map[string]interface{}) error {
	return r.PublishEvent(ctx, ProjectChannel(projectID), event, payload)
}

func (r *RealtimeClient) PublishUserEvent(ctx context.Context, userID uuid.UUID, event string, payload map[string]interface{}) error {
	return r.PublishEvent(ctx, UserChannel(userID), event, payload)
}

// Event payloads
func ProjectArchivedPayload(p *models.Project) map[string]interface{} {
	return map[string]interface{}{
		"project_id": p.ID.String(),
		"title":      p.Title,
		"category":   p.Category,
		"visibility": string(p.Visibility),
	}
}

func ProjectVisibilityPayload(projectID uuid.UUID, visibility models.Visibility) map[string]interface{} {
	return map[string]interface{}{
		"project_id": projectID.String(),
		"visibility": string(visibility),
	}
}

func ChatMessagePayload(m *models.ProjectMessage) map[string]interface{} {
	return map[string]interface{}{
		"id":          m.ID.String(),
		"project_id":  m.ProjectID.String(),
		"user_id":     m.UserID.String(),
		"content":     m.Content,
		"sender_name": m.SenderName,
		"sender_role": string(m.SenderRole),
		"created_at":  m.CreatedAt,
	}
}

func ChatClearedPayload(projectID uuid.UUID, deleted int64) map[string]interface{} {
	return map[string]interface{}{
		"project_id": projectID.String(),
		"deleted":    deleted,
	}
}

package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"visual-library-backend/internal/errs"
	"visual-library-backend/internal/models"
	"visual-library-backend/internal/supabase"
)

const defaultSenderName = "User"

type ChatStore interface {
	GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error)
	ListProjects(ctx context.Context, ownerID uuid.UUID) ([]models.Project, error)
	CreateMessage(ctx context.Context, m *models.ProjectMessage) error
	ListOwnerMessages(ctx context.Context, ownerID uuid.UUID) ([]models.ProjectMessage, error)
	ClearMessages(ctx context.Context, projectID, ownerID uuid.UUID) (int64, error)
}

type ChatService struct {
	store     ChatStore
	publisher Publisher
	logger    zerolog.Logger
}

func NewChatService(store ChatStore, publisher Publisher) *ChatService {
	return &ChatService{
		store:     store,
		publisher: publisher,
		logger:    log.With().Str("service", "chat").Logger(),
	}
}

// Post stores a message and broadcasts it on the project's chat channel.
// The project owner posts as admin, everyone else as user.
func (s *ChatService) Post(ctx context.Context, projectID, userID uuid.UUID, content, senderName string) (*models.ProjectMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errs.NewBadRequestError("message content is required")
	}
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	role := models.SenderUser
	if project.UserID == userID {
		role = models.SenderAdmin
	}
	if strings.TrimSpace(senderName) == "" {
		senderName = defaultSenderName
	}

	msg := &models.ProjectMessage{
		ProjectID:  projectID,
		UserID:     userID,
		Content:    content,
		SenderName: strings.TrimSpace(senderName),
		SenderRole: role,
	}
	if err := s.store.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	s.publish(ctx, projectID, supabase.EventChatMessage, supabase.ChatMessagePayload(msg))
	return msg, nil
}

// Clear deletes a project's conversation and tells listeners.
func (s *ChatService) Clear(ctx context.Context, projectID, ownerID uuid.UUID) (int64, error) {
	n, err := s.store.ClearMessages(ctx, projectID, ownerID)
	if err != nil {
		return 0, err
	}
	s.publish(ctx, projectID, supabase.EventChatCleared, supabase.ChatClearedPayload(projectID, n))
	s.logger.Info().Str("project_id", projectID.String()).Int64("deleted", n).Msg("conversation cleared")
	return n, nil
}

func (s *ChatService) publish(ctx context.Context, projectID uuid.UUID, event string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishProjectEvent(ctx, projectID, event, payload); err != nil {
		s.logger.Warn().Err(err).Str("project_id", projectID.String()).Str("event", event).Msg("failed to publish chat event")
	}
}

// Summaries groups the owner's messages per project, most recent conversation first.
func (s *ChatService) Summaries(ctx context.Context, ownerID uuid.UUID) ([]models.ChatSummary, error) {
	messages, err := s.store.ListOwnerMessages(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	projects, err := s.store.ListProjects(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat projects: %w", err)
	}
	titles := make(map[uuid.UUID]string, len(projects))
	for _, p := range projects {
		titles[p.ID] = p.Title
	}

	byProject := map[uuid.UUID]*models.ChatSummary{}
	for _, m := range messages {
		sum, ok := byProject[m.ProjectID]
		if !ok {
			sum = &models.ChatSummary{ProjectID: m.ProjectID, ProjectTitle: titles[m.ProjectID]}
			byProject[m.ProjectID] = sum
		}
		sum.MessageCount++
		if !m.CreatedAt.Before(sum.LastMessage.CreatedAt) {
			sum.LastMessage = m
		}
	}

	out := make([]models.ChatSummary, 0, len(byProject))
	for _, sum := range byProject {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastMessage.CreatedAt.After(out[j].LastMessage.CreatedAt)
	})
	return out, nil
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visual-library-backend/internal/errs"
	"visual-library-backend/internal/models"
	"visual-library-backend/internal/supabase"
)

func chatFixture() (*memStore, models.Project) {
	owner := uuid.New()
	p := models.Project{ID: uuid.New(), UserID: owner, Title: "Atlas"}
	return &memStore{projects: []models.Project{p}}, p
}

func TestChatPost_RoleAndBroadcast(t *testing.T) {
	store, p := chatFixture()
	pub := &fakePublisher{}
	svc := NewChatService(store, pub)

	msg, err := svc.Post(context.Background(), p.ID, p.UserID, "  hello  ", "")
	require.NoError(t, err)
	assert.Equal(t, models.SenderAdmin, msg.SenderRole)
	assert.Equal(t, "hello", msg.Content)
	assert.Equal(t, "User", msg.SenderName)

	visitor, err := svc.Post(context.Background(), p.ID, uuid.New(), "hi", "Grace")
	require.NoError(t, err)
	assert.Equal(t, models.SenderUser, visitor.SenderRole)

	channel := "project-chat:" + p.ID.String()
	assert.Equal(t, []string{channel + "/" + supabase.EventChatMessage, channel + "/" + supabase.EventChatMessage}, pub.events)
}

func TestChatPost_PublishFailureIsSwallowed(t *testing.T) {
	store, p := chatFixture()
	svc := NewChatService(store, &fakePublisher{err: errBoom})

	_, err := svc.Post(context.Background(), p.ID, uuid.New(), "hi", "Ada")
	require.NoError(t, err)
	assert.Len(t, store.messages, 1)
}

func TestChatPost_Validation(t *testing.T) {
	store, p := chatFixture()
	svc := NewChatService(store, nil)

	_, err := svc.Post(context.Background(), p.ID, uuid.New(), "   ", "")
	assert.True(t, errs.IsBadRequest(err))

	_, err = svc.Post(context.Background(), uuid.New(), uuid.New(), "hi", "")
	assert.True(t, errs.IsNotFound(err))
}

func TestChatClear(t *testing.T) {
	store, p := chatFixture()
	store.messages = []models.ProjectMessage{{ProjectID: p.ID}, {ProjectID: p.ID}, {ProjectID: uuid.New()}}
	pub := &fakePublisher{}

	n, err := NewChatService(store, pub).Clear(context.Background(), p.ID, p.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Len(t, store.messages, 1)
	assert.Equal(t, []string{"project-chat:" + p.ID.String() + "/" + supabase.EventChatCleared}, pub.events)
}

func TestChatSummaries(t *testing.T) {
	owner := uuid.New()
	a := models.Project{ID: uuid.New(), UserID: owner, Title: "Atlas"}
	b := models.Project{ID: uuid.New(), UserID: owner, Title: "Beacon"}
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := &memStore{
		projects: []models.Project{a, b},
		messages: []models.ProjectMessage{
			{ProjectID: a.ID, Content: "a1", CreatedAt: base},
			{ProjectID: b.ID, Content: "b1", CreatedAt: base.Add(time.Minute)},
			{ProjectID: a.ID, Content: "a2", CreatedAt: base.Add(2 * time.Minute)},
		},
	}

	sums, err := NewChatService(store, nil).Summaries(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, sums, 2)
	assert.Equal(t, "Atlas", sums[0].ProjectTitle)
	assert.Equal(t, 2, sums[0].MessageCount)
	assert.Equal(t, "a2", sums[0].LastMessage.Content)
	assert.Equal(t, "Beacon", sums[1].ProjectTitle)
}

package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visual-library-backend/internal/errs"
	"visual-library-backend/internal/models"
)

func assetFixture() (*memStore, *fakeObjects, *fakeImages, *AssetService, models.Project) {
	p := models.Project{ID: uuid.MustParse("aaaaaaaa-bbbb-4ccc-8ddd-eeeeeeeeeeee"), UserID: uuid.New(), Title: "Atlas", Description: "Maps"}
	store := &memStore{projects: []models.Project{p}}
	objects := &fakeObjects{}
	images := &fakeImages{}
	svc := NewAssetService(store, objects, images)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return store, objects, images, svc, p
}

func TestCreateMilestone_OrderIsCountPlusOne(t *testing.T) {
	store, objects, _, svc, p := assetFixture()
	store.milestones = []models.ProjectMilestone{
		{ProjectID: p.ID, Order: 1},
		{ProjectID: p.ID, Order: 3},
		{ProjectID: uuid.New(), Order: 1},
	}

	m, err := svc.CreateMilestone(context.Background(), p.UserID, p.ID, MilestoneInput{
		Title: "Beta launch",
		Image: &Upload{Name: "beta shot.png", ContentType: "image/png", Data: []byte("png")},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, m.Order)
	assert.Equal(t, []string{"milestones/aaaaaaaa-bbbb-4ccc-8ddd-eeeeeeeeeeee-1700000000000-beta_shot.png"}, objects.paths)
	assert.Equal(t, "https://cdn.test/"+objects.paths[0], m.ImageURL)
}

func TestCreateMilestone_WithoutImage(t *testing.T) {
	_, objects, _, svc, p := assetFixture()

	m, err := svc.CreateMilestone(context.Background(), p.UserID, p.ID, MilestoneInput{Title: "Kickoff"})
	require.NoError(t, err)
	assert.Equal(t, 1, m.Order)
	assert.Empty(t, m.ImageURL)
	assert.Empty(t, objects.paths)
}

func TestCreateMilestone_Rejections(t *testing.T) {
	_, _, _, svc, p := assetFixture()

	_, err := svc.CreateMilestone(context.Background(), p.UserID, p.ID, MilestoneInput{Title: " "})
	assert.True(t, errs.IsBadRequest(err))

	_, err = svc.CreateMilestone(context.Background(), uuid.New(), p.ID, MilestoneInput{Title: "x"})
	assert.True(t, errs.IsNotFound(err))
}

func TestGenerateVisual(t *testing.T) {
	store, objects, images, svc, p := assetFixture()
	user := uuid.New()

	v, err := svc.GenerateVisual(context.Background(), user, p.ID, models.VisualGantt, "development phases")
	require.NoError(t, err)

	require.Len(t, images.prompts, 1)
	assert.Contains(t, images.prompts[0], "professional Gantt Chart for a project titled \"Atlas\"")
	assert.Contains(t, images.prompts[0], "User Request: development phases")
	require.Len(t, objects.paths, 1)
	assert.True(t, strings.HasPrefix(objects.paths[0], "visuals/"+p.ID.String()+"-"))
	assert.True(t, strings.HasSuffix(objects.paths[0], ".jpg"))

	assert.Equal(t, user, v.UserID)
	assert.Equal(t, "development phases", v.Prompt)
	assert.Len(t, store.visuals, 1)
}

func TestGenerateVisual_Rejections(t *testing.T) {
	_, _, images, svc, p := assetFixture()

	_, err := svc.GenerateVisual(context.Background(), uuid.New(), p.ID, models.VisualType("poster"), "x")
	assert.True(t, errs.IsBadRequest(err))

	_, err = svc.GenerateVisual(context.Background(), uuid.New(), p.ID, models.VisualMindmap, "")
	assert.True(t, errs.IsBadRequest(err))
	assert.Empty(t, images.prompts)

	images.err = errBoom
	_, err = svc.GenerateVisual(context.Background(), uuid.New(), p.ID, models.VisualMindmap, "features")
	assert.Equal(t, 502, errs.StatusCode(err))
}

package analytics

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visual-library-backend/internal/models"
)

func TestSummarize(t *testing.T) {
	a := models.Project{ID: uuid.New(), Title: "A very long project title"}
	b := models.Project{ID: uuid.New(), Title: "Short"}

	views := []models.ProjectView{
		{ProjectID: a.ID, ViewDuration: 10},
		{ProjectID: a.ID, ViewDuration: 20},
		{ProjectID: a.ID, ViewDuration: 5},
		{ProjectID: b.ID, ViewDuration: 0},
	}
	clicks := []models.ProjectClick{
		{ProjectID: a.ID, ClickType: models.ClickDemo},
		{ProjectID: a.ID, ClickType: models.ClickGithub},
		{ProjectID: b.ID, ClickType: models.ClickDemo},
	}

	s := Summarize([]models.Project{b, a}, views, clicks)

	assert.Equal(t, 4, s.TotalViews)
	assert.Equal(t, 3, s.TotalClicks)
	assert.Equal(t, 9, s.AvgViewDuration) // 35/4 = 8.75
	assert.Equal(t, 2, s.ClicksByType[models.ClickDemo])
	assert.Equal(t, 1, s.ClicksByType[models.ClickGithub])

	require.Len(t, s.TopProjects, 2)
	assert.Equal(t, a.ID, s.TopProjects[0].ProjectID)
	assert.Equal(t, "A very long pro...", s.TopProjects[0].Name)
	assert.Equal(t, 67, s.TopProjects[0].Engagement) // 2/3
	assert.Equal(t, 100, s.TopProjects[1].Engagement)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, nil, nil)
	assert.Zero(t, s.AvgViewDuration)
	assert.NotNil(t, s.TopProjects)
	assert.Empty(t, s.TopProjects)
}

func TestSummarize_TopFive(t *testing.T) {
	var projects []models.Project
	var views []models.ProjectView
	for i := 0; i < 7; i++ {
		p := models.Project{ID: uuid.New(), Title: "P"}
		projects = append(projects, p)
		for j := 0; j <= i; j++ {
			views = append(views, models.ProjectView{ProjectID: p.ID})
		}
	}

	s := Summarize(projects, views, nil)
	require.Len(t, s.TopProjects, 5)
	assert.Equal(t, 7, s.TopProjects[0].Views)
	assert.Equal(t, 3, s.TopProjects[4].Views)
	assert.Zero(t, s.TopProjects[0].Engagement)
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "Exactly fifteen", TruncateName("Exactly fifteen"))
	assert.Equal(t, "ÉÉÉÉÉÉÉÉÉÉÉÉÉÉÉ...", TruncateName("ÉÉÉÉÉÉÉÉÉÉÉÉÉÉÉÉ"))
}

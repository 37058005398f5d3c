package supabase

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visual-library-backend/internal/errs"
	"visual-library-backend/internal/models"
)

func newMockClient(t *testing.T) (*DatabaseClient, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewDatabaseClientFromDB(db), mock
}

var projectRowColumns = []string{
	"id", "user_id", "title", "description", "category", "image_url",
	"media_type", "video_url", "github_url", "demo_url", "tags", "archive_url",
	"visibility", "created_at", "updated_at",
}

func TestCreateProject(t *testing.T) {
	client, mock := newMockClient(t)
	ownerID := uuid.New()
	projectID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO projects")).
		WithArgs(ownerID, "Demo App", "desc", "Tech", "https://cdn/cover.png", "image",
			"", "", "https://example.com/app", "a, b", "", "public").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(projectID.String(), now, now))

	p := &models.Project{
		UserID:      ownerID,
		Title:       "Demo App",
		Description: "desc",
		Category:    "Tech",
		ImageURL:    "https://cdn/cover.png",
		MediaType:   models.MediaTypeImage,
		DemoURL:     "https://example.com/app",
		Tags:        "a, b",
	}
	require.NoError(t, client.CreateProject(context.Background(), p))

	assert.Equal(t, projectID, p.ID)
	assert.Equal(t, models.VisibilityPublic, p.Visibility)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProject_NotFound(t *testing.T) {
	client, mock := newMockClient(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM projects WHERE id = $1")).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := client.GetProject(context.Background(), id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, 404, errs.StatusCode(err))
}

func TestListProjects_AllOwners(t *testing.T) {
	client, mock := newMockClient(t)
	now := time.Now()

	rows := sqlmock.NewRows(projectRowColumns).
		AddRow(uuid.NewString(), uuid.NewString(), "One", "d", "Design", "u1", "", "", "", "", "", "", "public", now, now).
		AddRow(uuid.NewString(), uuid.NewString(), "Two", "d", "Design", "u2", "video", "v", "", "", "x", "", "private", now, now)

	mock.ExpectQuery(`FROM projects ORDER BY created_at DESC`).
		WithArgs().
		WillReturnRows(rows)

	projects, err := client.ListProjects(context.Background(), uuid.Nil)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, models.VisibilityPrivate, projects[1].Visibility)
	assert.Equal(t, models.MediaTypeVideo, projects[1].MediaType)
}

func TestListProjects_ScopedToOwner(t *testing.T) {
	client, mock := newMockClient(t)
	ownerID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1 ORDER BY created_at DESC")).
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows(projectRowColumns))

	projects, err := client.ListProjects(context.Background(), ownerID)
	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}

func TestSetProjectVisibility(t *testing.T) {
	client, mock := newMockClient(t)
	projectID, ownerID := uuid.New(), uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE projects SET visibility = $1")).
		WithArgs("private", projectID, ownerID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, client.SetProjectVisibility(context.Background(), projectID, ownerID, models.VisibilityPrivate))
}

func TestDeleteProject_NotOwned(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM projects")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := client.DeleteProject(context.Background(), uuid.New(), uuid.New())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCreateSubscription_Duplicate(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO newsletter_subscriptions")).
		WithArgs("ada@example.com").
		WillReturnError(&pq.Error{Code: "23505"})

	err := client.CreateSubscription(context.Background(), &models.NewsletterSubscription{Email: "ada@example.com"})
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
}

func TestCreateReview_DefaultsPending(t *testing.T) {
	client, mock := newMockClient(t)
	projectID, userID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO project_reviews")).
		WithArgs(projectID, userID, 5, "great", "pending").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(uuid.NewString(), time.Now()))

	r := &models.ProjectReview{ProjectID: projectID, UserID: userID, Rating: 5, Comment: "great"}
	require.NoError(t, client.CreateReview(context.Background(), r))
	assert.Equal(t, models.ReviewPending, r.Status)
}

func TestListReviews_ApprovedOnly(t *testing.T) {
	client, mock := newMockClient(t)
	projectID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "project_id", "user_id", "rating", "comment", "status", "created_at"}).
		AddRow(uuid.NewString(), projectID.String(), uuid.NewString(), 4, "nice", "approved", time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("FROM project_reviews")).
		WithArgs(projectID, "approved").
		WillReturnRows(rows)

	reviews, err := client.ListReviews(context.Background(), projectID, models.ReviewApproved)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, models.ReviewApproved, reviews[0].Status)
}

func TestUpdateReviewStatus(t *testing.T) {
	client, mock := newMockClient(t)
	reviewID, ownerID := uuid.New(), uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE project_reviews r SET status = $1")).
		WithArgs("approved", reviewID, ownerID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, client.UpdateReviewStatus(context.Background(), reviewID, ownerID, models.ReviewApproved))
}

func TestCreateAudit_ClampsScore(t *testing.T) {
	client, mock := newMockClient(t)
	projectID, ownerID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO project_audits")).
		WithArgs(projectID, ownerID, "Quality", 100, "f", "r", "active").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(uuid.NewString(), time.Now()))

	a := &models.ProjectAudit{ProjectID: projectID, UserID: ownerID, AuditType: "Quality", Score: 140, Findings: "f", Recommendations: "r"}
	require.NoError(t, client.CreateAudit(context.Background(), a))
	assert.Equal(t, 100, a.Score)
	assert.Equal(t, models.AuditStatusActive, a.Status)
}

func TestCountMilestones(t *testing.T) {
	client, mock := newMockClient(t)
	projectID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM project_milestones")).
		WithArgs(projectID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := client.CountMilestones(context.Background(), projectID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCreateInquiry_Anonymous(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO inquiries")).
		WithArgs(nil, "Ada", "ada@example.com", "Hello", "Hi there").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(uuid.NewString(), time.Now()))

	i := &models.Inquiry{Name: "Ada", Email: "ada@example.com", Subject: "Hello", Message: "Hi there"}
	require.NoError(t, client.CreateInquiry(context.Background(), i))
	assert.NotEqual(t, uuid.Nil, i.ID)
}

func TestListInquiries_NullableOwner(t *testing.T) {
	client, mock := newMockClient(t)
	ownerID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "email", "subject", "message", "created_at"}).
		AddRow(uuid.NewString(), nil, "Ada", "a@x.io", "s", "m", time.Now()).
		AddRow(uuid.NewString(), ownerID.String(), "Client Approval", "client@system.auto", "APPROVAL: X", "m", time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("FROM inquiries")).
		WithArgs(ownerID, true).
		WillReturnRows(rows)

	inquiries, err := client.ListInquiries(context.Background(), ownerID, true)
	require.NoError(t, err)
	require.Len(t, inquiries, 2)
	assert.Nil(t, inquiries[0].UserID)
	require.NotNil(t, inquiries[1].UserID)
	assert.Equal(t, ownerID, *inquiries[1].UserID)
}

func TestDeleteInquiry_SiteWideRequiresFlag(t *testing.T) {
	client, mock := newMockClient(t)
	inquiryID, ownerID := uuid.New(), uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM inquiries")).
		WithArgs(inquiryID, ownerID, false).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := client.DeleteInquiry(context.Background(), inquiryID, ownerID, false)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearMessages(t *testing.T) {
	client, mock := newMockClient(t)
	projectID, ownerID := uuid.New(), uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM project_messages")).
		WithArgs(projectID, ownerID).
		WillReturnResult(sqlmock.NewResult(0, 7))

	n, err := client.ClearMessages(context.Background(), projectID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}

func TestUpdateViewDuration(t *testing.T) {
	client, mock := newMockClient(t)
	viewID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE project_views SET view_duration = $1")).
		WithArgs(42, viewID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, client.UpdateViewDuration(context.Background(), viewID, 42))
}

package handlers_test

import (
	"errors"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visual-library-backend/internal/handlers"
	"visual-library-backend/internal/models"
)

var (
	ownerID   = uuid.MustParse("aaaaaaaa-0000-4000-8000-000000000001")
	visitorID = uuid.MustParse("bbbbbbbb-0000-4000-8000-000000000002")
)

func libraryFixture() []models.Project {
	return []models.Project{
		{ID: uuid.New(), UserID: ownerID, Title: "Orbit Dashboard", Description: "Realtime metrics", Category: "Product", ImageURL: "https://cdn/a.png", Tags: "react, charts", Visibility: models.VisibilityPublic},
		{ID: uuid.New(), UserID: ownerID, Title: "Secret Sketches", Description: "Unreleased", Category: "Design", ImageURL: "https://cdn/b.png", Tags: "figma", Visibility: models.VisibilityPrivate},
		{ID: uuid.New(), UserID: ownerID, Title: "Harbor Lights", Description: "Night photography", Category: "Photography", ImageURL: "https://cdn/c.png", Tags: "Long Exposure", Visibility: models.VisibilityPublic},
	}
}

func galleryRouter(h *handlers.GalleryHandler, viewer uuid.UUID) http.Handler {
	r := newRouter()
	r.Use(as(viewer))
	r.GET("/gallery", h.List)
	r.GET("/gallery/projects/:project_id", h.Get)
	r.POST("/projects/:project_id/views", h.TrackView)
	r.PATCH("/views/:view_id", h.UpdateView)
	r.POST("/projects/:project_id/clicks", h.TrackClick)
	return r
}

func TestGalleryList_HidesPrivateFromAnonymous(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectQuery(`FROM projects ORDER BY created_at DESC`).WillReturnRows(projectRows(libraryFixture()...))

	w := perform(galleryRouter(handlers.NewGalleryHandler(db), uuid.Nil), http.MethodGet, "/gallery", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.GalleryResponse
	decode(t, w, &resp)
	assert.False(t, resp.Sample)
	assert.Equal(t, 2, resp.Total)
	for _, p := range resp.Projects {
		assert.NotEqual(t, "Secret Sketches", p.Title)
	}
	assert.Equal(t, []string{"All", "Photography", "Product"}, resp.Categories)
}

func TestGalleryList_OwnerSeesPrivate(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectQuery(`FROM projects ORDER BY created_at DESC`).WillReturnRows(projectRows(libraryFixture()...))

	w := perform(galleryRouter(handlers.NewGalleryHandler(db), ownerID), http.MethodGet, "/gallery", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.GalleryResponse
	decode(t, w, &resp)
	assert.Equal(t, 3, resp.Total)
}

func TestGalleryList_CategoryAndSearch(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectQuery(`FROM projects ORDER BY created_at DESC`).WillReturnRows(projectRows(libraryFixture()...))

	w := perform(galleryRouter(handlers.NewGalleryHandler(db), uuid.Nil), http.MethodGet, "/gallery?category=Photography&q=long%20EXPOSURE", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.GalleryResponse
	decode(t, w, &resp)
	require.Len(t, resp.Projects, 1)
	assert.Equal(t, "Harbor Lights", resp.Projects[0].Title)
}

func TestGalleryList_ScopedToOwner(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1")).
		WithArgs(ownerID).
		WillReturnRows(projectRows(libraryFixture()[0]))

	w := perform(galleryRouter(handlers.NewGalleryHandler(db), uuid.Nil), http.MethodGet, "/gallery?user_id="+ownerID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGalleryList_EmptyServesSamples(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectQuery(`FROM projects`).WillReturnRows(projectRows())

	w := perform(galleryRouter(handlers.NewGalleryHandler(db), uuid.Nil), http.MethodGet, "/gallery", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.GalleryResponse
	decode(t, w, &resp)
	assert.True(t, resp.Sample)
	assert.Equal(t, 3, resp.Total)
}

func TestGalleryList_ReadFailureServesSamples(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectQuery(`FROM projects`).WillReturnError(errors.New("connection reset"))

	w := perform(galleryRouter(handlers.NewGalleryHandler(db), uuid.Nil), http.MethodGet, "/gallery?category=Fashion", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.GalleryResponse
	decode(t, w, &resp)
	assert.True(t, resp.Sample)
	require.Len(t, resp.Projects, 1)
	assert.Equal(t, "Oceanic Whispers", resp.Projects[0].Title)
}

func TestGalleryList_InvalidOwner(t *testing.T) {
	db, _ := newDB(t)
	w := perform(galleryRouter(handlers.NewGalleryHandler(db), uuid.Nil), http.MethodGet, "/gallery?user_id=nope", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGalleryGet_PrivateProject(t *testing.T) {
	private := libraryFixture()[1]

	t.Run("anonymous gets 404", func(t *testing.T) {
		db, mock := newDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM projects WHERE id = $1")).
			WithArgs(private.ID).
			WillReturnRows(projectRows(private))

		w := perform(galleryRouter(handlers.NewGalleryHandler(db), uuid.Nil), http.MethodGet, "/gallery/projects/"+private.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("owner gets it", func(t *testing.T) {
		db, mock := newDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM projects WHERE id = $1")).
			WithArgs(private.ID).
			WillReturnRows(projectRows(private))

		w := perform(galleryRouter(handlers.NewGalleryHandler(db), ownerID), http.MethodGet, "/gallery/projects/"+private.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var p models.Project
		decode(t, w, &p)
		assert.Equal(t, "Secret Sketches", p.Title)
	})
}

func TestGalleryGet_Missing(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM projects WHERE id = $1")).WillReturnRows(projectRows())

	w := perform(galleryRouter(handlers.NewGalleryHandler(db), uuid.Nil), http.MethodGet, "/gallery/projects/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTrackView(t *testing.T) {
	projectID, viewID := uuid.New(), uuid.New()

	t.Run("recorded", func(t *testing.T) {
		db, mock := newDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO project_views")).
			WithArgs(projectID, visitorID, 0).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(viewID.String(), time.Now()))

		w := perform(galleryRouter(handlers.NewGalleryHandler(db), visitorID), http.MethodPost, "/projects/"+projectID.String()+"/views", nil)
		require.Equal(t, http.StatusAccepted, w.Code)

		var resp models.TrackResponse
		decode(t, w, &resp)
		assert.Equal(t, viewID.String(), resp.ID)
		assert.Equal(t, "recorded", resp.Status)
	})

	t.Run("write failure still accepted", func(t *testing.T) {
		db, mock := newDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO project_views")).WillReturnError(errors.New("boom"))

		w := perform(galleryRouter(handlers.NewGalleryHandler(db), uuid.Nil), http.MethodPost, "/projects/"+projectID.String()+"/views", nil)
		require.Equal(t, http.StatusAccepted, w.Code)

		var resp models.TrackResponse
		decode(t, w, &resp)
		assert.Empty(t, resp.ID)
		assert.Equal(t, "skipped", resp.Status)
	})
}

func TestUpdateView(t *testing.T) {
	db, mock := newDB(t)
	viewID := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE project_views SET view_duration = $1")).
		WithArgs(42, viewID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := perform(galleryRouter(handlers.NewGalleryHandler(db), uuid.Nil), http.MethodPatch, "/views/"+viewID.String(),
		models.UpdateViewRequest{DurationSeconds: 42})
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrackClick(t *testing.T) {
	projectID := uuid.New()

	t.Run("unknown type", func(t *testing.T) {
		db, _ := newDB(t)
		w := perform(galleryRouter(handlers.NewGalleryHandler(db), uuid.Nil), http.MethodPost, "/projects/"+projectID.String()+"/clicks",
			models.TrackClickRequest{ClickType: "tweet"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("anonymous demo click", func(t *testing.T) {
		db, mock := newDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO project_clicks")).
			WithArgs(projectID, nil, "demo").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(uuid.NewString(), time.Now()))

		w := perform(galleryRouter(handlers.NewGalleryHandler(db), uuid.Nil), http.MethodPost, "/projects/"+projectID.String()+"/clicks",
			models.TrackClickRequest{ClickType: "demo"})
		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"visual-library-backend/internal/middleware"
	"visual-library-backend/internal/models"
	"visual-library-backend/internal/supabase"
)

var projectColumns = []string{
	"id", "user_id", "title", "description", "category", "image_url",
	"media_type", "video_url", "github_url", "demo_url", "tags", "archive_url",
	"visibility", "created_at", "updated_at",
}

func newDB(t *testing.T) (*supabase.DatabaseClient, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return supabase.NewDatabaseClientFromDB(db), mock
}

func projectRows(projects ...models.Project) *sqlmock.Rows {
	rows := sqlmock.NewRows(projectColumns)
	now := time.Now()
	for _, p := range projects {
		rows.AddRow(p.ID.String(), p.UserID.String(), p.Title, p.Description, p.Category, p.ImageURL,
			string(p.MediaType), p.VideoURL, p.GithubURL, p.DemoURL, p.Tags, p.ArchiveURL,
			string(p.Visibility), now, now)
	}
	return rows
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// as stands in for RequireAuth/OptionalAuth; uuid.Nil leaves the request anonymous.
func as(id uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id != uuid.Nil {
			c.Set(middleware.UserIDKey, id.String())
			c.Set(middleware.AccessTokenKey, "token-"+id.String()[:8])
		}
		c.Next()
	}
}

func perform(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"visual-library-backend/internal/handlers"
	"visual-library-backend/internal/models"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	cases := []struct {
		name   string
		db     handlers.Pinger
		status string
	}{
		{"no database", nil, "ok"},
		{"database reachable", stubPinger{}, "ok"},
		{"database down", stubPinger{err: errors.New("dial tcp: refused")}, "degraded"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newRouter()
			router.GET("/health", handlers.NewHealthHandler(tc.db).Check)

			w := perform(router, http.MethodGet, "/health", nil)
			assert.Equal(t, http.StatusOK, w.Code)

			var resp models.HealthResponse
			decode(t, w, &resp)
			assert.Equal(t, tc.status, resp.Status)
		})
	}
}

func TestRequireDatabase_Missing(t *testing.T) {
	router := newRouter()
	router.Use(handlers.RequireDatabase(nil))
	router.GET("/testimonials", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(router, http.MethodGet, "/testimonials", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "database not available")
}

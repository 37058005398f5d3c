package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"visual-library-backend/internal/gallery"
	"visual-library-backend/internal/models"
	"visual-library-backend/internal/supabase"
)

type GalleryHandler struct {
	dbClient *supabase.DatabaseClient
	logger   zerolog.Logger
}

func NewGalleryHandler(dbClient *supabase.DatabaseClient) *GalleryHandler {
	return &GalleryHandler{
		dbClient: dbClient,
		logger:   log.With().Str("handlerName", "gallery").Logger(),
	}
}

// List godoc
// @Summary     Browse the gallery
// @Description Lists the projects visible to the caller, filtered by category and a search term.
// @Description Private projects appear only for their owner. When nothing can be read the
// @Description curated sample projects are returned with sample=true.
// @Tags        gallery
// @Produce     json
// @Param       user_id  query string false "Scope to one portfolio owner"
// @Param       category query string false "Category, or All"
// @Param       q        query string false "Search over title, description and tags"
// @Success     200 {object} models.GalleryResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /gallery [get]
func (h *GalleryHandler) List(c *gin.Context) {
	scope := uuid.Nil
	if raw := c.Query("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
			return
		}
		scope = id
	}

	var visible []models.Project
	if h.dbClient != nil {
		projects, err := h.dbClient.ListProjects(c.Request.Context(), scope)
		if err != nil {
			h.logger.Warn().Err(err).Msg("gallery read failed, serving samples")
		} else {
			visible = gallery.VisibleTo(projects, viewerID(c))
		}
	}

	sample := len(visible) == 0
	if sample {
		visible = gallery.SampleProjects()
	}

	filtered := gallery.Apply(visible, gallery.Filter{
		Category: c.Query("category"),
		Query:    c.Query("q"),
	})
	c.JSON(http.StatusOK, models.GalleryResponse{
		Projects:   filtered,
		Total:      len(filtered),
		Categories: gallery.Categories(visible),
		Sample:     sample,
	})
}

// Get godoc
// @Summary     Project detail
// @Description Private projects answer 404 to everyone but their owner.
// @Tags        gallery
// @Produce     json
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.Project
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /gallery/projects/{project_id} [get]
func (h *GalleryHandler) Get(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, errDatabaseUnavailable)
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}

	project, err := h.dbClient.GetProject(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !gallery.CanView(project, viewerID(c)) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
		return
	}
	c.JSON(http.StatusOK, project)
}

// TrackView godoc
// @Summary     Record a detail view
// @Description Fire-and-forget. Answers 202 even when the write fails; the id is empty then.
// @Tags        analytics
// @Produce     json
// @Param       project_id path string true "Project ID (UUID)"
// @Success     202 {object} models.TrackResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /projects/{project_id}/views [post]
func (h *GalleryHandler) TrackView(c *gin.Context) {
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}
	if h.dbClient == nil {
		c.JSON(http.StatusAccepted, models.TrackResponse{Status: "skipped"})
		return
	}

	view := &models.ProjectView{ProjectID: projectID, UserID: optionalViewer(c)}
	if err := h.dbClient.CreateView(c.Request.Context(), view); err != nil {
		h.logger.Warn().Err(err).Str("project_id", projectID.String()).Msg("view not recorded")
		c.JSON(http.StatusAccepted, models.TrackResponse{Status: "skipped"})
		return
	}
	c.JSON(http.StatusAccepted, models.TrackResponse{ID: view.ID.String(), Status: "recorded"})
}

// UpdateView godoc
// @Summary     Close a detail view
// @Description Stores how long the detail view stayed open.
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Param       view_id path string true "View ID (UUID)"
// @Param       request body models.UpdateViewRequest true "Duration"
// @Success     202 {object} models.TrackResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /views/{view_id} [patch]
func (h *GalleryHandler) UpdateView(c *gin.Context) {
	viewID, ok := pathUUID(c, "view_id")
	if !ok {
		return
	}
	var req models.UpdateViewRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.DurationSeconds < 0 {
		req.DurationSeconds = 0
	}
	if h.dbClient == nil {
		c.JSON(http.StatusAccepted, models.TrackResponse{Status: "skipped"})
		return
	}

	if err := h.dbClient.UpdateViewDuration(c.Request.Context(), viewID, req.DurationSeconds); err != nil {
		h.logger.Warn().Err(err).Str("view_id", viewID.String()).Msg("view duration not recorded")
		c.JSON(http.StatusAccepted, models.TrackResponse{Status: "skipped"})
		return
	}
	c.JSON(http.StatusAccepted, models.TrackResponse{ID: viewID.String(), Status: "recorded"})
}

// TrackClick godoc
// @Summary     Record an outbound click
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.TrackClickRequest true "Click type: demo, github, video or archive"
// @Success     202 {object} models.TrackResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /projects/{project_id}/clicks [post]
func (h *GalleryHandler) TrackClick(c *gin.Context) {
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}
	var req models.TrackClickRequest
	if !bindJSON(c, &req) {
		return
	}
	clickType := models.ClickType(req.ClickType)
	if !clickType.Valid() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid click type"})
		return
	}
	if h.dbClient == nil {
		c.JSON(http.StatusAccepted, models.TrackResponse{Status: "skipped"})
		return
	}

	click := &models.ProjectClick{ProjectID: projectID, UserID: optionalViewer(c), ClickType: clickType}
	if err := h.dbClient.CreateClick(c.Request.Context(), click); err != nil {
		h.logger.Warn().Err(err).Str("project_id", projectID.String()).Msg("click not recorded")
		c.JSON(http.StatusAccepted, models.TrackResponse{Status: "skipped"})
		return
	}
	c.JSON(http.StatusAccepted, models.TrackResponse{ID: click.ID.String(), Status: "recorded"})
}

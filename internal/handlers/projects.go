package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"visual-library-backend/internal/gallery"
	"visual-library-backend/internal/models"
	"visual-library-backend/internal/services"
	"visual-library-backend/internal/supabase"
)

// ProjectsHandler serves the per-project feedback and content routes shown on the detail page.
type ProjectsHandler struct {
	dbClient *supabase.DatabaseClient
	chat     *services.ChatService
	assets   *services.AssetService
}

func NewProjectsHandler(dbClient *supabase.DatabaseClient, chat *services.ChatService, assets *services.AssetService) *ProjectsHandler {
	return &ProjectsHandler{
		dbClient: dbClient,
		chat:     chat,
		assets:   assets,
	}
}

// visibleProject resolves the path project and applies the gallery visibility rule.
func (h *ProjectsHandler) visibleProject(c *gin.Context) (*models.Project, bool) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, errDatabaseUnavailable)
		return nil, false
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return nil, false
	}
	project, err := h.dbClient.GetProject(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if !gallery.CanView(project, viewerID(c)) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
		return nil, false
	}
	return project, true
}

// ListReviews godoc
// @Summary     List approved reviews
// @Tags        projects
// @Produce     json
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.ReviewListResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id}/reviews [get]
func (h *ProjectsHandler) ListReviews(c *gin.Context) {
	project, ok := h.visibleProject(c)
	if !ok {
		return
	}
	reviews, err := h.dbClient.ListReviews(c.Request.Context(), project.ID, models.ReviewApproved)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ReviewListResponse{Reviews: reviews})
}

// ListAudits godoc
// @Summary     List active audits
// @Tags        projects
// @Produce     json
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.AuditListResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id}/audits [get]
func (h *ProjectsHandler) ListAudits(c *gin.Context) {
	project, ok := h.visibleProject(c)
	if !ok {
		return
	}
	audits, err := h.dbClient.ListAudits(c.Request.Context(), project.ID, models.AuditStatusActive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.AuditListResponse{Audits: audits})
}

// ListMilestones godoc
// @Summary     List milestones in order
// @Tags        projects
// @Produce     json
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.MilestoneListResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id}/milestones [get]
func (h *ProjectsHandler) ListMilestones(c *gin.Context) {
	project, ok := h.visibleProject(c)
	if !ok {
		return
	}
	milestones, err := h.dbClient.ListMilestones(c.Request.Context(), project.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MilestoneListResponse{Milestones: milestones})
}

// ListVisuals godoc
// @Summary     List generated visuals
// @Tags        projects
// @Produce     json
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.VisualListResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id}/visuals [get]
func (h *ProjectsHandler) ListVisuals(c *gin.Context) {
	project, ok := h.visibleProject(c)
	if !ok {
		return
	}
	visuals, err := h.dbClient.ListVisuals(c.Request.Context(), project.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.VisualListResponse{Visuals: visuals})
}

// ListMessages godoc
// @Summary     Project conversation
// @Description Messages oldest first. New messages are pushed on the project-chat:{project_id} channel.
// @Tags        projects
// @Produce     json
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.MessageListResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects/{project_id}/messages [get]
func (h *ProjectsHandler) ListMessages(c *gin.Context) {
	project, ok := h.visibleProject(c)
	if !ok {
		return
	}
	messages, err := h.dbClient.ListMessages(c.Request.Context(), project.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageListResponse{Messages: messages})
}

// CreateReview godoc
// @Summary     Leave a review
// @Description Reviews start pending and show publicly once the owner approves them.
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.CreateReviewRequest true "Rating 1-5 and comment"
// @Success     201 {object} models.ProjectReview
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/reviews [post]
func (h *ProjectsHandler) CreateReview(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	project, ok := h.visibleProject(c)
	if !ok {
		return
	}
	var req models.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review := &models.ProjectReview{
		ProjectID: project.ID,
		UserID:    uid,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	}
	if err := h.dbClient.CreateReview(c.Request.Context(), review); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// CreateSuggestion godoc
// @Summary     Suggest an improvement
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.CreateSuggestionRequest true "Suggestion"
// @Success     201 {object} models.ProjectSuggestion
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/suggestions [post]
func (h *ProjectsHandler) CreateSuggestion(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	project, ok := h.visibleProject(c)
	if !ok {
		return
	}
	var req models.CreateSuggestionRequest
	if !bindJSON(c, &req) {
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "content is required"})
		return
	}

	suggestion := &models.ProjectSuggestion{ProjectID: project.ID, UserID: uid, Content: content}
	if err := h.dbClient.CreateSuggestion(c.Request.Context(), suggestion); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, suggestion)
}

// CreateMessage godoc
// @Summary     Post to the project conversation
// @Description The project owner posts as admin, everyone else as user.
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.CreateMessageRequest true "Message"
// @Success     201 {object} models.ProjectMessage
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/messages [post]
func (h *ProjectsHandler) CreateMessage(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	project, ok := h.visibleProject(c)
	if !ok {
		return
	}
	var req models.CreateMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.chat.Post(c.Request.Context(), project.ID, uid, req.Content, req.SenderName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// CreateVisual godoc
// @Summary     Generate a project visual
// @Description Renders an infographic, user_flow, architecture, gantt or mindmap image for the project.
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.CreateVisualRequest true "Visual type and prompt"
// @Success     201 {object} models.ProjectVisual
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /projects/{project_id}/visuals [post]
func (h *ProjectsHandler) CreateVisual(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	project, ok := h.visibleProject(c)
	if !ok {
		return
	}
	var req models.CreateVisualRequest
	if !bindJSON(c, &req) {
		return
	}

	visual, err := h.assets.GenerateVisual(c.Request.Context(), uid, project.ID, models.VisualType(req.VisualType), req.Prompt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, visual)
}

package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"visual-library-backend/internal/ai"
	"visual-library-backend/internal/models"
	"visual-library-backend/internal/services"
	"visual-library-backend/internal/supabase"
)

// UserEventPublisher pushes dashboard events to an owner's realtime channel.
type UserEventPublisher interface {
	PublishUserEvent(ctx context.Context, userID uuid.UUID, event string, payload map[string]interface{}) error
}

type RecommendationListResponse struct {
	Recommendations []ai.Recommendation `json:"recommendations"`
}

// AdminHandler serves the owner dashboard. Every route is scoped to the caller's
// projects; subscribers and site-wide inquiries are reserved to site owners.
type AdminHandler struct {
	dbClient  *supabase.DatabaseClient
	admin     *services.AdminService
	chat      *services.ChatService
	insights  *services.InsightService
	assets    *services.AssetService
	publisher UserEventPublisher
	logger    zerolog.Logger
}

type AdminDependencies struct {
	DB        *supabase.DatabaseClient
	Admin     *services.AdminService
	Chat      *services.ChatService
	Insights  *services.InsightService
	Assets    *services.AssetService
	Publisher UserEventPublisher
}

func NewAdminHandler(deps AdminDependencies) *AdminHandler {
	return &AdminHandler{
		dbClient:  deps.DB,
		admin:     deps.Admin,
		chat:      deps.Chat,
		insights:  deps.Insights,
		assets:    deps.Assets,
		publisher: deps.Publisher,
		logger:    log.With().Str("handlerName", "admin").Logger(),
	}
}

// ownedProject loads the :project_id project and hides it unless the caller owns it.
func (h *AdminHandler) ownedProject(c *gin.Context, ownerID uuid.UUID) (*models.Project, bool) {
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
	if project.UserID != ownerID {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
		return nil, false
	}
	return project, true
}

// ListProjects godoc
// @Summary     List my projects
// @Description Every project the caller owns, private ones included, newest first.
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.ProjectListResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /admin/projects [get]
func (h *AdminHandler) ListProjects(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	out, err := h.admin.List(c.Request.Context(), services.CollectionProjects, uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// applyUpdate copies the set fields of req onto p.
func applyUpdate(p *models.Project, req models.UpdateProjectRequest) bool {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&p.Title, req.Title)
	set(&p.Description, req.Description)
	set(&p.Category, req.Category)
	set(&p.ImageURL, req.ImageURL)
	set(&p.VideoURL, req.VideoURL)
	set(&p.GithubURL, req.GithubURL)
	set(&p.DemoURL, req.DemoURL)
	set(&p.ArchiveURL, req.ArchiveURL)
	if req.Tags != nil {
		p.Tags = models.JoinTags(models.SplitTags(*req.Tags))
	}
	if req.MediaType != nil {
		p.MediaType = models.ParseMediaType(*req.MediaType)
	}
	if req.Visibility != nil {
		v := models.Visibility(strings.ToLower(strings.TrimSpace(*req.Visibility)))
		if !v.Valid() {
			return false
		}
		p.Visibility = v
	}
	return true
}

// UpdateProject godoc
// @Summary     Edit a project
// @Description Only the fields present in the body change.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.UpdateProjectRequest true "Fields to change"
// @Success     200 {object} models.Project
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/projects/{project_id} [put]
func (h *AdminHandler) UpdateProject(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	project, ok := h.ownedProject(c, uid)
	if !ok {
		return
	}
	var req models.UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	if !applyUpdate(project, req) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid visibility"})
		return
	}
	if project.Title == "" || project.ImageURL == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "title and image url are required"})
		return
	}

	if err := h.dbClient.UpdateProject(c.Request.Context(), project); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// SetVisibility godoc
// @Summary     Toggle project visibility
// @Description Private projects disappear from the public gallery but stay in the admin list.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.VisibilityRequest true "public or private"
// @Success     200 {object} models.MessageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/projects/{project_id}/visibility [patch]
func (h *AdminHandler) SetVisibility(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, errDatabaseUnavailable)
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}
	var req models.VisibilityRequest
	if !bindJSON(c, &req) {
		return
	}
	visibility := models.Visibility(strings.ToLower(strings.TrimSpace(req.Visibility)))
	if !visibility.Valid() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid visibility"})
		return
	}

	if err := h.dbClient.SetProjectVisibility(c.Request.Context(), projectID, uid, visibility); err != nil {
		respondError(c, err)
		return
	}

	if h.publisher != nil {
		payload := supabase.ProjectVisibilityPayload(projectID, visibility)
		if err := h.publisher.PublishUserEvent(c.Request.Context(), uid, supabase.EventProjectVisibility, payload); err != nil {
			h.logger.Warn().Err(err).Str("project_id", projectID.String()).Msg("failed to publish visibility change")
		}
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "project is now " + string(visibility)})
}

// Rewrite godoc
// @Summary     Rewrite the description with AI
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.Project
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /admin/projects/{project_id}/rewrite [post]
func (h *AdminHandler) Rewrite(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}
	project, err := h.insights.Rewrite(c.Request.Context(), uid, projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// DeleteProject godoc
// @Summary     Delete a project
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.MessageResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/projects/{project_id} [delete]
func (h *AdminHandler) DeleteProject(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}
	if err := h.admin.Delete(c.Request.Context(), services.CollectionProjects, projectID, uid); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "project deleted"})
}

// CreateAudit godoc
// @Summary     Add an audit by hand
// @Description audit_type defaults to Security and score to 100.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.CreateAuditRequest true "Audit"
// @Success     201 {object} models.ProjectAudit
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/projects/{project_id}/audits [post]
func (h *AdminHandler) CreateAudit(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	project, ok := h.ownedProject(c, uid)
	if !ok {
		return
	}
	var req models.CreateAuditRequest
	if !bindJSON(c, &req) {
		return
	}

	audit, err := services.ManualAudit(project.ID, uid, req)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.dbClient.CreateAudit(c.Request.Context(), audit); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, audit)
}

// GenerateAudit godoc
// @Summary     Run an AI audit
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     201 {object} models.ProjectAudit
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /admin/projects/{project_id}/audits/generate [post]
func (h *AdminHandler) GenerateAudit(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}
	audit, err := h.insights.GenerateAudit(c.Request.Context(), uid, projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, audit)
}

// CreateMilestone godoc
// @Summary     Add a milestone
// @Description Appended after the existing milestones. The image is optional.
// @Tags        admin
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       project_id  path     string true  "Project ID (UUID)"
// @Param       title       formData string true  "Title"
// @Param       description formData string false "Description"
// @Param       image       formData file   false "Image"
// @Success     201 {object} models.ProjectMilestone
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/projects/{project_id}/milestones [post]
func (h *AdminHandler) CreateMilestone(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}

	in := services.MilestoneInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
	}
	if isMultipart(c) {
		file, err := formFile(c, "image")
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid image", Message: err.Error()})
			return
		}
		if file != nil {
			in.Image = &services.Upload{Name: file.Name, ContentType: file.ContentType, Data: file.Data}
		}
	}

	milestone, err := h.assets.CreateMilestone(c.Request.Context(), uid, projectID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, milestone)
}

// ClearChat godoc
// @Summary     Clear a project conversation
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.ClearResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /admin/messages/projects/{project_id} [delete]
func (h *AdminHandler) ClearChat(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}
	n, err := h.chat.Clear(c.Request.Context(), projectID, uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ClearResponse{Deleted: n})
}

// ListCollection godoc
// @Summary     List an admin collection
// @Description One of projects, testimonials, inquiries, reviews, suggestions, audits, subscribers, milestones, messages. Subscribers need site owner access.
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       collection path string true "Collection name"
// @Success     200 {object} object
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Router      /admin/{collection} [get]
func (h *AdminHandler) ListCollection(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	collection, err := services.ParseCollection(c.Param("collection"))
	if err != nil {
		respondError(c, err)
		return
	}
	out, err := h.admin.List(c.Request.Context(), collection, uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DeleteFromCollection godoc
// @Summary     Delete a record from an admin collection
// @Description For messages the id is a project id and the whole conversation goes.
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       collection path string true "Collection name"
// @Param       id         path string true "Record ID (UUID)"
// @Success     200 {object} models.MessageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/{collection}/{id} [delete]
func (h *AdminHandler) DeleteFromCollection(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	collection, err := services.ParseCollection(c.Param("collection"))
	if err != nil {
		respondError(c, err)
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.admin.Delete(c.Request.Context(), collection, id, uid); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: string(collection) + " record deleted"})
}

// CreateTestimonial godoc
// @Summary     Add a testimonial
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateTestimonialRequest true "Testimonial"
// @Success     201 {object} models.Testimonial
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /admin/testimonials [post]
func (h *AdminHandler) CreateTestimonial(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, errDatabaseUnavailable)
		return
	}
	var req models.CreateTestimonialRequest
	if !bindJSON(c, &req) {
		return
	}

	t := &models.Testimonial{
		UserID:    uid,
		Name:      strings.TrimSpace(req.Name),
		Role:      strings.TrimSpace(req.Role),
		Company:   strings.TrimSpace(req.Company),
		Content:   strings.TrimSpace(req.Content),
		AvatarURL: strings.TrimSpace(req.AvatarURL),
	}
	if err := h.dbClient.CreateTestimonial(c.Request.Context(), t); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// UpdateReviewStatus godoc
// @Summary     Moderate a review
// @Description pending, approved or rejected. Approved reviews show on the project page.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id      path string true "Review ID (UUID)"
// @Param       request body models.StatusRequest true "New status"
// @Success     200 {object} models.MessageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/reviews/{id}/status [patch]
func (h *AdminHandler) UpdateReviewStatus(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, errDatabaseUnavailable)
		return
	}
	reviewID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req models.StatusRequest
	if !bindJSON(c, &req) {
		return
	}
	status := models.ReviewStatus(strings.ToLower(req.Status))
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid review status"})
		return
	}

	if err := h.dbClient.UpdateReviewStatus(c.Request.Context(), reviewID, uid, status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "review " + string(status)})
}

// UpdateSuggestionStatus godoc
// @Summary     Triage a suggestion
// @Description new, considered, implemented or closed.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id      path string true "Suggestion ID (UUID)"
// @Param       request body models.StatusRequest true "New status"
// @Success     200 {object} models.MessageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/suggestions/{id}/status [patch]
func (h *AdminHandler) UpdateSuggestionStatus(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, errDatabaseUnavailable)
		return
	}
	suggestionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req models.StatusRequest
	if !bindJSON(c, &req) {
		return
	}
	status := models.SuggestionStatus(strings.ToLower(req.Status))
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid suggestion status"})
		return
	}

	if err := h.dbClient.UpdateSuggestionStatus(c.Request.Context(), suggestionID, uid, status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "suggestion " + string(status)})
}

// Overview godoc
// @Summary     Dashboard overview
// @Description Record counts per collection plus the analytics summary.
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Success     200 {object} services.Overview
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /admin/overview [get]
func (h *AdminHandler) Overview(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	out, err := h.admin.Overview(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Analytics godoc
// @Summary     Engagement analytics
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Success     200 {object} analytics.Summary
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /admin/analytics [get]
func (h *AdminHandler) Analytics(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	summary, err := h.admin.Analytics(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Chats godoc
// @Summary     Conversations across my projects
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.ChatSummaryListResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /admin/chats [get]
func (h *AdminHandler) Chats(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	chats, err := h.chat.Summaries(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ChatSummaryListResponse{Chats: chats})
}

// Recommendations godoc
// @Summary     AI portfolio recommendations
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Success     200 {object} handlers.RecommendationListResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /admin/recommendations [post]
func (h *AdminHandler) Recommendations(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	recs, err := h.insights.Recommend(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, RecommendationListResponse{Recommendations: recs})
}

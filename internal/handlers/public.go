package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"visual-library-backend/internal/connectors"
	"visual-library-backend/internal/errs"
	"visual-library-backend/internal/importer"
	"visual-library-backend/internal/models"
	"visual-library-backend/internal/services"
	"visual-library-backend/internal/supabase"
)

type ConnectorListResponse struct {
	Connectors []connectors.Connector `json:"connectors"`
	Categories []string               `json:"categories"`
}

// PublicHandler serves the visitor-facing routes outside a single project page.
type PublicHandler struct {
	dbClient   *supabase.DatabaseClient
	engagement *services.EngagementService
	proofing   *services.ProofingService
	pressKit   *services.PressKitService
	insights   *services.InsightService
	importFn   *importer.Function
	logger     zerolog.Logger
}

type PublicDependencies struct {
	DB         *supabase.DatabaseClient
	Engagement *services.EngagementService
	Proofing   *services.ProofingService
	PressKit   *services.PressKitService
	Insights   *services.InsightService
	Import     *importer.Function
}

func NewPublicHandler(deps PublicDependencies) *PublicHandler {
	return &PublicHandler{
		dbClient:   deps.DB,
		engagement: deps.Engagement,
		proofing:   deps.Proofing,
		pressKit:   deps.PressKit,
		insights:   deps.Insights,
		importFn:   deps.Import,
		logger:     log.With().Str("handlerName", "public").Logger(),
	}
}

// queryOwner parses the optional user_id scope; uuid.Nil means every owner.
func queryOwner(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Query("user_id")
	if raw == "" {
		return uuid.Nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return uuid.Nil, false
	}
	return id, true
}

// ListTestimonials godoc
// @Summary     List testimonials
// @Tags        public
// @Produce     json
// @Param       user_id query string false "Scope to one portfolio owner"
// @Success     200 {object} models.TestimonialListResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /testimonials [get]
func (h *PublicHandler) ListTestimonials(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, errDatabaseUnavailable)
		return
	}
	ownerID, ok := queryOwner(c)
	if !ok {
		return
	}
	testimonials, err := h.dbClient.ListTestimonials(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.TestimonialListResponse{Testimonials: testimonials})
}

// CreateInquiry godoc
// @Summary     Send a contact inquiry
// @Description Stores the inquiry and emails the sender a confirmation when mail is configured.
// @Description Without owner_id the inquiry is site-wide.
// @Tags        public
// @Accept      json
// @Produce     json
// @Param       request body models.CreateInquiryRequest true "Inquiry"
// @Success     201 {object} models.Inquiry
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /inquiries [post]
func (h *PublicHandler) CreateInquiry(c *gin.Context) {
	var req models.CreateInquiryRequest
	if !bindJSON(c, &req) {
		return
	}
	var ownerID *uuid.UUID
	if req.OwnerID != "" {
		id, err := uuid.Parse(req.OwnerID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid owner id"})
			return
		}
		ownerID = &id
	}

	inquiry, err := h.engagement.SubmitInquiry(c.Request.Context(), ownerID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inquiry)
}

// Subscribe godoc
// @Summary     Join the newsletter
// @Tags        public
// @Accept      json
// @Produce     json
// @Param       request body models.SubscribeRequest true "Email address"
// @Success     201 {object} models.NewsletterSubscription
// @Failure     400 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /newsletter [post]
func (h *PublicHandler) Subscribe(c *gin.Context) {
	var req models.SubscribeRequest
	if !bindJSON(c, &req) {
		return
	}
	sub, err := h.engagement.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		if errs.IsConflict(err) {
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "already subscribed"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// GetProofing godoc
// @Summary     Client proofing view
// @Description Returns the project for client review. Proofing links work for private projects too.
// @Tags        proofing
// @Produce     json
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.Project
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /proofing/{project_id} [get]
func (h *PublicHandler) GetProofing(c *gin.Context) {
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}
	project, err := h.proofing.Get(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// Approve godoc
// @Summary     Approve a project
// @Description Records the client's approval as an inquiry to the owner and notifies them.
// @Tags        proofing
// @Accept      json
// @Produce     json
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.ApproveRequest false "Optional feedback"
// @Success     201 {object} models.Inquiry
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /proofing/{project_id}/approve [post]
func (h *PublicHandler) Approve(c *gin.Context) {
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}
	var req models.ApproveRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	inquiry, err := h.proofing.Approve(c.Request.Context(), projectID, req.Feedback)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inquiry)
}

// ListConnectors godoc
// @Summary     Available import connectors
// @Tags        intake
// @Produce     json
// @Success     200 {object} handlers.ConnectorListResponse
// @Router      /connectors [get]
func (h *PublicHandler) ListConnectors(c *gin.Context) {
	c.JSON(http.StatusOK, ConnectorListResponse{
		Connectors: connectors.All(),
		Categories: connectors.Categories(),
	})
}

// Import godoc
// @Summary     Extract projects from a portfolio page
// @Description Fetches the page, keeps the first 15000 characters and asks the model for up to five projects.
// @Tags        functions
// @Accept      json
// @Produce     json
// @Param       request body importer.Request true "Page URL and optional provider"
// @Success     200 {object} importer.Response
// @Failure     400 {object} importer.Response
// @Failure     502 {object} importer.Response
// @Router      /functions/import [post]
func (h *PublicHandler) Import(c *gin.Context) {
	var req importer.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, importer.Response{Error: "invalid request body"})
		return
	}

	items, err := h.importFn.Run(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, importer.ErrURLRequired) {
			c.JSON(http.StatusBadRequest, importer.Response{Error: err.Error()})
			return
		}
		h.logger.Warn().Err(err).Str("url", req.URL).Msg("import function failed")
		c.JSON(http.StatusBadGateway, importer.Response{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, importer.Response{Projects: items})
}

// PressKit godoc
// @Summary     Press kit
// @Description Renders public projects and testimonials as a standalone HTML page.
// @Tags        public
// @Produce     html
// @Param       user_id query string false "Scope to one portfolio owner"
// @Success     200 {string} string "HTML document"
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /press-kit [get]
func (h *PublicHandler) PressKit(c *gin.Context) {
	ownerID, ok := queryOwner(c)
	if !ok {
		return
	}
	page, err := h.pressKit.Render(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// Ask godoc
// @Summary     Portfolio assistant
// @Description Answers a visitor question using the public library as context.
// @Tags        public
// @Accept      json
// @Produce     json
// @Param       request body models.AssistantRequest true "Question"
// @Success     200 {object} models.AssistantResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /assistant/chat [post]
func (h *PublicHandler) Ask(c *gin.Context) {
	var req models.AssistantRequest
	if !bindJSON(c, &req) {
		return
	}
	answer, err := h.insights.Ask(c.Request.Context(), req.Question)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.AssistantResponse{Answer: answer})
}

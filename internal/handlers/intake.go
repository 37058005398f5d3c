package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"visual-library-backend/internal/intake"
	"visual-library-backend/internal/models"
)

// maxUploadBytes caps a single intake or milestone upload.
const maxUploadBytes = 50 << 20

// IntakeFailureResponse carries the draft back so the form keeps its state.
type IntakeFailureResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message,omitempty"`
	Step    string       `json:"step,omitempty"`
	Draft   intake.Draft `json:"draft"`
}

type SyncFailureResponse struct {
	IntakeFailureResponse
	Connector string           `json:"connector"`
	State     intake.SyncState `json:"state"`
}

type IntakeHandler struct {
	pipeline *intake.Pipeline
}

func NewIntakeHandler(pipeline *intake.Pipeline) *IntakeHandler {
	return &IntakeHandler{pipeline: pipeline}
}

// ready reports whether the pipeline exists; it is nil when the database is unavailable.
func (h *IntakeHandler) ready(c *gin.Context) bool {
	if h.pipeline == nil {
		c.JSON(http.StatusInternalServerError, errDatabaseUnavailable)
		return false
	}
	return true
}

func intakeFailure(err error, draft intake.Draft) IntakeFailureResponse {
	status := statusFor(err)
	out := IntakeFailureResponse{Error: errorLabel(status), Message: err.Error(), Draft: draft}
	var step *intake.StepError
	if errors.As(err, &step) {
		out.Step = step.Step
	}
	return out
}

func respondIntake(c *gin.Context, res *intake.Result, err error) {
	if err != nil {
		if res == nil {
			respondError(c, err)
			return
		}
		c.JSON(statusFor(err), intakeFailure(err, res.Draft))
		return
	}
	c.JSON(http.StatusCreated, res)
}

// formFile reads an optional multipart file into memory.
func formFile(c *gin.Context, field string) (*intake.File, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	if header.Size > maxUploadBytes {
		return nil, fmt.Errorf("%s exceeds %d MB", header.Filename, maxUploadBytes>>20)
	}
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return nil, err
	}
	return &intake.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/")
}

// Generate godoc
// @Summary     Generate a project with AI
// @Description Synthesizes title, description, category, tags and media type from a repository URL,
// @Description a demo URL and/or an uploaded archive, renders a cover, runs an audit and archives the
// @Description result. Accepts JSON or multipart (fields github_url, demo_url, file archive).
// @Description On a failed step the partially filled draft is returned with the step name.
// @Tags        intake
// @Accept      json
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       request body models.GenerateRequest false "Sources (JSON)"
// @Param       archive formData file false "Project archive"
// @Success     201 {object} intake.Result
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     502 {object} handlers.IntakeFailureResponse
// @Router      /admin/intake/generate [post]
func (h *IntakeHandler) Generate(c *gin.Context) {
	o, ok := owner(c)
	if !ok {
		return
	}
	if !h.ready(c) {
		return
	}

	var req models.GenerateRequest
	var in intake.GenerateInput
	if isMultipart(c) {
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid form", Message: err.Error()})
			return
		}
		archive, err := formFile(c, "archive")
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid archive", Message: err.Error()})
			return
		}
		in.Archive = archive
	} else if !bindJSON(c, &req) {
		return
	}
	in.GithubURL = req.GithubURL
	in.DemoURL = req.DemoURL

	res, err := h.pipeline.Generate(c.Request.Context(), o, in)
	respondIntake(c, res, err)
}

// Sync godoc
// @Summary     Sync from a connector
// @Description Imports the latest work from a connector account or URL. When the import fails or
// @Description finds nothing, an AI placeholder is archived instead and state is fallback_generated.
// @Tags        intake
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.SyncRequest true "Connector id and value"
// @Success     201 {object} intake.SyncResult
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     502 {object} handlers.SyncFailureResponse
// @Router      /admin/intake/sync [post]
func (h *IntakeHandler) Sync(c *gin.Context) {
	o, ok := owner(c)
	if !ok {
		return
	}
	if !h.ready(c) {
		return
	}
	var req models.SyncRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.pipeline.Sync(c.Request.Context(), o, req.Connector, req.Value)
	if err != nil {
		if res == nil {
			respondError(c, err)
			return
		}
		c.JSON(statusFor(err), SyncFailureResponse{
			IntakeFailureResponse: intakeFailure(err, res.Draft),
			Connector:             res.Connector,
			State:                 res.State,
		})
		return
	}
	c.JSON(http.StatusCreated, res)
}

// Upload godoc
// @Summary     Archive an uploaded file
// @Description Classifies the file by extension. Images are described by the model and used as
// @Description their own cover, videos and documents get a generated cover, archives are synthesized.
// @Tags        intake
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       file formData file true "Image, video, archive or document"
// @Success     201 {object} intake.Result
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     502 {object} handlers.IntakeFailureResponse
// @Router      /admin/intake/upload [post]
func (h *IntakeHandler) Upload(c *gin.Context) {
	o, ok := owner(c)
	if !ok {
		return
	}
	if !h.ready(c) {
		return
	}
	file, err := formFile(c, "file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid file", Message: err.Error()})
		return
	}
	if file == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file is required"})
		return
	}

	res, err := h.pipeline.IngestFile(c.Request.Context(), o, *file)
	respondIntake(c, res, err)
}

// Save godoc
// @Summary     Archive a reviewed draft
// @Description Requires a title and a cover image; otherwise answers 422 and nothing is stored.
// @Tags        intake
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body intake.Draft true "Draft"
// @Success     201 {object} intake.Result
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     422 {object} handlers.IntakeFailureResponse
// @Router      /admin/intake/save [post]
func (h *IntakeHandler) Save(c *gin.Context) {
	o, ok := owner(c)
	if !ok {
		return
	}
	if !h.ready(c) {
		return
	}
	var draft intake.Draft
	if !bindJSON(c, &draft) {
		return
	}

	res, err := h.pipeline.Save(c.Request.Context(), o, draft)
	respondIntake(c, res, err)
}

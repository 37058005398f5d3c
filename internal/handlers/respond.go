package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"visual-library-backend/internal/errs"
	"visual-library-backend/internal/intake"
	"visual-library-backend/internal/middleware"
	"visual-library-backend/internal/models"
	"visual-library-backend/internal/supabase"
)

var errDatabaseUnavailable = models.ErrorResponse{Error: "database not available"}

// RequireDatabase guards route groups whose handlers all read or write the
// database. The server keeps running without DATABASE_URL, so the check is per request.
func RequireDatabase(db *supabase.DatabaseClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, errDatabaseUnavailable)
			return
		}
		c.Next()
	}
}

// statusFor maps domain sentinels first, then the shared errs taxonomy.
func statusFor(err error) int {
	var step *intake.StepError
	switch {
	case errors.Is(err, intake.ErrNoSource),
		errors.Is(err, intake.ErrMissingValue),
		errors.Is(err, intake.ErrUnknownConnector),
		errors.Is(err, intake.ErrInvalidValue),
		errors.Is(err, intake.ErrConfigurationRequired):
		return http.StatusBadRequest
	case errors.Is(err, intake.ErrIncompleteDraft):
		return http.StatusUnprocessableEntity
	case errors.As(err, &step):
		return http.StatusBadGateway
	}
	return errs.StatusCode(err)
}

func errorLabel(status int) string {
	return strings.ToLower(http.StatusText(status))
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	c.JSON(status, models.ErrorResponse{Error: errorLabel(status), Message: err.Error()})
}

// userID reads the authenticated subject set by RequireAuth.
func userID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return uuid.Nil, false
	}
	return id, true
}

// viewerID is the optional-auth variant; anonymous callers get uuid.Nil.
func viewerID(c *gin.Context) uuid.UUID {
	raw, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		return uuid.Nil
	}
	return id
}

func optionalViewer(c *gin.Context) *uuid.UUID {
	if id := viewerID(c); id != uuid.Nil {
		return &id
	}
	return nil
}

func accessToken(c *gin.Context) string {
	return c.GetString(middleware.AccessTokenKey)
}

func owner(c *gin.Context) (intake.Owner, bool) {
	id, ok := userID(c)
	if !ok {
		return intake.Owner{}, false
	}
	return intake.Owner{UserID: id, AccessToken: accessToken(c)}, true
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid " + strings.ReplaceAll(name, "_", " ")})
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return false
	}
	return true
}

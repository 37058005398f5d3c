package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"visual-library-backend/internal/models"
	"visual-library-backend/internal/services"
)

type ProfileHandler struct {
	profiles *services.ProfileService
}

func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Get godoc
// @Summary     My profile
// @Tags        profile
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.Profile
// @Failure     401 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /admin/profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	if _, ok := userID(c); !ok {
		return
	}
	profile, err := h.profiles.Get(c.Request.Context(), accessToken(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Update godoc
// @Summary     Update my profile
// @Description Username must be 3-20 letters, digits or underscores and is stored lowercased.
// @Description figma_token is kept in the versioned visual_library metadata block.
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.UpdateProfileRequest true "Fields to change"
// @Success     200 {object} models.Profile
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /admin/profile [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	if _, ok := userID(c); !ok {
		return
	}
	var req models.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	profile, err := h.profiles.Update(c.Request.Context(), accessToken(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// SyncTheme godoc
// @Summary     Derive the site theme from my latest cover
// @Description Asks the model for a primary and secondary color from the newest project cover
// @Description and stores them in profile metadata.
// @Tags        profile
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.ThemeResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /admin/profile/theme [post]
func (h *ProfileHandler) SyncTheme(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	out, err := h.profiles.SyncTheme(c.Request.Context(), accessToken(c), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recapio/recapio/internal/models"
	"github.com/recapio/recapio/internal/platform"
	"github.com/recapio/recapio/internal/services/dubbing"
	"github.com/recapio/recapio/internal/utils"
)

// VideoHandler serves the URL validation and platform metadata endpoints
// used by the submission form.
type VideoHandler struct {
	engine dubbing.EngineClient
}

func NewVideoHandler(engine dubbing.EngineClient) *VideoHandler {
	return &VideoHandler{engine: engine}
}

// ValidateURL godoc
// @Summary Validate a video URL
// @Description Check whether a URL belongs to a supported platform and extract its video id. Always returns 200 with a structured result; an unrecognized URL is not an error.
// @Tags videos
// @Accept json
// @Produce json
// @Param request body models.ValidateURLRequest true "URL to validate"
// @Success 200 {object} models.ValidateURLResponse
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/videos/validate [post]
// @Security BearerAuth
func (h *VideoHandler) ValidateURL(c *gin.Context) {
	var req models.ValidateURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, utils.NewValidationError("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		}))
		return
	}

	var v platform.Validation
	if req.ShortsOnly {
		v = platform.ValidateShorts(req.URL)
	} else {
		v = platform.Validate(req.URL)
	}

	response := models.ValidateURLResponse{
		Valid:   v.Valid,
		Reason:  v.Reason,
		Message: v.Message,
	}
	if v.Valid {
		display := platform.Display(v.Platform)
		response.Platform = v.Platform
		response.VideoID = v.VideoID
		response.Display = &display
	}

	c.JSON(http.StatusOK, response)
}

// ListPlatforms godoc
// @Summary List supported platforms
// @Description Return the supported video platforms with their display metadata for UI badges
// @Tags videos
// @Produce json
// @Success 200 {array} models.PlatformListItem
// @Router /api/v1/videos/platforms [get]
// @Security BearerAuth
func (h *VideoHandler) ListPlatforms(c *gin.Context) {
	platforms := platform.Supported()
	items := make([]models.PlatformListItem, 0, len(platforms))
	for _, p := range platforms {
		items = append(items, models.PlatformListItem{
			Platform: p,
			Display:  platform.Display(p),
		})
	}
	c.JSON(http.StatusOK, items)
}

// ListLanguages godoc
// @Summary List dubbing languages and voices
// @Description Return the target languages and voices the dubbing engine currently supports, for the submission form. The engine is asked once per process.
// @Tags videos
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/v1/videos/languages [get]
// @Security BearerAuth
func (h *VideoHandler) ListLanguages(c *gin.Context) {
	ctx := c.Request.Context()

	caps, err := h.engine.Capabilities(ctx)
	if err != nil {
		utils.LogError(ctx, "Failed to fetch engine capabilities", err)
		errorResponse(c, utils.NewEngineError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"languages":            caps.Languages,
		"voices":               caps.Voices,
		"max_duration_seconds": caps.MaxDurationSeconds,
	})
}

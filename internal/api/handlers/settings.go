package handlers

import (
	"net/http"
	"strconv"
	"wordvault/internal/cleanup"
	"wordvault/internal/models"
	"wordvault/internal/repository"

	"github.com/gin-gonic/gin"
)

// SettingsHandler handles HTTP requests for application settings
type SettingsHandler struct {
	settingRepo repository.SettingRepository
	cleanupJob  *cleanup.FavoritesJob
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingRepo repository.SettingRepository, cleanupJob *cleanup.FavoritesJob) *SettingsHandler {
	return &SettingsHandler{
		settingRepo: settingRepo,
		cleanupJob:  cleanupJob,
	}
}

// GetCleanup godoc
// @Summary Favorites retention settings
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.CleanupSettings "Current retention policy"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /settings/cleanup [get]
func (h *SettingsHandler) GetCleanup(c *gin.Context) {
	policy, err := h.cleanupJob.Policy(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, policy)
}

// UpdateCleanup godoc
// @Summary Update favorites retention settings
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CleanupSettings true "New retention policy"
// @Success 200 {object} models.CleanupSettings "Updated retention policy"
// @Failure 400 {object} models.ErrorResponse "Invalid request format"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /settings/cleanup [put]
func (h *SettingsHandler) UpdateCleanup(c *gin.Context) {
	var req models.CleanupSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	values := map[string]string{
		models.SettingCleanupEnabled: strconv.FormatBool(req.Enabled),
		models.SettingCleanupDays:    strconv.Itoa(req.Days),
		models.SettingCleanupHours:   strconv.Itoa(req.Hours),
		models.SettingCleanupMinutes: strconv.Itoa(req.Minutes),
	}
	for key, value := range values {
		if err := h.settingRepo.SetValue(ctx, key, value); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
			return
		}
	}

	c.JSON(http.StatusOK, req)
}

package handlers

import (
	"net/http"

	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/database/models"
	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/services"
	"github.com/gin-gonic/gin"
)

// SettingsHandler handles generator settings requests
type SettingsHandler struct {
	settingsService *services.SettingsService
	logService      *services.LogService
}

// NewSettingsHandler creates a new SettingsHandler instance
func NewSettingsHandler(settingsService *services.SettingsService, logService *services.LogService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, logService: logService}
}

// settingsResponse masks the API key before it leaves the process
type settingsResponse struct {
	Provider    string `json:"provider"`
	Model       string `json:"model"`
	BaseURL     string `json:"base_url,omitempty"`
	Signature   string `json:"signature"`
	NumOptions  int    `json:"num_options"`
	MaxMessages int    `json:"max_messages"`
	APIKeyIsSet bool   `json:"api_key_is_set"`
}

// GetSettings returns the current generator settings
// GET /api/settings/generator
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.Get()
	if err != nil {
		h.logService.Error(models.LogModuleAPI, "get_settings", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SETTINGS_ERROR",
				"message": "Failed to load settings",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": settingsResponse{
			Provider:    settings.Provider,
			Model:       settings.Model,
			BaseURL:     settings.BaseURL,
			Signature:   settings.Signature,
			NumOptions:  settings.NumOptions,
			MaxMessages: settings.MaxMessages,
			APIKeyIsSet: settings.APIKey != "",
		},
	})
}

// UpdateSettings updates the generator settings. The new configuration
// takes effect on the next process start: the generator backend is resolved
// once at startup and treated as read-only afterwards.
// PUT /api/settings/generator
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req services.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	settings, err := h.settingsService.Update(req)
	if err != nil {
		h.logService.Error(models.LogModuleAPI, "update_settings", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SETTINGS_ERROR",
				"message": "Failed to update settings",
			},
		})
		return
	}

	h.logService.Info(models.LogModuleAPI, "update_settings", "generator settings updated")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": settingsResponse{
			Provider:    settings.Provider,
			Model:       settings.Model,
			BaseURL:     settings.BaseURL,
			Signature:   settings.Signature,
			NumOptions:  settings.NumOptions,
			MaxMessages: settings.MaxMessages,
			APIKeyIsSet: settings.APIKey != "",
		},
	})
}

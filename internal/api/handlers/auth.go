package handlers

import (
	"net/http"

	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/api/middleware"
	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/database/models"
	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/services"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles session token issuance
type AuthHandler struct {
	jwtManager *middleware.JWTManager
	logService *services.LogService
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(jwtManager *middleware.JWTManager, logService *services.LogService) *AuthHandler {
	return &AuthHandler{jwtManager: jwtManager, logService: logService}
}

// Login issues a session token. The API key middleware has already
// authenticated the caller by the time this runs.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	token, expiresAt, err := h.jwtManager.GenerateToken()
	if err != nil {
		h.logService.Error(models.LogModuleAPI, "login", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TOKEN_ERROR",
				"message": "Failed to generate session token",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"token":      token,
			"expires_at": expiresAt,
		},
	})
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/api/middleware"
	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/services"
	"github.com/gin-gonic/gin"
)

func TestLoginIssuesValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	jwtManager := middleware.NewJWTManager("test-secret", time.Hour)
	handler := NewAuthHandler(jwtManager, services.NewLogService(nil))

	router := gin.New()
	router.POST("/api/auth/login", handler.Login)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("login failed with %d: %s", w.Code, w.Body.String())
	}

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			Token     string `json:"token"`
			ExpiresAt int64  `json:"expires_at"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !envelope.Success || envelope.Data.Token == "" {
		t.Fatalf("unexpected response: %s", w.Body.String())
	}
	if envelope.Data.ExpiresAt <= time.Now().Unix() {
		t.Errorf("token already expired: %d", envelope.Data.ExpiresAt)
	}

	if _, err := jwtManager.ValidateToken(envelope.Data.Token); err != nil {
		t.Errorf("issued token does not validate: %v", err)
	}
}

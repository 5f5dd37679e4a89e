package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/config"
	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/database"
	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/services"
	"github.com/gin-gonic/gin"
)

func settingsRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to initialize database: %v", err)
	}

	cfg := &config.Config{
		GeneratorProvider: config.DefaultGeneratorProvider,
		GeneratorModel:    config.DefaultGeneratorModel,
		Signature:         config.DefaultSignature,
	}
	handler := NewSettingsHandler(services.NewSettingsService(db, cfg), services.NewLogService(nil))

	router := gin.New()
	router.GET("/api/settings/generator", handler.GetSettings)
	router.PUT("/api/settings/generator", handler.UpdateSettings)
	return router
}

type settingsEnvelope struct {
	Success bool             `json:"success"`
	Data    settingsResponse `json:"data"`
}

func TestGetSettingsMasksAPIKey(t *testing.T) {
	router := settingsRouter(t)

	put := httptest.NewRequest(http.MethodPut, "/api/settings/generator",
		strings.NewReader(`{"api_key": "sk-secret", "provider": "openai"}`))
	put.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, put)
	if w.Code != http.StatusOK {
		t.Fatalf("update failed with %d: %s", w.Code, w.Body.String())
	}

	get := httptest.NewRequest(http.MethodGet, "/api/settings/generator", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, get)
	if w.Code != http.StatusOK {
		t.Fatalf("get failed with %d: %s", w.Code, w.Body.String())
	}

	if strings.Contains(w.Body.String(), "sk-secret") {
		t.Error("API key leaked in response body")
	}

	var envelope settingsEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !envelope.Success || !envelope.Data.APIKeyIsSet {
		t.Errorf("unexpected response: %+v", envelope)
	}
	if envelope.Data.Provider != "openai" {
		t.Errorf("unexpected provider: %q", envelope.Data.Provider)
	}
}

func TestUpdateSettingsRejectsBadJSON(t *testing.T) {
	router := settingsRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/settings/generator",
		strings.NewReader(`{"num_options": "three"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "INVALID_REQUEST") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestGetSettingsDefaults(t *testing.T) {
	router := settingsRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/settings/generator", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var envelope settingsEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if envelope.Data.NumOptions != 3 || envelope.Data.MaxMessages != 10 {
		t.Errorf("unexpected defaults: %+v", envelope.Data)
	}
	if envelope.Data.APIKeyIsSet {
		t.Error("expected no API key by default")
	}
}

package services

import (
	"errors"
	"time"

	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/config"
	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/database/models"
	"gorm.io/gorm"
)

// SettingsService manages the generator backend settings row
type SettingsService struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewSettingsService creates a new SettingsService instance
func NewSettingsService(db *gorm.DB, cfg *config.Config) *SettingsService {
	return &SettingsService{db: db, cfg: cfg}
}

// Get returns the stored generator settings overlaid with config defaults.
// Settings from the environment/config file win over the stored row, so a
// deployment can pin the backend without touching the database.
func (s *SettingsService) Get() (*models.GeneratorSettings, error) {
	settings := &models.GeneratorSettings{
		ID:          1,
		Provider:    s.cfg.GeneratorProvider,
		Model:       s.cfg.GeneratorModel,
		Signature:   s.cfg.Signature,
		NumOptions:  3,
		MaxMessages: 10,
	}

	var row models.GeneratorSettings
	err := s.db.First(&row).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil {
		settings = &row
		if settings.NumOptions <= 0 {
			settings.NumOptions = 3
		}
		if settings.MaxMessages <= 0 {
			settings.MaxMessages = 10
		}
		if settings.Signature == "" {
			settings.Signature = s.cfg.Signature
		}
	}

	if s.cfg.GeneratorAPIKey != "" {
		settings.APIKey = s.cfg.GeneratorAPIKey
		settings.Provider = s.cfg.GeneratorProvider
		settings.Model = s.cfg.GeneratorModel
		settings.BaseURL = s.cfg.GeneratorBaseURL
	}

	return settings, nil
}

// UpdateRequest carries the fields a settings update may change
type UpdateRequest struct {
	Provider    string `json:"provider"`
	APIKey      string `json:"api_key"`
	Model       string `json:"model"`
	BaseURL     string `json:"base_url"`
	Signature   string `json:"signature"`
	NumOptions  int    `json:"num_options"`
	MaxMessages int    `json:"max_messages"`
}

// Update persists new generator settings
func (s *SettingsService) Update(req UpdateRequest) (*models.GeneratorSettings, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}

	if req.Provider != "" {
		settings.Provider = req.Provider
	}
	if req.APIKey != "" {
		settings.APIKey = req.APIKey
	}
	if req.Model != "" {
		settings.Model = req.Model
	}
	if req.BaseURL != "" {
		settings.BaseURL = req.BaseURL
	}
	if req.Signature != "" {
		settings.Signature = req.Signature
	}
	if req.NumOptions > 0 {
		settings.NumOptions = req.NumOptions
	}
	if req.MaxMessages > 0 {
		settings.MaxMessages = req.MaxMessages
	}

	settings.ID = 1
	settings.UpdatedAt = time.Now()
	if err := s.db.Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds the application configuration
type Config struct {
	DatabasePath      string `json:"database_path"`
	APIPort           string `json:"api_port"`
	LogLevel          string `json:"log_level"`
	DataDir           string `json:"data_dir"`
	UploadsDir        string `json:"uploads_dir"` // attachment download directory
	JWTSecret         string `json:"jwt_secret"`
	CORSOrigins       string `json:"cors_origins"`
	CredentialsPath   string `json:"credentials_path"` // Google OAuth client credentials JSON
	GeneratorProvider string `json:"generator_provider"`
	GeneratorAPIKey   string `json:"generator_api_key"`
	GeneratorModel    string `json:"generator_model"`
	GeneratorBaseURL  string `json:"generator_base_url"`
	Signature         string `json:"signature"` // closing signature appended to reply drafts
}

// Default configuration values
const (
	DefaultDatabasePath      = "data/email_agent.db"
	DefaultAPIPort           = "8080"
	DefaultLogLevel          = "INFO"
	DefaultDataDir           = "data"
	DefaultUploadsDir        = "" // empty means DataDir/uploads
	DefaultJWTSecret         = "email-agent-default-secret-change-in-production"
	DefaultCORSOrigins       = "*"
	DefaultCredentialsPath   = "credentials/credentials.json"
	DefaultGeneratorProvider = "gemini"
	DefaultGeneratorModel    = "gemini-2.0-flash"
	DefaultSignature         = "Best,\nJainil Desai"
)

// Load loads configuration from environment variables and config file
// Priority: Environment variables > Config file > Default values
func Load() (*Config, error) {
	cfg := &Config{
		DatabasePath:      DefaultDatabasePath,
		APIPort:           DefaultAPIPort,
		LogLevel:          DefaultLogLevel,
		DataDir:           DefaultDataDir,
		UploadsDir:        DefaultUploadsDir,
		JWTSecret:         DefaultJWTSecret,
		CORSOrigins:       DefaultCORSOrigins,
		CredentialsPath:   DefaultCredentialsPath,
		GeneratorProvider: DefaultGeneratorProvider,
		GeneratorModel:    DefaultGeneratorModel,
		Signature:         DefaultSignature,
	}

	// Config file is optional
	if err := cfg.loadFromFile(); err != nil {
		return nil, err
	}

	cfg.loadFromEnv()

	return cfg, nil
}

// loadFromFile loads configuration from config.json file
func (c *Config) loadFromFile() error {
	configPaths := []string{
		"config.json",
		filepath.Join(c.DataDir, "config.json"),
	}

	for _, path := range configPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		return json.Unmarshal(data, c)
	}

	return nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if val := os.Getenv("EMAIL_AGENT_DATABASE_PATH"); val != "" {
		c.DatabasePath = val
	}
	if val := os.Getenv("EMAIL_AGENT_API_PORT"); val != "" {
		c.APIPort = val
	}
	if val := os.Getenv("EMAIL_AGENT_LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}
	if val := os.Getenv("EMAIL_AGENT_DATA_DIR"); val != "" {
		c.DataDir = val
	}
	if val := os.Getenv("EMAIL_AGENT_UPLOADS_DIR"); val != "" {
		c.UploadsDir = val
	}
	if val := os.Getenv("EMAIL_AGENT_JWT_SECRET"); val != "" {
		c.JWTSecret = val
	}
	if val := os.Getenv("EMAIL_AGENT_CORS_ORIGINS"); val != "" {
		c.CORSOrigins = val
	}
	if val := os.Getenv("EMAIL_AGENT_CREDENTIALS_PATH"); val != "" {
		c.CredentialsPath = val
	}
	if val := os.Getenv("GENERATOR_PROVIDER"); val != "" {
		c.GeneratorProvider = val
	}
	if val := os.Getenv("GENERATOR_API_KEY"); val != "" {
		c.GeneratorAPIKey = val
	}
	if val := os.Getenv("GENERATOR_MODEL"); val != "" {
		c.GeneratorModel = val
	}
	if val := os.Getenv("GENERATOR_BASE_URL"); val != "" {
		c.GeneratorBaseURL = val
	}
	if val := os.Getenv("EMAIL_AGENT_SIGNATURE"); val != "" {
		c.Signature = val
	}
}

// GetUploadsDir returns the directory used for downloaded attachments
// If UploadsDir is set, use it; otherwise use DataDir/uploads
func (c *Config) GetUploadsDir() string {
	if c.UploadsDir != "" {
		return c.UploadsDir
	}
	return filepath.Join(c.DataDir, "uploads")
}

// Save saves the current configuration to a file
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

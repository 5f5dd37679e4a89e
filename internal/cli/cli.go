package cli

import (
	"fmt"
	"os"

	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/api/middleware"
	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/config"
	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/services"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	db              *gorm.DB
	cfg             *config.Config
	apiKeyManager   *middleware.APIKeyManager
	logService      *services.LogService
	settingsService *services.SettingsService
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "email-agent",
	Short: "AI email triage assistant backend",
	Long: `Email AI Agent is a backend service that fetches unread mail,
scores it for urgency and sentiment, ranks it, and drafts replies.

The command line tool provides the following features:
  - Key management: show and reset the API key
  - Generator management: configure the AI backend
  - Triage: run a one-shot triage pass from the terminal

Examples:
  email-agent key show           # show the current API key
  email-agent key reset          # reset the API key
  email-agent generator show     # show generator settings
  email-agent generator set      # configure the generator backend
  email-agent triage             # fetch and analyze unread mail`,
}

// Execute runs the CLI with the provided database and config
func Execute(database *gorm.DB, config *config.Config) {
	db = database
	cfg = config

	// Initialize API key manager
	var err error
	apiKeyManager, err = middleware.NewAPIKeyManager(cfg.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize API key manager: %v\n", err)
		os.Exit(1)
	}

	logService = services.NewLogServiceWithLevel(db, cfg.LogLevel)
	settingsService = services.NewSettingsService(db, cfg)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(generatorCmd)
	rootCmd.AddCommand(triageCmd)
	rootCmd.AddCommand(logsCmd)
}

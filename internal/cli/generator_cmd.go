package cli

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/services"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	genProvider    string
	genModel       string
	genBaseURL     string
	genSignature   string
	genNumOptions  int
	genMaxMessages int
)

// generatorCmd represents the generator command group
var generatorCmd = &cobra.Command{
	Use:   "generator",
	Short: "AI generator backend management",
	Long:  `Configure the AI backend used for triage analysis and reply drafting.`,
}

// generatorShowCmd prints the stored settings with the key masked
var generatorShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current generator settings",
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := settingsService.Get()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to load settings: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Provider:     %s\n", settings.Provider)
		fmt.Printf("Model:        %s\n", settings.Model)
		if settings.BaseURL != "" {
			fmt.Printf("Base URL:     %s\n", settings.BaseURL)
		}
		fmt.Printf("API key set:  %t\n", settings.APIKey != "")
		fmt.Printf("Reply count:  %d\n", settings.NumOptions)
		fmt.Printf("Max messages: %d\n", settings.MaxMessages)
		fmt.Printf("Signature:    %s\n", strings.ReplaceAll(settings.Signature, "\n", " / "))
	},
}

// generatorSetCmd updates the generator settings. The API key is read
// without echo so it never lands in shell history or terminal scrollback.
var generatorSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the generator settings",
	Long: `Update the generator backend settings. Flags left empty keep their
stored value. The API key is prompted for interactively.

Examples:
  email-agent generator set --provider gemini --model gemini-2.0-flash
  email-agent generator set --num-options 5 --max-messages 20`,
	Run: func(cmd *cobra.Command, args []string) {
		req := services.UpdateRequest{
			Provider:    genProvider,
			Model:       genModel,
			BaseURL:     genBaseURL,
			Signature:   genSignature,
			NumOptions:  genNumOptions,
			MaxMessages: genMaxMessages,
		}

		fmt.Print("Enter API key (leave empty to keep current): ")
		keyBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to read API key: %v\n", err)
			os.Exit(1)
		}
		req.APIKey = strings.TrimSpace(string(keyBytes))

		settings, err := settingsService.Update(req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to save settings: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Generator settings saved.")
		fmt.Printf("Provider: %s, model: %s\n", settings.Provider, settings.Model)
		fmt.Println("A running server picks the new settings up on its next start.")
	},
}

func init() {
	generatorSetCmd.Flags().StringVar(&genProvider, "provider", "", "backend provider (gemini, openai, claude, custom)")
	generatorSetCmd.Flags().StringVar(&genModel, "model", "", "model name")
	generatorSetCmd.Flags().StringVar(&genBaseURL, "base-url", "", "API base URL for custom providers")
	generatorSetCmd.Flags().StringVar(&genSignature, "signature", "", "closing signature for drafted replies")
	generatorSetCmd.Flags().IntVar(&genNumOptions, "num-options", 0, "number of reply drafts per email")
	generatorSetCmd.Flags().IntVar(&genMaxMessages, "max-messages", 0, "maximum unread messages per triage pass")

	generatorCmd.AddCommand(generatorShowCmd)
	generatorCmd.AddCommand(generatorSetCmd)
}

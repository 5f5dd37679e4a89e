package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/genai"
	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/mailbox"
	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/services"
	"github.com/spf13/cobra"
)

var triageJSON bool

// triageCmd runs a one-shot triage pass from the terminal. If the mailbox
// has no stored session it walks through the OAuth consent flow first.
var triageCmd = &cobra.Command{
	Use:   "triage",
	Short: "Fetch and analyze unread mail",
	Long: `Fetch unread messages from the mailbox, score each for urgency,
importance and sentiment, and print them in ranked order.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		settings, err := settingsService.Get()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to load generator settings: %v\n", err)
			os.Exit(1)
		}
		if settings.APIKey == "" {
			fmt.Fprintln(os.Stderr, "Error: no generator API key configured. Run 'email-agent generator set' first.")
			os.Exit(1)
		}

		client := genai.NewClient()
		client.ConfigureWithBaseURL(settings.Provider, settings.APIKey, settings.Model, settings.BaseURL)
		gateway := genai.NewGateway(client)

		authenticator := mailbox.NewAuthenticator(cfg.CredentialsPath, mailbox.NewTokenStore(db))
		triageService := services.NewTriageService(
			authenticator,
			gateway,
			logService,
			cfg.GetUploadsDir(),
			settings.Signature,
			settings.MaxMessages,
			settings.NumOptions,
		)

		state, err := triageService.AuthStatus(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: mailbox authentication check failed: %v\n", err)
			os.Exit(1)
		}
		if state.Status == mailbox.StatusNeedsConsent {
			fmt.Println("Mailbox access has not been granted yet.")
			fmt.Println("Open this URL in a browser and approve access:")
			fmt.Println()
			fmt.Println(state.AuthURL)
			fmt.Println()
			fmt.Print("Paste the authorization code here: ")

			reader := bufio.NewReader(os.Stdin)
			code, err := reader.ReadString('\n')
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: failed to read input: %v\n", err)
				os.Exit(1)
			}
			if err := triageService.CompleteAuth(ctx, strings.TrimSpace(code)); err != nil {
				fmt.Fprintf(os.Stderr, "Error: authorization failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Mailbox session established.")
			fmt.Println()
		}

		report, err := triageService.RunTriage(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: triage failed: %v\n", err)
			os.Exit(1)
		}

		if triageJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				fmt.Fprintf(os.Stderr, "Error: failed to encode report: %v\n", err)
				os.Exit(1)
			}
			return
		}

		printReport(report)
	},
}

func printReport(report *services.TriageReport) {
	if len(report.Emails) == 0 {
		fmt.Println("No unread messages.")
		return
	}

	for i, r := range report.Emails {
		fmt.Printf("%d. %s %s\n", i+1, r.Sentiment.DisplaySymbol, r.Message.Subject)
		fmt.Printf("   From: %s\n", r.Message.From)
		fmt.Printf("   Urgency %d/5, importance %d/5, respond: %s\n",
			r.Priority.UrgencyScore, r.Priority.ImportanceScore, r.SuggestedResponseTime)
		fmt.Printf("   Mood: %s (intensity %d/5)\n", r.Sentiment.PrimaryEmotion, r.Sentiment.Intensity)
		if r.Summary != "" {
			fmt.Printf("   %s\n", r.Summary)
		}
		for _, att := range r.Attachments {
			fmt.Printf("   Attachment %s: %s\n", att.Filename, att.Summary)
		}
		fmt.Println()
	}

	a := report.Analysis
	fmt.Printf("Total: %d, urgent: %d, important: %d\n", a.TotalEmails, a.UrgentCount, a.ImportantCount)
	fmt.Printf("Sentiment: %d positive, %d negative, %d neutral\n",
		a.Sentiment.Positive, a.Sentiment.Negative, a.Sentiment.Neutral)
}

func init() {
	triageCmd.Flags().BoolVar(&triageJSON, "json", false, "print the full report as JSON")
}

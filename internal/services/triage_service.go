package services

import (
	"context"
	"fmt"

	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/database/models"
	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/extract"
	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/mailbox"
	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/triage"
)

// TriageReport is the batch triage result exposed to the transport layer
type TriageReport struct {
	Emails   []triage.MessageResult `json:"emails"`
	Analysis triage.BatchAnalysis   `json:"analysis_summary"`
}

// TriageService glues the mailbox session, the file-to-text extractor, and
// the triage pipeline into the request-scoped operations the API and CLI
// expose. All dependencies are injected at construction; nothing is lazily
// built on first use.
type TriageService struct {
	auth        *mailbox.Authenticator
	pipeline    *triage.Pipeline
	drafter     *triage.Drafter
	logService  *LogService
	uploadsDir  string
	maxMessages int64
	numOptions  int
}

// NewTriageService creates a new TriageService instance
func NewTriageService(
	auth *mailbox.Authenticator,
	gen triage.Generator,
	logService *LogService,
	uploadsDir, signature string,
	maxMessages, numOptions int,
) *TriageService {
	if maxMessages <= 0 {
		maxMessages = 10
	}
	if numOptions <= 0 {
		numOptions = 3
	}
	return &TriageService{
		auth:        auth,
		pipeline:    triage.NewPipeline(gen, extract.ExtractText),
		drafter:     triage.NewDrafter(gen, signature),
		logService:  logService,
		uploadsDir:  uploadsDir,
		maxMessages: int64(maxMessages),
		numOptions:  numOptions,
	}
}

// AuthStatus reports the mailbox authentication state
func (s *TriageService) AuthStatus(ctx context.Context) (mailbox.AuthState, error) {
	return s.auth.Authenticate(ctx)
}

// CompleteAuth finishes the OAuth consent flow with an authorization code
func (s *TriageService) CompleteAuth(ctx context.Context, code string) error {
	if err := s.auth.CompleteAuth(ctx, code); err != nil {
		s.logService.Error(models.LogModuleMailbox, "complete_auth", err.Error())
		return err
	}
	s.logService.Info(models.LogModuleMailbox, "complete_auth", "mailbox session established")
	return nil
}

// RunTriage fetches unread messages and runs the full analysis pipeline.
// Only the initial fetch can fail the request, surfaced as either
// not-authenticated or a generic fetch failure; per-message faults degrade
// to fallback records inside the pipeline.
func (s *TriageService) RunTriage(ctx context.Context) (*TriageReport, error) {
	svc, err := s.auth.Service(ctx)
	if err != nil {
		return nil, err
	}

	client := mailbox.NewClient(svc, s.uploadsDir)
	emails, err := client.ListUnread(ctx, s.maxMessages)
	if err != nil {
		s.logService.Error(models.LogModuleMailbox, "list_unread", err.Error())
		return nil, fmt.Errorf("fetch unread messages: %w", err)
	}

	messages := make([]triage.Message, 0, len(emails))
	for _, email := range emails {
		attachments, err := client.DownloadAttachments(ctx, email.ID)
		if err != nil {
			// Attachment download failure is a per-item fault; the message
			// still gets triaged without its attachments.
			s.logService.Warn(models.LogModuleMailbox, "download_attachments",
				fmt.Sprintf("message %s: %v", email.ID, err))
			attachments = nil
		}
		messages = append(messages, triage.Message{
			ID:          email.ID,
			From:        email.From,
			Subject:     email.Subject,
			Body:        email.Body,
			Attachments: attachments,
		})
	}

	ranked, analysis := s.pipeline.Run(messages)
	s.logService.Info(models.LogModuleTriage, "run",
		fmt.Sprintf("triaged %d messages, %d urgent", analysis.TotalEmails, analysis.UrgentCount))

	return &TriageReport{Emails: ranked, Analysis: analysis}, nil
}

// SuggestReplies drafts reply options for an email body
func (s *TriageService) SuggestReplies(body, senderName string, numOptions int) ([]triage.ReplyOption, error) {
	if numOptions <= 0 {
		numOptions = s.numOptions
	}
	options, err := s.drafter.DraftReplies(body, senderName, numOptions)
	if err != nil {
		s.logService.Error(models.LogModuleTriage, "suggest_replies", err.Error())
		return nil, err
	}
	return options, nil
}

// SendReply sends a reply and marks the original message read
func (s *TriageService) SendReply(ctx context.Context, to, subject, body, originalID string) error {
	svc, err := s.auth.Service(ctx)
	if err != nil {
		return err
	}

	client := mailbox.NewClient(svc, s.uploadsDir)
	if err := client.Send(ctx, to, subject, body); err != nil {
		s.logService.Error(models.LogModuleMailbox, "send", err.Error())
		return err
	}

	if originalID != "" {
		if err := client.MarkRead(ctx, originalID); err != nil {
			// The reply went out; a failed label change is not a send failure.
			s.logService.Warn(models.LogModuleMailbox, "mark_read",
				fmt.Sprintf("message %s: %v", originalID, err))
		}
	}

	s.logService.Info(models.LogModuleMailbox, "send", "reply sent to "+to)
	return nil
}

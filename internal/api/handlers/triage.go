package handlers

import (
	"errors"
	"net/http"

	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/database/models"
	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/mailbox"
	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/services"
	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/triage"
	"github.com/gin-gonic/gin"
)

// TriageHandler handles triage, reply drafting, and mailbox auth requests
type TriageHandler struct {
	triageService *services.TriageService
	logService    *services.LogService
}

// NewTriageHandler creates a new TriageHandler instance
func NewTriageHandler(triageService *services.TriageService, logService *services.LogService) *TriageHandler {
	return &TriageHandler{triageService: triageService, logService: logService}
}

// MailboxAuthStatus reports the mailbox authentication state. When consent
// is needed the response carries the authorization URL.
// GET /api/mailbox/auth
func (h *TriageHandler) MailboxAuthStatus(c *gin.Context) {
	state, err := h.triageService.AuthStatus(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "AUTH_CHECK_FAILED", err)
		return
	}

	status := http.StatusOK
	if state.Status == mailbox.StatusNeedsConsent {
		status = http.StatusUnauthorized
	}
	c.JSON(status, gin.H{
		"success": state.Status == mailbox.StatusAuthenticated,
		"data":    state,
	})
}

// CompleteAuthRequest carries the OAuth authorization code
type CompleteAuthRequest struct {
	Code string `json:"code" binding:"required"`
}

// CompleteMailboxAuth finishes the OAuth consent flow
// POST /api/mailbox/auth
func (h *TriageHandler) CompleteMailboxAuth(c *gin.Context) {
	var req CompleteAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "INVALID_REQUEST", errors.New("authorization code is required"))
		return
	}

	if err := h.triageService.CompleteAuth(c.Request.Context(), req.Code); err != nil {
		h.fail(c, http.StatusUnauthorized, "AUTH_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetEmails runs the triage pipeline over unread messages and returns the
// ranked batch with its aggregate analysis.
// GET /api/emails
func (h *TriageHandler) GetEmails(c *gin.Context) {
	report, err := h.triageService.RunTriage(c.Request.Context())
	if err != nil {
		if errors.Is(err, mailbox.ErrNotAuthenticated) || errors.Is(err, mailbox.ErrNoCredentials) {
			h.fail(c, http.StatusUnauthorized, "MAILBOX_NOT_AUTHENTICATED", err)
			return
		}
		h.fail(c, http.StatusInternalServerError, "TRIAGE_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    report,
	})
}

// SuggestReplyRequest carries the reply drafting input
type SuggestReplyRequest struct {
	Body       string `json:"body" binding:"required"`
	SenderName string `json:"sender_name"`
	NumOptions int    `json:"num_options"`
}

// SuggestReply generates reply options with fill-in placeholders
// POST /api/suggest-reply
func (h *TriageHandler) SuggestReply(c *gin.Context) {
	var req SuggestReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "INVALID_REQUEST", errors.New("email body is required"))
		return
	}

	options, err := h.triageService.SuggestReplies(req.Body, req.SenderName, req.NumOptions)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "DRAFT_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"options": options,
			"placeholders": gin.H{
				"description": "The following placeholders need to be filled:",
				"types":       triage.PlaceholderLegend,
			},
		},
	})
}

// SendReplyRequest carries the outgoing reply
type SendReplyRequest struct {
	To      string `json:"to" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
	EmailID string `json:"email_id"`
}

// SendReply sends a reply and marks the original message read
// POST /api/send-reply
func (h *TriageHandler) SendReply(c *gin.Context) {
	var req SendReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "INVALID_REQUEST", errors.New("to, subject, and body are required"))
		return
	}

	if err := h.triageService.SendReply(c.Request.Context(), req.To, req.Subject, req.Body, req.EmailID); err != nil {
		if errors.Is(err, mailbox.ErrNotAuthenticated) || errors.Is(err, mailbox.ErrNoCredentials) {
			h.fail(c, http.StatusUnauthorized, "MAILBOX_NOT_AUTHENTICATED", err)
			return
		}
		h.fail(c, http.StatusInternalServerError, "SEND_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// fail writes a structured error response and records it
func (h *TriageHandler) fail(c *gin.Context, status int, code string, err error) {
	h.logService.Warn(models.LogModuleAPI, code, err.Error())
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": err.Error(),
		},
	})
}

package mailbox

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"
	gm "google.golang.org/api/gmail/v1"
)

// Email is one unread message as fetched from the mailbox
type Email struct {
	ID      string `json:"id"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Client exposes the mailbox collaborator contract over an authenticated
// Gmail session
type Client struct {
	svc        *gm.Service
	uploadsDir string
}

// NewClient creates a new Client instance. Downloaded attachments are
// written under uploadsDir.
func NewClient(svc *gm.Service, uploadsDir string) *Client {
	return &Client{svc: svc, uploadsDir: uploadsDir}
}

// ListUnread returns up to max unread inbox messages, newest first
func (c *Client) ListUnread(ctx context.Context, max int64) ([]Email, error) {
	resp, err := c.svc.Users.Messages.List("me").
		LabelIds("INBOX").
		Q("is:unread").
		MaxResults(max).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list unread messages: %w", err)
	}

	emails := make([]Email, 0, len(resp.Messages))
	for _, msg := range resp.Messages {
		detail, err := c.svc.Users.Messages.Get("me", msg.Id).
			Format("full").
			Context(ctx).
			Do()
		if err != nil {
			// Skip individual message failures.
			continue
		}

		headers := headerMap(detail.Payload.Headers)
		emails = append(emails, Email{
			ID:      detail.Id,
			From:    defaultStr(headers["From"], "Unknown Sender"),
			Subject: defaultStr(headers["Subject"], "No Subject"),
			Body:    strings.TrimSpace(extractBody(detail.Payload)),
		})
	}

	return emails, nil
}

// DownloadAttachments fetches every attachment of a message into the
// uploads directory and returns the local file paths. File names get a
// short unique prefix so concurrent messages cannot collide.
func (c *Client) DownloadAttachments(ctx context.Context, messageID string) ([]string, error) {
	msg, err := c.svc.Users.Messages.Get("me", messageID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get message %s: %w", messageID, err)
	}

	if err := os.MkdirAll(c.uploadsDir, 0755); err != nil {
		return nil, err
	}

	var paths []string
	var walk func(parts []*gm.MessagePart) error
	walk = func(parts []*gm.MessagePart) error {
		for _, part := range parts {
			if part.Filename != "" && part.Body != nil && part.Body.AttachmentId != "" {
				att, err := c.svc.Users.Messages.Attachments.Get("me", messageID, part.Body.AttachmentId).
					Context(ctx).
					Do()
				if err != nil {
					return fmt.Errorf("fetch attachment %s: %w", part.Filename, err)
				}
				data, err := decodeBase64URL(att.Data)
				if err != nil {
					return fmt.Errorf("decode attachment %s: %w", part.Filename, err)
				}

				name := uuid.NewString()[:8] + "_" + filepath.Base(part.Filename)
				path := filepath.Join(c.uploadsDir, name)
				if err := os.WriteFile(path, []byte(data), 0644); err != nil {
					return err
				}
				paths = append(paths, path)
			}
			if len(part.Parts) > 0 {
				if err := walk(part.Parts); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if msg.Payload != nil && len(msg.Payload.Parts) > 0 {
		if err := walk(msg.Payload.Parts); err != nil {
			return nil, err
		}
	}

	return paths, nil
}

// Send sends a plain text email
func (c *Client) Send(ctx context.Context, to, subject, body string) error {
	raw, err := buildMIME(to, subject, body)
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}

	_, err = c.svc.Users.Messages.Send("me", &gm.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// MarkRead removes the UNREAD label from a message
func (c *Client) MarkRead(ctx context.Context, messageID string) error {
	_, err := c.svc.Users.Messages.Modify("me", messageID, &gm.ModifyMessageRequest{
		RemoveLabelIds: []string{"UNREAD"},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("mark read %s: %w", messageID, err)
	}
	return nil
}

// buildMIME renders a single-part plain text message as web-safe base64
func buildMIME(to, subject, body string) (string, error) {
	var h mail.Header
	h.SetDate(time.Now())
	h.SetAddressList("To", []*mail.Address{{Address: to}})
	h.SetSubject(subject)

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return "", err
	}
	if _, err := io.WriteString(w, body); err != nil {
		w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	return base64.URLEncoding.EncodeToString(buf.Bytes()), nil
}

// extractBody gets the plain text body from a message payload, preferring
// text/plain over text/html and recursing into multipart messages
func extractBody(payload *gm.MessagePart) string {
	if payload == nil {
		return ""
	}

	if payload.Body != nil && payload.Body.Data != "" {
		if decoded, err := decodeBase64URL(payload.Body.Data); err == nil {
			return decoded
		}
	}

	for _, part := range payload.Parts {
		if part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "" {
			if decoded, err := decodeBase64URL(part.Body.Data); err == nil {
				return decoded
			}
		}
		if len(part.Parts) > 0 {
			if body := extractBody(part); body != "" {
				return body
			}
		}
	}

	for _, part := range payload.Parts {
		if part.MimeType == "text/html" && part.Body != nil && part.Body.Data != "" {
			if decoded, err := decodeBase64URL(part.Body.Data); err == nil {
				return decoded
			}
		}
	}

	return ""
}

// headerMap converts Gmail API headers into a simple key-value map
func headerMap(headers []*gm.MessagePartHeader) map[string]string {
	m := make(map[string]string, len(headers))
	for _, h := range headers {
		m[h.Name] = h.Value
	}
	return m
}

// decodeBase64URL decodes Gmail's URL-safe base64 content, tolerating
// missing padding
func decodeBase64URL(data string) (string, error) {
	data = strings.ReplaceAll(data, "-", "+")
	data = strings.ReplaceAll(data, "_", "/")
	switch len(data) % 4 {
	case 2:
		data += "=="
	case 3:
		data += "="
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// defaultStr returns fallback when s is empty
func defaultStr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

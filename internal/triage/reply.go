package triage

import (
	"fmt"
	"regexp"
	"strings"
)

// Drafter generates reply options for a message
type Drafter struct {
	gen       Generator
	signature string
}

// NewDrafter creates a new Drafter with the fixed closing signature
func NewDrafter(gen Generator, signature string) *Drafter {
	return &Drafter{gen: gen, signature: signature}
}

// placeholderPatterns infers which personalization categories a drafted body
// touches, by vocabulary rather than by scanning for the literal bracket
// tokens.
var placeholderPatterns = map[PlaceholderType]*regexp.Regexp{
	PlaceholderName:    regexp.MustCompile(`(?i)\b(name|dear|hi|hello|regards)\b`),
	PlaceholderDate:    regexp.MustCompile(`(?i)\b(date|monday|tuesday|wednesday|thursday|friday|saturday|sunday|tomorrow|today|week|month)\b`),
	PlaceholderTime:    regexp.MustCompile(`(?i)\b(time|morning|afternoon|evening|noon|o'clock|am|pm)\b`),
	PlaceholderCompany: regexp.MustCompile(`(?i)\b(company|organization|team|firm|office)\b`),
	PlaceholderDetails: regexp.MustCompile(`(?i)\b(details|specifics|information|attached|document)\b`),
}

// placeholderOrder fixes the order placeholders are reported in
var placeholderOrder = []PlaceholderType{
	PlaceholderName, PlaceholderDate, PlaceholderTime, PlaceholderCompany, PlaceholderDetails,
}

// DraftReplies generates numOptions reply drafts for the given email body
// in a single batched generator call, then splits and validates the output.
// Returns the generator's error only for backend faults; malformed segments
// are dropped silently.
func (d *Drafter) DraftReplies(emailBody, senderName string, numOptions int) ([]ReplyOption, error) {
	if numOptions <= 0 {
		numOptions = 3
	}

	greeting := "If the sender's name is identifiable, use it in a friendly greeting. " +
		"Otherwise, omit the greeting."
	if senderName != "" {
		greeting = fmt.Sprintf("Address the sender as %s in a friendly greeting.", senderName)
	}

	prompt := fmt.Sprintf(
		"The following is an email that needs a reply:\n\n%s\n\n"+
			"Generate %d professional, friendly email replies. %s\n"+
			"Use the placeholder tokens [NAME], [DATE], [TIME], [COMPANY] and [DETAILS] "+
			"wherever personalization is required.\n"+
			"End each reply with this signature:\n\n%s\n\n"+
			"Format each option like:\n\nSubject: [Your subject here]\nBody: [Your reply here]",
		strings.TrimSpace(emailBody), numOptions, greeting, d.signature)

	raw, err := d.gen.Generate(prompt)
	if err != nil {
		return nil, err
	}

	return d.parseReplies(raw), nil
}

// parseReplies splits the batched response into per-option subject/body.
// Anything before the first "Subject:" marker is preamble and discarded.
func (d *Drafter) parseReplies(raw string) []ReplyOption {
	blocks := strings.Split(raw, "Subject:")
	if len(blocks) < 2 {
		return nil
	}

	var options []ReplyOption
	for _, block := range blocks[1:] {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
			continue
		}

		subject := strings.TrimSpace(lines[0])
		body := strings.TrimSpace(strings.Join(lines[1:], "\n"))
		if lower := strings.ToLower(body); strings.HasPrefix(lower, "body:") {
			body = strings.TrimSpace(body[len("body:"):])
		}
		if body == "" {
			continue
		}

		options = append(options, ReplyOption{
			Subject:      subject,
			Body:         d.normalizeSignature(body),
			Placeholders: detectPlaceholders(body),
		})
	}
	return options
}

// normalizeSignature truncates the body at the first occurrence of the
// signature and re-appends exactly one copy, so model repetition cannot
// produce duplicate or partial signatures.
func (d *Drafter) normalizeSignature(body string) string {
	if idx := strings.Index(body, d.signature); idx >= 0 {
		body = strings.TrimSpace(body[:idx])
	}
	return body + "\n" + d.signature
}

// detectPlaceholders applies the vocabulary heuristics over the body
func detectPlaceholders(body string) []PlaceholderType {
	found := make([]PlaceholderType, 0, len(placeholderOrder))
	for _, p := range placeholderOrder {
		if placeholderPatterns[p].MatchString(body) {
			found = append(found, p)
		}
	}
	return found
}

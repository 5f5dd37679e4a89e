package mailbox

import (
	"encoding/base64"
	"strings"
	"testing"

	gm "google.golang.org/api/gmail/v1"
)

func encodeWebSafe(s string) string {
	return base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString([]byte(s))
}

func TestDecodeBase64URL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"unpadded", encodeWebSafe("hello"), "hello"},
		{"padded", base64.URLEncoding.EncodeToString([]byte("hello!")), "hello!"},
		{"websafe alphabet", encodeWebSafe("\xfb\xff\xfe"), "\xfb\xff\xfe"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeBase64URL(tt.in)
			if err != nil {
				t.Fatalf("decodeBase64URL failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, expected %q", got, tt.want)
			}
		})
	}

	if _, err := decodeBase64URL("!!!not base64!!!"); err == nil {
		t.Error("expected an error for invalid input")
	}
}

func TestExtractBodyPrefersPlainText(t *testing.T) {
	payload := &gm.MessagePart{
		MimeType: "multipart/alternative",
		Parts: []*gm.MessagePart{
			{
				MimeType: "text/html",
				Body:     &gm.MessagePartBody{Data: encodeWebSafe("<p>html body</p>")},
			},
			{
				MimeType: "text/plain",
				Body:     &gm.MessagePartBody{Data: encodeWebSafe("plain body")},
			},
		},
	}

	if got := extractBody(payload); got != "plain body" {
		t.Errorf("expected plain text preferred, got %q", got)
	}
}

func TestExtractBodyFallsBackToHTML(t *testing.T) {
	payload := &gm.MessagePart{
		MimeType: "multipart/alternative",
		Parts: []*gm.MessagePart{
			{
				MimeType: "text/html",
				Body:     &gm.MessagePartBody{Data: encodeWebSafe("<p>html only</p>")},
			},
		},
	}

	if got := extractBody(payload); got != "<p>html only</p>" {
		t.Errorf("expected html fallback, got %q", got)
	}
}

func TestExtractBodyRecursesNestedMultipart(t *testing.T) {
	payload := &gm.MessagePart{
		MimeType: "multipart/mixed",
		Parts: []*gm.MessagePart{
			{
				MimeType: "multipart/alternative",
				Parts: []*gm.MessagePart{
					{
						MimeType: "text/plain",
						Body:     &gm.MessagePartBody{Data: encodeWebSafe("nested body")},
					},
				},
			},
			{
				MimeType: "application/pdf",
				Filename: "attachment.pdf",
			},
		},
	}

	if got := extractBody(payload); got != "nested body" {
		t.Errorf("expected nested body, got %q", got)
	}
}

func TestExtractBodyEmpty(t *testing.T) {
	if got := extractBody(nil); got != "" {
		t.Errorf("expected empty body for nil payload, got %q", got)
	}
	if got := extractBody(&gm.MessagePart{MimeType: "text/plain"}); got != "" {
		t.Errorf("expected empty body, got %q", got)
	}
}

func TestHeaderMap(t *testing.T) {
	headers := []*gm.MessagePartHeader{
		{Name: "From", Value: "sender@example.com"},
		{Name: "Subject", Value: "hello"},
	}

	m := headerMap(headers)
	if m["From"] != "sender@example.com" || m["Subject"] != "hello" {
		t.Errorf("unexpected map: %v", m)
	}
}

func TestDefaultStr(t *testing.T) {
	if got := defaultStr("", "Unknown Sender"); got != "Unknown Sender" {
		t.Errorf("unexpected fallback: %q", got)
	}
	if got := defaultStr("a@b.c", "Unknown Sender"); got != "a@b.c" {
		t.Errorf("unexpected value: %q", got)
	}
}

func TestBuildMIME(t *testing.T) {
	raw, err := buildMIME("to@example.com", "Re: Meeting", "See you Monday.\nBest,\nJainil Desai")
	if err != nil {
		t.Fatalf("buildMIME failed: %v", err)
	}

	decoded, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		t.Fatalf("output is not web-safe base64: %v", err)
	}

	msg := string(decoded)
	for _, want := range []string{"To: <to@example.com>", "Subject: Re: Meeting", "See you Monday."} {
		if !strings.Contains(msg, want) {
			t.Errorf("MIME message missing %q:\n%s", want, msg)
		}
	}
}

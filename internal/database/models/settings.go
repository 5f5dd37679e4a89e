package models

import (
	"time"
)

// GeneratorSettings stores the generator backend configuration.
// A single row is resolved at startup and treated as read-only for the
// lifetime of the process.
type GeneratorSettings struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Provider    string    `gorm:"size:50;default:'gemini'" json:"provider"` // gemini, openai, claude, custom
	APIKey      string    `gorm:"size:255" json:"api_key,omitempty"`
	Model       string    `gorm:"size:100" json:"model"`
	BaseURL     string    `gorm:"size:255" json:"base_url,omitempty"`
	Signature   string    `gorm:"type:text" json:"signature"`                // closing signature for reply drafts
	NumOptions  int       `gorm:"default:3" json:"num_options"`              // reply options per draft request
	MaxMessages int       `gorm:"default:10" json:"max_messages"`            // unread messages fetched per triage run
	UpdatedAt   time.Time `json:"updated_at"`
}

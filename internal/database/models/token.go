package models

import (
	"time"
)

// MailboxToken is the cached OAuth token for the mailbox session.
// A single row; written on initial consent and on refresh, read at the
// start of every triage request.
type MailboxToken struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AccessToken  string    `gorm:"type:text" json:"-"`
	RefreshToken string    `gorm:"type:text" json:"-"`
	TokenType    string    `gorm:"size:50" json:"token_type"`
	Expiry       time.Time `json:"expiry"`
	UpdatedAt    time.Time `json:"updated_at"`
}

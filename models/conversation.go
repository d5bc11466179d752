package models

import "time"

// Party is the other participant of a conversation.
type Party struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// LastMessage is the preview shown under a conversation's name.
type LastMessage struct {
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}

// ConversationSummary is a read-only projection of a messaging thread as seen
// by one user.
type ConversationSummary struct {
	ID          string       `json:"id"`
	OtherParty  Party        `json:"other_party"`
	LastMessage *LastMessage `json:"last_message,omitempty"`
	UnreadCount int          `json:"unread_count"`
	Archived    bool         `json:"archived"`
	Blocked     bool         `json:"blocked"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Normalize clamps fields the provider may hand over out of range.
func (c *ConversationSummary) Normalize() {
	if c.UnreadCount < 0 {
		c.UnreadCount = 0
	}
	if c.OtherParty.DisplayName == "" {
		c.OtherParty.DisplayName = "Unknown"
	}
}

// Unread reports whether the row should be emphasized.
func (c ConversationSummary) Unread() bool {
	return c.UnreadCount > 0
}

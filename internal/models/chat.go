package models

import (
	"strings"
	"time"
)

// Chat is a conversation known to the transport.
type Chat struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	IsGroup          bool   `json:"isGroup"`
	ParticipantCount int    `json:"participantCount"`
	Description      string `json:"description,omitempty"`
	LastMessageAt    int64  `json:"lastMessageAt,omitempty"` // unix seconds
}

// Message is a single chat message as delivered by the transport.
type Message struct {
	ID        string `json:"id"`
	ChatID    string `json:"chatId"`
	From      string `json:"from"`
	Body      string `json:"body"`
	Timestamp int64  `json:"timestamp"` // unix seconds, original send time
	HasMedia  bool   `json:"hasMedia"`
	HasQuoted bool   `json:"hasQuotedMessage"`
}

// FromGroup reports whether the message originated in a group chat.
// WhatsApp group chat IDs carry the "@g.us" suffix.
func (m Message) FromGroup() bool {
	return strings.HasSuffix(m.ChatID, "@g.us")
}

// Sent returns the message's original send time.
func (m Message) Sent() time.Time {
	return time.Unix(m.Timestamp, 0)
}

// Sender is the resolved identity behind a message.
type Sender struct {
	DisplayName string `json:"displayName,omitempty"`
	Handle      string `json:"handle,omitempty"`
}

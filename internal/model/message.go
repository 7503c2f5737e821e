package model

import "time"

// Message roles as stored in the bot_conversations collection
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation. Messages are append-only within a
// session and are never reordered or deleted.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	FromUser  bool      `json:"is_user"`
	Timestamp time.Time `json:"timestamp"`
	Places    []Place   `json:"places,omitempty"`
}

// Role returns the storage role for the message author
func (m Message) Role() string {
	if m.FromUser {
		return RoleUser
	}
	return RoleAssistant
}

// ChatRequest represents one user turn sent by the client
type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	Text      string `json:"text" binding:"required"`
}

// ChatResponse carries the assistant reply for a turn
type ChatResponse struct {
	SessionID string  `json:"session_id"`
	Reply     Message `json:"reply"`
}

// HistoryResponse carries the ordered message history of a session
type HistoryResponse struct {
	SessionID string    `json:"session_id"`
	Messages  []Message `json:"messages"`
}

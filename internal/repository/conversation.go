package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"placesbot/internal/model"

	"github.com/jmoiron/sqlx"
)

// ConversationStore persists the assistant message log. Rows are append-only;
// the "active conversation" of a user is the most recently written session.
type ConversationStore struct {
	db *sqlx.DB
}

// NewConversationStore creates a conversation store sharing the repository's
// database handle
func NewConversationStore(db *sqlx.DB) *ConversationStore {
	return &ConversationStore{db: db}
}

type conversationRow struct {
	ID        string    `db:"id"`
	SessionID string    `db:"session_id"`
	UserID    string    `db:"user_id"`
	Role      string    `db:"role"`
	Text      string    `db:"text"`
	Created   time.Time `db:"created"`
}

// AppendMessage writes one message of a session. Callers treat this as
// fire-and-forget: failures are logged upstream, never surfaced to the user.
func (s *ConversationStore) AppendMessage(ctx context.Context, sessionID, userID string, msg model.Message) error {
	const q = `
		INSERT INTO bot_conversations (id, session_id, user_id, role, text, created)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, q, msg.ID, sessionID, userID, msg.Role(), msg.Text, msg.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to append conversation message: %w", err)
	}
	return nil
}

// LoadActiveConversation restores the latest session of a user: its id and
// the chronologically ordered history. Returns an empty session id when the
// user has no prior conversation.
func (s *ConversationStore) LoadActiveConversation(ctx context.Context, userID string) (string, []model.Message, error) {
	const latest = `
		SELECT session_id
		FROM bot_conversations
		WHERE user_id = $1
		ORDER BY created DESC
		LIMIT 1
	`

	var sessionID string
	if err := s.db.GetContext(ctx, &sessionID, latest, userID); err != nil {
		if err == sql.ErrNoRows {
			return "", nil, nil
		}
		return "", nil, fmt.Errorf("failed to find active conversation: %w", err)
	}

	const history = `
		SELECT id, session_id, user_id, role, text, created
		FROM bot_conversations
		WHERE session_id = $1
		ORDER BY created ASC
	`

	var rows []conversationRow
	if err := s.db.SelectContext(ctx, &rows, history, sessionID); err != nil {
		return "", nil, fmt.Errorf("failed to load conversation history: %w", err)
	}

	messages := make([]model.Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, model.Message{
			ID:        row.ID,
			Text:      row.Text,
			FromUser:  row.Role == model.RoleUser,
			Timestamp: row.Created,
		})
	}
	return sessionID, messages, nil
}

package messaging

import (
	"errors"
	"strings"
	"time"
)

// Domain-level errors for messaging behaviors
var (
	ErrEmptyBody            = errors.New("messaging: message body is empty")
	ErrNotParticipant       = errors.New("messaging: user is not a participant in the conversation")
	ErrConversationNotFound = errors.New("messaging: conversation does not exist")
	ErrUserNotFound         = errors.New("messaging: user does not exist")
	ErrSelfConversation     = errors.New("messaging: conversation requires two distinct users")
)

// Message is an immutable log entry in a conversation. Only the Read
// flag ever changes after creation, and only false -> true, via bulk
// reconciliation by the non-authoring participant.
type Message struct {
	ID             int64     `db:"id"`
	ConversationID int64     `db:"conversation_id"`
	AuthorID       int64     `db:"author_id"`
	Body           string    `db:"body"`
	Read           bool      `db:"read"`
	CreatedAt      time.Time `db:"created_at"`
}

// NewMessage validates and normalizes a message before persistence.
// The body is trimmed; a blank body is rejected. New messages always
// start unread.
func NewMessage(m Message) (Message, error) {
	if m.ConversationID == 0 || m.AuthorID == 0 {
		return Message{}, errors.New("messaging: conversation_id and author_id are required")
	}

	m.Body = strings.TrimSpace(m.Body)
	if m.Body == "" {
		return Message{}, ErrEmptyBody
	}

	m.Read = false
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	return m, nil
}

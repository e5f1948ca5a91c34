package repository

import (
	"context"

	messaging "conversations/internal/pkg/messaging/application/domain"
)

// MessagingRepository defines persistence operations for the messaging domain.
// Adapters must map "row not found" conditions to the domain sentinels
// (ErrConversationNotFound, ErrUserNotFound) so use cases can dispatch on them.
type MessagingRepository interface {
	// FindOrCreateConversation returns the conversation between the unordered
	// user pair, creating it if absent.
	FindOrCreateConversation(ctx context.Context, initiatorID, recipientID int64) (messaging.Conversation, error)

	GetConversation(ctx context.Context, conversationID int64) (messaging.Conversation, error)

	// ListConversations returns the user's conversations with peer identity
	// and unread inbound count, most recent first.
	ListConversations(ctx context.Context, userID int64) ([]messaging.ConversationSummary, error)

	UserExists(ctx context.Context, userID int64) (bool, error)

	// SaveMessage durably persists the message in a single transaction and
	// returns it with its database identity. No caller may broadcast until
	// this returns without error.
	SaveMessage(ctx context.Context, m messaging.Message) (messaging.Message, error)

	// GetMessagesByConversation returns the full message log in creation
	// order, oldest first.
	GetMessagesByConversation(ctx context.Context, conversationID int64) ([]messaging.Message, error)

	// MarkInboundRead flips every unread message in the conversation not
	// authored by viewerID to read, atomically, and reports the number of
	// rows updated.
	MarkInboundRead(ctx context.Context, conversationID, viewerID int64) (int64, error)
}

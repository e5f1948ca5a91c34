package usecase

import (
	"context"
	"errors"
	"fmt"

	messaging "conversations/internal/pkg/messaging/application/domain"
	repository "conversations/internal/pkg/messaging/persistence/repository/port"
)

// Publisher is the broadcast side of message creation. Publish must be
// non-blocking; it is only ever called after the message is durably
// persisted.
type Publisher interface {
	Publish(conversationID int64)
}

// SendMessageInput carries the data needed to create a message.
type SendMessageInput struct {
	ConversationID int64
	AuthorID       int64
	Body           string
}

// SendMessageUseCase persists a new message and then announces it on
// the broadcast channel. A message that fails validation or persistence
// is never announced.
type SendMessageUseCase struct {
	Repo repository.MessagingRepository
	Bus  Publisher
}

func NewSendMessageUseCase(repo repository.MessagingRepository, bus Publisher) *SendMessageUseCase {
	return &SendMessageUseCase{Repo: repo, Bus: bus}
}

// Execute validates, persists and broadcasts a new message.
func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (messaging.Message, error) {
	if in.ConversationID == 0 || in.AuthorID == 0 {
		return messaging.Message{}, fmt.Errorf("conversation_id and author_id are required")
	}

	conv, err := uc.Repo.GetConversation(ctx, in.ConversationID)
	if err != nil {
		if errors.Is(err, messaging.ErrConversationNotFound) {
			return messaging.Message{}, err
		}
		return messaging.Message{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !conv.HasParticipant(in.AuthorID) {
		return messaging.Message{}, messaging.ErrNotParticipant
	}

	msg, err := messaging.NewMessage(messaging.Message{
		ConversationID: in.ConversationID,
		AuthorID:       in.AuthorID,
		Body:           in.Body,
	})
	if err != nil {
		return messaging.Message{}, err
	}

	saved, err := uc.Repo.SaveMessage(ctx, msg)
	if err != nil {
		if errors.Is(err, messaging.ErrConversationNotFound) || errors.Is(err, messaging.ErrUserNotFound) {
			return messaging.Message{}, err
		}
		return messaging.Message{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// strictly after commit
	if uc.Bus != nil {
		uc.Bus.Publish(saved.ConversationID)
	}
	return saved, nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"

	messaging "conversations/internal/pkg/messaging/application/domain"
	repository "conversations/internal/pkg/messaging/persistence/repository/port"
)

// ListMessagesInput wraps the conversation whose log is requested.
type ListMessagesInput struct {
	ConversationID int64
}

// ListMessagesUseCase fetches the full ordered message log of a
// conversation, oldest first.
type ListMessagesUseCase struct {
	Repo repository.MessagingRepository
}

func NewListMessagesUseCase(repo repository.MessagingRepository) *ListMessagesUseCase {
	return &ListMessagesUseCase{Repo: repo}
}

func (uc *ListMessagesUseCase) Execute(ctx context.Context, in ListMessagesInput) ([]messaging.Message, error) {
	if in.ConversationID == 0 {
		return nil, fmt.Errorf("conversation_id is required")
	}

	if _, err := uc.Repo.GetConversation(ctx, in.ConversationID); err != nil {
		if errors.Is(err, messaging.ErrConversationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	msgs, err := uc.Repo.GetMessagesByConversation(ctx, in.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msgs, nil
}

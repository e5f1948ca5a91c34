package usecase

import (
	"context"
	"fmt"

	messaging "conversations/internal/pkg/messaging/application/domain"
	repository "conversations/internal/pkg/messaging/persistence/repository/port"
)

// CreateConversationInput carries the two members of the new thread.
// The initiator is always the authenticated user.
type CreateConversationInput struct {
	InitiatorID int64
	RecipientID int64
}

// CreateConversationUseCase opens (or re-opens) the conversation between
// a user pair. The pair is unordered: if the recipient already started a
// thread with the initiator, that thread is returned instead.
type CreateConversationUseCase struct {
	Repo repository.MessagingRepository
}

func NewCreateConversationUseCase(repo repository.MessagingRepository) *CreateConversationUseCase {
	return &CreateConversationUseCase{Repo: repo}
}

func (uc *CreateConversationUseCase) Execute(ctx context.Context, in CreateConversationInput) (messaging.Conversation, error) {
	if in.InitiatorID == 0 || in.RecipientID == 0 {
		return messaging.Conversation{}, fmt.Errorf("initiator_id and recipient_id are required")
	}
	if in.InitiatorID == in.RecipientID {
		return messaging.Conversation{}, messaging.ErrSelfConversation
	}

	for _, id := range []int64{in.InitiatorID, in.RecipientID} {
		ok, err := uc.Repo.UserExists(ctx, id)
		if err != nil {
			return messaging.Conversation{}, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if !ok {
			return messaging.Conversation{}, messaging.ErrUserNotFound
		}
	}

	conv, err := uc.Repo.FindOrCreateConversation(ctx, in.InitiatorID, in.RecipientID)
	if err != nil {
		return messaging.Conversation{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return conv, nil
}

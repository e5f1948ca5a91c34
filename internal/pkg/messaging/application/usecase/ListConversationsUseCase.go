package usecase

import (
	"context"
	"fmt"

	messaging "conversations/internal/pkg/messaging/application/domain"
	repository "conversations/internal/pkg/messaging/persistence/repository/port"
)

// ListConversationsInput wraps the user whose conversation list is requested.
type ListConversationsInput struct {
	UserID int64
}

// ListConversationsUseCase returns the user's conversations with peer
// identity and unread counts for the list view.
type ListConversationsUseCase struct {
	Repo repository.MessagingRepository
}

func NewListConversationsUseCase(repo repository.MessagingRepository) *ListConversationsUseCase {
	return &ListConversationsUseCase{Repo: repo}
}

func (uc *ListConversationsUseCase) Execute(ctx context.Context, in ListConversationsInput) ([]messaging.ConversationSummary, error) {
	if in.UserID == 0 {
		return nil, fmt.Errorf("user_id is required")
	}

	summaries, err := uc.Repo.ListConversations(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return summaries, nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"

	messaging "conversations/internal/pkg/messaging/application/domain"
	repository "conversations/internal/pkg/messaging/persistence/repository/port"
)

// MarkInboundReadInput identifies the conversation being viewed and who
// is viewing it.
type MarkInboundReadInput struct {
	ConversationID int64
	ViewerID       int64
}

// MarkInboundReadUseCase flips every unread message the viewer did not
// author to read. The viewer must be a genuine participant; this is
// validated here rather than assumed from routing.
type MarkInboundReadUseCase struct {
	Repo repository.MessagingRepository
}

func NewMarkInboundReadUseCase(repo repository.MessagingRepository) *MarkInboundReadUseCase {
	return &MarkInboundReadUseCase{Repo: repo}
}

// Execute returns the number of messages updated. Calling it twice in a
// row yields zero the second time.
func (uc *MarkInboundReadUseCase) Execute(ctx context.Context, in MarkInboundReadInput) (int64, error) {
	if in.ConversationID == 0 || in.ViewerID == 0 {
		return 0, fmt.Errorf("conversation_id and viewer_id are required")
	}

	conv, err := uc.Repo.GetConversation(ctx, in.ConversationID)
	if err != nil {
		if errors.Is(err, messaging.ErrConversationNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !conv.HasParticipant(in.ViewerID) {
		return 0, messaging.ErrNotParticipant
	}

	count, err := uc.Repo.MarkInboundRead(ctx, in.ConversationID, in.ViewerID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return count, nil
}

package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	messaging "conversations/internal/pkg/messaging/application/domain"
)

func Test_Create_Conversation_Find_Or_Create_Is_Unordered(t *testing.T) {
	req := require.New(t)

	repo := newFakeRepo()
	repo.addUser(1)
	repo.addUser(2)

	uc := NewCreateConversationUseCase(repo)

	first, err := uc.Execute(context.Background(), CreateConversationInput{InitiatorID: 1, RecipientID: 2})
	req.NoError(err)

	// the reversed pair resolves to the same thread
	second, err := uc.Execute(context.Background(), CreateConversationInput{InitiatorID: 2, RecipientID: 1})
	req.NoError(err)
	req.Equal(first.ID, second.ID)
}

func Test_Create_Conversation_Rejects_Self_And_Unknown_Users(t *testing.T) {
	req := require.New(t)

	repo := newFakeRepo()
	repo.addUser(1)

	uc := NewCreateConversationUseCase(repo)

	_, err := uc.Execute(context.Background(), CreateConversationInput{InitiatorID: 1, RecipientID: 1})
	req.ErrorIs(err, messaging.ErrSelfConversation)

	_, err = uc.Execute(context.Background(), CreateConversationInput{InitiatorID: 1, RecipientID: 9})
	req.ErrorIs(err, messaging.ErrUserNotFound)
}

func Test_List_Conversations_Reports_Unread_Count(t *testing.T) {
	req := require.New(t)

	repo := newFakeRepo()
	repo.addUser(1)
	repo.addUser(2)
	conv := repo.addConversation(1, 2)

	send := NewSendMessageUseCase(repo, &fakeBus{})
	for i := 0; i < 2; i++ {
		_, err := send.Execute(context.Background(), SendMessageInput{ConversationID: conv.ID, AuthorID: 1, Body: "ping"})
		req.NoError(err)
	}

	list := NewListConversationsUseCase(repo)

	summaries, err := list.Execute(context.Background(), ListConversationsInput{UserID: 2})
	req.NoError(err)
	req.Len(summaries, 1)
	req.Equal(int64(2), summaries[0].UnreadCount)
	req.Equal(int64(1), summaries[0].PeerID)

	// the author sees no unread inbound messages
	summaries, err = list.Execute(context.Background(), ListConversationsInput{UserID: 1})
	req.NoError(err)
	req.Len(summaries, 1)
	req.Zero(summaries[0].UnreadCount)
}

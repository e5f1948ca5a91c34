package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"conversations/internal/infrastructure/realtime"
	"conversations/internal/pkg/messaging/notify"
)

// Exercises the full delivery path: persist -> broadcast -> filter ->
// reconcile, with the real broker and filter wired to the use cases.
func Test_Message_Flow_End_To_End(t *testing.T) {
	req := require.New(t)

	repo := newFakeRepo()
	repo.addUser(1) // A
	repo.addUser(2) // B
	conv := repo.addConversation(1, 2)

	broker := realtime.NewBroker()
	send := NewSendMessageUseCase(repo, broker)
	reconcile := NewMarkInboundReadUseCase(repo)
	list := NewListMessagesUseCase(repo)

	// B has the conversation open
	sub := broker.Subscribe()
	defer sub.Close()
	filter := notify.NewFilter()
	filter.SetViewing(conv.ID)

	// A sends "hi"
	msg, err := send.Execute(context.Background(), SendMessageInput{ConversationID: conv.ID, AuthorID: 1, Body: "hi"})
	req.NoError(err)
	req.False(msg.Read)
	req.Equal(int64(1), msg.AuthorID)

	// the broadcast reaches B and passes the relevance filter
	var ev realtime.Event
	select {
	case ev = <-sub.C:
	case <-time.After(time.Second):
		t.Fatal("no broadcast received")
	}
	req.Equal(conv.ID, ev.ConversationID)
	req.True(filter.Relevant(ev))

	// B refreshes: reconcile then reload
	count, err := reconcile.Execute(context.Background(), MarkInboundReadInput{ConversationID: conv.ID, ViewerID: 2})
	req.NoError(err)
	req.Equal(int64(1), count)

	msgs, err := list.Execute(context.Background(), ListMessagesInput{ConversationID: conv.ID})
	req.NoError(err)
	req.Len(msgs, 1)
	req.True(msgs[0].Read)

	// a second reconcile is a no-op
	count, err = reconcile.Execute(context.Background(), MarkInboundReadInput{ConversationID: conv.ID, ViewerID: 2})
	req.NoError(err)
	req.Zero(count)
}

// An event for a different conversation reaches the subscriber but is
// discarded by the filter, so no refresh happens.
func Test_Message_Flow_Irrelevant_Event_Is_Discarded(t *testing.T) {
	req := require.New(t)

	repo := newFakeRepo()
	repo.addUser(1)
	repo.addUser(2)
	repo.addUser(3)
	repo.addUser(4)
	watched := repo.addConversation(1, 2)
	other := repo.addConversation(3, 4)

	broker := realtime.NewBroker()
	send := NewSendMessageUseCase(repo, broker)

	sub := broker.Subscribe()
	defer sub.Close()
	filter := notify.NewFilter()
	filter.SetViewing(watched.ID)

	_, err := send.Execute(context.Background(), SendMessageInput{ConversationID: other.ID, AuthorID: 3, Body: "elsewhere"})
	req.NoError(err)

	select {
	case ev := <-sub.C:
		req.Equal(other.ID, ev.ConversationID)
		req.False(filter.Relevant(ev))
	case <-time.After(time.Second):
		t.Fatal("no broadcast received")
	}
}

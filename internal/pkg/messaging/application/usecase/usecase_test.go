package usecase

import (
	"context"
	"sync"
	"time"

	messaging "conversations/internal/pkg/messaging/application/domain"
)

// fakeRepo is an in-memory MessagingRepository for use case tests.
type fakeRepo struct {
	mu            sync.Mutex
	users         map[int64]bool
	conversations map[int64]messaging.Conversation
	messages      []messaging.Message
	nextConvID    int64
	nextMsgID     int64
	failWith      error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:         make(map[int64]bool),
		conversations: make(map[int64]messaging.Conversation),
	}
}

func (f *fakeRepo) addUser(id int64) {
	f.mu.Lock()
	f.users[id] = true
	f.mu.Unlock()
}

func (f *fakeRepo) addConversation(initiatorID, recipientID int64) messaging.Conversation {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextConvID++
	conv := messaging.Conversation{
		ID:          f.nextConvID,
		InitiatorID: initiatorID,
		RecipientID: recipientID,
		CreatedAt:   time.Now().UTC(),
	}
	f.conversations[conv.ID] = conv
	return conv
}

func (f *fakeRepo) FindOrCreateConversation(_ context.Context, initiatorID, recipientID int64) (messaging.Conversation, error) {
	if f.failWith != nil {
		return messaging.Conversation{}, f.failWith
	}
	f.mu.Lock()
	for _, c := range f.conversations {
		if (c.InitiatorID == initiatorID && c.RecipientID == recipientID) ||
			(c.InitiatorID == recipientID && c.RecipientID == initiatorID) {
			f.mu.Unlock()
			return c, nil
		}
	}
	f.mu.Unlock()
	return f.addConversation(initiatorID, recipientID), nil
}

func (f *fakeRepo) GetConversation(_ context.Context, conversationID int64) (messaging.Conversation, error) {
	if f.failWith != nil {
		return messaging.Conversation{}, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	conv, ok := f.conversations[conversationID]
	if !ok {
		return messaging.Conversation{}, messaging.ErrConversationNotFound
	}
	return conv, nil
}

func (f *fakeRepo) ListConversations(_ context.Context, userID int64) ([]messaging.ConversationSummary, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []messaging.ConversationSummary
	for _, c := range f.conversations {
		if !c.HasParticipant(userID) {
			continue
		}
		s := messaging.ConversationSummary{Conversation: c, PeerID: c.PeerOf(userID)}
		for _, m := range f.messages {
			if m.ConversationID == c.ID && m.AuthorID != userID && !m.Read {
				s.UnreadCount++
			}
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeRepo) UserExists(_ context.Context, userID int64) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[userID], nil
}

func (f *fakeRepo) SaveMessage(_ context.Context, m messaging.Message) (messaging.Message, error) {
	if f.failWith != nil {
		return messaging.Message{}, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.conversations[m.ConversationID]; !ok {
		return messaging.Message{}, messaging.ErrConversationNotFound
	}
	if !f.users[m.AuthorID] {
		return messaging.Message{}, messaging.ErrUserNotFound
	}
	f.nextMsgID++
	m.ID = f.nextMsgID
	m.Read = false
	f.messages = append(f.messages, m)
	return m, nil
}

func (f *fakeRepo) GetMessagesByConversation(_ context.Context, conversationID int64) ([]messaging.Message, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []messaging.Message
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRepo) MarkInboundRead(_ context.Context, conversationID, viewerID int64) (int64, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for i := range f.messages {
		m := &f.messages[i]
		if m.ConversationID == conversationID && m.AuthorID != viewerID && !m.Read {
			m.Read = true
			count++
		}
	}
	return count, nil
}

// fakeBus records published conversation IDs in order.
type fakeBus struct {
	mu        sync.Mutex
	published []int64
}

func (b *fakeBus) Publish(conversationID int64) {
	b.mu.Lock()
	b.published = append(b.published, conversationID)
	b.mu.Unlock()
}

func (b *fakeBus) events() []int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]int64(nil), b.published...)
}

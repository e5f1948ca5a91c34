package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// Event is the transient notification published when a conversation
// gains a message. Events carry no payload beyond the conversation
// identity; clients reconcile by reloading the conversation.
type Event struct {
	ConversationID int64 `json:"conversation_id"`
}

const subscriberBuffer = 128

// Broker is the fan-out bus for conversation events. Every subscriber
// receives every published event on its own FIFO channel. Publishing
// never blocks: a subscriber whose buffer is full misses that event
// and must rely on the next full reload.
type Broker struct {
	mu          sync.RWMutex
	subscribers map[string]*Subscription
}

// Subscription is one subscriber's live handle on the broker. Events
// arrive on C in publish order until Close.
type Subscription struct {
	id     string
	C      chan Event
	done   chan struct{}
	broker *Broker
	once   sync.Once
}

// Done is closed when the subscription has been detached.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close detaches the subscription. The event channel C is left open so
// a concurrent Publish never races a close; readers must select on
// Done. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.broker.unsubscribe(s.id)
		close(s.done)
	})
}

// NewBroker constructs an empty Broker.
func NewBroker() *Broker {
	return &Broker{subscribers: make(map[string]*Subscription)}
}

// Subscribe attaches a new subscriber. The caller owns the returned
// handle and must Close it on disconnect.
func (b *Broker) Subscribe() *Subscription {
	sub := &Subscription{
		id:     uuid.NewString(),
		C:      make(chan Event, subscriberBuffer),
		done:   make(chan struct{}),
		broker: b,
	}

	b.mu.Lock()
	b.subscribers[sub.id] = sub
	b.mu.Unlock()

	return sub
}

// Publish delivers the event to all current subscribers. Delivery is
// best-effort per subscriber; order is preserved per subscriber channel.
func (b *Broker) Publish(conversationID int64) {
	ev := Event{ConversationID: conversationID}

	b.mu.RLock()
	for _, sub := range b.subscribers {
		select {
		case sub.C <- ev:
		default:
			// full buffer: drop for this subscriber only
		}
	}
	b.mu.RUnlock()
}

// Len reports the current subscriber count.
func (b *Broker) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

func (b *Broker) unsubscribe(id string) {
	b.mu.Lock()
	delete(b.subscribers, id)
	b.mu.Unlock()
}

// Package notify decides whether a broadcast event is relevant to what
// a connected client currently has on screen. It generalizes the
// browser-side matching the service used to do (URL path vs rendered
// list rows) into an explicit state machine, kept free of any
// transport or rendering concern.
package notify

import (
	"sync"

	"conversations/internal/infrastructure/realtime"
)

// Filter tracks one client's UI state: either idle, viewing a single
// conversation, or looking at a rendered list of conversations. It is
// safe for concurrent use; navigation frames and broker events arrive
// on different goroutines.
type Filter struct {
	mu      sync.Mutex
	viewing int64
	visible map[int64]struct{}
}

// NewFilter starts in the Idle state.
func NewFilter() *Filter {
	return &Filter{}
}

// SetViewing records that the client opened the given conversation.
func (f *Filter) SetViewing(conversationID int64) {
	f.mu.Lock()
	f.viewing = conversationID
	f.mu.Unlock()
}

// SetVisible records the conversation IDs currently rendered in the
// client's list view. It clears any single-conversation view.
func (f *Filter) SetVisible(conversationIDs []int64) {
	visible := make(map[int64]struct{}, len(conversationIDs))
	for _, id := range conversationIDs {
		visible[id] = struct{}{}
	}

	f.mu.Lock()
	f.viewing = 0
	f.visible = visible
	f.mu.Unlock()
}

// Clear returns the filter to the Idle state.
func (f *Filter) Clear() {
	f.mu.Lock()
	f.viewing = 0
	f.visible = nil
	f.mu.Unlock()
}

// Relevant reports whether the event should trigger a refresh: the
// client is viewing that conversation, or the conversation is among
// the rows it has rendered. Anything the client cannot match against
// its current state is discarded.
func (f *Filter) Relevant(ev realtime.Event) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.viewing != 0 && f.viewing == ev.ConversationID {
		return true
	}
	_, ok := f.visible[ev.ConversationID]
	return ok
}

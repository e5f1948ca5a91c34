package notify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"conversations/internal/infrastructure/realtime"
)

func Test_Filter_Idle_Discards_Everything(t *testing.T) {
	req := require.New(t)

	f := NewFilter()
	req.False(f.Relevant(realtime.Event{ConversationID: 1}))
}

func Test_Filter_Viewing_Matches_Only_That_Conversation(t *testing.T) {
	req := require.New(t)

	f := NewFilter()
	f.SetViewing(5)

	req.True(f.Relevant(realtime.Event{ConversationID: 5}))
	req.False(f.Relevant(realtime.Event{ConversationID: 7}))
}

func Test_Filter_List_Matches_Rendered_Rows(t *testing.T) {
	req := require.New(t)

	f := NewFilter()
	f.SetVisible([]int64{1, 2, 3})

	req.True(f.Relevant(realtime.Event{ConversationID: 2}))
	req.False(f.Relevant(realtime.Event{ConversationID: 4}))
}

func Test_Filter_Navigation_Replaces_State(t *testing.T) {
	req := require.New(t)

	f := NewFilter()
	f.SetViewing(5)
	f.SetVisible([]int64{8})

	// moving to the list view forgets the open conversation
	req.False(f.Relevant(realtime.Event{ConversationID: 5}))
	req.True(f.Relevant(realtime.Event{ConversationID: 8}))

	f.Clear()
	req.False(f.Relevant(realtime.Event{ConversationID: 8}))
}

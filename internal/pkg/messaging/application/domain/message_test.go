package messaging

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_New_Message_Starts_Unread(t *testing.T) {
	req := require.New(t)

	msg, err := NewMessage(Message{ConversationID: 1, AuthorID: 2, Body: "  hi  ", Read: true})
	req.NoError(err)
	req.Equal("hi", msg.Body)
	req.False(msg.Read)
	req.False(msg.CreatedAt.IsZero())
}

func Test_New_Message_Rejects_Blank_Body(t *testing.T) {
	req := require.New(t)

	for _, body := range []string{"", "   ", "\n\t "} {
		_, err := NewMessage(Message{ConversationID: 1, AuthorID: 2, Body: body})
		req.ErrorIs(err, ErrEmptyBody)
	}
}

func Test_Conversation_Membership(t *testing.T) {
	req := require.New(t)

	conv := Conversation{ID: 1, InitiatorID: 10, RecipientID: 20}
	req.True(conv.HasParticipant(10))
	req.True(conv.HasParticipant(20))
	req.False(conv.HasParticipant(30))
	req.Equal(int64(20), conv.PeerOf(10))
	req.Equal(int64(10), conv.PeerOf(20))
}

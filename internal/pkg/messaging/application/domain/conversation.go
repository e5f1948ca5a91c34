package messaging

import "time"

// Conversation is a durable pairing of two users sharing an ordered
// message history. Initiator/recipient roles are recorded at creation
// but membership checks treat the pair as unordered.
type Conversation struct {
	ID          int64     `db:"id"`
	InitiatorID int64     `db:"initiator_id"`
	RecipientID int64     `db:"recipient_id"`
	CreatedAt   time.Time `db:"created_at"`
}

// HasParticipant tells whether userID is one of the two members.
func (c Conversation) HasParticipant(userID int64) bool {
	return userID == c.InitiatorID || userID == c.RecipientID
}

// PeerOf returns the other member's ID. The caller must already know
// userID is a participant.
func (c Conversation) PeerOf(userID int64) int64 {
	if userID == c.InitiatorID {
		return c.RecipientID
	}
	return c.InitiatorID
}

// ConversationSummary is a conversation as seen from one member's
// list view: the peer's identity plus the unread inbound count.
type ConversationSummary struct {
	Conversation
	PeerID      int64  `db:"peer_id"`
	PeerName    string `db:"peer_name"`
	PeerAvatar  string `db:"peer_avatar"`
	UnreadCount int64  `db:"unread_count"`
}

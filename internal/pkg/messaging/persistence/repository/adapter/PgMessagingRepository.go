package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	messaging "conversations/internal/pkg/messaging/application/domain"
	repository "conversations/internal/pkg/messaging/persistence/repository/port"
)

type PgMessagingRepository struct {
	pool *pgxpool.Pool
}

func NewPgMessagingRepository(pool *pgxpool.Pool) *PgMessagingRepository {
	return &PgMessagingRepository{pool: pool}
}

var _ repository.MessagingRepository = (*PgMessagingRepository)(nil)

func (r *PgMessagingRepository) FindOrCreateConversation(ctx context.Context, initiatorID, recipientID int64) (messaging.Conversation, error) {
	if r == nil || r.pool == nil {
		return messaging.Conversation{}, errors.New("PgMessagingRepository: nil pool")
	}

	var conv messaging.Conversation
	err := r.pool.QueryRow(ctx, `
		SELECT id, initiator_id, recipient_id, created_at
		FROM conversations
		WHERE (initiator_id = $1 AND recipient_id = $2)
		   OR (initiator_id = $2 AND recipient_id = $1)
		LIMIT 1
	`, initiatorID, recipientID).Scan(&conv.ID, &conv.InitiatorID, &conv.RecipientID, &conv.CreatedAt)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return messaging.Conversation{}, err
	}

	err = r.pool.QueryRow(ctx, `
		INSERT INTO conversations (initiator_id, recipient_id)
		VALUES ($1, $2)
		RETURNING id, initiator_id, recipient_id, created_at
	`, initiatorID, recipientID).Scan(&conv.ID, &conv.InitiatorID, &conv.RecipientID, &conv.CreatedAt)
	return conv, err
}

func (r *PgMessagingRepository) GetConversation(ctx context.Context, conversationID int64) (messaging.Conversation, error) {
	if r == nil || r.pool == nil {
		return messaging.Conversation{}, errors.New("PgMessagingRepository: nil pool")
	}

	var conv messaging.Conversation
	err := r.pool.QueryRow(ctx, `
		SELECT id, initiator_id, recipient_id, created_at
		FROM conversations
		WHERE id = $1
	`, conversationID).Scan(&conv.ID, &conv.InitiatorID, &conv.RecipientID, &conv.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return messaging.Conversation{}, messaging.ErrConversationNotFound
	}
	return conv, err
}

func (r *PgMessagingRepository) ListConversations(ctx context.Context, userID int64) ([]messaging.ConversationSummary, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessagingRepository: nil pool")
	}

	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.initiator_id, c.recipient_id, c.created_at,
		       u.id, u.name, COALESCE(u.avatar, ''),
		       (SELECT COUNT(*) FROM messages m
		         WHERE m.conversation_id = c.id
		           AND m.author_id <> $1
		           AND m.read = FALSE)
		FROM conversations c
		JOIN users u ON u.id = CASE WHEN c.initiator_id = $1 THEN c.recipient_id ELSE c.initiator_id END
		WHERE c.initiator_id = $1 OR c.recipient_id = $1
		ORDER BY c.id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []messaging.ConversationSummary
	for rows.Next() {
		var s messaging.ConversationSummary
		if err := rows.Scan(
			&s.ID, &s.InitiatorID, &s.RecipientID, &s.CreatedAt,
			&s.PeerID, &s.PeerName, &s.PeerAvatar, &s.UnreadCount,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *PgMessagingRepository) UserExists(ctx context.Context, userID int64) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgMessagingRepository: nil pool")
	}

	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID,
	).Scan(&exists)
	return exists, err
}

// SaveMessage inserts the message after re-checking its references inside
// the same transaction, so a concurrent deletion can never leave a
// half-written row visible.
func (r *PgMessagingRepository) SaveMessage(ctx context.Context, m messaging.Message) (messaging.Message, error) {
	if r == nil || r.pool == nil {
		return messaging.Message{}, errors.New("PgMessagingRepository: nil pool")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return messaging.Message{}, err
	}
	defer tx.Rollback(ctx)

	var one int
	err = tx.QueryRow(ctx, `SELECT 1 FROM conversations WHERE id = $1`, m.ConversationID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return messaging.Message{}, messaging.ErrConversationNotFound
	}
	if err != nil {
		return messaging.Message{}, err
	}

	err = tx.QueryRow(ctx, `SELECT 1 FROM users WHERE id = $1`, m.AuthorID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return messaging.Message{}, messaging.ErrUserNotFound
	}
	if err != nil {
		return messaging.Message{}, err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO messages (conversation_id, author_id, body, read, created_at)
		VALUES ($1, $2, $3, FALSE, $4)
		RETURNING id
	`, m.ConversationID, m.AuthorID, m.Body, m.CreatedAt).Scan(&m.ID)
	if err != nil {
		return messaging.Message{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return messaging.Message{}, err
	}
	m.Read = false
	return m, nil
}

func (r *PgMessagingRepository) GetMessagesByConversation(ctx context.Context, conversationID int64) ([]messaging.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessagingRepository: nil pool")
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, conversation_id, author_id, body, read, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY id ASC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []messaging.Message
	for rows.Next() {
		var m messaging.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.AuthorID, &m.Body, &m.Read, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// MarkInboundRead is a single UPDATE, so concurrent reconciliations of the
// same conversation serialize on the row locks and the second one simply
// matches zero rows.
func (r *PgMessagingRepository) MarkInboundRead(ctx context.Context, conversationID, viewerID int64) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgMessagingRepository: nil pool")
	}

	ct, err := r.pool.Exec(ctx, `
		UPDATE messages
		SET read = TRUE
		WHERE conversation_id = $1
		  AND author_id <> $2
		  AND read = FALSE
	`, conversationID, viewerID)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

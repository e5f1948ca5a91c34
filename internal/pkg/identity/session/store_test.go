package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"conversations/internal/infrastructure/cache/adapter"
)

func Test_Session_Issue_Resolve_Revoke(t *testing.T) {
	req := require.New(t)

	store := NewStore(adapter.NewMemoryCache(), time.Hour)
	ctx := context.Background()

	token, err := store.Issue(ctx, 42)
	req.NoError(err)
	req.NotEmpty(token)

	userID, err := store.Resolve(ctx, token)
	req.NoError(err)
	req.Equal(int64(42), userID)

	req.NoError(store.Revoke(ctx, token))
	_, err = store.Resolve(ctx, token)
	req.ErrorIs(err, ErrNoSession)

	// revoking again is a no-op
	req.NoError(store.Revoke(ctx, token))
}

func Test_Session_Expired_Token_Is_Gone(t *testing.T) {
	req := require.New(t)

	store := NewStore(adapter.NewMemoryCache(), time.Millisecond)
	ctx := context.Background()

	token, err := store.Issue(ctx, 7)
	req.NoError(err)

	time.Sleep(5 * time.Millisecond)
	_, err = store.Resolve(ctx, token)
	req.ErrorIs(err, ErrNoSession)
}

func Test_Session_Unknown_Token(t *testing.T) {
	req := require.New(t)

	store := NewStore(adapter.NewMemoryCache(), time.Hour)
	_, err := store.Resolve(context.Background(), "not-a-token")
	req.ErrorIs(err, ErrNoSession)

	_, err = store.Resolve(context.Background(), "")
	req.ErrorIs(err, ErrNoSession)
}

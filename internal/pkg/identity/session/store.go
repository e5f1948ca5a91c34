// Package session issues and resolves opaque login tokens. Tokens live
// in the cache layer with a TTL, so a restart of the API process does
// not log anyone out when the cache is redis.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"conversations/internal/infrastructure/cache/port"
)

// ErrNoSession signals a missing, expired or revoked token.
var ErrNoSession = errors.New("session: no active session for token")

const keyPrefix = "session:"

// Store maps bearer tokens to user IDs through the cache port.
type Store struct {
	cache port.Cache
	ttl   time.Duration
}

func NewStore(cache port.Cache, ttl time.Duration) *Store {
	return &Store{cache: cache, ttl: ttl}
}

// Issue creates a fresh token for the user.
func (s *Store) Issue(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	if err := s.cache.Set(ctx, keyPrefix+token, strconv.FormatInt(userID, 10), s.ttl); err != nil {
		return "", fmt.Errorf("session: store token: %w", err)
	}
	return token, nil
}

// Resolve returns the user ID behind the token.
func (s *Store) Resolve(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrNoSession
	}
	value, err := s.cache.Get(ctx, keyPrefix+token)
	if errors.Is(err, port.ErrMiss) {
		return 0, ErrNoSession
	}
	if err != nil {
		return 0, fmt.Errorf("session: resolve token: %w", err)
	}
	userID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, ErrNoSession
	}
	return userID, nil
}

// Revoke invalidates the token. Revoking an unknown token is not an error.
func (s *Store) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	_, err := s.cache.Del(ctx, keyPrefix+token)
	return err
}

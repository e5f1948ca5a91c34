package repository

import (
	"context"

	identity "conversations/internal/pkg/identity/application/domain"
)

// UserRepository defines persistence operations for account identities.
// Adapters map unique-violation failures on email to ErrEmailTaken and
// missing rows to ErrUserNotFound.
type UserRepository interface {
	CreateUser(ctx context.Context, u identity.User) (identity.User, error)
	GetUserByID(ctx context.Context, userID int64) (identity.User, error)
	GetUserByEmail(ctx context.Context, email string) (identity.User, error)
	UpdateAvatar(ctx context.Context, userID int64, avatar, avatarThumb string) error
}

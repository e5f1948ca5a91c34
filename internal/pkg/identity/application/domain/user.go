package identity

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmailTaken         = errors.New("identity: email is already registered")
	ErrUserNotFound       = errors.New("identity: user does not exist")
	ErrInvalidCredentials = errors.New("identity: invalid email or password")
	ErrPasswordMismatch   = errors.New("identity: password confirmation does not match")
)

// User is an account identity. Email is unique; profile fields may
// change after creation but the identity itself is immutable.
type User struct {
	ID             int64     `db:"id"`
	Username       string    `db:"username"`
	Name           string    `db:"name"`
	Email          string    `db:"email"`
	Avatar         string    `db:"avatar"`
	AvatarThumb    string    `db:"avatar_thumb"`
	PasswordDigest string    `db:"password_digest"`
	CreatedAt      time.Time `db:"created_at"`
}

// NewUser normalizes and validates registration fields. The password
// digest is computed by the use case, not here.
func NewUser(username, name, email string) (User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" {
		return User{}, errors.New("identity: username is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return User{}, errors.New("identity: a valid email is required")
	}
	return User{
		Username: username,
		Name:     strings.TrimSpace(name),
		Email:    email,
	}, nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	identity "conversations/internal/pkg/identity/application/domain"
	repository "conversations/internal/pkg/identity/persistence/repository/port"
)

// AuthenticateUserInput carries login credentials.
type AuthenticateUserInput struct {
	Email    string
	Password string
}

// AuthenticateUserUseCase resolves credentials to a user. An unknown
// email and a wrong password are indistinguishable to the caller.
type AuthenticateUserUseCase struct {
	Repo repository.UserRepository
}

func NewAuthenticateUserUseCase(repo repository.UserRepository) *AuthenticateUserUseCase {
	return &AuthenticateUserUseCase{Repo: repo}
}

func (uc *AuthenticateUserUseCase) Execute(ctx context.Context, in AuthenticateUserInput) (identity.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return identity.User{}, identity.ErrInvalidCredentials
	}

	user, err := uc.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return identity.User{}, identity.ErrInvalidCredentials
		}
		return identity.User{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordDigest), []byte(in.Password)) != nil {
		return identity.User{}, identity.ErrInvalidCredentials
	}
	return user, nil
}

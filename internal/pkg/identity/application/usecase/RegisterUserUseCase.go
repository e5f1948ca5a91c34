package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	identity "conversations/internal/pkg/identity/application/domain"
	repository "conversations/internal/pkg/identity/persistence/repository/port"
)

// RegisterUserInput carries the registration form fields. Password and
// its confirmation must match, mirroring the original sign-up flow.
type RegisterUserInput struct {
	Username             string
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// RegisterUserUseCase creates an account with a bcrypt password digest.
type RegisterUserUseCase struct {
	Repo repository.UserRepository
}

func NewRegisterUserUseCase(repo repository.UserRepository) *RegisterUserUseCase {
	return &RegisterUserUseCase{Repo: repo}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, in RegisterUserInput) (identity.User, error) {
	if in.Password == "" {
		return identity.User{}, fmt.Errorf("identity: password is required")
	}
	if in.Password != in.PasswordConfirmation {
		return identity.User{}, identity.ErrPasswordMismatch
	}

	user, err := identity.NewUser(in.Username, in.Name, in.Email)
	if err != nil {
		return identity.User{}, err
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return identity.User{}, err
	}
	user.PasswordDigest = string(digest)

	created, err := uc.Repo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			return identity.User{}, err
		}
		return identity.User{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return created, nil
}

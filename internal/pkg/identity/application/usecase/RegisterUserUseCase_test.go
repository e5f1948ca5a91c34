package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	identity "conversations/internal/pkg/identity/application/domain"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[int64]identity.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]identity.User)}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, u identity.User) (identity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return identity.User{}, identity.ErrEmailTaken
		}
	}
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now().UTC()
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, userID int64) (identity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return identity.User{}, identity.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (identity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return identity.User{}, identity.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateAvatar(_ context.Context, userID int64, avatar, avatarThumb string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return identity.ErrUserNotFound
	}
	u.Avatar = avatar
	u.AvatarThumb = avatarThumb
	f.users[userID] = u
	return nil
}

func Test_Register_Hashes_Password_And_Normalizes_Email(t *testing.T) {
	req := require.New(t)

	repo := newFakeUserRepo()
	uc := NewRegisterUserUseCase(repo)

	user, err := uc.Execute(context.Background(), RegisterUserInput{
		Username:             "mickyginger",
		Name:                 "Mike",
		Email:                " Mike.Hayden@GA.co ",
		Password:             "password",
		PasswordConfirmation: "password",
	})
	req.NoError(err)
	req.Equal("mike.hayden@ga.co", user.Email)
	req.NotEqual("password", user.PasswordDigest)
	req.NotEmpty(user.PasswordDigest)
}

func Test_Register_Rejects_Mismatched_Confirmation(t *testing.T) {
	req := require.New(t)

	uc := NewRegisterUserUseCase(newFakeUserRepo())
	_, err := uc.Execute(context.Background(), RegisterUserInput{
		Username:             "julesjam",
		Email:                "jules@ga.co",
		Password:             "password",
		PasswordConfirmation: "passw0rd",
	})
	req.ErrorIs(err, identity.ErrPasswordMismatch)
}

func Test_Register_Rejects_Duplicate_Email(t *testing.T) {
	req := require.New(t)

	repo := newFakeUserRepo()
	uc := NewRegisterUserUseCase(repo)

	in := RegisterUserInput{
		Username:             "steadyx",
		Email:                "ed@ga.co",
		Password:             "password",
		PasswordConfirmation: "password",
	}
	_, err := uc.Execute(context.Background(), in)
	req.NoError(err)

	_, err = uc.Execute(context.Background(), in)
	req.ErrorIs(err, identity.ErrEmailTaken)
}

func Test_Authenticate_Round_Trip(t *testing.T) {
	req := require.New(t)

	repo := newFakeUserRepo()
	register := NewRegisterUserUseCase(repo)
	login := NewAuthenticateUserUseCase(repo)

	_, err := register.Execute(context.Background(), RegisterUserInput{
		Username:             "willcook",
		Email:                "will@ga.co",
		Password:             "password",
		PasswordConfirmation: "password",
	})
	req.NoError(err)

	user, err := login.Execute(context.Background(), AuthenticateUserInput{Email: "WILL@ga.co", Password: "password"})
	req.NoError(err)
	req.Equal("willcook", user.Username)

	_, err = login.Execute(context.Background(), AuthenticateUserInput{Email: "will@ga.co", Password: "wrong"})
	req.ErrorIs(err, identity.ErrInvalidCredentials)

	// unknown email yields the same error as a bad password
	_, err = login.Execute(context.Background(), AuthenticateUserInput{Email: "nobody@ga.co", Password: "password"})
	req.ErrorIs(err, identity.ErrInvalidCredentials)
}

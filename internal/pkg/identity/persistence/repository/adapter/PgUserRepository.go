package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	identity "conversations/internal/pkg/identity/application/domain"
	repository "conversations/internal/pkg/identity/persistence/repository/port"
)

type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

var _ repository.UserRepository = (*PgUserRepository)(nil)

func (r *PgUserRepository) CreateUser(ctx context.Context, u identity.User) (identity.User, error) {
	if r == nil || r.pool == nil {
		return identity.User{}, errors.New("PgUserRepository: nil pool")
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, name, email, password_digest)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, u.Username, u.Name, u.Email, u.PasswordDigest).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return identity.User{}, identity.ErrEmailTaken
		}
		return identity.User{}, err
	}
	return u, nil
}

func (r *PgUserRepository) GetUserByID(ctx context.Context, userID int64) (identity.User, error) {
	if r == nil || r.pool == nil {
		return identity.User{}, errors.New("PgUserRepository: nil pool")
	}
	return r.scanUser(r.pool.QueryRow(ctx, `
		SELECT id, username, name, email, COALESCE(avatar, ''), COALESCE(avatar_thumb, ''), password_digest, created_at
		FROM users
		WHERE id = $1
	`, userID))
}

func (r *PgUserRepository) GetUserByEmail(ctx context.Context, email string) (identity.User, error) {
	if r == nil || r.pool == nil {
		return identity.User{}, errors.New("PgUserRepository: nil pool")
	}
	return r.scanUser(r.pool.QueryRow(ctx, `
		SELECT id, username, name, email, COALESCE(avatar, ''), COALESCE(avatar_thumb, ''), password_digest, created_at
		FROM users
		WHERE email = $1
	`, email))
}

func (r *PgUserRepository) UpdateAvatar(ctx context.Context, userID int64, avatar, avatarThumb string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgUserRepository: nil pool")
	}

	ct, err := r.pool.Exec(ctx, `
		UPDATE users
		SET avatar = $2, avatar_thumb = NULLIF($3, '')
		WHERE id = $1
	`, userID, avatar, avatarThumb)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return identity.ErrUserNotFound
	}
	return nil
}

func (r *PgUserRepository) scanUser(row pgx.Row) (identity.User, error) {
	var u identity.User
	err := row.Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.Avatar, &u.AvatarThumb, &u.PasswordDigest, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return identity.User{}, identity.ErrUserNotFound
	}
	return u, err
}

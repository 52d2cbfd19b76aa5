package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/WaadSulaiman/SocialMedia.Api/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type UserRepository struct {
	Log     *zap.Logger
	DB      *pgxpool.Pool
	DBCache *redis.Client
}

func NewUserRepository(zap *zap.Logger, db *pgxpool.Pool, dbCache *redis.Client) *UserRepository {
	return &UserRepository{
		Log:     zap,
		DB:      db,
		DBCache: dbCache,
	}
}

func (repository *UserRepository) Insert(ctx context.Context, user model.User) error {
	query := "INSERT INTO users (id, username, email, password, email_confirmed, date_created, date_modified) VALUES ($1, $2, $3, $4, $5, $6, $7)"

	_, err := repository.DB.Exec(ctx, query, user.Id, user.Username, user.Email, user.Password, user.EmailConfirmed, user.DateCreated, user.DateModified)
	if err != nil {
		return err
	}

	return nil
}

func (repository *UserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := "SELECT 1 FROM users WHERE id = $1"

	var exists int
	err := repository.DB.QueryRow(ctx, query, id).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// CheckUsernameOrEmailUnique reports whether the username and the email are
// already taken.
func (repository *UserRepository) CheckUsernameOrEmailUnique(ctx context.Context, username string, email string) (bool, bool, error) {
	query := `
		SELECT
			EXISTS (SELECT 1 FROM users WHERE username = $1),
			EXISTS (SELECT 1 FROM users WHERE email = $2)
	`

	var usernameTaken, emailTaken bool
	err := repository.DB.QueryRow(ctx, query, username, email).Scan(&usernameTaken, &emailTaken)
	if err != nil {
		return false, false, err
	}

	return usernameTaken, emailTaken, nil
}

func (repository *UserRepository) FindById(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := "SELECT id, username, email, password, email_confirmed, date_created, date_modified FROM users WHERE id = $1 LIMIT 1"
	return repository.find(ctx, query, id)
}

func (repository *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := "SELECT id, username, email, password, email_confirmed, date_created, date_modified FROM users WHERE username = $1 LIMIT 1"
	return repository.find(ctx, query, username)
}

func (repository *UserRepository) find(ctx context.Context, query string, arg any) (*model.User, error) {
	user := model.User{}
	err := repository.DB.QueryRow(ctx, query, arg).Scan(&user.Id, &user.Username, &user.Email, &user.Password, &user.EmailConfirmed, &user.DateCreated, &user.DateModified)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (repository *UserRepository) ConfirmEmail(ctx context.Context, id uuid.UUID, dateModified time.Time) error {
	query := "UPDATE users SET email_confirmed = TRUE, date_modified = $1 WHERE id = $2"

	_, err := repository.DB.Exec(ctx, query, dateModified, id)
	if err != nil {
		return err
	}

	return nil
}

// Redis - Cache
func (repository *UserRepository) SetAuthToken(ctx context.Context, userId uuid.UUID, accessTokenHash string, refreshTokenHash string) error {
	accessTokenKey := fmt.Sprintf("auth:accessToken:%s", userId)
	refreshTokenKey := fmt.Sprintf("auth:refreshToken:%s", userId)

	_, err := repository.DBCache.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, accessTokenKey, accessTokenHash, accessTokenTTL)
		pipe.Set(ctx, refreshTokenKey, refreshTokenHash, refreshTokenTTL)
		return nil
	})
	if err != nil {
		return err
	}

	return nil
}

// GetAccessTokenHash returns an empty string when no token is stored.
func (repository *UserRepository) GetAccessTokenHash(ctx context.Context, userId uuid.UUID) (string, error) {
	accessTokenKey := fmt.Sprintf("auth:accessToken:%s", userId)

	hashedToken, err := repository.DBCache.Get(ctx, accessTokenKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	} else if err != nil {
		return "", err
	}

	return hashedToken, nil
}

func (repository *UserRepository) RemoveAuthToken(ctx context.Context, userId uuid.UUID) error {
	accessTokenKey := fmt.Sprintf("auth:accessToken:%s", userId)
	refreshTokenKey := fmt.Sprintf("auth:refreshToken:%s", userId)

	err := repository.DBCache.Del(ctx, accessTokenKey, refreshTokenKey).Err()
	if err != nil {
		return err
	}

	return nil
}

func (repository *UserRepository) SetConfirmEmailToken(ctx context.Context, userId uuid.UUID, tokenHash string, ttl time.Duration) error {
	key := fmt.Sprintf("account:confirm:%s", userId)

	err := repository.DBCache.Set(ctx, key, tokenHash, ttl).Err()
	if err != nil {
		return err
	}

	return nil
}

func (repository *UserRepository) GetConfirmEmailToken(ctx context.Context, userId uuid.UUID) (string, error) {
	key := fmt.Sprintf("account:confirm:%s", userId)

	tokenHash, err := repository.DBCache.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	} else if err != nil {
		return "", err
	}

	return tokenHash, nil
}

func (repository *UserRepository) RemoveConfirmEmailToken(ctx context.Context, userId uuid.UUID) error {
	key := fmt.Sprintf("account:confirm:%s", userId)

	err := repository.DBCache.Del(ctx, key).Err()
	if err != nil {
		return err
	}

	return nil
}

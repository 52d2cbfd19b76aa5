package repository

import (
	"context"
	"errors"

	"github.com/WaadSulaiman/SocialMedia.Api/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type FollowerRepository struct {
	Log *zap.Logger
	DB  *pgxpool.Pool
}

func NewFollowerRepository(zap *zap.Logger, db *pgxpool.Pool) *FollowerRepository {
	return &FollowerRepository{
		Log: zap,
		DB:  db,
	}
}

func (repository *FollowerRepository) Find(ctx context.Context, followerId uuid.UUID, followeeId uuid.UUID) (*model.Follower, error) {
	query := "SELECT id, follower_id, followee_id, date_created FROM followers WHERE follower_id = $1 AND followee_id = $2"

	follower := model.Follower{}
	err := repository.DB.QueryRow(ctx, query, followerId, followeeId).Scan(&follower.Id, &follower.FollowerId, &follower.FolloweeId, &follower.DateCreated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &follower, nil
}

// Insert is a no-op update on conflict so RETURNING yields the existing edge.
func (repository *FollowerRepository) Insert(ctx context.Context, follower model.Follower) (model.Follower, error) {
	query := `
		INSERT INTO followers (id, follower_id, followee_id, date_created) VALUES ($1, $2, $3, $4)
		ON CONFLICT (follower_id, followee_id) DO UPDATE SET follower_id = EXCLUDED.follower_id
		RETURNING id, follower_id, followee_id, date_created
	`

	stored := model.Follower{}
	err := repository.DB.QueryRow(ctx, query, follower.Id, follower.FollowerId, follower.FolloweeId, follower.DateCreated).
		Scan(&stored.Id, &stored.FollowerId, &stored.FolloweeId, &stored.DateCreated)
	if err != nil {
		return stored, err
	}

	return stored, nil
}

func (repository *FollowerRepository) Remove(ctx context.Context, followerId uuid.UUID, followeeId uuid.UUID) (bool, error) {
	query := "DELETE FROM followers WHERE follower_id = $1 AND followee_id = $2"

	tag, err := repository.DB.Exec(ctx, query, followerId, followeeId)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (repository *FollowerRepository) ListFollowers(ctx context.Context, followeeId uuid.UUID) ([]model.Follower, error) {
	query := "SELECT id, follower_id, followee_id, date_created FROM followers WHERE followee_id = $1 ORDER BY date_created DESC, id DESC"
	return repository.list(ctx, query, followeeId)
}

func (repository *FollowerRepository) ListFollowing(ctx context.Context, followerId uuid.UUID) ([]model.Follower, error) {
	query := "SELECT id, follower_id, followee_id, date_created FROM followers WHERE follower_id = $1 ORDER BY date_created DESC, id DESC"
	return repository.list(ctx, query, followerId)
}

func (repository *FollowerRepository) list(ctx context.Context, query string, userId uuid.UUID) ([]model.Follower, error) {
	rows, err := repository.DB.Query(ctx, query, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	followers := []model.Follower{}
	for rows.Next() {
		follower := model.Follower{}
		err = rows.Scan(&follower.Id, &follower.FollowerId, &follower.FolloweeId, &follower.DateCreated)
		if err != nil {
			return nil, err
		}
		followers = append(followers, follower)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return followers, nil
}

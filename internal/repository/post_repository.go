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

const postColumns = "p.id, p.caption, p.description, p.file_name, p.user_id, p.date_created, p.date_modified"

type PostRepository struct {
	Log *zap.Logger
	DB  *pgxpool.Pool
}

func NewPostRepository(zap *zap.Logger, db *pgxpool.Pool) *PostRepository {
	return &PostRepository{
		Log: zap,
		DB:  db,
	}
}

func scanPost(row pgx.Row) (model.Post, error) {
	post := model.Post{}
	err := row.Scan(&post.Id, &post.Caption, &post.Description, &post.FileName, &post.UserId, &post.DateCreated, &post.DateModified)
	return post, err
}

func (repository *PostRepository) Find(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	query := "SELECT " + postColumns + " FROM posts p WHERE p.id = $1"

	post, err := scanPost(repository.DB.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &post, nil
}

func (repository *PostRepository) FindOwned(ctx context.Context, id uuid.UUID, userId uuid.UUID) (*model.Post, error) {
	query := "SELECT " + postColumns + " FROM posts p WHERE p.id = $1 AND p.user_id = $2"

	post, err := scanPost(repository.DB.QueryRow(ctx, query, id, userId))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &post, nil
}

// FeedFor returns posts by the users userId follows, newest first.
func (repository *PostRepository) FeedFor(ctx context.Context, userId uuid.UUID, limit int, cursor *model.PostCursor) ([]model.Post, error) {
	var rows pgx.Rows
	var err error

	if cursor != nil {
		queryWithCursor := `
			SELECT ` + postColumns + `
			FROM posts p
			INNER JOIN followers f ON f.followee_id = p.user_id
			WHERE f.follower_id = $1
			AND (p.date_created < $2 OR (p.date_created = $2 AND p.id < $3))
			ORDER BY p.date_created DESC, p.id DESC
			LIMIT $4
		`
		rows, err = repository.DB.Query(ctx, queryWithCursor, userId, cursor.DateCreated, cursor.Id, limit)
	} else {
		query := `
			SELECT ` + postColumns + `
			FROM posts p
			INNER JOIN followers f ON f.followee_id = p.user_id
			WHERE f.follower_id = $1
			ORDER BY p.date_created DESC, p.id DESC
			LIMIT $2
		`
		rows, err = repository.DB.Query(ctx, query, userId, limit)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (repository *PostRepository) Insert(ctx context.Context, post model.Post) error {
	query := "INSERT INTO posts (id, caption, description, file_name, user_id, date_created, date_modified) VALUES ($1, $2, $3, $4, $5, $6, $7)"

	_, err := repository.DB.Exec(ctx, query, post.Id, post.Caption, post.Description, post.FileName, post.UserId, post.DateCreated, post.DateModified)
	if err != nil {
		return err
	}

	return nil
}

func (repository *PostRepository) Update(ctx context.Context, post model.Post) error {
	query := "UPDATE posts SET caption = $1, description = $2, date_modified = $3 WHERE id = $4 AND user_id = $5"

	tag, err := repository.DB.Exec(ctx, query, post.Caption, post.Description, post.DateModified, post.Id, post.UserId)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}

	return nil
}

func (repository *PostRepository) Remove(ctx context.Context, post model.Post) error {
	query := "DELETE FROM posts WHERE id = $1 AND user_id = $2"

	tag, err := repository.DB.Exec(ctx, query, post.Id, post.UserId)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}

	return nil
}

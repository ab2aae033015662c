package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongminglow/postboard/internal/models"
	"github.com/hongminglow/postboard/internal/storage"
	"github.com/jackc/pgx/v5"
)

const postColumns = `id, user_id, title, body, image, created_at, updated_at`

// ListPosts returns every post in insertion order.
func (s *Store) ListPosts(ctx context.Context) ([]models.Post, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+postColumns+` FROM posts ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	posts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Post, error) {
		return scanPost(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// GetPost fetches a post by id.
func (s *Store) GetPost(ctx context.Context, id int64) (models.Post, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1;`, id)
	return notFound(scanPost(row))
}

// CreatePost inserts a post owned by ownerID.
func (s *Store) CreatePost(ctx context.Context, ownerID int64, fields models.PostFields) (models.Post, error) {
	const query = `
		INSERT INTO posts (user_id, title, body, image)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + postColumns + `;
	`
	row := s.pool.QueryRow(ctx, query, ownerID, fields.Title, fields.Body, fields.Image)
	created, err := scanPost(row)
	if err != nil {
		if pgCode(err) == foreignKeyViolation {
			return models.Post{}, storage.ErrOwnerNotFound
		}
		return models.Post{}, fmt.Errorf("insert post: %w", err)
	}
	return created, nil
}

// UpdatePost overwrites the editable fields of a post in a single statement.
func (s *Store) UpdatePost(ctx context.Context, id int64, fields models.PostFields) (models.Post, error) {
	const query = `
		UPDATE posts
		SET title = $2, body = $3, image = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + postColumns + `;
	`
	row := s.pool.QueryRow(ctx, query, id, fields.Title, fields.Body, fields.Image)
	return notFound(scanPost(row))
}

// DeletePost removes a post permanently.
func (s *Store) DeletePost(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanPost(row pgx.Row) (models.Post, error) {
	var p models.Post
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Body, &p.Image, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func notFound(p models.Post, err error) (models.Post, error) {
	if err == nil {
		return p, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Post{}, storage.ErrNotFound
	}
	return models.Post{}, fmt.Errorf("query post: %w", err)
}

package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/postboard/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrOwnerNotFound indicates a post was created for a user that does not exist.
var ErrOwnerNotFound = errors.New("owner does not exist")

// UserStore captures persistence operations needed by the account handlers.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

// PostStore is durable CRUD over posts. Every method is atomic per record.
type PostStore interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, id int64) (models.Post, error)
	CreatePost(ctx context.Context, ownerID int64, fields models.PostFields) (models.Post, error)
	// UpdatePost overwrites title, body and image. The owner is never changed.
	UpdatePost(ctx context.Context, id int64, fields models.PostFields) (models.Post, error)
	DeletePost(ctx context.Context, id int64) error
}

// Store is the full persistence surface used by the server.
type Store interface {
	UserStore
	PostStore
	Ping(ctx context.Context) error
	Close()
}

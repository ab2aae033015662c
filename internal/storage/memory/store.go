// Package memory keeps users and posts in process memory. It honours the same
// error contract as the Postgres store and backs handler tests and
// STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hongminglow/postboard/internal/models"
	"github.com/hongminglow/postboard/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store is a mutex-guarded in-memory storage.Store.
type Store struct {
	mu         sync.RWMutex
	users      map[int64]models.User
	posts      map[int64]models.Post
	nextUserID int64
	nextPostID int64
	now        func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users: make(map[int64]models.User),
		posts: make(map[int64]models.Post),
		now:   time.Now,
	}
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() {}

func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	s.nextUserID++
	user.ID = s.nextUserID
	user.CreatedAt = s.now().UTC()
	s.users[user.ID] = user
	return user, nil
}

func (s *Store) FindByID(_ context.Context, id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (s *Store) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

// ListPosts returns posts ordered by id.
func (s *Store) ListPosts(context.Context) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetPost(_ context.Context, id int64) (models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok {
		return models.Post{}, storage.ErrNotFound
	}
	return p, nil
}

func (s *Store) CreatePost(_ context.Context, ownerID int64, fields models.PostFields) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[ownerID]; !ok {
		return models.Post{}, storage.ErrOwnerNotFound
	}
	s.nextPostID++
	now := s.now().UTC()
	p := models.Post{
		ID:        s.nextPostID,
		UserID:    ownerID,
		Title:     fields.Title,
		Body:      fields.Body,
		Image:     fields.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.posts[p.ID] = p
	return p, nil
}

func (s *Store) UpdatePost(_ context.Context, id int64, fields models.PostFields) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return models.Post{}, storage.ErrNotFound
	}
	p.Title = fields.Title
	p.Body = fields.Body
	p.Image = fields.Image
	p.UpdatedAt = s.now().UTC()
	s.posts[id] = p
	return p, nil
}

func (s *Store) DeletePost(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

package repository

import (
	"context"
	"errors"

	"github.com/blogsphere/blogsphere/internal/posts"
)

var (
	ErrNotFound = errors.New("post not found")
)

// Repository is the persistence contract for posts. Every owner-scoped
// operation reports an ownership mismatch exactly like absence, so callers
// cannot distinguish "not yours" from "does not exist".
type Repository interface {
	Create(ctx context.Context, p *posts.Post) error
	ListByAuthor(ctx context.Context, author string) ([]*posts.Post, error)
	GetOwned(ctx context.Context, author, id string) (*posts.Post, error)
	Update(ctx context.Context, author, id string, upd posts.Update) (*posts.Post, error)
	Delete(ctx context.Context, author, id string) error
	GetShared(ctx context.Context, id string) (*posts.Post, error)
}

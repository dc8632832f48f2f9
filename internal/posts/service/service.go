package service

import (
	"context"
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/blogsphere/blogsphere/internal/posts"
	"github.com/blogsphere/blogsphere/internal/posts/repository"
)

var (
	ErrValidation = errors.New("title and content are required")
	ErrNotFound   = errors.New("post not found")
)

// Service enforces the post invariants on top of the repository: non-empty
// title and content, owner fixed at creation, sharing off by default. Content
// is run through an HTML sanitizer before persisting since the client renders
// stored content verbatim.
type Service struct {
	repo      repository.Repository
	sanitizer *bluemonday.Policy
}

func New(repo repository.Repository) *Service {
	return &Service{repo: repo, sanitizer: bluemonday.UGCPolicy()}
}

// Create stores a new post for the given author. The creation timestamp is
// assigned by the repository; the caller never supplies it.
func (s *Service) Create(ctx context.Context, author, title, content string, shared bool) (*posts.Post, error) {
	clean := s.sanitizer.Sanitize(content)
	if strings.TrimSpace(title) == "" || strings.TrimSpace(clean) == "" {
		return nil, ErrValidation
	}
	p := &posts.Post{
		Title:   title,
		Content: clean,
		Author:  author,
		Shared:  shared,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns the author's posts, newest first. An empty slice is a valid result.
func (s *Service) List(ctx context.Context, author string) ([]*posts.Post, error) {
	return s.repo.ListByAuthor(ctx, author)
}

func (s *Service) Get(ctx context.Context, author, id string) (*posts.Post, error) {
	p, err := s.repo.GetOwned(ctx, author, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Update applies a partial update. A supplied title or content must be
// non-empty; omitted fields keep their stored value, so the non-empty
// invariant can never be violated through partial updates.
func (s *Service) Update(ctx context.Context, author, id string, upd posts.Update) (*posts.Post, error) {
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return nil, ErrValidation
	}
	if upd.Content != nil {
		clean := s.sanitizer.Sanitize(*upd.Content)
		if strings.TrimSpace(clean) == "" {
			return nil, ErrValidation
		}
		upd.Content = &clean
	}
	p, err := s.repo.Update(ctx, author, id, upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Delete removes the post immediately; there is no soft delete.
func (s *Service) Delete(ctx context.Context, author, id string) error {
	err := s.repo.Delete(ctx, author, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// GetShared resolves a post by id without any identity. Its sole gate is the
// visibility flag; ownership is never consulted here.
func (s *Service) GetShared(ctx context.Context, id string) (*posts.Post, error) {
	p, err := s.repo.GetShared(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

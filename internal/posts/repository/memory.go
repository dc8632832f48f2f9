package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/blogsphere/blogsphere/internal/posts"
)

// MemoryRepository is a simple in-memory repository used by unit tests and
// local development without a Mongo instance.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]posts.Post
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]posts.Post)}
}

func (m *MemoryRepository) Create(ctx context.Context, p *posts.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	m.store[p.ID] = *p
	return nil
}

func (m *MemoryRepository) ListByAuthor(ctx context.Context, author string) ([]*posts.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*posts.Post{}
	for _, p := range m.store {
		if p.Author == author {
			cp := p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryRepository) GetOwned(ctx context.Context, author, id string) (*posts.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok || p.Author != author {
		return nil, ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (m *MemoryRepository) Update(ctx context.Context, author, id string, upd posts.Update) (*posts.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok || p.Author != author {
		return nil, ErrNotFound
	}
	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Content != nil {
		p.Content = *upd.Content
	}
	if upd.Shared != nil {
		p.Shared = *upd.Shared
	}
	m.store[id] = p
	cp := p
	return &cp, nil
}

func (m *MemoryRepository) Delete(ctx context.Context, author, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok || p.Author != author {
		return ErrNotFound
	}
	delete(m.store, p.ID)
	return nil
}

func (m *MemoryRepository) GetShared(ctx context.Context, id string) (*posts.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok || !p.Shared {
		return nil, ErrNotFound
	}
	cp := p
	return &cp, nil
}

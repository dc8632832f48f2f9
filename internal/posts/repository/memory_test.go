package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blogsphere/blogsphere/internal/posts"
)

func seed(t *testing.T, m *MemoryRepository, p *posts.Post) *posts.Post {
	t.Helper()
	if err := m.Create(context.Background(), p); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	return p
}

func TestMemoryCreateAndGetOwned(t *testing.T) {
	m := NewMemoryRepository()
	ctx := context.Background()
	p := seed(t, m, &posts.Post{Title: "Hello", Content: "World", Author: "u1"})

	if p.ID == "" {
		t.Fatal("expected Create to assign an id")
	}
	if p.CreatedAt.IsZero() {
		t.Fatal("expected Create to assign a creation timestamp")
	}

	got, err := m.GetOwned(ctx, "u1", p.ID)
	if err != nil {
		t.Fatalf("GetOwned error: %v", err)
	}
	if got.Title != "Hello" || got.Content != "World" || got.Shared {
		t.Fatalf("unexpected post: %+v", got)
	}
}

func TestMemoryListByAuthor_NewestFirst(t *testing.T) {
	m := NewMemoryRepository()
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	seed(t, m, &posts.Post{ID: "a", Title: "first", Content: "c", Author: "u1", CreatedAt: base})
	seed(t, m, &posts.Post{ID: "b", Title: "second", Content: "c", Author: "u1", CreatedAt: base.Add(time.Minute)})
	seed(t, m, &posts.Post{ID: "c", Title: "third", Content: "c", Author: "u1", CreatedAt: base.Add(2 * time.Minute)})
	seed(t, m, &posts.Post{ID: "d", Title: "other", Content: "c", Author: "u2", CreatedAt: base.Add(3 * time.Minute)})

	list, err := m.ListByAuthor(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByAuthor error: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(list))
	}
	if list[0].ID != "c" || list[1].ID != "b" || list[2].ID != "a" {
		t.Fatalf("expected newest-first order, got %s %s %s", list[0].ID, list[1].ID, list[2].ID)
	}

	empty, err := m.ListByAuthor(ctx, "nobody")
	if err != nil {
		t.Fatalf("ListByAuthor error: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty list, got %d", len(empty))
	}
}

func TestMemoryOwnershipIsolation(t *testing.T) {
	m := NewMemoryRepository()
	ctx := context.Background()
	p := seed(t, m, &posts.Post{Title: "mine", Content: "c", Author: "u1"})

	if _, err := m.GetOwned(ctx, "u2", p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign get, got: %v", err)
	}
	title := "stolen"
	if _, err := m.Update(ctx, "u2", p.ID, posts.Update{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign update, got: %v", err)
	}
	if err := m.Delete(ctx, "u2", p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign delete, got: %v", err)
	}

	// the owner still sees the original
	got, err := m.GetOwned(ctx, "u1", p.ID)
	if err != nil {
		t.Fatalf("GetOwned error: %v", err)
	}
	if got.Title != "mine" {
		t.Fatalf("post should be untouched, got title %q", got.Title)
	}
}

func TestMemoryUpdate_PartialFields(t *testing.T) {
	m := NewMemoryRepository()
	ctx := context.Background()
	p := seed(t, m, &posts.Post{Title: "t", Content: "c", Author: "u1"})

	shared := true
	got, err := m.Update(ctx, "u1", p.ID, posts.Update{Shared: &shared})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if !got.Shared || got.Title != "t" || got.Content != "c" {
		t.Fatalf("partial update touched other fields: %+v", got)
	}

	title := "t2"
	got, err = m.Update(ctx, "u1", p.ID, posts.Update{Title: &title})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.Title != "t2" || got.Content != "c" || !got.Shared {
		t.Fatalf("partial update touched other fields: %+v", got)
	}
}

func TestMemoryDelete_SecondDeleteNotFound(t *testing.T) {
	m := NewMemoryRepository()
	ctx := context.Background()
	p := seed(t, m, &posts.Post{Title: "t", Content: "c", Author: "u1"})

	if err := m.Delete(ctx, "u1", p.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := m.Delete(ctx, "u1", p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got: %v", err)
	}
	if err := m.Delete(ctx, "u1", "never-existed"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got: %v", err)
	}
}

func TestMemoryGetShared_FlagGate(t *testing.T) {
	m := NewMemoryRepository()
	ctx := context.Background()
	private := seed(t, m, &posts.Post{Title: "p", Content: "c", Author: "u1"})
	public := seed(t, m, &posts.Post{Title: "s", Content: "c", Author: "u1", Shared: true})

	if _, err := m.GetShared(ctx, private.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("private post must not resolve publicly, got: %v", err)
	}
	got, err := m.GetShared(ctx, public.ID)
	if err != nil {
		t.Fatalf("GetShared error: %v", err)
	}
	if got.Title != "s" {
		t.Fatalf("unexpected post: %+v", got)
	}
	if _, err := m.GetShared(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got: %v", err)
	}
}

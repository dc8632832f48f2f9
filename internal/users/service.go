package users

import (
	"context"
	"fmt"

	"github.com/blogsphere/blogsphere/internal/models"
)

// Service encapsulates user-related business logic
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// GetOrCreate resolves the user bound to a Google subject id, materializing
// the record on first login. Existing records are returned untouched; profile
// attributes are only captured once.
func (s *Service) GetOrCreate(ctx context.Context, googleID, name, email, picture string) (*models.User, error) {
	if googleID == "" {
		return nil, fmt.Errorf("missing subject id")
	}
	u, err := s.repo.GetByGoogleID(ctx, googleID)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}
	return s.repo.Create(ctx, &models.User{
		GoogleID: googleID,
		Name:     name,
		Email:    email,
		Picture:  picture,
	})
}

// GetByID loads a user by internal id; returns nil when the id no longer
// resolves to a stored user.
func (s *Service) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

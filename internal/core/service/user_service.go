package service

import (
	"context"
	"errors"

	"github.com/foodrescue/foodrescue-api/internal/core/domain"
	"github.com/foodrescue/foodrescue-api/internal/core/ports"
)

// UserService provides read-only queries over the credential store.
type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// ListAll returns every user in storage order.
func (s *UserService) ListAll(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) FindByID(ctx context.Context, id int) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

// Exists reports whether a record with the exact email is present.
func (s *UserService) Exists(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}
	return false, err
}

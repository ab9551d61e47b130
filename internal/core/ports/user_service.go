package ports

import (
	"context"

	"github.com/foodrescue/foodrescue-api/internal/core/domain"
)

type UserService interface {
	ListAll(ctx context.Context) ([]*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Exists(ctx context.Context, email string) (bool, error)
}

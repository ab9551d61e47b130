package ports

import (
	"context"

	"github.com/foodrescue/foodrescue-api/internal/core/domain"
)

// UserRepository defines the interface for the credential store. Records are
// kept in insertion order; List preserves that order.
type UserRepository interface {
	// Create persists a new user, assigns its sequential ID and returns the
	// stored record. Returns domain.ErrUserExists when the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByID returns domain.ErrUserNotFound when no record matches.
	FindByID(ctx context.Context, id int) (*domain.User, error)
	// FindByEmail matches the email exactly (case-sensitive) and returns
	// domain.ErrUserNotFound when no record matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns every record in storage order.
	List(ctx context.Context) ([]*domain.User, error)
	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
}

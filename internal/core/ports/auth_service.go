package ports

import (
	"context"

	"github.com/foodrescue/foodrescue-api/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration time.
type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	Phone     string
	Address   string
	Role      domain.Role
	StoreName string
}

type AuthService interface {
	// Authenticate verifies credentials and the active flag. Every failure
	// surfaces as domain.ErrInvalidCredentials; the returned record still
	// carries its password hash and must be scrubbed before exposure.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	// Register hashes the password, fills role-conditional fields and stores
	// the record. Callers pre-check for duplicates; the repository re-checks.
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// IssueSessionToken returns a signed bearer token for the user.
	IssueSessionToken(user *domain.User) (string, error)
}

package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/foodrescue/foodrescue-api/internal/core/domain"
	"github.com/foodrescue/foodrescue-api/internal/core/ports"
)

// AuthService implements authentication and registration over the
// credential store.
type AuthService struct {
	repo   ports.UserRepository
	issuer ports.TokenIssuer
}

func NewAuthService(repo ports.UserRepository, issuer ports.TokenIssuer) *AuthService {
	return &AuthService{repo: repo, issuer: issuer}
}

// Authenticate looks the user up by email, verifies the password against the
// stored hash and checks the active flag. All three failures collapse to
// domain.ErrInvalidCredentials so the caller cannot tell which check failed.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.Active {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// Register hashes the password, populates role-conditional fields and stores
// the record. The repository assigns the sequential id and enforces email
// uniqueness as a backstop to the handler's pre-check.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	role := in.Role
	if role == "" {
		role = domain.RoleBuyer
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         in.Name,
		Phone:        in.Phone,
		Address:      in.Address,
		Active:       true,
	}
	if role == domain.RoleSeller {
		verified := false
		user.StoreName = in.StoreName
		user.Verified = &verified
	}

	return s.repo.Create(ctx, user)
}

// IssueSessionToken delegates to the token issuer.
func (s *AuthService) IssueSessionToken(user *domain.User) (string, error) {
	return s.issuer.Issue(user)
}

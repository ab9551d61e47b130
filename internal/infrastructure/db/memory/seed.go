package memory

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/foodrescue/foodrescue-api/internal/core/domain"
	"github.com/foodrescue/foodrescue-api/internal/core/ports"
)

// seedAccount pairs a user record with its demo plaintext password.
type seedAccount struct {
	password string
	user     domain.User
}

func seedAccounts() []seedAccount {
	verified := true
	return []seedAccount{
		{
			password: "123456",
			user: domain.User{
				Email:   "buyer@test.com",
				Role:    domain.RoleBuyer,
				Name:    "John Buyer",
				Phone:   "+1234567890",
				Address: "123 Main St, City",
				Active:  true,
			},
		},
		{
			password: "123456",
			user: domain.User{
				Email:     "seller@test.com",
				Role:      domain.RoleSeller,
				Name:      "Jane Seller",
				StoreName: "Fresh Market Corner",
				Phone:     "+1234567891",
				Address:   "456 Market Ave, City",
				Verified:  &verified,
				Active:    true,
			},
		},
		{
			password: "admin",
			user: domain.User{
				Email:  "admin@admin.com",
				Role:   domain.RoleAdmin,
				Name:   "Admin User",
				Phone:  "+1234567892",
				Active: true,
			},
		},
	}
}

// Seed inserts the three fixed demo accounts (buyer, seller, admin) into an
// empty store and returns how many records it created. A non-empty store is
// left untouched.
func Seed(ctx context.Context, repo ports.UserRepository) (int, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed count: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	created := 0
	for _, acc := range seedAccounts() {
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.password), bcrypt.DefaultCost)
		if err != nil {
			return created, fmt.Errorf("seed hash: %w", err)
		}
		user := acc.user
		user.PasswordHash = string(hash)
		if _, err := repo.Create(ctx, &user); err != nil {
			return created, fmt.Errorf("seed %s: %w", user.Email, err)
		}
		created++
	}
	return created, nil
}

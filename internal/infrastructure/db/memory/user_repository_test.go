package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/foodrescue/foodrescue-api/internal/core/domain"
)

func TestUserRepository_SequentialIDs(t *testing.T) {
	repo := NewUserRepository()

	for i := 1; i <= 3; i++ {
		user, err := repo.Create(context.Background(), &domain.User{Email: fmt.Sprintf("u%d@test.com", i), Active: true})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if user.ID != i {
			t.Fatalf("expected id %d, got %d", i, user.ID)
		}
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository()

	if _, err := repo.Create(context.Background(), &domain.User{Email: "dup@test.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(context.Background(), &domain.User{Email: "dup@test.com"}); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if n, _ := repo.Count(context.Background()); n != 1 {
		t.Fatalf("rejected create mutated the store: %d", n)
	}
}

func TestUserRepository_ConcurrentRegistrations(t *testing.T) {
	repo := NewUserRepository()

	const workers = 32
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Create(context.Background(), &domain.User{Email: fmt.Sprintf("c%d@test.com", i)})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
	}

	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	seen := make(map[int]bool, len(users))
	for _, u := range users {
		if seen[u.ID] {
			t.Fatalf("duplicate id assigned: %d", u.ID)
		}
		seen[u.ID] = true
		if u.ID < 1 || u.ID > workers {
			t.Fatalf("id out of range: %d", u.ID)
		}
	}
}

func TestUserRepository_CloneIsolation(t *testing.T) {
	repo := NewUserRepository()

	created, err := repo.Create(context.Background(), &domain.User{Email: "iso@test.com", Name: "Before"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	created.Name = "After"

	stored, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Name != "Before" {
		t.Fatalf("caller mutation leaked into the store: %q", stored.Name)
	}
}

func TestSeed_ThreeAccounts(t *testing.T) {
	repo := NewUserRepository()

	n, err := Seed(context.Background(), repo)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 seeded accounts, got %d", n)
	}

	cases := []struct {
		email    string
		password string
		role     domain.Role
	}{
		{"buyer@test.com", "123456", domain.RoleBuyer},
		{"seller@test.com", "123456", domain.RoleSeller},
		{"admin@admin.com", "admin", domain.RoleAdmin},
	}
	for i, tc := range cases {
		user, err := repo.FindByEmail(context.Background(), tc.email)
		if err != nil {
			t.Fatalf("%s not seeded: %v", tc.email, err)
		}
		if user.ID != i+1 {
			t.Fatalf("%s: expected id %d, got %d", tc.email, i+1, user.ID)
		}
		if user.Role != tc.role {
			t.Fatalf("%s: expected role %s, got %s", tc.email, tc.role, user.Role)
		}
		if !user.Active {
			t.Fatalf("%s: expected active", tc.email)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tc.password)); err != nil {
			t.Fatalf("%s: seed password not verifiable: %v", tc.email, err)
		}
	}

	seller, _ := repo.FindByEmail(context.Background(), "seller@test.com")
	if seller.StoreName != "Fresh Market Corner" {
		t.Fatalf("seller store name missing: %q", seller.StoreName)
	}
	if seller.Verified == nil || !*seller.Verified {
		t.Fatalf("seeded seller should be verified")
	}
}

func TestSeed_SkipsNonEmptyStore(t *testing.T) {
	repo := NewUserRepository()
	if _, err := repo.Create(context.Background(), &domain.User{Email: "existing@test.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	n, err := Seed(context.Background(), repo)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != 0 {
		t.Fatalf("seed must leave a non-empty store untouched, created %d", n)
	}
	if count, _ := repo.Count(context.Background()); count != 1 {
		t.Fatalf("store size changed: %d", count)
	}
}

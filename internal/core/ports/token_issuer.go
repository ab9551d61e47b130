package ports

import "github.com/foodrescue/foodrescue-api/internal/core/domain"

// TokenIssuer produces signed, self-contained bearer tokens carrying the
// subject email, role and numeric id plus an expiration timestamp. Nothing
// in the API verifies these tokens; they are issued for clients to hold.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

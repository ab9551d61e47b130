package domain

import "errors"

// Role governs which optional fields a user record carries.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("email already registered")

// User models a marketplace account. PasswordHash is never serialized;
// StoreName and Verified are populated only for sellers.
type User struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Address      string `json:"address,omitempty"`
	StoreName    string `json:"storeName,omitempty"`
	Verified     *bool  `json:"verified,omitempty"`
	Active       bool   `json:"active"`
}

// Clone returns a deep copy so repository internals never alias caller state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.Verified != nil {
		v := *u.Verified
		clone.Verified = &v
	}
	return &clone
}

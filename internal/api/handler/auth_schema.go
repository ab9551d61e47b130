package handler

import "github.com/foodrescue/foodrescue-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Name      string `json:"name"      validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required"`
	Phone     string `json:"phone"     validate:"required"`
	Address   string `json:"address"   validate:"required"`
	Role      string `json:"role"      validate:"omitempty,oneof=buyer seller admin"`
	StoreName string `json:"storeName" validate:"omitempty"`
}

// authResponse is the envelope shared by login and register. The user's
// password hash is excluded by the domain type's json tags.
type authResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *domain.User `json:"user,omitempty"`
	Token   string       `json:"token,omitempty"`
}

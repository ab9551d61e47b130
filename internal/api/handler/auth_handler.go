package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/foodrescue/foodrescue-api/internal/api/metrics"
	"github.com/foodrescue/foodrescue-api/internal/core/domain"
	"github.com/foodrescue/foodrescue-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	userService ports.UserService
	throttle    ports.LoginThrottle // nil when REDIS_ADDR is unset
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, userService ports.UserService, throttle ports.LoginThrottle, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		throttle:    throttle,
		log:         log,
	}
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	ctx := c.Request().Context()

	if h.throttle != nil {
		blocked, err := h.throttle.Blocked(ctx, req.Email)
		switch {
		case err != nil:
			// the throttle is best-effort; a degraded Redis must not take
			// down authentication
			h.log.Warn().Err(err).Msg("login throttle unavailable, skipping check")
		case blocked:
			metrics.ThrottledLoginsTotal.Inc()
			return c.JSON(http.StatusTooManyRequests, errorResponse{Error: "too many failed login attempts"})
		}
	}

	user, err := h.authService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		if h.throttle != nil {
			_ = h.throttle.RecordFailure(ctx, req.Email)
		}
		// unknown email, wrong password and inactive account all surface
		// the same way
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "Invalid email or password"})
	}

	token, err := h.authService.IssueSessionToken(user)
	if err != nil {
		return err
	}

	if h.throttle != nil {
		_ = h.throttle.Reset(ctx, req.Email)
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, authResponse{
		Success: true,
		Message: "Login successful",
		User:    user,
		Token:   token,
	})
}

// Register creates a new user account and returns a session token.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	ctx := c.Request().Context()

	taken, err := h.userService.Exists(ctx, req.Email)
	if err != nil {
		return err
	}
	if taken {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Email already registered"})
	}

	user, err := h.authService.Register(ctx, ports.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
		Address:   req.Address,
		Role:      domain.Role(req.Role),
		StoreName: req.StoreName,
	})
	if err != nil {
		// a concurrent registration can still win the race past Exists
		if err == domain.ErrUserExists {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "Email already registered"})
		}
		if err == domain.ErrInvalidCredentials {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid registration details"})
		}
		return err
	}

	token, err := h.authService.IssueSessionToken(user)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(user.Role)).Inc()

	return c.JSON(http.StatusOK, authResponse{
		Success: true,
		Message: "Registration successful",
		User:    user,
		Token:   token,
	})
}

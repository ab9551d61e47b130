package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/foodrescue/foodrescue-api/internal/core/domain"
	"github.com/foodrescue/foodrescue-api/internal/core/ports"
)

type stubAuthService struct {
	authenticateFn func(ctx context.Context, email, password string) (*domain.User, error)
	registerFn     func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	issueFn        func(user *domain.User) (string, error)
}

func (s *stubAuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	return s.authenticateFn(ctx, email, password)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) IssueSessionToken(user *domain.User) (string, error) {
	if s.issueFn != nil {
		return s.issueFn(user)
	}
	return "token-123", nil
}

type stubUserService struct {
	existsFn func(ctx context.Context, email string) (bool, error)
	listFn   func(ctx context.Context) ([]*domain.User, error)
	byIDFn   func(ctx context.Context, id int) (*domain.User, error)
}

func (s *stubUserService) ListAll(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) FindByID(ctx context.Context, id int) (*domain.User, error) {
	return s.byIDFn(ctx, id)
}

func (s *stubUserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) Exists(ctx context.Context, email string) (bool, error) {
	return s.existsFn(ctx, email)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	auth := &stubAuthService{
		authenticateFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			if email != "admin@admin.com" || password != "admin" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return &domain.User{ID: 3, Email: email, PasswordHash: "$2a$10$hash", Role: domain.RoleAdmin, Name: "Admin User", Active: true}, nil
		},
	}
	h := NewAuthHandler(auth, &stubUserService{}, nil, zerolog.Nop())

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login", `{"email":"admin@admin.com","password":"admin"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true || resp["message"] != "Login successful" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if resp["token"] != "token-123" {
		t.Fatalf("expected token in response")
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if _, present := user["password"]; present {
		t.Fatalf("password field leaked: %+v", user)
	}
	if strings.Contains(rec.Body.String(), "$2a$") {
		t.Fatalf("password hash leaked in body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_GenericRejection(t *testing.T) {
	auth := &stubAuthService{
		authenticateFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(auth, &stubUserService{}, nil, zerolog.Nop())

	// wrong password for a known account and an unknown account must
	// produce byte-identical rejections
	bodies := []string{
		`{"email":"admin@admin.com","password":"wrong"}`,
		`{"email":"nobody@test.com","password":"wrong"}`,
	}
	var responses []string
	for _, body := range bodies {
		c, rec := newTestContext(t, http.MethodPost, "/api/auth/login", body)
		if err := h.Login(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		responses = append(responses, rec.Body.String())
	}
	if responses[0] != responses[1] {
		t.Fatalf("rejections must be indistinguishable: %q vs %q", responses[0], responses[1])
	}
}

func TestAuthHandler_Login_ValidationError(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &stubUserService{}, nil, zerolog.Nop())

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login", `{"email":"not-an-email","password":"pw"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

type stubThrottle struct {
	blocked    bool
	blockedErr error
	failures   []string
	resets     []string
}

func (s *stubThrottle) Blocked(_ context.Context, email string) (bool, error) {
	return s.blocked, s.blockedErr
}

func (s *stubThrottle) RecordFailure(_ context.Context, email string) error {
	s.failures = append(s.failures, email)
	return nil
}

func (s *stubThrottle) Reset(_ context.Context, email string) error {
	s.resets = append(s.resets, email)
	return nil
}

func TestAuthHandler_Login_Throttled(t *testing.T) {
	auth := &stubAuthService{
		authenticateFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			t.Fatalf("credentials must not be checked when throttled")
			return nil, nil
		},
	}
	throttle := &stubThrottle{blocked: true}
	h := NewAuthHandler(auth, &stubUserService{}, throttle, zerolog.Nop())

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login", `{"email":"admin@admin.com","password":"admin"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_ThrottleErrorFailsOpen(t *testing.T) {
	auth := &stubAuthService{
		authenticateFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			return &domain.User{ID: 3, Email: email, Role: domain.RoleAdmin, Active: true}, nil
		},
	}
	// a degraded throttle backend must not block authentication
	throttle := &stubThrottle{blockedErr: errors.New("redis: connection refused")}
	h := NewAuthHandler(auth, &stubUserService{}, throttle, zerolog.Nop())

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login", `{"email":"admin@admin.com","password":"admin"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 when throttle is unavailable, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_RecordsFailure(t *testing.T) {
	auth := &stubAuthService{
		authenticateFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	throttle := &stubThrottle{}
	h := NewAuthHandler(auth, &stubUserService{}, throttle, zerolog.Nop())

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login", `{"email":"admin@admin.com","password":"wrong"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if len(throttle.failures) != 1 || throttle.failures[0] != "admin@admin.com" {
		t.Fatalf("expected one recorded failure, got %+v", throttle.failures)
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	auth := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Role != domain.RoleSeller || in.StoreName != "Corner Shop" {
				t.Fatalf("unexpected input: %+v", in)
			}
			verified := false
			return &domain.User{
				ID: 4, Email: in.Email, PasswordHash: "$2a$10$hash", Role: in.Role,
				Name: in.Name, Phone: in.Phone, Address: in.Address,
				StoreName: in.StoreName, Verified: &verified, Active: true,
			}, nil
		},
	}
	users := &stubUserService{
		existsFn: func(ctx context.Context, email string) (bool, error) { return false, nil },
	}
	h := NewAuthHandler(auth, users, nil, zerolog.Nop())

	body := `{"name":"Jane","email":"new@test.com","password":"pw","phone":"+1","address":"1 Road","role":"seller","storeName":"Corner Shop"}`
	c, rec := newTestContext(t, http.MethodPost, "/api/auth/register", body)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true || resp["token"] == "" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	user := resp["user"].(map[string]any)
	if user["id"] != float64(4) {
		t.Fatalf("expected id 4, got %v", user["id"])
	}
	if user["verified"] != false || user["storeName"] != "Corner Shop" {
		t.Fatalf("seller fields missing: %+v", user)
	}
	if _, present := user["password"]; present {
		t.Fatalf("password field leaked: %+v", user)
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	auth := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("register must not be called when the email is taken")
			return nil, nil
		},
	}
	users := &stubUserService{
		existsFn: func(ctx context.Context, email string) (bool, error) { return true, nil },
	}
	h := NewAuthHandler(auth, users, nil, zerolog.Nop())

	body := `{"name":"X","email":"new@test.com","password":"pw","phone":"+1","address":"1 Road"}`
	c, rec := newTestContext(t, http.MethodPost, "/api/auth/register", body)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Email already registered") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_LostRace(t *testing.T) {
	auth := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	users := &stubUserService{
		existsFn: func(ctx context.Context, email string) (bool, error) { return false, nil },
	}
	h := NewAuthHandler(auth, users, nil, zerolog.Nop())

	body := `{"name":"X","email":"new@test.com","password":"pw","phone":"+1","address":"1 Road"}`
	c, rec := newTestContext(t, http.MethodPost, "/api/auth/register", body)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &stubUserService{}, nil, zerolog.Nop())

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/register", `{"email":"new@test.com"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

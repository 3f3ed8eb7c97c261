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

	"github.com/studytrack/task-system/internal/api/middleware"
	"github.com/studytrack/task-system/internal/core/domain"
	"github.com/studytrack/task-system/internal/core/ports"
)

// stubAuthService lets each test script the service outcome.
type stubAuthService struct {
	token string
	user  *domain.User
	users []domain.User
	err   error
}

func (s *stubAuthService) Register(_ context.Context, _, _, _ string) (string, *domain.User, error) {
	return s.token, s.user, s.err
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (string, *domain.User, error) {
	return s.token, s.user, s.err
}

func (s *stubAuthService) ListUsers(_ context.Context) ([]domain.User, error) {
	return s.users, s.err
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func authedContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := newJSONContext(method, target, body)
	middleware.SetClaims(c, &ports.Claims{UserID: "user_1", Username: "alice", Role: domain.RoleUser})
	return c, rec
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

func TestUserHandler_Register_Success(t *testing.T) {
	svc := &stubAuthService{
		token: "tok123",
		user:  &domain.User{ID: "user_1", Username: "alice", Email: "alice@example.com", Role: domain.RoleUser},
	}
	h := NewUserHandler(svc)

	c, rec := newJSONContext(http.MethodPost, "/users/register",
		`{"username":"alice","email":"alice@example.com","password":"secret1"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp struct {
		Token string      `json:"token"`
		User  domain.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "tok123" || resp.User.Username != "alice" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password material leaked in response: %s", rec.Body.String())
	}
}

func TestUserHandler_Register_ValidationErrors(t *testing.T) {
	h := NewUserHandler(&stubAuthService{})

	cases := []struct {
		name string
		body string
	}{
		{"missing username", `{"email":"a@example.com","password":"secret1"}`},
		{"bad email", `{"username":"a","email":"not-an-email","password":"secret1"}`},
		{"short password", `{"username":"a","email":"a@example.com","password":"ab"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newJSONContext(http.MethodPost, "/users/register", tc.body)
			err := h.Register(c)
			if code := httpCode(t, err); code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", code)
			}
		})
	}
}

func TestUserHandler_Register_Duplicate(t *testing.T) {
	h := NewUserHandler(&stubAuthService{err: domain.ErrUserExists})

	c, _ := newJSONContext(http.MethodPost, "/users/register",
		`{"username":"alice","email":"alice@example.com","password":"secret1"}`)

	err := h.Register(c)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists passthrough, got %v", err)
	}
}

func TestUserHandler_Login_Success(t *testing.T) {
	svc := &stubAuthService{
		token: "tok456",
		user:  &domain.User{ID: "user_1", Username: "alice"},
	}
	h := NewUserHandler(svc)

	c, rec := newJSONContext(http.MethodPost, "/users/login",
		`{"email":"alice@example.com","password":"secret1"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "tok456") {
		t.Fatalf("token missing from response: %s", rec.Body.String())
	}
}

func TestUserHandler_Login_BadCredentials(t *testing.T) {
	h := NewUserHandler(&stubAuthService{err: domain.ErrInvalidCredentials})

	c, _ := newJSONContext(http.MethodPost, "/users/login",
		`{"email":"alice@example.com","password":"wrong1"}`)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials passthrough, got %v", err)
	}
}

func TestUserHandler_List(t *testing.T) {
	svc := &stubAuthService{users: []domain.User{{ID: "u1", Username: "alice"}, {ID: "u2", Username: "bob"}}}
	h := NewUserHandler(svc)

	c, rec := authedContext(http.MethodGet, "/users", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var users []domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}

func TestUserHandler_List_NoClaims(t *testing.T) {
	h := NewUserHandler(&stubAuthService{})

	c, _ := newJSONContext(http.MethodGet, "/users", "")
	err := h.List(c)
	if code := httpCode(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studytrack/task-system/internal/core/domain"
	"github.com/studytrack/task-system/internal/core/service"
)

func signedToken(t *testing.T) string {
	t.Helper()
	token, err := service.NewTokenService("secret", time.Hour).Issue(&domain.User{
		ID: "u1", Username: "alice", Email: "alice@example.com", Role: domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func runAuth(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(service.NewTokenService("secret", time.Hour))
	handler := mw(func(c echo.Context) error {
		called = true
		claims, ok := ClaimsFrom(c)
		if !ok {
			t.Fatalf("claims not set")
		}
		if claims.UserID != "u1" || claims.Username != "alice" {
			t.Fatalf("unexpected claims: %+v", claims)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestAuth_BearerHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signedToken(t))

	rec, called := runAuth(t, req)
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_QueryParam(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?token="+signedToken(t), nil)

	_, called := runAuth(t, req)
	if !called {
		t.Fatalf("next not called for query token")
	}
}

func TestAuth_BodyField(t *testing.T) {
	body := `{"token":"` + signedToken(t) + `","title":"x"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(service.NewTokenService("secret", time.Hour))
	handler := mw(func(c echo.Context) error {
		// The body must still be readable after the middleware peeked at it.
		var payload struct {
			Title string `json:"title"`
		}
		if err := c.Bind(&payload); err != nil {
			t.Fatalf("bind after token peek: %v", err)
		}
		if payload.Title != "x" {
			t.Fatalf("body corrupted: %+v", payload)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_HeaderTakesPrecedence(t *testing.T) {
	// Valid token in the header, garbage in the query: header must win.
	req := httptest.NewRequest(http.MethodGet, "/?token=garbage", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signedToken(t))

	_, called := runAuth(t, req)
	if !called {
		t.Fatalf("header token not preferred over query")
	}
}

func TestAuth_MissingToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(service.NewTokenService("secret", time.Hour))
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "must authenticate") {
		t.Fatalf("expected missing-token message, got %s", rec.Body.String())
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(service.NewTokenService("secret", time.Hour))
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid token") {
		t.Fatalf("expected invalid-token message, got %s", rec.Body.String())
	}
}

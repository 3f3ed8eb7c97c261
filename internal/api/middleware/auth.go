package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/studytrack/task-system/internal/api/metrics"
	"github.com/studytrack/task-system/internal/core/ports"
)

// claimsKey is the single echo context key carrying the verified identity.
const claimsKey = "auth_claims"

// TokenVerifier verifies a candidate token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*ports.Claims, error)
}

// Auth extracts a token from the Authorization header, the "token" query
// parameter, or a JSON body field "token" — in that precedence order —
// verifies it, and injects the claims into the context. A missing token
// and an invalid one are rejected with distinct messages, both 401.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "must authenticate")
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the verified claims injected by Auth, if any.
func ClaimsFrom(c echo.Context) (*ports.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*ports.Claims)
	return claims, ok
}

// SetClaims injects claims into the context the way Auth does. Exposed for
// handler tests that bypass the middleware.
func SetClaims(c echo.Context, claims *ports.Claims) {
	c.Set(claimsKey, claims)
}

func extractToken(c echo.Context) string {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		// "Bearer <token>" or a bare token; take the last field.
		fields := strings.Fields(header)
		return fields[len(fields)-1]
	}
	if token := c.QueryParam("token"); token != "" {
		return token
	}
	return bodyToken(c)
}

// bodyToken peeks at a JSON request body for a "token" field, restoring
// the body so the handler can still bind it.
func bodyToken(c echo.Context) string {
	req := c.Request()
	if req.Body == nil || !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return ""
	}

	body, err := io.ReadAll(req.Body)
	req.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Token
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studytrack/task-system/internal/api/middleware"
	"github.com/studytrack/task-system/internal/core/ports"
)

// ctxClaims extracts the claims injected by the Auth middleware and
// fast-fails before any service call: a protected handler reached without
// claims means the middleware did not run, which is a wiring bug surfaced
// as 401 rather than a panic downstream.
func ctxClaims(c echo.Context) (*ports.Claims, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok || claims.UserID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "must authenticate")
	}
	return claims, nil
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-catalog/internal/auth"
)

// Context keys set by JWTAuth for downstream handlers.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
)

// JWTAuth returns an Echo middleware that validates a Bearer token via
// the token manager and stores the authenticated identity in the
// request context. Protected routes read it back through
// handler-side helpers; missing or invalid tokens end the request with
// 401 before any handler runs.
func JWTAuth(tm *auth.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

			id, err := tm.Verify(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set(CtxUserID, id.ID)
			c.Set(CtxUsername, id.Username)
			return next(c)
		}
	}
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/oknkahraman/appustabul/internal/constants"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "user_role"
)

// TokenParser validates a bearer token and yields the actor behind it.
type TokenParser interface {
	ParseToken(token string) (string, constants.UserRole, error)
}

// RequireAuth rejects requests without a valid bearer token and stores
// the actor id and role on the request context.
func RequireAuth(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			userID, role, err := parser.ParseToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(ContextUserID, userID)
			c.Set(ContextRole, role)
			return next(c)
		}
	}
}

// RequireRole gates a route to one role; it must run after RequireAuth.
func RequireRole(role constants.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actual, ok := c.Get(ContextRole).(constants.UserRole)
			if !ok || actual != role {
				return echo.NewHTTPError(http.StatusForbidden, "role not allowed for this action")
			}
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return parts[1]
}

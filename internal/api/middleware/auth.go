package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mongotech/users-api/internal/core/ports"
)

// userIDKey is where the bearer middleware stores the token subject.
const userIDKey = "user_id"

// Auth requires a valid bearer token and injects its subject (the user id)
// into the request context.
func Auth(issuer ports.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			subject, err := issuer.Verify(parts[1])
			if err != nil {
				return err
			}

			c.Set(userIDKey, subject)
			return next(c)
		}
	}
}

// UserID returns the token subject injected by Auth.
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mongotech/users-api/internal/api/metrics"
	"github.com/mongotech/users-api/internal/core/domain"
	"github.com/mongotech/users-api/internal/core/ports"
)

// authUserKey is where the basic-auth middleware stores the authenticated
// user on the request context.
const authUserKey = "auth_user"

// BasicAuth inspects every request for a Basic authorization header. When
// present, the credentials are decoded and verified and the resulting user
// is attached to the request context; any decode or credential failure
// aborts the request with 401 before it reaches the route. Requests
// without an Authorization header, or with a non-Basic scheme, pass
// through unauthenticated.
func BasicAuth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "basic") {
				return next(c)
			}

			user, err := auth.AuthenticateBasic(c.Request().Context(), parts[1])
			if err != nil {
				metrics.BasicAuthRejectionsTotal.Inc()
				return err
			}

			c.Set(authUserKey, user)
			return next(c)
		}
	}
}

// AuthUser returns the user attached by BasicAuth, or nil when the request
// carried no basic credentials.
func AuthUser(c echo.Context) *domain.User {
	user, _ := c.Get(authUserKey).(*domain.User)
	return user
}

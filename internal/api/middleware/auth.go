package middleware

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/portfolio-cms/portfolio-api/internal/core/domain"
	"github.com/portfolio-cms/portfolio-api/internal/core/ports"
)

// UserContextKey is where the resolved *domain.User is stored.
const UserContextKey = "user"

// Authenticate requires a bearer token and resolves it to the live user.
func Authenticate(resolver ports.IdentityResolver) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:     UserContextKey,
		ParseTokenFunc: parseWith(resolver),
		ErrorHandler: func(c echo.Context, err error) error {
			return unauthorized(c)
		},
	})
}

// OptionalAuthenticate resolves a bearer token when one is sent and lets
// anonymous requests through. A token that is present but invalid is
// still rejected.
func OptionalAuthenticate(resolver ports.IdentityResolver) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:             UserContextKey,
		ParseTokenFunc:         parseWith(resolver),
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			var missing *echojwt.TokenExtractionError
			if errors.As(err, &missing) {
				return nil
			}
			return unauthorized(c)
		},
	})
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(UserContextKey).(*domain.User)
	return user
}

func parseWith(resolver ports.IdentityResolver) func(echo.Context, string) (interface{}, error) {
	return func(c echo.Context, token string) (interface{}, error) {
		return resolver.Resolve(c.Request().Context(), token)
	}
}

func unauthorized(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
}

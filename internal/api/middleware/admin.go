package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/portfolio-cms/portfolio-api/internal/core/service"
)

// RequireAdmin rejects callers without the admin capability. It must run
// after Authenticate.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := service.RequireAdmin(CurrentUser(c)); err != nil {
				return err
			}
			return next(c)
		}
	}
}

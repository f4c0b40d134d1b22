package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/portfolio-cms/portfolio-api/internal/api/middleware"
	"github.com/portfolio-cms/portfolio-api/internal/core/domain"
)

// envelope is the success body shared by every JSON endpoint.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respond(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, envelope{Success: true, Message: message, Data: data})
}

// respondList answers 204 when there is nothing to return.
func respondList[T any](c echo.Context, message string, items []T) error {
	if len(items) == 0 {
		return c.NoContent(http.StatusNoContent)
	}
	return respond(c, http.StatusOK, message, items)
}

// ctxUser returns the authenticated caller. Presence proves the
// Authenticate middleware ran.
func ctxUser(c echo.Context) (*domain.User, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}

// bindRequest binds and validates req. Malformed bodies are 400, failed
// validation is 422.
func bindRequest(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return domain.NewError(domain.ErrInvalid, err.Error())
	}
	return nil
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewError(domain.ErrInvalid, "id must be a positive integer")
	}
	return id, nil
}

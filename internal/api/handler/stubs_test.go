package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/portfolio-cms/portfolio-api/internal/api/middleware"
	"github.com/portfolio-cms/portfolio-api/internal/core/domain"
)

type stubAuthService struct {
	loginFn  func(ctx context.Context, username, password string) (string, *domain.User, error)
	logoutFn func(ctx context.Context, token string) error
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

type stubContentService[T any] struct {
	createFn  func(ctx context.Context, caller *domain.User, item *T) (*T, error)
	listFn    func(ctx context.Context) ([]T, error)
	updateFn  func(ctx context.Context, id int64, editor string, apply func(item *T)) (*T, error)
	approveFn func(ctx context.Context, id int64, approver string) (*T, error)
	deleteFn  func(ctx context.Context, caller *domain.User, id int64) error
}

func (s *stubContentService[T]) Create(ctx context.Context, caller *domain.User, item *T) (*T, error) {
	return s.createFn(ctx, caller, item)
}

func (s *stubContentService[T]) Get(context.Context, int64) (*T, error) {
	panic("not used")
}

func (s *stubContentService[T]) ListPublished(ctx context.Context) ([]T, error) {
	return s.listFn(ctx)
}

func (s *stubContentService[T]) ListAll(ctx context.Context, _ *domain.User) ([]T, error) {
	return s.listFn(ctx)
}

func (s *stubContentService[T]) Update(ctx context.Context, id int64, editor string, apply func(item *T)) (*T, error) {
	return s.updateFn(ctx, id, editor, apply)
}

func (s *stubContentService[T]) Approve(ctx context.Context, id int64, approver string) (*T, error) {
	return s.approveFn(ctx, id, approver)
}

func (s *stubContentService[T]) Delete(ctx context.Context, caller *domain.User, id int64) error {
	return s.deleteFn(ctx, caller, id)
}

// newContext builds an echo context with the validator installed. A non-nil
// user is stored the way the Authenticate middleware stores it.
func newContext(method, target, body string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.UserContextKey, user)
	}
	return c, rec
}

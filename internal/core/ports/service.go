package ports

import (
	"context"

	"github.com/portfolio-cms/portfolio-api/internal/core/domain"
)

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil only when password matches hash.
	Compare(hash, password string) error
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Logout(ctx context.Context, token string) error
}

// IdentityResolver turns a bearer token into the live user record.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

// RegisterInput carries the fields accepted when creating an account.
type RegisterInput struct {
	Username string
	Password string
	IsAdmin  bool
}

type UserService interface {
	// Register creates an account. caller may be nil for anonymous sign-up.
	Register(ctx context.Context, caller *domain.User, in RegisterInput) (*domain.User, error)
	Get(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, caller *domain.User) ([]domain.User, error)
	Delete(ctx context.Context, caller *domain.User, username string) error
}

// ContentService drives the draft/published workflow for one content kind.
type ContentService[T any] interface {
	Create(ctx context.Context, caller *domain.User, item *T) (*T, error)
	Get(ctx context.Context, id int64) (*T, error)
	ListPublished(ctx context.Context) ([]T, error)
	ListAll(ctx context.Context, caller *domain.User) ([]T, error)
	// Update applies a partial edit on behalf of editor, who is named in
	// the request body rather than taken from the token.
	Update(ctx context.Context, id int64, editor string, apply func(item *T)) (*T, error)
	Approve(ctx context.Context, id int64, approver string) (*T, error)
	Delete(ctx context.Context, caller *domain.User, id int64) error
}

type CategoryService interface {
	Create(ctx context.Context, caller *domain.User, name string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Delete(ctx context.Context, caller *domain.User, id int64) error
}

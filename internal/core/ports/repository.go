package ports

import (
	"context"
	"time"

	"github.com/portfolio-cms/portfolio-api/internal/core/domain"
)

// UserRepository is the credential store.
type UserRepository interface {
	// Create fails with domain.ErrUserExists on a duplicate username.
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, username string) error
}

// ContentRepository persists one approvable content kind.
type ContentRepository[T any] interface {
	Create(ctx context.Context, item *T) error
	FindByID(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context, publishedOnly bool) ([]T, error)
	// Update loads the item under a write lock, applies fn and persists the
	// result atomically. Nothing is written when fn returns an error. The
	// context handed to fn is bound to the same unit of work; repository
	// calls made with it must not wait on a second connection.
	Update(ctx context.Context, id int64, fn func(ctx context.Context, item *T) error) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// CategoryRepository stores project categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	List(ctx context.Context) ([]domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

// TokenRevocations remembers logged-out token IDs until they expire.
type TokenRevocations interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

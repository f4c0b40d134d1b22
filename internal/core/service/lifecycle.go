package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/portfolio-cms/portfolio-api/internal/core/domain"
	"github.com/portfolio-cms/portfolio-api/internal/core/ports"
)

// Lifecycle runs the draft/published workflow for one content kind. T is
// the stored struct (domain.Service, domain.Project) and P its pointer.
type Lifecycle[T any, P interface {
	*T
	domain.Content
}] struct {
	kind   string
	items  ports.ContentRepository[T]
	users  ports.UserRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewLifecycle[T any, P interface {
	*T
	domain.Content
}](kind string, items ports.ContentRepository[T], users ports.UserRepository, logger zerolog.Logger) *Lifecycle[T, P] {
	return &Lifecycle[T, P]{
		kind:   kind,
		items:  items,
		users:  users,
		logger: logger.With().Str("kind", kind).Logger(),
		now:    time.Now,
	}
}

// WithClock replaces the approval timestamp source.
func (l *Lifecycle[T, P]) WithClock(now func() time.Time) *Lifecycle[T, P] {
	l.now = now
	return l
}

// Create stores item as a draft owned by caller. Client-supplied workflow
// fields are overwritten.
func (l *Lifecycle[T, P]) Create(ctx context.Context, caller *domain.User, item *T) (*T, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}
	P(item).Workflow().Draft(caller.Username)

	if err := l.items.Create(ctx, item); err != nil {
		return nil, err
	}

	l.logger.Info().Int64("id", P(item).ContentID()).Str("created_by", caller.Username).Msg("draft created")
	return item, nil
}

func (l *Lifecycle[T, P]) Get(ctx context.Context, id int64) (*T, error) {
	return l.items.FindByID(ctx, id)
}

func (l *Lifecycle[T, P]) ListPublished(ctx context.Context) ([]T, error) {
	return l.items.List(ctx, true)
}

func (l *Lifecycle[T, P]) ListAll(ctx context.Context, caller *domain.User) ([]T, error) {
	if err := RequireAdmin(caller); err != nil {
		return nil, err
	}
	return l.items.List(ctx, false)
}

// Update applies a partial edit and reverts the item to draft. When the
// editor is an admin the edit is approved in the same transaction; if that
// approval fails nothing is persisted and the error is returned.
func (l *Lifecycle[T, P]) Update(ctx context.Context, id int64, editor string, apply func(item *T)) (*T, error) {
	user, err := l.users.FindByUsername(ctx, editor)
	if err != nil {
		return nil, err
	}

	updated, err := l.items.Update(ctx, id, func(txCtx context.Context, item *T) error {
		apply(item)
		wf := P(item).Workflow()
		wf.Revise(user.Username)
		if !user.IsAdmin {
			return nil
		}

		approver, err := l.users.FindByUsername(txCtx, user.Username)
		if err != nil {
			return fmt.Errorf("auto-approve %s %d: %w", l.kind, id, err)
		}
		return wf.Approve(approver, l.now())
	})
	if err != nil {
		return nil, err
	}

	l.logger.Info().
		Int64("id", id).
		Str("editor", user.Username).
		Str("state", string(P(updated).Workflow().State())).
		Msg("content updated")
	return updated, nil
}

// Approve publishes the item. The approver is looked up by name and must
// currently be an admin.
func (l *Lifecycle[T, P]) Approve(ctx context.Context, id int64, approver string) (*T, error) {
	approved, err := l.items.Update(ctx, id, func(txCtx context.Context, item *T) error {
		user, err := l.users.FindByUsername(txCtx, approver)
		if err != nil {
			return err
		}
		return P(item).Workflow().Approve(user, l.now())
	})
	if err != nil {
		return nil, err
	}

	l.logger.Info().Int64("id", id).Str("approved_by", approver).Msg("content approved")
	return approved, nil
}

func (l *Lifecycle[T, P]) Delete(ctx context.Context, caller *domain.User, id int64) error {
	if err := RequireAdmin(caller); err != nil {
		return err
	}
	if err := l.items.Delete(ctx, id); err != nil {
		return err
	}

	l.logger.Info().Int64("id", id).Str("deleted_by", caller.Username).Msg("content deleted")
	return nil
}

package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/portfolio-cms/portfolio-api/internal/core/domain"
	"github.com/portfolio-cms/portfolio-api/internal/core/ports"
)

// ContentRepository stores one content kind. pk is the primary key column.
type ContentRepository[T any] struct {
	db       *gorm.DB
	pk       string
	notFound error
}

func NewContentRepository[T any](db *gorm.DB, pk string, notFound error) *ContentRepository[T] {
	return &ContentRepository[T]{db: db, pk: pk, notFound: notFound}
}

func NewServiceRepository(db *gorm.DB) *ContentRepository[domain.Service] {
	return NewContentRepository[domain.Service](db, "id", domain.ErrServiceNotFound)
}

func NewProjectRepository(db *gorm.DB) *ContentRepository[domain.Project] {
	return NewContentRepository[domain.Project](db, "project_id", domain.ErrProjectNotFound)
}

func (r *ContentRepository[T]) Create(ctx context.Context, item *T) error {
	if err := conn(ctx, r.db).Create(item).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrContentExists
		}
		return fmt.Errorf("insert content: %w", err)
	}
	return nil
}

func (r *ContentRepository[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	var item T
	if err := conn(ctx, r.db).Where(r.pk+" = ?", id).First(&item).Error; err != nil {
		return nil, r.mapFindErr(err)
	}
	return &item, nil
}

func (r *ContentRepository[T]) List(ctx context.Context, publishedOnly bool) ([]T, error) {
	q := conn(ctx, r.db).Order(r.pk)
	if publishedOnly {
		q = q.Where("is_published = ?", true)
	}

	var items []T
	if err := q.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	return items, nil
}

// Update locks the row with SELECT ... FOR UPDATE for the duration of fn.
// fn receives a context carrying the transaction, so lookups it makes
// through any sqlstore repository run on the locked connection.
func (r *ContentRepository[T]) Update(ctx context.Context, id int64, fn func(ctx context.Context, item *T) error) (*T, error) {
	var item T
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where(r.pk+" = ?", id).First(&item).Error; err != nil {
			return r.mapFindErr(err)
		}
		if err := fn(withTx(ctx, tx), &item); err != nil {
			return err
		}
		if err := tx.Save(&item).Error; err != nil {
			return fmt.Errorf("save content: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ContentRepository[T]) Delete(ctx context.Context, id int64) error {
	res := conn(ctx, r.db).Where(r.pk+" = ?", id).Delete(new(T))
	if res.Error != nil {
		return fmt.Errorf("delete content: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return r.notFound
	}
	return nil
}

func (r *ContentRepository[T]) mapFindErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.notFound
	}
	return fmt.Errorf("find content: %w", err)
}

var (
	_ ports.ContentRepository[domain.Service] = (*ContentRepository[domain.Service])(nil)
	_ ports.ContentRepository[domain.Project] = (*ContentRepository[domain.Project])(nil)
)

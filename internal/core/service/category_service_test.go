package service

import (
	"context"
	"errors"
	"testing"

	"github.com/portfolio-cms/portfolio-api/internal/core/domain"
	"github.com/portfolio-cms/portfolio-api/internal/infrastructure/db/memory"
)

func TestCategoryService(t *testing.T) {
	svc := NewCategoryService(memory.NewStore().Categories(), discardLogger)
	admin := bob
	caller := alice

	if _, err := svc.Create(context.Background(), &caller, "Web"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Create(context.Background(), &admin, "  "); !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}

	web, err := svc.Create(context.Background(), &admin, "Web")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Create(context.Background(), &admin, "Web"); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	list, _ := svc.List(context.Background())
	if len(list) != 1 || list[0].Name != "Web" {
		t.Fatalf("unexpected categories: %+v", list)
	}

	if err := svc.Delete(context.Background(), &admin, web.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(context.Background(), &admin, web.ID); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

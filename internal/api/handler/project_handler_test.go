package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/portfolio-cms/portfolio-api/internal/core/domain"
)

func TestProjectHandler_Create_RequiresCategory(t *testing.T) {
	stub := &stubContentService[domain.Project]{
		createFn: func(ctx context.Context, caller *domain.User, item *domain.Project) (*domain.Project, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewProjectHandler(stub)

	c, _ := newContext(http.MethodPost, "/admin/projects", `{"project_image":"p.png"}`, admin)
	err := handler.Create(c)

	if !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestProjectHandler_Update_ChangesCategory(t *testing.T) {
	stub := &stubContentService[domain.Project]{
		updateFn: func(ctx context.Context, id int64, editor string, apply func(*domain.Project)) (*domain.Project, error) {
			item := &domain.Project{ID: id, ProjectImage: "p.png", CategoryID: 1}
			apply(item)
			if item.CategoryID != 4 || item.ProjectImage != "p.png" {
				t.Fatalf("unexpected partial update: %+v", item)
			}
			return item, nil
		},
	}
	handler := NewProjectHandler(stub)

	c, rec := newContext(http.MethodPatch, "/admin/projects/2", `{"category_id":4,"last_modified_by":"bob"}`, admin)
	c.SetParamNames("id")
	c.SetParamValues("2")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

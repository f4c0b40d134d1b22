package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/portfolio-cms/portfolio-api/internal/api/metrics"
	"github.com/portfolio-cms/portfolio-api/internal/core/domain"
	"github.com/portfolio-cms/portfolio-api/internal/core/ports"
)

const kindProject = "project"

// ProjectHandler mirrors ServiceHandler for portfolio projects.
type ProjectHandler struct {
	projects ports.ContentService[domain.Project]
}

func NewProjectHandler(projects ports.ContentService[domain.Project]) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

type createProjectRequest struct {
	ProjectImage string `json:"project_image" validate:"required,max=512"`
	CategoryID   int64  `json:"category_id" validate:"gt=0"`
}

type updateProjectRequest struct {
	ProjectImage   *string `json:"project_image" validate:"omitempty,max=512"`
	CategoryID     *int64  `json:"category_id" validate:"omitempty,gt=0"`
	LastModifiedBy string  `json:"last_modified_by" validate:"required"`
}

// ListPublished returns the projects visible on the public site.
//
// @Summary      List published projects
// @Tags         projects
// @Produce      json
// @Success      200  {object}  envelope{data=[]domain.Project}
// @Success      204
// @Router       /projects [get]
func (h *ProjectHandler) ListPublished(c echo.Context) error {
	items, err := h.projects.ListPublished(c.Request().Context())
	if err != nil {
		return err
	}
	return respondList(c, "All published projects returned successfully", items)
}

// ListAll returns drafts and published projects.
//
// @Summary      List all projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=[]domain.Project}
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /admin/projects [get]
func (h *ProjectHandler) ListAll(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}
	items, err := h.projects.ListAll(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return respondList(c, "All projects returned successfully", items)
}

// Create stores a new project as a draft.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project"
// @Success      201   {object}  envelope{data=domain.Project}
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /admin/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}
	var req createProjectRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	created, err := h.projects.Create(c.Request().Context(), caller, &domain.Project{
		ProjectImage: req.ProjectImage,
		CategoryID:   req.CategoryID,
	})
	if err != nil {
		return err
	}

	metrics.ObserveTransition(kindProject, metrics.TransitionCreate)
	return respond(c, http.StatusCreated, fmt.Sprintf("Project %d created successfully", created.ID), created)
}

// Update applies a partial edit with the same approval rules as services.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Project ID"
// @Param        body  body      updateProjectRequest  true  "Fields to change"
// @Success      200   {object}  envelope{data=domain.Project}
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /admin/projects/{id} [patch]
func (h *ProjectHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req updateProjectRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	updated, err := h.projects.Update(c.Request().Context(), id, req.LastModifiedBy, func(p *domain.Project) {
		if req.ProjectImage != nil {
			p.ProjectImage = *req.ProjectImage
		}
		if req.CategoryID != nil {
			p.CategoryID = *req.CategoryID
		}
	})
	if err != nil {
		return err
	}

	metrics.ObserveTransition(kindProject, metrics.TransitionRevise)
	msg := fmt.Sprintf("Project %d updated successfully", id)
	if updated.IsPublished {
		metrics.ObserveTransition(kindProject, metrics.TransitionApprove)
		msg = fmt.Sprintf("Project %d updated and approved successfully", id)
	}
	return respond(c, http.StatusOK, msg, updated)
}

// Approve publishes a project on behalf of an admin.
//
// @Summary      Approve a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Project ID"
// @Param        body  body      approveRequest  true  "Approver"
// @Success      200   {object}  envelope{data=domain.Project}
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /admin/projects/{id}/approve [patch]
func (h *ProjectHandler) Approve(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req approveRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	approved, err := h.projects.Approve(c.Request().Context(), id, req.ApprovedBy)
	if err != nil {
		return err
	}

	metrics.ObserveTransition(kindProject, metrics.TransitionApprove)
	return respond(c, http.StatusOK, fmt.Sprintf("Project %d approved successfully", id), approved)
}

// Delete removes a project.
//
// @Summary      Delete a project
// @Tags         projects
// @Security     BearerAuth
// @Param        id  path  int  true  "Project ID"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.projects.Delete(c.Request().Context(), caller, id); err != nil {
		return err
	}

	metrics.ObserveTransition(kindProject, metrics.TransitionDelete)
	return c.NoContent(http.StatusNoContent)
}

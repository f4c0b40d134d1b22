package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/portfolio-cms/portfolio-api/internal/api/metrics"
	"github.com/portfolio-cms/portfolio-api/internal/core/domain"
	"github.com/portfolio-cms/portfolio-api/internal/core/ports"
)

const kindService = "service"

// ServiceHandler exposes the service catalogue and its approval workflow.
type ServiceHandler struct {
	services ports.ContentService[domain.Service]
}

func NewServiceHandler(services ports.ContentService[domain.Service]) *ServiceHandler {
	return &ServiceHandler{services: services}
}

// createServiceRequest carries no id; the store assigns it.
type createServiceRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	Image       string `json:"image" validate:"max=512"`
}

// updateServiceRequest is a partial update. last_modified_by names the
// editor whose capability decides whether the edit is self-approved.
type updateServiceRequest struct {
	Title          *string `json:"title" validate:"omitempty,max=255"`
	Description    *string `json:"description"`
	Image          *string `json:"image" validate:"omitempty,max=512"`
	LastModifiedBy string  `json:"last_modified_by" validate:"required"`
}

type approveRequest struct {
	ApprovedBy string `json:"approved_by" validate:"required"`
}

// ListPublished returns the services visible on the public site.
//
// @Summary      List published services
// @Tags         services
// @Produce      json
// @Success      200  {object}  envelope{data=[]domain.Service}
// @Success      204
// @Router       /services [get]
func (h *ServiceHandler) ListPublished(c echo.Context) error {
	items, err := h.services.ListPublished(c.Request().Context())
	if err != nil {
		return err
	}
	return respondList(c, "All published services returned successfully", items)
}

// ListAll returns drafts and published services.
//
// @Summary      List all services
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=[]domain.Service}
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /admin/services [get]
func (h *ServiceHandler) ListAll(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}
	items, err := h.services.ListAll(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return respondList(c, "All services returned successfully", items)
}

// Create stores a new service as a draft.
//
// @Summary      Create a service
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createServiceRequest  true  "Service"
// @Success      201   {object}  envelope{data=domain.Service}
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /admin/services [post]
func (h *ServiceHandler) Create(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}
	var req createServiceRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	created, err := h.services.Create(c.Request().Context(), caller, &domain.Service{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		return err
	}

	metrics.ObserveTransition(kindService, metrics.TransitionCreate)
	return respond(c, http.StatusCreated, fmt.Sprintf("Service '%s' created successfully", created.Title), created)
}

// Update applies a partial edit. Edits by admins are approved in the same
// call; all other edits return the service to draft.
//
// @Summary      Update a service
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Service ID"
// @Param        body  body      updateServiceRequest  true  "Fields to change"
// @Success      200   {object}  envelope{data=domain.Service}
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /admin/services/{id} [patch]
func (h *ServiceHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req updateServiceRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	updated, err := h.services.Update(c.Request().Context(), id, req.LastModifiedBy, func(s *domain.Service) {
		if req.Title != nil {
			s.Title = *req.Title
		}
		if req.Description != nil {
			s.Description = *req.Description
		}
		if req.Image != nil {
			s.Image = *req.Image
		}
	})
	if err != nil {
		return err
	}

	metrics.ObserveTransition(kindService, metrics.TransitionRevise)
	msg := fmt.Sprintf("Service %d with name '%s' updated successfully", id, updated.Title)
	if updated.IsPublished {
		metrics.ObserveTransition(kindService, metrics.TransitionApprove)
		msg = fmt.Sprintf("Service %d with name '%s' updated and approved successfully", id, updated.Title)
	}
	return respond(c, http.StatusOK, msg, updated)
}

// Approve publishes a service on behalf of an admin.
//
// @Summary      Approve a service
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Service ID"
// @Param        body  body      approveRequest  true  "Approver"
// @Success      200   {object}  envelope{data=domain.Service}
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /admin/services/{id}/approve [patch]
func (h *ServiceHandler) Approve(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req approveRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	approved, err := h.services.Approve(c.Request().Context(), id, req.ApprovedBy)
	if err != nil {
		return err
	}

	metrics.ObserveTransition(kindService, metrics.TransitionApprove)
	return respond(c, http.StatusOK, fmt.Sprintf("Service %d with name '%s' approved successfully", id, approved.Title), approved)
}

// Delete removes a service.
//
// @Summary      Delete a service
// @Tags         services
// @Security     BearerAuth
// @Param        id  path  int  true  "Service ID"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/services/{id} [delete]
func (h *ServiceHandler) Delete(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.services.Delete(c.Request().Context(), caller, id); err != nil {
		return err
	}

	metrics.ObserveTransition(kindService, metrics.TransitionDelete)
	return c.NoContent(http.StatusNoContent)
}

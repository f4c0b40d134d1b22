package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/portfolio-cms/portfolio-api/internal/core/ports"
)

type CategoryHandler struct {
	categories ports.CategoryService
}

func NewCategoryHandler(categories ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

type createCategoryRequest struct {
	Name string `json:"category_name" validate:"required,max=128"`
}

// List returns every category.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {object}  envelope{data=[]domain.Category}
// @Success      204
// @Router       /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.categories.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respondList(c, "All categories returned successfully", categories)
}

// Create adds a category.
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCategoryRequest  true  "Category"
// @Success      201   {object}  envelope{data=domain.Category}
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /admin/categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}
	var req createCategoryRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	category, err := h.categories.Create(c.Request().Context(), caller, req.Name)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Category '"+category.Name+"' created successfully", category)
}

// Delete removes a category.
//
// @Summary      Delete a category
// @Tags         categories
// @Security     BearerAuth
// @Param        id  path  int  true  "Category ID"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.categories.Delete(c.Request().Context(), caller, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}


package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/product-catalog/internal/integrity"
	"github.com/iliyamo/product-catalog/internal/model"
	"github.com/iliyamo/product-catalog/internal/queue"
	"github.com/iliyamo/product-catalog/internal/repository"
	"github.com/iliyamo/product-catalog/internal/validate"
)

// CategoryStore is the persistence contract the category endpoints need.
type CategoryStore interface {
	Create(ctx context.Context, name, slug, description, imageURL string, parentID *uuid.UUID) (*model.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

// CategoryHandler implements the category CRUD endpoints.
type CategoryHandler struct {
	Categories CategoryStore
	Integrity  *integrity.Checker
	Events     EventSink
}

func NewCategoryHandler(store CategoryStore, checker *integrity.Checker, events EventSink) *CategoryHandler {
	return &CategoryHandler{Categories: store, Integrity: checker, Events: events}
}

// List handles GET /categories.
func (h *CategoryHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Categories.List(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return success(c, http.StatusOK, "categories fetched successfully", echo.Map{"categories": items})
}

// Get handles GET /categories/:id.
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := validate.ParseID(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id format")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	cat, err := h.Categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return fail(c, http.StatusNotFound, "category not found")
		}
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return success(c, http.StatusOK, "category fetched successfully", echo.Map{"category": cat})
}

// Create handles POST /categories. A supplied parentId must reference an
// existing category before the write is accepted.
func (h *CategoryHandler) Create(c echo.Context) error {
	var in validate.CategoryInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if errs := in.ValidateCreate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	var parentID *uuid.UUID
	if parent, ok := in.Parent(); ok {
		// uuid.Nil as self: a category that does not exist yet cannot be
		// part of a cycle.
		if err := h.Integrity.CheckParent(ctx, uuid.Nil, parent); err != nil {
			return parentCheckFailed(c, err)
		}
		parentID = &parent
	}

	cat, err := h.Categories.Create(ctx, *in.Name, *in.Slug, *in.Description, *in.ImageURL, parentID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not create category")
	}
	emit(c, h.Events, queue.EntityCategory, queue.ActionCreated, cat.ID)
	return success(c, http.StatusCreated, "category created successfully", echo.Map{"category": cat})
}

// Update handles PUT /categories/:id. Check order is part of the API
// contract: malformed path id (400), then target existence (404), then
// body validation (400), then relationship checks, then the write.
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := validate.ParseID(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id format")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ok, err := h.Categories.ExistsByID(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	if !ok {
		return fail(c, http.StatusNotFound, "category not found")
	}

	var in validate.CategoryInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if errs := in.ValidateUpdate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Slug != nil {
		fields["slug"] = *in.Slug
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.ImageURL != nil {
		fields["image_url"] = *in.ImageURL
	}
	if parent, okParent := in.Parent(); okParent {
		if err := h.Integrity.CheckParent(ctx, id, parent); err != nil {
			return parentCheckFailed(c, err)
		}
		fields["parent_id"] = parent
	}

	cat, err := h.Categories.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return fail(c, http.StatusNotFound, "category not found")
		}
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	emit(c, h.Events, queue.EntityCategory, queue.ActionUpdated, cat.ID)
	return success(c, http.StatusOK, "category updated successfully", echo.Map{"category": cat})
}

// Delete handles DELETE /categories/:id.
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := validate.ParseID(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id format")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return fail(c, http.StatusNotFound, "category not found")
		}
		return fail(c, http.StatusInternalServerError, "delete failed")
	}
	emit(c, h.Events, queue.EntityCategory, queue.ActionDeleted, id)
	return success(c, http.StatusOK, "category deleted successfully", nil)
}

// parentCheckFailed maps integrity errors from a parent assignment to the
// response envelope. Self-parenting and cycles are structural violations
// (400); a missing parent is a referential miss (404).
func parentCheckFailed(c echo.Context, err error) error {
	switch {
	case errors.Is(err, integrity.ErrSelfParent):
		return fail(c, http.StatusBadRequest, "category cannot be its own parent")
	case errors.Is(err, integrity.ErrCycle):
		return fail(c, http.StatusBadRequest, "parent assignment would create a cycle")
	case errors.Is(err, integrity.ErrParentNotFound):
		return fail(c, http.StatusNotFound, "parent category not found")
	default:
		return fail(c, http.StatusInternalServerError, "query failed")
	}
}

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

// ProductStore is the persistence contract the product endpoints need.
type ProductStore interface {
	Create(ctx context.Context, p *model.Product) (*model.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*model.ProductDetail, error)
	List(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

// ProductHandler implements the product CRUD endpoints. Mutations are
// admin-gated in the router.
type ProductHandler struct {
	Products  ProductStore
	Integrity *integrity.Checker
	Events    EventSink
}

func NewProductHandler(store ProductStore, checker *integrity.Checker, events EventSink) *ProductHandler {
	return &ProductHandler{Products: store, Integrity: checker, Events: events}
}

// List handles GET /products.
func (h *ProductHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Products.List(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return success(c, http.StatusOK, "products fetched successfully", echo.Map{"products": items})
}

// Get handles GET /products/:id. The single-product read includes the
// related category, images and variants.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := validate.ParseID(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id format")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	detail, err := h.Products.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return fail(c, http.StatusNotFound, "product not found")
		}
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return success(c, http.StatusOK, "product fetched successfully", echo.Map{"product": detail})
}

// Create handles POST /products. The referenced category must exist
// before the write is accepted; a validation failure always halts
// processing before the store is touched.
func (h *ProductHandler) Create(c echo.Context) error {
	var in validate.ProductInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if errs := in.ValidateCreate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	categoryID, _ := in.Category()
	if err := h.Integrity.CategoryExists(ctx, categoryID); err != nil {
		if errors.Is(err, integrity.ErrCategoryNotFound) {
			return fail(c, http.StatusNotFound, "category not found for the given categoryId")
		}
		return fail(c, http.StatusInternalServerError, "query failed")
	}

	p := &model.Product{
		Title:          *in.Title,
		Slug:           *in.Slug,
		Description:    *in.Description,
		BasePrice:      *in.BasePrice,
		OriginalPrice:  in.OriginalPrice,
		StockQuantity:  *in.StockQuantity,
		Specifications: in.Specifications,
		IsActive:       true, // active unless the payload says otherwise
		CategoryID:     categoryID,
	}
	if in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}

	created, err := h.Products.Create(ctx, p)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not create product")
	}
	emit(c, h.Events, queue.EntityProduct, queue.ActionCreated, created.ID)
	return success(c, http.StatusCreated, "product created successfully", echo.Map{"product": created})
}

// Update handles PUT /products/:id with the same check ordering as the
// category update: path id, target existence, body, foreign keys, write.
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := validate.ParseID(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id format")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ok, err := h.Products.ExistsByID(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	if !ok {
		return fail(c, http.StatusNotFound, "product not found")
	}

	var in validate.ProductInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if errs := in.ValidateUpdate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}

	fields := map[string]any{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Slug != nil {
		fields["slug"] = *in.Slug
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.BasePrice != nil {
		fields["base_price"] = *in.BasePrice
	}
	if in.OriginalPrice != nil {
		fields["original_price"] = *in.OriginalPrice
	}
	if in.StockQuantity != nil {
		fields["stock_quantity"] = *in.StockQuantity
	}
	if len(in.Specifications) > 0 {
		fields["specifications"] = []byte(in.Specifications)
	}
	if in.IsFeatured != nil {
		fields["is_featured"] = *in.IsFeatured
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}
	if categoryID, okCat := in.Category(); okCat {
		if err := h.Integrity.CategoryExists(ctx, categoryID); err != nil {
			if errors.Is(err, integrity.ErrCategoryNotFound) {
				return fail(c, http.StatusNotFound, "category not found for the given categoryId")
			}
			return fail(c, http.StatusInternalServerError, "query failed")
		}
		fields["category_id"] = categoryID
	}

	updated, err := h.Products.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return fail(c, http.StatusNotFound, "product not found")
		}
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	emit(c, h.Events, queue.EntityProduct, queue.ActionUpdated, updated.ID)
	return success(c, http.StatusOK, "product updated successfully", echo.Map{"product": updated})
}

// Delete handles DELETE /products/:id.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := validate.ParseID(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id format")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return fail(c, http.StatusNotFound, "product not found")
		}
		return fail(c, http.StatusInternalServerError, "delete failed")
	}
	emit(c, h.Events, queue.EntityProduct, queue.ActionDeleted, id)
	return success(c, http.StatusOK, "product deleted successfully", nil)
}

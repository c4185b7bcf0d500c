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

// VariantStore is the persistence contract the product-variant endpoints
// need.
type VariantStore interface {
	Create(ctx context.Context, v *model.ProductVariant) (*model.ProductVariant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.ProductVariant, error)
	List(ctx context.Context) ([]model.ProductVariant, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.ProductVariant, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// VariantHandler implements the product-variant CRUD endpoints.
type VariantHandler struct {
	Variants  VariantStore
	Integrity *integrity.Checker
	Events    EventSink
}

func NewVariantHandler(store VariantStore, checker *integrity.Checker, events EventSink) *VariantHandler {
	return &VariantHandler{Variants: store, Integrity: checker, Events: events}
}

// List handles GET /product-variants.
func (h *VariantHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Variants.List(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return success(c, http.StatusOK, "product variants fetched successfully", echo.Map{"variants": items})
}

// Get handles GET /product-variants/:id.
func (h *VariantHandler) Get(c echo.Context) error {
	id, err := validate.ParseID(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id format")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	v, err := h.Variants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVariantNotFound) {
			return fail(c, http.StatusNotFound, "variant not found")
		}
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return success(c, http.StatusOK, "product variant fetched successfully", echo.Map{"variant": v})
}

// Create handles POST /product-variants. The referenced product must
// exist before the write is accepted.
func (h *VariantHandler) Create(c echo.Context) error {
	var in validate.VariantInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if errs := in.ValidateCreate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	productID, _ := in.Product()
	if err := h.Integrity.ProductExists(ctx, productID); err != nil {
		if errors.Is(err, integrity.ErrProductNotFound) {
			return fail(c, http.StatusNotFound, "product not found for the given productId")
		}
		return fail(c, http.StatusInternalServerError, "query failed")
	}

	v := &model.ProductVariant{
		ProductID:    productID,
		VariantName:  *in.VariantName,
		VariantValue: *in.VariantValue,
		ImageURL:     in.ImageURL,
	}
	if in.PriceAdjustment != nil {
		v.PriceAdjustment = *in.PriceAdjustment
	}
	if in.StockQuantity != nil {
		v.StockQuantity = *in.StockQuantity
	}

	created, err := h.Variants.Create(ctx, v)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not create variant")
	}
	emit(c, h.Events, queue.EntityVariant, queue.ActionCreated, created.ID)
	return success(c, http.StatusCreated, "product variant created successfully", echo.Map{"variant": created})
}

// Update handles PUT /product-variants/:id with the standard check
// ordering: path id, target existence, body, foreign keys, write.
func (h *VariantHandler) Update(c echo.Context) error {
	id, err := validate.ParseID(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id format")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Variants.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrVariantNotFound) {
			return fail(c, http.StatusNotFound, "variant not found")
		}
		return fail(c, http.StatusInternalServerError, "query failed")
	}

	var in validate.VariantInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if errs := in.ValidateUpdate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}

	fields := map[string]any{}
	if productID, okProd := in.Product(); okProd {
		if err := h.Integrity.ProductExists(ctx, productID); err != nil {
			if errors.Is(err, integrity.ErrProductNotFound) {
				return fail(c, http.StatusNotFound, "product not found for the given productId")
			}
			return fail(c, http.StatusInternalServerError, "query failed")
		}
		fields["product_id"] = productID
	}
	if in.VariantName != nil {
		fields["variant_name"] = *in.VariantName
	}
	if in.VariantValue != nil {
		fields["variant_value"] = *in.VariantValue
	}
	if in.PriceAdjustment != nil {
		fields["price_adjustment"] = *in.PriceAdjustment
	}
	if in.StockQuantity != nil {
		fields["stock_quantity"] = *in.StockQuantity
	}
	if in.ImageURL != nil {
		fields["image_url"] = *in.ImageURL
	}

	updated, err := h.Variants.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrVariantNotFound) {
			return fail(c, http.StatusNotFound, "variant not found")
		}
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	emit(c, h.Events, queue.EntityVariant, queue.ActionUpdated, updated.ID)
	return success(c, http.StatusOK, "product variant updated successfully", echo.Map{"variant": updated})
}

// Delete handles DELETE /product-variants/:id.
func (h *VariantHandler) Delete(c echo.Context) error {
	id, err := validate.ParseID(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id format")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Variants.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrVariantNotFound) {
			return fail(c, http.StatusNotFound, "variant not found")
		}
		return fail(c, http.StatusInternalServerError, "delete failed")
	}
	emit(c, h.Events, queue.EntityVariant, queue.ActionDeleted, id)
	return success(c, http.StatusOK, "product variant deleted successfully", nil)
}

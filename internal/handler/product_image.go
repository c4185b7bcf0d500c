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

// ImageStore is the persistence contract the product-image endpoints need.
type ImageStore interface {
	Create(ctx context.Context, img *model.ProductImage) (*model.ProductImage, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.ProductImage, error)
	List(ctx context.Context) ([]model.ProductImage, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.ProductImage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ImageHandler implements the product-image CRUD endpoints.
type ImageHandler struct {
	Images    ImageStore
	Integrity *integrity.Checker
	Events    EventSink
}

func NewImageHandler(store ImageStore, checker *integrity.Checker, events EventSink) *ImageHandler {
	return &ImageHandler{Images: store, Integrity: checker, Events: events}
}

// List handles GET /product-images.
func (h *ImageHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Images.List(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return success(c, http.StatusOK, "product images fetched successfully", echo.Map{"images": items})
}

// Get handles GET /product-images/:id.
func (h *ImageHandler) Get(c echo.Context) error {
	id, err := validate.ParseID(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id format")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	img, err := h.Images.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return fail(c, http.StatusNotFound, "image not found")
		}
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return success(c, http.StatusOK, "product image fetched successfully", echo.Map{"image": img})
}

// Create handles POST /product-images. The referenced product must exist
// before the write is accepted.
func (h *ImageHandler) Create(c echo.Context) error {
	var in validate.ImageInput
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

	img := &model.ProductImage{
		ProductID: productID,
		ImageURL:  *in.ImageURL,
		AltText:   in.AltText,
	}
	if in.DisplayOrder != nil {
		img.DisplayOrder = *in.DisplayOrder
	}
	if in.IsPrimary != nil {
		img.IsPrimary = *in.IsPrimary
	}

	created, err := h.Images.Create(ctx, img)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not create image")
	}
	emit(c, h.Events, queue.EntityImage, queue.ActionCreated, created.ID)
	return success(c, http.StatusCreated, "product image created successfully", echo.Map{"image": created})
}

// Update handles PUT /product-images/:id with the standard check
// ordering: path id, target existence, body, foreign keys, write.
func (h *ImageHandler) Update(c echo.Context) error {
	id, err := validate.ParseID(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id format")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Images.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return fail(c, http.StatusNotFound, "image not found")
		}
		return fail(c, http.StatusInternalServerError, "query failed")
	}

	var in validate.ImageInput
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
	if in.ImageURL != nil {
		fields["image_url"] = *in.ImageURL
	}
	if in.AltText != nil {
		fields["alt_text"] = *in.AltText
	}
	if in.DisplayOrder != nil {
		fields["display_order"] = *in.DisplayOrder
	}
	if in.IsPrimary != nil {
		fields["is_primary"] = *in.IsPrimary
	}

	updated, err := h.Images.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return fail(c, http.StatusNotFound, "image not found")
		}
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	emit(c, h.Events, queue.EntityImage, queue.ActionUpdated, updated.ID)
	return success(c, http.StatusOK, "product image updated successfully", echo.Map{"image": updated})
}

// Delete handles DELETE /product-images/:id.
func (h *ImageHandler) Delete(c echo.Context) error {
	id, err := validate.ParseID(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id format")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Images.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return fail(c, http.StatusNotFound, "image not found")
		}
		return fail(c, http.StatusInternalServerError, "delete failed")
	}
	emit(c, h.Events, queue.EntityImage, queue.ActionDeleted, id)
	return success(c, http.StatusOK, "product image deleted successfully", nil)
}

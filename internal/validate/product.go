package validate

import (
	"encoding/json"

	"github.com/google/uuid"
)

// ProductInput is the product payload for both create and update.
// Specifications is carried through untouched; the API treats it as an
// opaque blob.
type ProductInput struct {
	Title          *string         `json:"title"`
	Slug           *string         `json:"slug"`
	Description    *string         `json:"description"`
	BasePrice      *float64        `json:"basePrice"`
	OriginalPrice  *float64        `json:"originalPrice"`
	StockQuantity  *int            `json:"stockQuantity"`
	Specifications json.RawMessage `json:"specifications"`
	IsFeatured     *bool           `json:"isFeatured"`
	IsActive       *bool           `json:"isActive"`
	CategoryID     *string         `json:"categoryId"`
}

func (in *ProductInput) rules() []rule {
	return []rule{
		{"title", in.Title != nil, func(e *Errors) { strMin(e, "title", *in.Title, 3) }},
		{"slug", in.Slug != nil, func(e *Errors) { strMin(e, "slug", *in.Slug, 3) }},
		{"description", in.Description != nil, func(e *Errors) { strMin(e, "description", *in.Description, 5) }},
		{"basePrice", in.BasePrice != nil, func(e *Errors) { positive(e, "basePrice", *in.BasePrice) }},
		{"originalPrice", in.OriginalPrice != nil, func(e *Errors) { positive(e, "originalPrice", *in.OriginalPrice) }},
		{"stockQuantity", in.StockQuantity != nil, func(e *Errors) { nonNegative(e, "stockQuantity", *in.StockQuantity) }},
		{"categoryId", in.CategoryID != nil, func(e *Errors) { uuidOK(e, "categoryId", *in.CategoryID) }},
	}
}

// ValidateCreate requires title, slug, description, basePrice,
// stockQuantity and categoryId; originalPrice and the flags stay optional.
func (in *ProductInput) ValidateCreate() Errors {
	return runCreate(in.rules(),
		"title", "slug", "description", "basePrice", "stockQuantity", "categoryId")
}

// ValidateUpdate makes every field optional but keeps the per-field rules.
func (in *ProductInput) ValidateUpdate() Errors {
	return runUpdate(in.rules())
}

// Category returns the parsed category id when one was supplied. Call only
// after validation has passed.
func (in *ProductInput) Category() (uuid.UUID, bool) {
	if in.CategoryID == nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(*in.CategoryID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Product mirrors the `products` table. Specifications is a free-form JSON
// blob stored verbatim; the API never inspects its contents. CategoryID
// must reference an existing category at write time.
type Product struct {
	ID             uuid.UUID       `json:"id"`
	Title          string          `json:"title"`
	Slug           string          `json:"slug"`
	Description    string          `json:"description"`
	BasePrice      float64         `json:"basePrice"`
	OriginalPrice  *float64        `json:"originalPrice,omitempty"`
	StockQuantity  int             `json:"stockQuantity"`
	Specifications json.RawMessage `json:"specifications,omitempty"`
	IsFeatured     bool            `json:"isFeatured"`
	IsActive       bool            `json:"isActive"`
	CategoryID     uuid.UUID       `json:"categoryId"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ProductDetail is the shape returned by the single-product read: the
// product plus its related category, images and variants.
type ProductDetail struct {
	Product
	Category *Category        `json:"category,omitempty"`
	Images   []ProductImage   `json:"images"`
	Variants []ProductVariant `json:"variants"`
}

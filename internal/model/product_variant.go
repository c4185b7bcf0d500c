package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductVariant mirrors the `product_variants` table. A variant is a
// name/value pair such as ("color", "red") with an optional price delta on
// top of the product's base price. ProductID must reference an existing
// product at write time.
type ProductVariant struct {
	ID              uuid.UUID `json:"id"`
	ProductID       uuid.UUID `json:"productId"`
	VariantName     string    `json:"variantName"`
	VariantValue    string    `json:"variantValue"`
	PriceAdjustment float64   `json:"priceAdjustment"`
	StockQuantity   int       `json:"stockQuantity"`
	ImageURL        *string   `json:"imageUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductImage mirrors the `product_images` table. ProductID must
// reference an existing product at write time. DisplayOrder defaults to 0
// and IsPrimary to false when omitted on create.
type ProductImage struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"productId"`
	ImageURL     string    `json:"imageUrl"`
	AltText      *string   `json:"altText,omitempty"`
	DisplayOrder int       `json:"displayOrder"`
	IsPrimary    bool      `json:"isPrimary"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

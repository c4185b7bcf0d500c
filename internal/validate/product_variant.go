package validate

import "github.com/google/uuid"

// VariantInput is the product-variant payload for both create and update.
type VariantInput struct {
	ProductID       *string  `json:"productId"`
	VariantName     *string  `json:"variantName"`
	VariantValue    *string  `json:"variantValue"`
	PriceAdjustment *float64 `json:"priceAdjustment"`
	StockQuantity   *int     `json:"stockQuantity"`
	ImageURL        *string  `json:"imageUrl"`
}

func (in *VariantInput) rules() []rule {
	return []rule{
		{"productId", in.ProductID != nil, func(e *Errors) { uuidOK(e, "productId", *in.ProductID) }},
		{"variantName", in.VariantName != nil, func(e *Errors) { strMax(e, "variantName", *in.VariantName, 50) }},
		{"variantValue", in.VariantValue != nil, func(e *Errors) { strMax(e, "variantValue", *in.VariantValue, 50) }},
		{"stockQuantity", in.StockQuantity != nil, func(e *Errors) { nonNegative(e, "stockQuantity", *in.StockQuantity) }},
		{"imageUrl", in.ImageURL != nil, func(e *Errors) { urlOK(e, "imageUrl", *in.ImageURL) }},
	}
}

// ValidateCreate requires productId, variantName and variantValue.
// priceAdjustment defaults to 0 and stockQuantity to 0 when omitted; the
// handler applies the defaults.
func (in *VariantInput) ValidateCreate() Errors {
	return runCreate(in.rules(), "productId", "variantName", "variantValue")
}

// ValidateUpdate makes every field optional but keeps the per-field rules.
func (in *VariantInput) ValidateUpdate() Errors {
	return runUpdate(in.rules())
}

// Product returns the parsed product id when one was supplied. Call only
// after validation has passed.
func (in *VariantInput) Product() (uuid.UUID, bool) {
	if in.ProductID == nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(*in.ProductID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

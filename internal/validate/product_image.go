package validate

import "github.com/google/uuid"

// ImageInput is the product-image payload for both create and update.
type ImageInput struct {
	ProductID    *string `json:"productId"`
	ImageURL     *string `json:"imageUrl"`
	AltText      *string `json:"altText"`
	DisplayOrder *int    `json:"displayOrder"`
	IsPrimary    *bool   `json:"isPrimary"`
}

func (in *ImageInput) rules() []rule {
	return []rule{
		{"productId", in.ProductID != nil, func(e *Errors) { uuidOK(e, "productId", *in.ProductID) }},
		{"imageUrl", in.ImageURL != nil, func(e *Errors) { urlOK(e, "imageUrl", *in.ImageURL) }},
		{"altText", in.AltText != nil, func(e *Errors) { strMax(e, "altText", *in.AltText, 255) }},
		{"displayOrder", in.DisplayOrder != nil, func(e *Errors) { nonNegative(e, "displayOrder", *in.DisplayOrder) }},
	}
}

// ValidateCreate requires productId and imageUrl. displayOrder defaults to
// 0 and isPrimary to false when omitted; the handler applies the defaults.
func (in *ImageInput) ValidateCreate() Errors {
	return runCreate(in.rules(), "productId", "imageUrl")
}

// ValidateUpdate makes every field optional but keeps the per-field rules.
func (in *ImageInput) ValidateUpdate() Errors {
	return runUpdate(in.rules())
}

// Product returns the parsed product id when one was supplied. Call only
// after validation has passed.
func (in *ImageInput) Product() (uuid.UUID, bool) {
	if in.ProductID == nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(*in.ProductID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

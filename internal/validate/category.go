package validate

import "github.com/google/uuid"

// CategoryInput is the category payload for both create and update.
// Pointer fields distinguish "omitted" from "present but invalid".
type CategoryInput struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	ParentID    *string `json:"parentId"`
}

func (in *CategoryInput) rules() []rule {
	return []rule{
		{"name", in.Name != nil, func(e *Errors) { strMin(e, "name", *in.Name, 3) }},
		{"slug", in.Slug != nil, func(e *Errors) { strMin(e, "slug", *in.Slug, 3) }},
		{"description", in.Description != nil, func(e *Errors) { strMin(e, "description", *in.Description, 5) }},
		{"imageUrl", in.ImageURL != nil, func(e *Errors) { urlOK(e, "imageUrl", *in.ImageURL) }},
		{"parentId", in.ParentID != nil, func(e *Errors) { uuidOK(e, "parentId", *in.ParentID) }},
	}
}

// ValidateCreate requires everything except parentId, which stays optional.
func (in *CategoryInput) ValidateCreate() Errors {
	return runCreate(in.rules(), "name", "slug", "description", "imageUrl")
}

// ValidateUpdate makes every field optional but keeps the per-field rules.
func (in *CategoryInput) ValidateUpdate() Errors {
	return runUpdate(in.rules())
}

// Parent returns the parsed parent id when one was supplied. Call only
// after validation has passed.
func (in *CategoryInput) Parent() (uuid.UUID, bool) {
	if in.ParentID == nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(*in.ParentID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

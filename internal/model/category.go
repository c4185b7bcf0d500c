package model

import (
	"time"

	"github.com/google/uuid"
)

// Category is a node in the self-referential category tree. ParentID is
// nil for root categories. A category must never reference itself as its
// parent, and parent assignments must not close a cycle; both rules are
// enforced by the integrity checker before any write.
type Category struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	ImageURL    string     `json:"imageUrl"`
	ParentID    *uuid.UUID `json:"parentId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

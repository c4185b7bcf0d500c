// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into an audit trail.
package queue

// CatalogEvent is published after every successful catalog mutation. It
// carries enough context for downstream consumers to log or trigger
// analytics without querying the primary database.
type CatalogEvent struct {
	Entity     string `json:"entity"` // category | product | product_image | product_variant
	Action     string `json:"action"` // created | updated | deleted
	EntityID   string `json:"entity_id"`
	ActorID    string `json:"actor_id,omitempty"` // empty for ungated mutations
	OccurredAt string `json:"occurred_at"`        // RFC 3339, UTC
}

// Event entity and action names used by publishers.
const (
	EntityCategory = "category"
	EntityProduct  = "product"
	EntityImage    = "product_image"
	EntityVariant  = "product_variant"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

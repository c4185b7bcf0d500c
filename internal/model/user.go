package model

import (
	"time"

	"github.com/google/uuid"
)

// Role values stored in users.role. Only these two exist; "admin" gates
// privileged catalog mutations.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an application user record as stored in the `users`
// table. The password hash is never serialized: every response type that
// embeds a User relies on the `json:"-"` tag to keep it out of the wire
// format.
type User struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user may perform admin-gated mutations.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

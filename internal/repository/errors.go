// Package repository contains data access logic separated from HTTP
// handlers. This file defines the sentinel errors shared across the
// per-entity repositories so handlers can translate failures into the
// right HTTP status without inspecting driver errors.
package repository

import "errors"

var (
	// ErrEmailExists is returned when a sign-up collides with an existing
	// email. Handlers translate this into HTTP 409.
	ErrEmailExists = errors.New("email already exists")
	// ErrCategoryNotFound is returned when a category lookup misses.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrProductNotFound is returned when a product lookup misses.
	ErrProductNotFound = errors.New("product not found")
	// ErrImageNotFound is returned when a product-image lookup misses.
	ErrImageNotFound = errors.New("image not found")
	// ErrVariantNotFound is returned when a product-variant lookup misses.
	ErrVariantNotFound = errors.New("variant not found")
	// ErrUserNotFound is returned when a user lookup misses. At the auth
	// boundary this is distinct from an invalid token: the credential was
	// genuine but stale.
	ErrUserNotFound = errors.New("user not found")
)

// Package integrity enforces the cross-entity consistency rules that must
// hold before a mutation is accepted: foreign-key existence (a product's
// category, an image's or variant's product, a category's parent) and the
// structural rules of the category tree (no self-parenting, no cycles).
//
// Every check re-reads current store state; nothing is cached. The checks
// are therefore check-then-act: a concurrent delete between a check and
// the following write is an accepted race, with store-level constraints as
// the real backstop.
package integrity

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrCategoryNotFound reports a categoryId that references nothing.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrProductNotFound reports a productId that references nothing.
	ErrProductNotFound = errors.New("product not found")
	// ErrParentNotFound reports a parentId that references nothing.
	ErrParentNotFound = errors.New("parent category not found")
	// ErrSelfParent reports a category assigned as its own parent.
	ErrSelfParent = errors.New("category cannot be its own parent")
	// ErrCycle reports a parent assignment that would close a loop in the
	// category tree.
	ErrCycle = errors.New("parent assignment would create a cycle")
)

// maxDepth caps the ancestor walk. A chain longer than this is treated as
// a cycle so corrupt data fails closed instead of looping.
const maxDepth = 32

// CategoryFinder is the read contract the checker needs from the category
// store.
type CategoryFinder interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	// ParentID returns the parent of a category, nil for roots. The bool
	// reports whether the category row itself exists.
	ParentID(ctx context.Context, id uuid.UUID) (*uuid.UUID, bool, error)
}

// ProductFinder is the read contract the checker needs from the product
// store.
type ProductFinder interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

// Checker bundles the store read contracts behind the referential checks.
type Checker struct {
	categories CategoryFinder
	products   ProductFinder
}

func NewChecker(categories CategoryFinder, products ProductFinder) *Checker {
	return &Checker{categories: categories, products: products}
}

// CategoryExists fails with ErrCategoryNotFound when the id references no
// category. Used before accepting a product's categoryId.
func (k *Checker) CategoryExists(ctx context.Context, id uuid.UUID) error {
	ok, err := k.categories.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCategoryNotFound
	}
	return nil
}

// ProductExists fails with ErrProductNotFound when the id references no
// product. Used before accepting an image's or variant's productId.
func (k *Checker) ProductExists(ctx context.Context, id uuid.UUID) error {
	ok, err := k.products.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProductNotFound
	}
	return nil
}

// CheckParent validates a parent assignment for the category with the
// given id. Self-parenting is rejected first, regardless of whether the
// parent would also pass the existence check. The ancestor chain is then
// walked to the root; reaching the category being updated means the
// assignment would close a cycle. Pass uuid.Nil as id on create, where no
// cycle through the new node is possible yet.
func (k *Checker) CheckParent(ctx context.Context, id, parentID uuid.UUID) error {
	if parentID == id {
		return ErrSelfParent
	}
	ok, err := k.categories.ExistsByID(ctx, parentID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrParentNotFound
	}
	cur := parentID
	for depth := 0; depth < maxDepth; depth++ {
		parent, found, err := k.categories.ParentID(ctx, cur)
		if err != nil {
			return err
		}
		if !found || parent == nil {
			// Reached a root. A row vanishing mid-walk counts as a root:
			// the store's own constraints cover that race.
			return nil
		}
		if *parent == id {
			return ErrCycle
		}
		cur = *parent
	}
	return ErrCycle
}

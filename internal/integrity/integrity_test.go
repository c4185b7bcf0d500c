package integrity

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCategories answers existence and parent lookups from an in-memory
// parent map. A key with a nil value is a root category.
type fakeCategories struct {
	parents map[uuid.UUID]*uuid.UUID
	err     error
}

func (f *fakeCategories) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.parents[id]
	return ok, nil
}

func (f *fakeCategories) ParentID(_ context.Context, id uuid.UUID) (*uuid.UUID, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	p, ok := f.parents[id]
	return p, ok, nil
}

type fakeProducts struct {
	ids map[uuid.UUID]bool
	err error
}

func (f *fakeProducts) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.ids[id], nil
}

func newCheckerWith(cats *fakeCategories, prods *fakeProducts) *Checker {
	if cats == nil {
		cats = &fakeCategories{parents: map[uuid.UUID]*uuid.UUID{}}
	}
	if prods == nil {
		prods = &fakeProducts{ids: map[uuid.UUID]bool{}}
	}
	return NewChecker(cats, prods)
}

func TestCategoryExists(t *testing.T) {
	id := uuid.New()
	cats := &fakeCategories{parents: map[uuid.UUID]*uuid.UUID{id: nil}}
	k := newCheckerWith(cats, nil)

	assert.NoError(t, k.CategoryExists(context.Background(), id))
	assert.ErrorIs(t, k.CategoryExists(context.Background(), uuid.New()), ErrCategoryNotFound)
}

func TestCategoryExistsStoreError(t *testing.T) {
	boom := errors.New("db down")
	k := newCheckerWith(&fakeCategories{err: boom}, nil)

	err := k.CategoryExists(context.Background(), uuid.New())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrCategoryNotFound)
}

func TestProductExists(t *testing.T) {
	id := uuid.New()
	prods := &fakeProducts{ids: map[uuid.UUID]bool{id: true}}
	k := newCheckerWith(nil, prods)

	assert.NoError(t, k.ProductExists(context.Background(), id))
	assert.ErrorIs(t, k.ProductExists(context.Background(), uuid.New()), ErrProductNotFound)
}

func TestCheckParentSelfBeforeExistence(t *testing.T) {
	// A category naming itself as parent is rejected as self-parenting
	// even though the id also fails the existence check.
	id := uuid.New()
	k := newCheckerWith(&fakeCategories{parents: map[uuid.UUID]*uuid.UUID{}}, nil)

	err := k.CheckParent(context.Background(), id, id)
	assert.ErrorIs(t, err, ErrSelfParent)
}

func TestCheckParentMissingParent(t *testing.T) {
	k := newCheckerWith(&fakeCategories{parents: map[uuid.UUID]*uuid.UUID{}}, nil)

	err := k.CheckParent(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrParentNotFound)
}

func TestCheckParentValidChain(t *testing.T) {
	root := uuid.New()
	mid := uuid.New()
	leaf := uuid.New()
	cats := &fakeCategories{parents: map[uuid.UUID]*uuid.UUID{
		root: nil,
		mid:  &root,
	}}
	k := newCheckerWith(cats, nil)

	// Assigning mid as leaf's parent walks mid -> root and finds no loop.
	assert.NoError(t, k.CheckParent(context.Background(), leaf, mid))
}

func TestCheckParentOnCreate(t *testing.T) {
	root := uuid.New()
	cats := &fakeCategories{parents: map[uuid.UUID]*uuid.UUID{root: nil}}
	k := newCheckerWith(cats, nil)

	// uuid.Nil stands in for a category that does not exist yet.
	assert.NoError(t, k.CheckParent(context.Background(), uuid.Nil, root))
}

func TestCheckParentDetectsCycle(t *testing.T) {
	// a is b's parent; re-parenting a under b would close a -> b -> a.
	a := uuid.New()
	b := uuid.New()
	cats := &fakeCategories{parents: map[uuid.UUID]*uuid.UUID{
		a: nil,
		b: &a,
	}}
	k := newCheckerWith(cats, nil)

	err := k.CheckParent(context.Background(), a, b)
	assert.ErrorIs(t, err, ErrCycle)
}

func TestCheckParentDeepChainFailsClosed(t *testing.T) {
	// Build a chain longer than the walk cap. The checker must treat it
	// as a cycle rather than keep walking.
	parents := map[uuid.UUID]*uuid.UUID{}
	cur := uuid.New()
	head := cur
	for i := 0; i < maxDepth+1; i++ {
		next := uuid.New()
		parents[cur] = &next
		cur = next
	}
	parents[cur] = nil
	k := newCheckerWith(&fakeCategories{parents: parents}, nil)

	err := k.CheckParent(context.Background(), uuid.New(), head)
	require.ErrorIs(t, err, ErrCycle)
}

func TestCheckParentVanishedAncestorIsRoot(t *testing.T) {
	// The parent exists but its own parent row is gone mid-walk; the walk
	// stops as if it reached a root.
	ghost := uuid.New()
	parent := uuid.New()
	cats := &fakeCategories{parents: map[uuid.UUID]*uuid.UUID{parent: &ghost}}
	k := newCheckerWith(cats, nil)

	assert.NoError(t, k.CheckParent(context.Background(), uuid.New(), parent))
}

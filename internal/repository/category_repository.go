package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/product-catalog/internal/model"
)

// CategoryRepo encapsulates all database queries against the `categories`
// table. It also satisfies the integrity checker's CategoryFinder contract
// via ExistsByID and ParentID.
type CategoryRepo struct{ db *sql.DB }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{db: db} }

const categoryCols = "id, name, slug, description, image_url, parent_id, created_at, updated_at"

// Create inserts a new category with a fresh id and returns the stored
// record, including DB-populated timestamps.
func (r *CategoryRepo) Create(ctx context.Context, name, slug, description, imageURL string, parentID *uuid.UUID) (*model.Category, error) {
	id := uuid.New()
	var parent uuid.NullUUID
	if parentID != nil {
		parent = uuid.NullUUID{UUID: *parentID, Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO categories (id, name, slug, description, image_url, parent_id) VALUES (?,?,?,?,?,?)",
		id, name, slug, description, imageURL, parent)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches a category by id, ErrCategoryNotFound on a miss.
func (r *CategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var c model.Category
	var parent uuid.NullUUID
	err := r.db.QueryRowContext(ctx,
		"SELECT "+categoryCols+" FROM categories WHERE id = ? LIMIT 1", id).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.ImageURL, &parent,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if parent.Valid {
		c.ParentID = &parent.UUID
	}
	return &c, nil
}

// List returns all categories ordered by name.
func (r *CategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+categoryCols+" FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Category{}
	for rows.Next() {
		var c model.Category
		var parent uuid.NullUUID
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.ImageURL, &parent,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		if parent.Valid {
			c.ParentID = &parent.UUID
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update applies a partial update built from column/value pairs and
// returns the resulting record. RowsAffected is not used to detect a miss:
// MySQL reports 0 for a no-op update too, so existence falls out of the
// follow-up read instead.
func (r *CategoryRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.Category, error) {
	if len(fields) > 0 {
		set := make([]string, 0, len(fields)+1)
		args := make([]any, 0, len(fields)+1)
		for col, v := range fields {
			set = append(set, col+" = ?")
			args = append(args, v)
		}
		set = append(set, "updated_at = CURRENT_TIMESTAMP")
		args = append(args, id)
		q := "UPDATE categories SET " + strings.Join(set, ", ") + " WHERE id = ?"
		if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a category, ErrCategoryNotFound when nothing matched.
func (r *CategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// ExistsByID reports whether a category row exists.
func (r *CategoryRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM categories WHERE id = ? LIMIT 1", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ParentID returns the parent of a category (nil for roots) and whether
// the category row itself exists. The integrity checker walks the
// ancestor chain through this method.
func (r *CategoryRepo) ParentID(ctx context.Context, id uuid.UUID) (*uuid.UUID, bool, error) {
	var parent uuid.NullUUID
	err := r.db.QueryRowContext(ctx,
		"SELECT parent_id FROM categories WHERE id = ? LIMIT 1", id).Scan(&parent)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if !parent.Valid {
		return nil, true, nil
	}
	p := parent.UUID
	return &p, true, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/product-catalog/internal/model"
)

// VariantRepo encapsulates all database queries against the
// `product_variants` table.
type VariantRepo struct{ db *sql.DB }

func NewVariantRepo(db *sql.DB) *VariantRepo { return &VariantRepo{db: db} }

const variantCols = "id, product_id, variant_name, variant_value, price_adjustment, stock_quantity, image_url, created_at, updated_at"

// Create inserts a new variant with a fresh id and returns the stored
// record.
func (r *VariantRepo) Create(ctx context.Context, v *model.ProductVariant) (*model.ProductVariant, error) {
	id := uuid.New()
	var img sql.NullString
	if v.ImageURL != nil {
		img = sql.NullString{String: *v.ImageURL, Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO product_variants (id, product_id, variant_name, variant_value, price_adjustment, stock_quantity, image_url)
		 VALUES (?,?,?,?,?,?,?)`,
		id, v.ProductID, v.VariantName, v.VariantValue, v.PriceAdjustment, v.StockQuantity, img)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches a variant by id, ErrVariantNotFound on a miss.
func (r *VariantRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.ProductVariant, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+variantCols+" FROM product_variants WHERE id = ? LIMIT 1", id)
	v, err := scanVariantRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}
	return v, nil
}

// List returns every product variant ordered by product and name.
func (r *VariantRepo) List(ctx context.Context) ([]model.ProductVariant, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+variantCols+" FROM product_variants ORDER BY product_id, variant_name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ProductVariant{}
	for rows.Next() {
		v, err := scanVariantRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

// Update applies a partial update built from column/value pairs and
// returns the resulting record.
func (r *VariantRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.ProductVariant, error) {
	if len(fields) > 0 {
		set := make([]string, 0, len(fields)+1)
		args := make([]any, 0, len(fields)+1)
		for col, v := range fields {
			set = append(set, col+" = ?")
			args = append(args, v)
		}
		set = append(set, "updated_at = CURRENT_TIMESTAMP")
		args = append(args, id)
		q := "UPDATE product_variants SET " + strings.Join(set, ", ") + " WHERE id = ?"
		if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a variant, ErrVariantNotFound when nothing matched.
func (r *VariantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM product_variants WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrVariantNotFound
	}
	return nil
}

func scanVariantRow(s scanner) (*model.ProductVariant, error) {
	var v model.ProductVariant
	var img sql.NullString
	err := s.Scan(&v.ID, &v.ProductID, &v.VariantName, &v.VariantValue,
		&v.PriceAdjustment, &v.StockQuantity, &img, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if img.Valid {
		v.ImageURL = &img.String
	}
	return &v, nil
}

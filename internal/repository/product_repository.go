package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/product-catalog/internal/model"
)

// ProductRepo encapsulates all database queries against the `products`
// table. It satisfies the integrity checker's ProductFinder contract via
// ExistsByID.
type ProductRepo struct{ db *sql.DB }

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, title, slug, description, base_price, original_price,
	stock_quantity, specifications, is_featured, is_active, category_id,
	created_at, updated_at`

// Create inserts a new product with a fresh id and returns the stored
// record. Referential checks against the category happen before this is
// called; the FK constraint in the schema is the backstop for races.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	id := uuid.New()
	var orig sql.NullFloat64
	if p.OriginalPrice != nil {
		orig = sql.NullFloat64{Float64: *p.OriginalPrice, Valid: true}
	}
	var spec any
	if len(p.Specifications) > 0 {
		spec = []byte(p.Specifications)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products (id, title, slug, description, base_price, original_price,
		 stock_quantity, specifications, is_featured, is_active, category_id)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		id, p.Title, p.Slug, p.Description, p.BasePrice, orig,
		p.StockQuantity, spec, p.IsFeatured, p.IsActive, p.CategoryID)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches a product by id, ErrProductNotFound on a miss.
func (r *ProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+productCols+" FROM products WHERE id = ? LIMIT 1", id)
	return scanProduct(row)
}

// GetDetail fetches a product together with its category, images and
// variants, as returned by the single-product read endpoint.
func (r *ProductRepo) GetDetail(ctx context.Context, id uuid.UUID) (*model.ProductDetail, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := &model.ProductDetail{Product: *p, Images: []model.ProductImage{}, Variants: []model.ProductVariant{}}

	var cat model.Category
	var parent uuid.NullUUID
	err = r.db.QueryRowContext(ctx,
		"SELECT "+categoryCols+" FROM categories WHERE id = ? LIMIT 1", p.CategoryID).Scan(
		&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.ImageURL, &parent,
		&cat.CreatedAt, &cat.UpdatedAt)
	if err == nil {
		if parent.Valid {
			cat.ParentID = &parent.UUID
		}
		d.Category = &cat
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	imgRows, err := r.db.QueryContext(ctx,
		"SELECT "+imageCols+" FROM product_images WHERE product_id = ? ORDER BY display_order, id", id)
	if err != nil {
		return nil, err
	}
	defer imgRows.Close()
	for imgRows.Next() {
		img, err := scanImageRow(imgRows)
		if err != nil {
			return nil, err
		}
		d.Images = append(d.Images, *img)
	}
	if err := imgRows.Err(); err != nil {
		return nil, err
	}

	varRows, err := r.db.QueryContext(ctx,
		"SELECT "+variantCols+" FROM product_variants WHERE product_id = ? ORDER BY variant_name, id", id)
	if err != nil {
		return nil, err
	}
	defer varRows.Close()
	for varRows.Next() {
		v, err := scanVariantRow(varRows)
		if err != nil {
			return nil, err
		}
		d.Variants = append(d.Variants, *v)
	}
	return d, varRows.Err()
}

// List returns all products ordered by creation time, newest first.
func (r *ProductRepo) List(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+productCols+" FROM products ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Update applies a partial update built from column/value pairs and
// returns the resulting record.
func (r *ProductRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.Product, error) {
	if len(fields) > 0 {
		set := make([]string, 0, len(fields)+1)
		args := make([]any, 0, len(fields)+1)
		for col, v := range fields {
			set = append(set, col+" = ?")
			args = append(args, v)
		}
		set = append(set, "updated_at = CURRENT_TIMESTAMP")
		args = append(args, id)
		q := "UPDATE products SET " + strings.Join(set, ", ") + " WHERE id = ?"
		if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a product, ErrProductNotFound when nothing matched.
func (r *ProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

// ExistsByID reports whether a product row exists.
func (r *ProductRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM products WHERE id = ? LIMIT 1", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface{ Scan(dest ...any) error }

func scanProduct(s scanner) (*model.Product, error) {
	var p model.Product
	var orig sql.NullFloat64
	var spec []byte
	err := s.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.BasePrice, &orig,
		&p.StockQuantity, &spec, &p.IsFeatured, &p.IsActive, &p.CategoryID,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if orig.Valid {
		p.OriginalPrice = &orig.Float64
	}
	if len(spec) > 0 {
		p.Specifications = json.RawMessage(spec)
	}
	return &p, nil
}

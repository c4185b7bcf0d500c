package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/product-catalog/internal/model"
)

// ImageRepo encapsulates all database queries against the
// `product_images` table.
type ImageRepo struct{ db *sql.DB }

func NewImageRepo(db *sql.DB) *ImageRepo { return &ImageRepo{db: db} }

const imageCols = "id, product_id, image_url, alt_text, display_order, is_primary, created_at, updated_at"

// Create inserts a new image with a fresh id and returns the stored record.
func (r *ImageRepo) Create(ctx context.Context, img *model.ProductImage) (*model.ProductImage, error) {
	id := uuid.New()
	var alt sql.NullString
	if img.AltText != nil {
		alt = sql.NullString{String: *img.AltText, Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO product_images (id, product_id, image_url, alt_text, display_order, is_primary)
		 VALUES (?,?,?,?,?,?)`,
		id, img.ProductID, img.ImageURL, alt, img.DisplayOrder, img.IsPrimary)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches an image by id, ErrImageNotFound on a miss.
func (r *ImageRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.ProductImage, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+imageCols+" FROM product_images WHERE id = ? LIMIT 1", id)
	img, err := scanImageRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	return img, nil
}

// List returns every product image ordered by product and display order.
func (r *ImageRepo) List(ctx context.Context) ([]model.ProductImage, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+imageCols+" FROM product_images ORDER BY product_id, display_order, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ProductImage{}
	for rows.Next() {
		img, err := scanImageRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *img)
	}
	return out, rows.Err()
}

// Update applies a partial update built from column/value pairs and
// returns the resulting record.
func (r *ImageRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.ProductImage, error) {
	if len(fields) > 0 {
		set := make([]string, 0, len(fields)+1)
		args := make([]any, 0, len(fields)+1)
		for col, v := range fields {
			set = append(set, col+" = ?")
			args = append(args, v)
		}
		set = append(set, "updated_at = CURRENT_TIMESTAMP")
		args = append(args, id)
		q := "UPDATE product_images SET " + strings.Join(set, ", ") + " WHERE id = ?"
		if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes an image, ErrImageNotFound when nothing matched.
func (r *ImageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM product_images WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrImageNotFound
	}
	return nil
}

func scanImageRow(s scanner) (*model.ProductImage, error) {
	var img model.ProductImage
	var alt sql.NullString
	err := s.Scan(&img.ID, &img.ProductID, &img.ImageURL, &alt,
		&img.DisplayOrder, &img.IsPrimary, &img.CreatedAt, &img.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if alt.Valid {
		img.AltText = &alt.String
	}
	return &img, nil
}

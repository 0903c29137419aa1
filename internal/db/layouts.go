package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const layoutColumns = `id, slug, name, description, preview_image, created_at, updated_at`

func scanLayout(row pgx.Row) (*Layout, error) {
	var l Layout
	err := row.Scan(&l.ID, &l.Slug, &l.Name, &l.Description, &l.PreviewImage, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// UpsertLayout inserts or refreshes a layout record keyed by slug.
func (db *DB) UpsertLayout(ctx context.Context, slug, name, description, previewImage string) (*Layout, error) {
	l, err := scanLayout(db.pool.QueryRow(ctx,
		`INSERT INTO layouts (slug, name, description, preview_image)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (slug) DO UPDATE
		 SET name = $2, description = $3, preview_image = $4, updated_at = NOW()
		 RETURNING `+layoutColumns,
		slug, name, description, previewImage,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert layout %s: %w", slug, err)
	}
	return l, nil
}

// GetLayoutBySlug retrieves a layout record. Returns nil, nil when not
// found.
func (db *DB) GetLayoutBySlug(ctx context.Context, slug string) (*Layout, error) {
	l, err := scanLayout(db.pool.QueryRow(ctx,
		`SELECT `+layoutColumns+` FROM layouts WHERE slug = $1`, slug))
	if err != nil {
		return nil, fmt.Errorf("failed to get layout: %w", err)
	}
	return l, nil
}

// ListLayouts retrieves all layout records, oldest first.
func (db *DB) ListLayouts(ctx context.Context) ([]Layout, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+layoutColumns+` FROM layouts ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}
	defer rows.Close()

	var layouts []Layout
	for rows.Next() {
		l, err := scanLayout(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan layout: %w", err)
		}
		layouts = append(layouts, *l)
	}
	return layouts, nil
}

// DeleteLayout removes a layout record by slug. Returns false when absent.
func (db *DB) DeleteLayout(ctx context.Context, slug string) (bool, error) {
	result, err := db.pool.Exec(ctx, `DELETE FROM layouts WHERE slug = $1`, slug)
	if err != nil {
		return false, fmt.Errorf("failed to delete layout: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

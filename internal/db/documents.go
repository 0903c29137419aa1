package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/cv-builder/internal/types"
)

const documentColumns = `id, user_id, title, layout_id, data, is_public, created_at, updated_at`

func scanDocument(row pgx.Row) (*CVDocument, error) {
	var (
		doc       CVDocument
		dataBytes []byte
	)
	err := row.Scan(&doc.ID, &doc.UserID, &doc.Title, &doc.LayoutID, &dataBytes,
		&doc.IsPublic, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if len(dataBytes) > 0 {
		if err := json.Unmarshal(dataBytes, &doc.Data); err != nil {
			return nil, fmt.Errorf("failed to decode document data: %w", err)
		}
	}
	return &doc, nil
}

// CreateCV inserts a new CV document owned by userID.
func (db *DB) CreateCV(ctx context.Context, userID uuid.UUID, title, layoutID string, data *types.CVData, isPublic bool) (*CVDocument, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document data: %w", err)
	}

	doc, err := scanDocument(db.pool.QueryRow(ctx,
		`INSERT INTO cv_documents (user_id, title, layout_id, data, is_public)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+documentColumns,
		userID, title, layoutID, dataBytes, isPublic,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create cv document: %w", err)
	}
	return doc, nil
}

// GetCV retrieves a CV document by ID regardless of owner.
// Returns nil, nil when not found.
func (db *DB) GetCV(ctx context.Context, id uuid.UUID) (*CVDocument, error) {
	doc, err := scanDocument(db.pool.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM cv_documents WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get cv document: %w", err)
	}
	return doc, nil
}

// GetCVForUser retrieves a CV document only if owned by userID.
// Returns nil, nil when not found or owned by someone else.
func (db *DB) GetCVForUser(ctx context.Context, id, userID uuid.UUID) (*CVDocument, error) {
	doc, err := scanDocument(db.pool.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM cv_documents WHERE id = $1 AND user_id = $2`,
		id, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get cv document: %w", err)
	}
	return doc, nil
}

// UpdateCV updates an owned CV document, returning the stored row.
// Returns nil, nil when the document does not exist for this owner.
func (db *DB) UpdateCV(ctx context.Context, id, userID uuid.UUID, title, layoutID string, data *types.CVData, isPublic bool) (*CVDocument, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document data: %w", err)
	}

	doc, err := scanDocument(db.pool.QueryRow(ctx,
		`UPDATE cv_documents
		 SET title = $1, layout_id = $2, data = $3, is_public = $4, updated_at = NOW()
		 WHERE id = $5 AND user_id = $6
		 RETURNING `+documentColumns,
		title, layoutID, dataBytes, isPublic, id, userID,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to update cv document: %w", err)
	}
	return doc, nil
}

// DeleteCV hard-deletes an owned CV document. Returns false when the
// document does not exist for this owner.
func (db *DB) DeleteCV(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM cv_documents WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete cv document: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// ListCVs retrieves all of a user's CV documents, most recently updated
// first.
func (db *DB) ListCVs(ctx context.Context, userID uuid.UUID) ([]CVDocument, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+documentColumns+` FROM cv_documents
		 WHERE user_id = $1 ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cv documents: %w", err)
	}
	defer rows.Close()

	var docs []CVDocument
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cv document: %w", err)
		}
		docs = append(docs, *doc)
	}
	return docs, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/tci-platform/trinity/internal/domain/documents"
)

// ExtractedDocumentRepository reads the extraction pipeline's output table.
type ExtractedDocumentRepository struct{ db *sql.DB }

func NewExtractedDocumentRepository(db *sql.DB) *ExtractedDocumentRepository {
	return &ExtractedDocumentRepository{db: db}
}

func (r *ExtractedDocumentRepository) ListByClaimID(ctx context.Context, tenantID, claimID string) ([]domain.ExtractedDocument, error) {
	const q = `
SELECT id, claim_id, type, extracted_data, confidence_score, created_at
FROM extracted_documents
WHERE tenant_id=$1 AND claim_id=$2
ORDER BY created_at ASC;`
	rows, err := r.db.QueryContext(ctx, q, tenantID, claimID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ExtractedDocument
	for rows.Next() {
		var d domain.ExtractedDocument
		if err := rows.Scan(
			&d.ID, &d.ClaimID, &d.Type, &d.ExtractedData, &d.ConfidenceScore, &d.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *ExtractedDocumentRepository) FindByID(ctx context.Context, tenantID, documentID string) (*domain.ExtractedDocument, error) {
	const q = `
SELECT id, claim_id, type, extracted_data, confidence_score, created_at
FROM extracted_documents
WHERE tenant_id=$1 AND id=$2
LIMIT 1;`
	row := r.db.QueryRowContext(ctx, q, tenantID, documentID)

	var d domain.ExtractedDocument
	if err := row.Scan(
		&d.ID, &d.ClaimID, &d.Type, &d.ExtractedData, &d.ConfidenceScore, &d.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, err
	}
	return &d, nil
}

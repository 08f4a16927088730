package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	domain "github.com/tci-platform/trinity/internal/domain/trinity"
)

type DocumentAnalysisRepository struct {
	db *sql.DB
}

func NewDocumentAnalysisRepository(db *sql.DB) *DocumentAnalysisRepository {
	return &DocumentAnalysisRepository{db: db}
}

// SaveBatch upsert semua analysis dalam satu transaksi
func (r *DocumentAnalysisRepository) SaveBatch(ctx context.Context, tenantID string, analyses []domain.DocumentAnalysis) error {
	if len(analyses) == 0 {
		return nil
	}
	const q = `
INSERT INTO trinity_document_analyses
(document_id, tenant_id, claim_id, document_type,
 checks_run, checks_failed, red_flags, confidence)
VALUES (?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
 claim_id=VALUES(claim_id), document_type=VALUES(document_type),
 checks_run=VALUES(checks_run), checks_failed=VALUES(checks_failed),
 red_flags=VALUES(red_flags), confidence=VALUES(confidence);
`
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range analyses {
		run, merr := json.Marshal(a.ChecksRun)
		if merr != nil {
			return fmt.Errorf("marshal checks_run: %w", merr)
		}
		failed, merr := json.Marshal(a.ChecksFailed)
		if merr != nil {
			return fmt.Errorf("marshal checks_failed: %w", merr)
		}
		flags, merr := json.Marshal(a.RedFlags)
		if merr != nil {
			return fmt.Errorf("marshal red_flags: %w", merr)
		}
		if _, err := stmt.ExecContext(ctx,
			a.DocumentID, stringOrDash(tenantID), a.ClaimID, a.DocumentType,
			run, failed, flags, a.Confidence,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// FindByDocumentID ambil analysis by document + tenant
func (r *DocumentAnalysisRepository) FindByDocumentID(ctx context.Context, tenantID, documentID string) (*domain.DocumentAnalysis, error) {
	const q = `
SELECT document_id, claim_id, document_type, checks_run, checks_failed, red_flags, confidence
FROM trinity_document_analyses
WHERE tenant_id=? AND document_id=? LIMIT 1;
`
	row := r.db.QueryRowContext(ctx, q, tenantID, documentID)

	var a domain.DocumentAnalysis
	var run, failed, flags []byte
	if err := row.Scan(
		&a.DocumentID, &a.ClaimID, &a.DocumentType, &run, &failed, &flags, &a.Confidence,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAnalysisNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(run, &a.ChecksRun); err != nil {
		return nil, fmt.Errorf("unmarshal checks_run: %w", err)
	}
	if err := json.Unmarshal(failed, &a.ChecksFailed); err != nil {
		return nil, fmt.Errorf("unmarshal checks_failed: %w", err)
	}
	if len(flags) > 0 {
		if err := json.Unmarshal(flags, &a.RedFlags); err != nil {
			return nil, fmt.Errorf("unmarshal red_flags: %w", err)
		}
	}
	return &a, nil
}

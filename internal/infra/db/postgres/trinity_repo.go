package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domain "github.com/tci-platform/trinity/internal/domain/trinity"
)

type TrinityReportRepository struct{ db *sql.DB }

func NewTrinityReportRepository(db *sql.DB) *TrinityReportRepository {
	return &TrinityReportRepository{db: db}
}

// Save insert/update report record. Satu report hidup per claim.
func (r *TrinityReportRepository) Save(ctx context.Context, tenantID string, rep *domain.Report) error {
	const q = `
INSERT INTO trinity_reports
(id, tenant_id, claim_id, status, total_score, checks, summary,
 risk_factors, reasoning, reasoning_insights, verification_coverage,
 fingerprint, artifact_url, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,
        $8,$9,$10,$11,
        $12,$13,$14,$15)
ON CONFLICT (tenant_id, claim_id) DO UPDATE SET
 id = EXCLUDED.id,
 status = EXCLUDED.status,
 total_score = EXCLUDED.total_score,
 checks = EXCLUDED.checks,
 summary = EXCLUDED.summary,
 risk_factors = EXCLUDED.risk_factors,
 reasoning = EXCLUDED.reasoning,
 reasoning_insights = EXCLUDED.reasoning_insights,
 verification_coverage = EXCLUDED.verification_coverage,
 fingerprint = EXCLUDED.fingerprint,
 artifact_url = EXCLUDED.artifact_url,
 updated_at = EXCLUDED.updated_at;`

	checks, err := json.Marshal(rep.Checks)
	if err != nil {
		return fmt.Errorf("marshal checks: %w", err)
	}
	riskFactors, err := json.Marshal(rep.RiskFactors)
	if err != nil {
		return fmt.Errorf("marshal risk factors: %w", err)
	}
	insights, err := json.Marshal(rep.ReasoningInsights)
	if err != nil {
		return fmt.Errorf("marshal insights: %w", err)
	}

	created := rep.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	updated := rep.UpdatedAt
	if updated.IsZero() {
		updated = created
	}

	_, err = r.db.ExecContext(ctx, q,
		rep.ID, stringOrDash(tenantID), rep.ClaimID,
		rep.Status, rep.TotalScore, checks, rep.Summary,
		riskFactors, rep.Reasoning, insights, rep.VerificationCoverage,
		rep.Fingerprint, rep.ArtifactURL, created, updated,
	)
	return err
}

// FindByClaimID ambil report by claim + tenant
func (r *TrinityReportRepository) FindByClaimID(ctx context.Context, tenantID, claimID string) (*domain.Report, error) {
	const q = `
SELECT id, tenant_id, claim_id, status, total_score, checks, summary,
       risk_factors, reasoning, reasoning_insights, verification_coverage,
       fingerprint, artifact_url, created_at, updated_at
FROM trinity_reports
WHERE tenant_id=$1 AND claim_id=$2
LIMIT 1;`
	row := r.db.QueryRowContext(ctx, q, tenantID, claimID)

	var rep domain.Report
	var checks, riskFactors, insights []byte
	if err := row.Scan(
		&rep.ID, &rep.TenantID, &rep.ClaimID, &rep.Status, &rep.TotalScore,
		&checks, &rep.Summary, &riskFactors, &rep.Reasoning, &insights,
		&rep.VerificationCoverage, &rep.Fingerprint, &rep.ArtifactURL,
		&rep.CreatedAt, &rep.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(checks, &rep.Checks); err != nil {
		return nil, fmt.Errorf("unmarshal checks: %w", err)
	}
	if len(riskFactors) > 0 {
		if err := json.Unmarshal(riskFactors, &rep.RiskFactors); err != nil {
			return nil, fmt.Errorf("unmarshal risk factors: %w", err)
		}
	}
	if len(insights) > 0 {
		if err := json.Unmarshal(insights, &rep.ReasoningInsights); err != nil {
			return nil, fmt.Errorf("unmarshal insights: %w", err)
		}
	}
	return &rep, nil
}

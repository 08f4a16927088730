package trinity

import (
	"context"
	"errors"

	"github.com/tci-platform/trinity/internal/domain/documents"
)

var (
	ErrReportNotFound   = errors.New("trinity report not found")
	ErrAnalysisNotFound = errors.New("document analysis not found")
)

// Repository persists reports per claim. One live report per claim; a re-run
// with the same fingerprint updates in place.
type Repository interface {
	Save(ctx context.Context, tenantID string, report *Report) error
	FindByClaimID(ctx context.Context, tenantID, claimID string) (*Report, error)
}

// AnalysisRepository stores the per-document view derived from a run: which
// checks used a document and what they concluded about it.
type AnalysisRepository interface {
	SaveBatch(ctx context.Context, tenantID string, analyses []DocumentAnalysis) error
	FindByDocumentID(ctx context.Context, tenantID, documentID string) (*DocumentAnalysis, error)
}

// Reasoner turns a finished report into a human narrative. Implementations
// may call an LLM; failures are non-fatal to the run.
type Reasoner interface {
	Reason(ctx context.Context, report *Report, bag documents.Bag) (Reasoning, error)
}

// Reasoning is the narrative layer added on top of a deterministic report.
type Reasoning struct {
	Narrative string   `json:"narrative"`
	Insights  []string `json:"insights,omitempty"`
}

// ReportArchive writes the full report JSON to durable object storage for
// audit. Best effort; archive failures never fail the run.
type ReportArchive interface {
	Archive(ctx context.Context, tenantID string, report *Report) (url string, err error)
}

// DocumentAnalysis is the per-document projection of a run.
type DocumentAnalysis struct {
	DocumentID   string         `json:"document_id"`
	ClaimID      string         `json:"claim_id"`
	DocumentType documents.Type `json:"document_type"`
	ChecksRun    []string       `json:"checks_run"`
	ChecksFailed []string       `json:"checks_failed"`
	RedFlags     []string       `json:"red_flags,omitempty"`
	Confidence   float64        `json:"confidence"`
}

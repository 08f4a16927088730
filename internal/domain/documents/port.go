package documents

import (
	"context"
	"errors"
)

var ErrDocumentNotFound = errors.New("document not found")

// Repository reads extracted documents produced by the extraction pipeline.
type Repository interface {
	ListByClaimID(ctx context.Context, tenantID, claimID string) ([]ExtractedDocument, error)
	FindByID(ctx context.Context, tenantID, documentID string) (*ExtractedDocument, error)
}

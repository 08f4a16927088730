package claims

import (
	"context"
	"errors"
)

var ErrClaimNotFound = errors.New("claim not found")

// Repository reads the claim projection maintained by the claims service.
// Trinity never writes claims.
type Repository interface {
	FindByID(ctx context.Context, tenantID string, id ClaimID) (*Claim, error)
}

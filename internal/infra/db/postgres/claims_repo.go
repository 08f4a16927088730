package postgres

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/tci-platform/trinity/internal/domain/claims"
)

// ClaimRepository reads the claim projection table owned by the claims
// service. No writes here.
type ClaimRepository struct{ db *sql.DB }

func NewClaimRepository(db *sql.DB) *ClaimRepository { return &ClaimRepository{db: db} }

func (r *ClaimRepository) FindByID(ctx context.Context, tenantID string, id domain.ClaimID) (*domain.Claim, error) {
	const q = `
SELECT id, tenant_id, claim_number, vehicle_plate_number, vehicle_make, vehicle_model,
       chassis_number, incident_date, claimant_name, claimant_nric, description
FROM claims
WHERE tenant_id=$1 AND id=$2
LIMIT 1;`
	row := r.db.QueryRowContext(ctx, q, tenantID, id)

	var c domain.Claim
	var incident sql.NullTime
	if err := row.Scan(
		&c.ID, &c.TenantID, &c.ClaimNumber,
		&c.VehiclePlateNumber, &c.VehicleMake, &c.VehicleModel,
		&c.ChassisNumber, &incident,
		&c.Claimant.Name, &c.Claimant.NRIC, &c.Description,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClaimNotFound
		}
		return nil, err
	}
	if incident.Valid {
		c.IncidentDate = incident.Time
	}
	return &c, nil
}

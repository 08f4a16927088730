package claims

import "time"

// ClaimID tipe untuk Claim
type ClaimID string

// Claimant identity as recorded at claim intake
type Claimant struct {
	Name string `json:"name"`
	NRIC string `json:"nric"`
}

// Claim is the read-only projection the engine receives from the claims
// subsystem. The engine never mutates it.
type Claim struct {
	ID                 ClaimID   `json:"id"`
	TenantID           string    `json:"tenant_id"`
	ClaimNumber        string    `json:"claim_number"`
	VehiclePlateNumber string    `json:"vehicle_plate_number"`
	VehicleMake        string    `json:"vehicle_make"`
	VehicleModel       string    `json:"vehicle_model"`
	ChassisNumber      string    `json:"chassis_number"`
	IncidentDate       time.Time `json:"incident_date"`
	Claimant           Claimant  `json:"claimant"`
	Description        string    `json:"description"`
}

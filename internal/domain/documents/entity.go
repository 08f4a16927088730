package documents

import (
	"encoding/json"
	"time"
)

// Type enum untuk jenis dokumen klaim
type Type string

const (
	TypeMyKadFront      Type = "MYKAD_FRONT"
	TypePoliceReport    Type = "POLICE_REPORT"
	TypePolicyDocument  Type = "POLICY_DOCUMENT"
	TypeVehicleRegCard  Type = "VEHICLE_REG_CARD"
	TypeRepairQuotation Type = "REPAIR_QUOTATION"
	TypeDamagePhoto     Type = "DAMAGE_PHOTO"
)

// AllTypes in the order the intake wizard collects them.
var AllTypes = []Type{
	TypeMyKadFront,
	TypePoliceReport,
	TypePolicyDocument,
	TypeVehicleRegCard,
	TypeRepairQuotation,
	TypeDamagePhoto,
}

// Valid reports whether t is a known document type.
func (t Type) Valid() bool {
	for _, k := range AllTypes {
		if t == k {
			return true
		}
	}
	return false
}

// ExtractedDocument is what the OCR/LLM extraction collaborator hands over.
// Immutable once produced; a re-upload supersedes it with a new record.
type ExtractedDocument struct {
	ID              string          `json:"id"`
	ClaimID         string          `json:"claim_id,omitempty"`
	Type            Type            `json:"type"`
	ExtractedData   json.RawMessage `json:"extracted_data"`
	ConfidenceScore float64         `json:"confidence_score"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Document is the normalized, schema-typed view of one extracted document.
// Exactly one of the per-type pointers is non-nil, matching Type.
type Document struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`

	MyKad     *MyKad           `json:"mykad,omitempty"`
	Police    *PoliceReport    `json:"police_report,omitempty"`
	Policy    *PolicyDocument  `json:"policy_document,omitempty"`
	RegCard   *VehicleRegCard  `json:"vehicle_reg_card,omitempty"`
	Quotation *RepairQuotation `json:"repair_quotation,omitempty"`
	Photo     *DamagePhoto     `json:"damage_photo,omitempty"`
}

package documents

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SchemaError indicates the raw extraction payload is structurally invalid
// (not a JSON object). Missing fields are never an error; they normalize to
// Unknown.
type SchemaError struct {
	DocType Type
	Reason  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("document schema %s: %s", e.DocType, e.Reason)
}

// Normalize turns an extracted document into its typed, fully-defaulted form.
// It only fails when the payload cannot be read as a JSON object at all.
func Normalize(src ExtractedDocument) (*Document, error) {
	if !src.Type.Valid() {
		return nil, &SchemaError{DocType: src.Type, Reason: "unknown document type"}
	}

	m := map[string]any{}
	if len(src.ExtractedData) > 0 {
		if err := json.Unmarshal(src.ExtractedData, &m); err != nil {
			return nil, &SchemaError{DocType: src.Type, Reason: "extracted_data is not a JSON object"}
		}
	}

	doc := &Document{
		ID:         src.ID,
		Type:       src.Type,
		Confidence: clamp01(pickConfidence(src.ConfidenceScore, m)),
		CreatedAt:  src.CreatedAt,
	}

	switch src.Type {
	case TypeMyKadFront:
		doc.MyKad = normalizeMyKad(m)
	case TypePoliceReport:
		doc.Police = normalizePoliceReport(m)
	case TypePolicyDocument:
		doc.Policy = normalizePolicy(m)
	case TypeVehicleRegCard:
		doc.RegCard = normalizeRegCard(m)
	case TypeRepairQuotation:
		doc.Quotation = normalizeQuotation(m)
	case TypeDamagePhoto:
		doc.Photo = normalizePhoto(m)
	}
	return doc, nil
}

func normalizeMyKad(m map[string]any) *MyKad {
	return &MyKad{
		FullName:     str(m, "full_name"),
		ICNumber:     str(m, "ic_number"),
		DateOfBirth:  str(m, "date_of_birth"),
		Age:          intval(m, "age"),
		Gender:       str(m, "gender"),
		Citizenship:  str(m, "citizenship"),
		Address:      str(m, "address"),
		Authenticity: normalizeAuth(m),
	}
}

func normalizePolicy(m map[string]any) *PolicyDocument {
	p := &PolicyDocument{
		InsurerName:   str(m, "insurer_name"),
		PolicyNumber:  str(m, "policy_number"),
		PolicyStatus:  str(m, "policy_status"),
		EffectiveDate: str(m, "effective_date"),
		ExpiryDate:    str(m, "expiry_date"),
		Authenticity:  normalizeAuth(m),
	}
	if ph, ok := sub(m, "policyholder"); ok {
		p.Policyholder = normalizeParty(ph)
	}
	if ip, ok := sub(m, "insured_person"); ok {
		p.InsuredPerson = normalizeParty(ip)
	}
	if cov, ok := sub(m, "coverage"); ok {
		p.Coverage = &PolicyCoverage{
			SumInsured:    num(cov, "sum_insured"),
			PremiumAmount: num(cov, "premium_amount"),
			Description:   str(cov, "description"),
		}
	}
	if v, ok := sub(m, "vehicle"); ok {
		p.Vehicle = &PolicyVehicle{
			RegistrationNumber: str(v, "registration_number"),
			ChassisNumber:      str(v, "chassis_number"),
			Make:               str(v, "make"),
			Model:              str(v, "model"),
		}
	}
	return p
}

func normalizeParty(m map[string]any) *PolicyParty {
	return &PolicyParty{
		Name:                       str(m, "name"),
		ICNumber:                   str(m, "ic_number"),
		DateOfBirth:                str(m, "date_of_birth"),
		Address:                    str(m, "address"),
		Email:                      str(m, "email"),
		RelationshipToPolicyholder: str(m, "relationship_to_policyholder"),
	}
}

func normalizeRegCard(m map[string]any) *VehicleRegCard {
	return &VehicleRegCard{
		RegistrationNumber: str(m, "registration_number"),
		OwnerName:          str(m, "owner_name"),
		OwnerICNumber:      str(m, "owner_ic_number"),
		ChassisNumber:      str(m, "chassis_number"),
		EngineNumber:       str(m, "engine_number"),
		VehicleMake:        str(m, "vehicle_make"),
		VehicleModel:       str(m, "vehicle_model"),
		Colour:             str(m, "colour"),
		YearOfManufacture:  str(m, "year_of_manufacture"),
		RoadTaxExpiry:      str(m, "road_tax_expiry"),
		Authenticity:       normalizeAuth(m),
	}
}

func normalizePoliceReport(m map[string]any) *PoliceReport {
	r := &PoliceReport{
		ReportNumber:     str(m, "report_number"),
		ReportDate:       str(m, "report_date"),
		ReportTime:       str(m, "report_time"),
		WeatherCondition: str(m, "weather_condition"),
		Authenticity:     normalizeAuth(m),
	}
	if c, ok := sub(m, "complainant"); ok {
		r.Complainant = &Complainant{
			Name:     str(c, "name"),
			ICNumber: str(c, "ic_number"),
			Gender:   str(c, "gender"),
			Age:      intval(c, "age"),
		}
	}
	if in, ok := sub(m, "incident"); ok {
		r.Incident = &Incident{
			Date:        str(in, "date"),
			Time:        str(in, "time"),
			Location:    str(in, "location"),
			Description: str(in, "description"),
			Weather:     str(in, "weather"),
			RoadSurface: str(in, "road_surface"),
		}
	}
	if sg, ok := sub(m, "signatures"); ok {
		r.Signatures = &Signatures{
			ComplainantPresent:      boolean(sg, "complainant_present"),
			InterpreterPresent:      boolean(sg, "interpreter_present"),
			ReceivingOfficerPresent: boolean(sg, "receiving_officer_present"),
		}
	}
	return r
}

func normalizeQuotation(m map[string]any) *RepairQuotation {
	q := &RepairQuotation{
		QuotationNumber: str(m, "quotation_number"),
		QuotationDate:   str(m, "quotation_date"),
		Authenticity:    normalizeAuth(m),
	}
	if c, ok := sub(m, "costs"); ok {
		q.Costs = &QuotationCosts{
			SubtotalAmount: num(c, "subtotal_amount"),
			TotalAmount:    num(c, "total_amount"),
		}
	}
	if rp, ok := sub(m, "repairs"); ok {
		q.PartsItems = normalizeItems(rp, "parts_items")
		q.LaborItems = normalizeItems(rp, "labor_items")
	}
	if v, ok := sub(m, "vehicle"); ok {
		q.Vehicle = &QuotationVehicle{
			RegistrationNumber: str(v, "registration_number"),
			Make:               str(v, "make"),
			Model:              str(v, "model"),
			Color:              str(v, "color"),
			ChassisNumber:      str(v, "chassis_number"),
		}
	}
	return q
}

func normalizeItems(m map[string]any, key string) []LineItem {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	var items []LineItem
	for _, it := range raw {
		im, ok := it.(map[string]any)
		if !ok {
			continue
		}
		items = append(items, LineItem{
			Description: str(im, "description"),
			Quantity:    intval(im, "quantity"),
			UnitPrice:   num(im, "unit_price"),
			TotalPrice:  num(im, "total_price"),
		})
	}
	return items
}

func normalizePhoto(m map[string]any) *DamagePhoto {
	p := &DamagePhoto{
		ImageCount:           intval(m, "image_count"),
		WeatherCondition:     str(m, "weather_condition"),
		RoadSurfaceCondition: str(m, "road_surface_condition"),
		Authenticity:         normalizeAuth(m),
	}
	if md, ok := sub(m, "metadata"); ok {
		p.Metadata = &PhotoMetadata{DateCreated: str(md, "date_created")}
	}
	if da, ok := sub(m, "damage_assessment"); ok {
		p.Assessment = &DamageAssessment{
			DamagedAreas:            strs(da, "damaged_areas"),
			DamageTypes:             strs(da, "damage_types"),
			StructuralDamageVisible: str(da, "structural_damage_visible"),
		}
	}
	if v, ok := sub(m, "vehicle"); ok {
		p.Vehicle = &PhotoVehicle{
			RegistrationNumber: str(v, "registration_number"),
			Type:               str(v, "type"),
			Make:               str(v, "make"),
			Model:              str(v, "model"),
			Color:              str(v, "color"),
		}
	}
	if env, ok := sub(m, "environment"); ok {
		p.Environment = &PhotoEnvironment{
			LocationType:      str(env, "location_type"),
			RoadCondition:     str(env, "road_condition"),
			LightingCondition: str(env, "lighting_condition"),
		}
	}
	if ac, ok := sub(m, "accident_context"); ok {
		p.Context = &AccidentContext{
			CollisionType:  str(ac, "collision_type"),
			ImpactSeverity: str(ac, "impact_severity"),
			AirbagDeployed: str(ac, "airbag_deployed"),
		}
	}
	return p
}

func normalizeAuth(m map[string]any) *Authenticity {
	a, ok := sub(m, "authenticity")
	if !ok {
		return nil
	}
	return &Authenticity{
		AIGenerated:           boolean(a, "ai_generated"),
		ScreenCapture:         boolean(a, "screen_capture"),
		SuspiciousElements:    strs(a, "suspicious_elements"),
		PotentialManipulation: strs(a, "potential_manipulation"),
	}
}

// --- lenient coercion helpers, mirip BaseNormalizer ---

func sub(m map[string]any, key string) (map[string]any, bool) {
	v, ok := m[key].(map[string]any)
	return v, ok
}

func str(m map[string]any, key string) Field[string] {
	switch v := m[key].(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return Known(s)
		}
	case float64:
		return Known(strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		return Known(strconv.FormatBool(v))
	}
	return Unknown[string]()
}

func num(m map[string]any, key string) Field[float64] {
	switch v := m[key].(type) {
	case float64:
		return Known(v)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return Known(f)
		}
	}
	return Unknown[float64]()
}

func intval(m map[string]any, key string) Field[int] {
	switch v := m[key].(type) {
	case float64:
		return Known(int(v))
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return Known(n)
		}
	}
	return Unknown[int]()
}

func boolean(m map[string]any, key string) Field[bool] {
	if v, ok := m[key].(bool); ok {
		return Known(v)
	}
	return Unknown[bool]()
}

func strs(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func pickConfidence(outer float64, m map[string]any) float64 {
	if outer > 0 {
		return outer
	}
	if f, ok := num(m, "confidence_score").Get(); ok {
		return f
	}
	return 0
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

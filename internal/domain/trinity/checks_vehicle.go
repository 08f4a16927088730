package trinity

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tci-platform/trinity/internal/domain/claims"
	"github.com/tci-platform/trinity/internal/domain/documents"
)

func vehicleChecks() []Definition {
	return []Definition{
		{
			ID:               "VEH-001",
			Name:             "Klon Vehicle (Asset Identity)",
			Category:         CategoryVehicle,
			RequiredDocTypes: []documents.Type{documents.TypeVehicleRegCard, documents.TypeDamagePhoto},
			Severity:         SeverityHigh,
			Evaluate:         checkKlonVehicle,
		},
		{
			ID:               "VEH-002",
			Name:             "Chassis Number Match",
			Category:         CategoryVehicle,
			RequiredDocTypes: []documents.Type{documents.TypeVehicleRegCard},
			Severity:         SeverityCritical,
			Evaluate:         checkChassisNumber,
		},
		{
			ID:               "VEH-003",
			Name:             "Road Tax Validity",
			Category:         CategoryVehicle,
			RequiredDocTypes: []documents.Type{documents.TypeVehicleRegCard},
			Severity:         SeverityCritical,
			Evaluate:         checkRoadTax,
		},
		{
			ID:               "VEH-004",
			Name:             "Vehicle in Police Report",
			Category:         CategoryVehicle,
			RequiredDocTypes: []documents.Type{documents.TypePoliceReport},
			Severity:         SeverityHigh,
			Evaluate:         checkReportVehicle,
		},
		{
			ID:               "VEH-005",
			Name:             "Registered Owner vs Policyholder",
			Category:         CategoryVehicle,
			RequiredDocTypes: []documents.Type{documents.TypeVehicleRegCard, documents.TypePolicyDocument},
			Severity:         SeverityHigh,
			Evaluate:         checkRegisteredOwner,
		},
		{
			ID:               "VEH-006",
			Name:             "Quotation Vehicle Match",
			Category:         CategoryVehicle,
			RequiredDocTypes: []documents.Type{documents.TypeRepairQuotation},
			Severity:         SeverityCritical,
			Evaluate:         checkQuotationVehicle,
		},
		{
			ID:               "VEH-007",
			Name:             "Policy Vehicle vs Registration Card",
			Category:         CategoryVehicle,
			RequiredDocTypes: []documents.Type{documents.TypeVehicleRegCard, documents.TypePolicyDocument},
			Severity:         SeverityCritical,
			Evaluate:         checkPolicyVehicle,
		},
		{
			ID:               "VEH-008",
			Name:             "Quoted Parts vs Visible Damage",
			Category:         CategoryVehicle,
			RequiredDocTypes: []documents.Type{documents.TypeDamagePhoto, documents.TypeRepairQuotation},
			Severity:         SeverityMedium,
			Evaluate:         checkQuoteDamageOverlap,
		},
	}
}

// checkKlonVehicle: plate matches but colour or model diverges between the
// registration card and the photographed car, the telltale of a cloned
// ("klon") vehicle wearing a legitimate plate.
func checkKlonVehicle(claim *claims.Claim, bag documents.Bag) (Outcome, error) {
	reg := bag[documents.TypeVehicleRegCard].RegCard
	photo := bag[documents.TypeDamagePhoto].Photo
	if photo.Vehicle == nil {
		return passUnknown("no vehicle detail extracted from photos"), nil
	}

	var mismatches, flags []string

	if regPlate, ok := reg.RegistrationNumber.Get(); ok {
		if photoPlate, ok2 := photo.Vehicle.RegistrationNumber.Get(); ok2 &&
			cleanPlate(regPlate) != cleanPlate(photoPlate) {
			mismatches = append(mismatches, fmt.Sprintf("plate %s vs %s", regPlate, photoPlate))
			flags = append(flags, "Vehicle plate mismatch")
		}
	}
	if regColour, ok := reg.Colour.Get(); ok {
		if photoColour, ok2 := photo.Vehicle.Color.Get(); ok2 &&
			!strings.EqualFold(strings.TrimSpace(regColour), strings.TrimSpace(photoColour)) {
			mismatches = append(mismatches, fmt.Sprintf("colour %s vs %s", regColour, photoColour))
			flags = append(flags, "Vehicle color mismatch")
		}
	}
	if regModel, ok := reg.VehicleModel.Get(); ok {
		if photoModel, ok2 := photo.Vehicle.Model.Get(); ok2 && !namesMatch(regModel, photoModel) {
			mismatches = append(mismatches, fmt.Sprintf("model %s vs %s", regModel, photoModel))
			flags = append(flags, "Vehicle model mismatch")
		}
	}
	if regMake, ok := reg.VehicleMake.Get(); ok {
		if photoMake, ok2 := photo.Vehicle.Make.Get(); ok2 && !namesMatch(regMake, photoMake) {
			mismatches = append(mismatches, fmt.Sprintf("make %s vs %s", regMake, photoMake))
			flags = append(flags, "Vehicle make mismatch")
		}
	}

	if len(mismatches) > 0 {
		flags = append(flags, "Potential Klon car")
		return fail(0.85,
			"photographed vehicle differs from the registration card: "+strings.Join(mismatches, "; "),
			flags...), nil
	}
	return pass(0.9, "photographed vehicle matches the registration card"), nil
}

// checkChassisNumber: exact match, no fuzz. Same plate with a different
// chassis means the card belongs to another car.
func checkChassisNumber(claim *claims.Claim, bag documents.Bag) (Outcome, error) {
	reg := bag[documents.TypeVehicleRegCard].RegCard
	regChassis, ok := reg.ChassisNumber.Get()
	if !ok || claim.ChassisNumber == "" {
		return passUnknown("chassis number missing on the card or the claim"), nil
	}
	if cleanPlate(regChassis) != cleanPlate(claim.ChassisNumber) {
		return fail(1.0,
			fmt.Sprintf("registration card chassis %s does not match claim chassis %s", regChassis, claim.ChassisNumber),
			"Chassis number mismatch"), nil
	}
	return pass(1.0, "chassis number matches the claim record"), nil
}

// checkRoadTax: driving with expired road tax is unlawful; an incident after
// expiry voids the claim.
func checkRoadTax(claim *claims.Claim, bag documents.Bag) (Outcome, error) {
	reg := bag[documents.TypeVehicleRegCard].RegCard
	if claim.IncidentDate.IsZero() {
		return passUnknown("claim has no incident date"), nil
	}
	expStr, ok := reg.RoadTaxExpiry.Get()
	if !ok {
		return passUnknown("road tax expiry not extracted"), nil
	}
	expiry, ok := parseDate(expStr)
	if !ok {
		return passUnknown(fmt.Sprintf("road tax expiry %q not parseable", expStr)), nil
	}
	if expiry.Before(claim.IncidentDate) && !sameDay(expiry, claim.IncidentDate) {
		return fail(1.0,
			fmt.Sprintf("road tax expired %s, before the incident on %s",
				expiry.Format("2006-01-02"), claim.IncidentDate.Format("2006-01-02")),
			"Road tax expired", "Illegal to drive"), nil
	}
	return pass(1.0, "road tax was valid at the incident date"), nil
}

// plate-like tokens inside free text, e.g. WX1234, ABC 8888
var platePattern = regexp.MustCompile(`\b[A-Z]{1,3}\s?\d{1,4}\s?[A-Z]?\b`)

// isRoadMarker filters tokens that look like plates but are location markers:
// kilometre posts ("KM 12") and JKR route numbers.
func isRoadMarker(p string) bool {
	i := 0
	for i < len(p) && p[i] >= 'A' && p[i] <= 'Z' {
		i++
	}
	switch p[:i] {
	case "KM", "JKR":
		return true
	}
	return false
}

// checkReportVehicle: if the police report narrative names a vehicle, it must
// be the claimed one.
func checkReportVehicle(claim *claims.Claim, bag documents.Bag) (Outcome, error) {
	rep := bag[documents.TypePoliceReport].Police
	if claim.VehiclePlateNumber == "" {
		return passUnknown("claim has no vehicle plate number"), nil
	}
	if rep.Incident == nil {
		return passUnknown("police report has no incident narrative"), nil
	}
	desc, ok := rep.Incident.Description.Get()
	if !ok {
		return passUnknown("police report has no incident narrative"), nil
	}

	claimPlate := cleanPlate(claim.VehiclePlateNumber)
	upper := strings.ToUpper(desc)
	if strings.Contains(cleanPlate(upper), claimPlate) {
		return pass(1.0, fmt.Sprintf("police report mentions the claimed vehicle %s", claim.VehiclePlateNumber)), nil
	}

	var foreign []string
	for _, tok := range platePattern.FindAllString(upper, -1) {
		p := cleanPlate(tok)
		// short all-letter tokens are words, not plates
		if len(p) < 4 || !strings.ContainsAny(p, "0123456789") {
			continue
		}
		if isRoadMarker(p) {
			continue
		}
		if p != claimPlate {
			foreign = append(foreign, tok)
		}
	}
	if len(foreign) > 0 {
		return fail(0.7,
			fmt.Sprintf("police report mentions vehicle(s) %s, not the claimed %s",
				strings.Join(foreign, ", "), claim.VehiclePlateNumber),
			"Inconsistent vehicle in report"), nil
	}
	return passUnknown("police report narrative names no vehicle plate"), nil
}

// checkRegisteredOwner: the car's registered owner should be the policyholder
// or a person named on the policy.
func checkRegisteredOwner(claim *claims.Claim, bag documents.Bag) (Outcome, error) {
	reg := bag[documents.TypeVehicleRegCard].RegCard
	pol := bag[documents.TypePolicyDocument].Policy

	ownerIC, icOK := reg.OwnerICNumber.Get()
	ownerName, nameOK := reg.OwnerName.Get()
	if !icOK && !nameOK {
		return passUnknown("registered owner not extracted from the card"), nil
	}

	if icOK {
		if partyMatchesIC(pol.Policyholder, ownerIC) || ipMatchesIC(pol.InsuredPerson, ownerIC) {
			return pass(1.0, "registered owner is covered by the policy"), nil
		}
	} else {
		if partyMatchesName(pol.Policyholder, ownerName) || partyMatchesName(pol.InsuredPerson, ownerName) {
			return pass(0.8, "registered owner name matches a covered person; NRIC not extracted"), nil
		}
	}
	return fail(0.8,
		fmt.Sprintf("registered owner %s is neither the policyholder nor a named insured person",
			describePerson(ownerName, ownerIC)),
		"Policyholder is not vehicle owner"), nil
}

// checkQuotationVehicle: a repair quotation for another car entirely.
func checkQuotationVehicle(claim *claims.Claim, bag documents.Bag) (Outcome, error) {
	quo := bag[documents.TypeRepairQuotation].Quotation
	if quo.Vehicle == nil {
		return passUnknown("quotation has no vehicle section"), nil
	}

	plate, plateOK := quo.Vehicle.RegistrationNumber.Get()
	if plateOK && claim.VehiclePlateNumber != "" {
		if cleanPlate(plate) != cleanPlate(claim.VehiclePlateNumber) {
			return fail(0.95,
				fmt.Sprintf("quotation is for vehicle %s, claim is for %s", plate, claim.VehiclePlateNumber),
				"Quotation for different vehicle", "Potential fraud"), nil
		}
	}
	if chassis, ok := quo.Vehicle.ChassisNumber.Get(); ok && claim.ChassisNumber != "" {
		if cleanPlate(chassis) != cleanPlate(claim.ChassisNumber) {
			return fail(0.95,
				fmt.Sprintf("quotation chassis %s does not match claim chassis %s", chassis, claim.ChassisNumber),
				"Quotation for different vehicle", "Potential fraud"), nil
		}
	}
	if mk, ok := quo.Vehicle.Make.Get(); ok && claim.VehicleMake != "" && !namesMatch(mk, claim.VehicleMake) {
		return fail(0.8,
			fmt.Sprintf("quotation is for a %s, claim is for a %s", mk, claim.VehicleMake),
			"Quotation for different vehicle"), nil
	}
	if !plateOK && claim.VehiclePlateNumber != "" {
		return pass(unknownConfidence, "quotation vehicle plate not extracted; make/model raised no conflict"), nil
	}
	return pass(1.0, "quotation vehicle matches the insured vehicle"), nil
}

// checkPolicyVehicle: plate and chassis on the policy schedule must agree
// with the registration card.
func checkPolicyVehicle(claim *claims.Claim, bag documents.Bag) (Outcome, error) {
	reg := bag[documents.TypeVehicleRegCard].RegCard
	pol := bag[documents.TypePolicyDocument].Policy
	if pol.Vehicle == nil {
		return passUnknown("policy document has no vehicle schedule"), nil
	}

	polPlate, p1 := pol.Vehicle.RegistrationNumber.Get()
	regPlate, p2 := reg.RegistrationNumber.Get()
	polChassis, c1 := pol.Vehicle.ChassisNumber.Get()
	regChassis, c2 := reg.ChassisNumber.Get()

	if !p1 && !c1 {
		return passUnknown("policy vehicle schedule carries no identifiers"), nil
	}
	if p1 && p2 && cleanPlate(polPlate) != cleanPlate(regPlate) {
		return fail(1.0,
			fmt.Sprintf("policy schedule names %s, registration card names %s", polPlate, regPlate),
			"Policy vehicle mismatch"), nil
	}
	if c1 && c2 && cleanPlate(polChassis) != cleanPlate(regChassis) {
		return fail(1.0,
			fmt.Sprintf("policy chassis %s does not match card chassis %s", polChassis, regChassis),
			"Policy vehicle mismatch", "Chassis number mismatch"), nil
	}
	return pass(1.0, "policy schedule matches the registration card"), nil
}

// checkQuoteDamageOverlap: the parts quoted for repair should relate to what
// the photos show as damaged. Keyword containment only; vision embedding is
// out of reach here, hence the modest confidence.
func checkQuoteDamageOverlap(claim *claims.Claim, bag documents.Bag) (Outcome, error) {
	photo := bag[documents.TypeDamagePhoto].Photo
	quo := bag[documents.TypeRepairQuotation].Quotation

	if photo.Assessment == nil || len(photo.Assessment.DamagedAreas) == 0 {
		return passUnknown("no damaged areas extracted from photos"), nil
	}
	var quoted []string
	for _, it := range quo.PartsItems {
		if d, ok := it.Description.Get(); ok {
			quoted = append(quoted, strings.ToLower(d))
		}
	}
	if len(quoted) == 0 {
		return passUnknown("quotation has no parts line items"), nil
	}

	covered := 0
	for _, area := range photo.Assessment.DamagedAreas {
		needle := strings.ToLower(strings.ReplaceAll(area, "_", " "))
		for _, q := range quoted {
			if strings.Contains(q, needle) || strings.Contains(needle, q) {
				covered++
				break
			}
		}
	}
	ratio := float64(covered) / float64(len(photo.Assessment.DamagedAreas))
	if ratio < 0.3 {
		return fail(0.6,
			fmt.Sprintf("only %d of %d visually damaged areas appear in the quotation (%s)",
				covered, len(photo.Assessment.DamagedAreas), strings.Join(photo.Assessment.DamagedAreas, ", ")),
			"Quoted repairs unrelated to visible damage"), nil
	}
	return pass(0.6, fmt.Sprintf("%d of %d damaged areas covered by quoted parts", covered, len(photo.Assessment.DamagedAreas))), nil
}

package trinity

import (
	"fmt"

	"github.com/tci-platform/trinity/internal/domain/claims"
	"github.com/tci-platform/trinity/internal/domain/documents"
)

func identityChecks() []Definition {
	return []Definition{
		{
			ID:               "ID-001",
			Name:             "MyKad vs Claimant Identity",
			Category:         CategoryIdentity,
			RequiredDocTypes: []documents.Type{documents.TypeMyKadFront},
			Severity:         SeverityCritical,
			Evaluate:         checkMyKadClaimant,
		},
		{
			ID:               "ID-002",
			Name:             "MyKad vs Policyholder",
			Category:         CategoryIdentity,
			RequiredDocTypes: []documents.Type{documents.TypeMyKadFront, documents.TypePolicyDocument},
			Severity:         SeverityCritical,
			Evaluate:         checkMyKadPolicyholder,
		},
		{
			ID:               "ID-003",
			Name:             "Police Complainant vs Claimant",
			Category:         CategoryIdentity,
			RequiredDocTypes: []documents.Type{documents.TypePoliceReport},
			Severity:         SeverityCritical,
			Evaluate:         checkComplainantClaimant,
		},
		{
			ID:               "ID-004",
			Name:             "Ghost / Unauthorized Driver",
			Category:         CategoryIdentity,
			RequiredDocTypes: []documents.Type{documents.TypePolicyDocument, documents.TypePoliceReport},
			Severity:         SeverityHigh,
			Evaluate:         checkGhostDriver,
		},
		{
			ID:               "ID-005",
			Name:             "Underage Driver",
			Category:         CategoryIdentity,
			RequiredDocTypes: []documents.Type{documents.TypeMyKadFront},
			Severity:         SeverityCritical,
			Evaluate:         checkUnderageDriver,
		},
		{
			ID:               "ID-006",
			Name:             "NRIC vs Stated Date of Birth",
			Category:         CategoryIdentity,
			RequiredDocTypes: []documents.Type{documents.TypeMyKadFront},
			Severity:         SeverityCritical,
			Evaluate:         checkNRICDOBConsistency,
		},
	}
}

// checkMyKadClaimant: NRIC on the MyKad must equal the claimant NRIC exactly
// (digits only); names are fuzzy-matched on top.
func checkMyKadClaimant(claim *claims.Claim, bag documents.Bag) (Outcome, error) {
	mk := bag[documents.TypeMyKadFront].MyKad

	ic, icKnown := mk.ICNumber.Get()
	if claim.Claimant.NRIC == "" || !icKnown {
		return passUnknown("MyKad or claimant NRIC not available for comparison"), nil
	}

	icMatch := cleanNRIC(ic) == cleanNRIC(claim.Claimant.NRIC)
	name, nameKnown := mk.FullName.Get()

	if !icMatch {
		return fail(0.95,
			fmt.Sprintf("MyKad NRIC %s does not match claimant NRIC %s", ic, claim.Claimant.NRIC),
			"Identity mismatch", "Stolen ID suspected"), nil
	}
	if nameKnown && claim.Claimant.Name != "" && !namesMatch(name, claim.Claimant.Name) {
		sim := nameSimilarity(name, claim.Claimant.Name)
		return fail(0.85,
			fmt.Sprintf("NRIC matches but name similarity is %.0f%% (%s vs %s)", sim*100, name, claim.Claimant.Name),
			"Identity mismatch"), nil
	}
	if !nameKnown {
		return pass(unknownConfidence, "NRIC matches; MyKad name not extracted"), nil
	}
	return pass(1.0, fmt.Sprintf("MyKad identity matches claimant (%s)", claim.Claimant.Name)), nil
}

// checkMyKadPolicyholder compares the MyKad identity against the policyholder
// named on the policy document.
func checkMyKadPolicyholder(claim *claims.Claim, bag documents.Bag) (Outcome, error) {
	mk := bag[documents.TypeMyKadFront].MyKad
	pol := bag[documents.TypePolicyDocument].Policy

	if pol.Policyholder == nil {
		return passUnknown("policy document has no policyholder section"), nil
	}
	mkIC, mkOK := mk.ICNumber.Get()
	phIC, phOK := pol.Policyholder.ICNumber.Get()
	if !mkOK || !phOK {
		return passUnknown("NRIC missing on MyKad or policyholder record"), nil
	}
	if cleanNRIC(mkIC) != cleanNRIC(phIC) {
		// bukan otomatis fraud: bisa jadi insured person yang klaim
		if ipMatchesIC(pol.InsuredPerson, mkIC) {
			return pass(0.9, "MyKad holder is the insured person, not the policyholder"), nil
		}
		return fail(0.9,
			fmt.Sprintf("MyKad NRIC %s matches neither policyholder %s nor insured person", mkIC, phIC),
			"Identity mismatch"), nil
	}
	mkName, nameOK := mk.FullName.Get()
	phName, phNameOK := pol.Policyholder.Name.Get()
	if nameOK && phNameOK && !namesMatch(mkName, phName) {
		return fail(0.8,
			fmt.Sprintf("policyholder NRIC matches but names diverge (%s vs %s)", mkName, phName),
			"Identity mismatch"), nil
	}
	return pass(1.0, "MyKad identity matches policyholder"), nil
}

// checkComplainantClaimant: the person who lodged the police report should be
// the claimant.
func checkComplainantClaimant(claim *claims.Claim, bag documents.Bag) (Outcome, error) {
	rep := bag[documents.TypePoliceReport].Police
	if rep.Complainant == nil {
		return passUnknown("police report has no complainant section"), nil
	}

	ic, icKnown := rep.Complainant.ICNumber.Get()
	name, nameKnown := rep.Complainant.Name.Get()

	if icKnown && claim.Claimant.NRIC != "" {
		if cleanNRIC(ic) != cleanNRIC(claim.Claimant.NRIC) {
			return fail(0.95,
				fmt.Sprintf("complainant NRIC %s does not match claimant NRIC %s", ic, claim.Claimant.NRIC),
				"Complainant mismatch", "Identity verification failed"), nil
		}
		if nameKnown && claim.Claimant.Name != "" && !namesMatch(name, claim.Claimant.Name) {
			return fail(0.8,
				fmt.Sprintf("complainant NRIC matches but name similarity is %.0f%% (%s vs %s)",
					nameSimilarity(name, claim.Claimant.Name)*100, name, claim.Claimant.Name),
				"Complainant mismatch"), nil
		}
		return pass(1.0, "police report complainant matches claimant"), nil
	}

	if nameKnown && claim.Claimant.Name != "" {
		if !namesMatch(name, claim.Claimant.Name) {
			return fail(0.7,
				fmt.Sprintf("complainant name %s does not match claimant %s (no NRIC to confirm)", name, claim.Claimant.Name),
				"Complainant mismatch"), nil
		}
		return pass(0.8, "complainant name matches claimant; NRIC not extracted"), nil
	}
	return passUnknown("complainant identity not extracted from police report"), nil
}

// checkGhostDriver: the police report complainant must be the policyholder or
// a named insured person; anyone else is an unauthorized driver.
func checkGhostDriver(claim *claims.Claim, bag documents.Bag) (Outcome, error) {
	pol := bag[documents.TypePolicyDocument].Policy
	rep := bag[documents.TypePoliceReport].Police

	if rep.Complainant == nil {
		return passUnknown("police report has no complainant to verify against the policy"), nil
	}
	compIC, icKnown := rep.Complainant.ICNumber.Get()
	compName, nameKnown := rep.Complainant.Name.Get()
	if !icKnown && !nameKnown {
		return passUnknown("complainant identity not extracted"), nil
	}

	if icKnown {
		if partyMatchesIC(pol.Policyholder, compIC) || ipMatchesIC(pol.InsuredPerson, compIC) {
			return pass(1.0, "report complainant is covered by the policy"), nil
		}
	} else {
		if partyMatchesName(pol.Policyholder, compName) || partyMatchesName(pol.InsuredPerson, compName) {
			return pass(0.8, "report complainant name matches a covered person; NRIC not extracted"), nil
		}
	}
	return fail(0.85,
		fmt.Sprintf("report complainant %s is neither the policyholder nor a named insured person", describePerson(compName, compIC)),
		"Driver not authorized", "Unauthorized driver"), nil
}

// checkUnderageDriver derives date of birth from the MyKad NRIC encoding and
// compares against the incident date and the legal minimum of 17.
func checkUnderageDriver(claim *claims.Claim, bag documents.Bag) (Outcome, error) {
	mk := bag[documents.TypeMyKadFront].MyKad

	ic, ok := mk.ICNumber.Get()
	if !ok {
		return passUnknown("MyKad NRIC not extracted; cannot derive age"), nil
	}
	dob, ok := nricDateOfBirth(ic)
	if !ok {
		return passUnknown(fmt.Sprintf("NRIC %s does not encode a readable birth date", ic)), nil
	}
	if claim.IncidentDate.IsZero() {
		return passUnknown("claim has no incident date to compute age at"), nil
	}
	age := ageAt(dob, claim.IncidentDate)
	if age < minimumDrivingAge {
		return fail(1.0,
			fmt.Sprintf("driver was %d at the incident date; legal minimum is %d", age, minimumDrivingAge),
			"Driver underage", "Illegal driving"), nil
	}
	return pass(1.0, fmt.Sprintf("driver age at incident: %d", age)), nil
}

// checkNRICDOBConsistency: the birth date encoded in the NRIC must agree with
// the date of birth printed on the same card.
func checkNRICDOBConsistency(claim *claims.Claim, bag documents.Bag) (Outcome, error) {
	mk := bag[documents.TypeMyKadFront].MyKad

	ic, icOK := mk.ICNumber.Get()
	stated, dobOK := mk.DateOfBirth.Get()
	if !icOK || !dobOK {
		return passUnknown("NRIC or stated date of birth not extracted"), nil
	}
	encoded, ok := nricDateOfBirth(ic)
	if !ok {
		return passUnknown(fmt.Sprintf("NRIC %s does not encode a readable birth date", ic)), nil
	}
	statedDate, ok := parseDate(stated)
	if !ok {
		return passUnknown(fmt.Sprintf("stated date of birth %q is not parseable", stated)), nil
	}
	if !sameDay(encoded, statedDate) {
		return fail(0.95,
			fmt.Sprintf("NRIC encodes birth date %s but the card states %s",
				encoded.Format("2006-01-02"), statedDate.Format("2006-01-02")),
			"NRIC validation failed", "Potential forged ID"), nil
	}
	return pass(1.0, "NRIC birth date matches the stated date of birth"), nil
}

// --- shared party helpers ---

func partyMatchesIC(p *documents.PolicyParty, ic string) bool {
	if p == nil {
		return false
	}
	v, ok := p.ICNumber.Get()
	return ok && cleanNRIC(v) == cleanNRIC(ic)
}

func ipMatchesIC(p *documents.PolicyParty, ic string) bool {
	return partyMatchesIC(p, ic)
}

func partyMatchesName(p *documents.PolicyParty, name string) bool {
	if p == nil || name == "" {
		return false
	}
	v, ok := p.Name.Get()
	return ok && namesMatch(v, name)
}

func describePerson(name, ic string) string {
	switch {
	case name != "" && ic != "":
		return fmt.Sprintf("%s (%s)", name, ic)
	case name != "":
		return name
	default:
		return ic
	}
}

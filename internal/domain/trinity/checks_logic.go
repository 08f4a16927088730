package trinity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tci-platform/trinity/internal/domain/claims"
	"github.com/tci-platform/trinity/internal/domain/documents"
)

func logicChecks() []Definition {
	return []Definition{
		{
			ID:               "LOG-001",
			Name:             "Incident Within Policy Period",
			Category:         CategoryLogic,
			RequiredDocTypes: []documents.Type{documents.TypePolicyDocument},
			Severity:         SeverityCritical,
			Evaluate:         checkPolicyPeriod,
		},
		{
			ID:               "LOG-002",
			Name:             "Collision Direction vs Damage",
			Category:         CategoryLogic,
			RequiredDocTypes: []documents.Type{documents.TypeDamagePhoto},
			Severity:         SeverityHigh,
			Evaluate:         checkDamageDirection,
		},
		{
			ID:               "LOG-003",
			Name:             "Photo Metadata Timestamp",
			Category:         CategoryLogic,
			RequiredDocTypes: []documents.Type{documents.TypeDamagePhoto},
			Severity:         SeverityCritical,
			Evaluate:         checkPhotoTimestamp,
		},
		{
			ID:               "LOG-004",
			Name:             "Lighting vs Incident Time",
			Category:         CategoryLogic,
			RequiredDocTypes: []documents.Type{documents.TypePoliceReport, documents.TypeDamagePhoto},
			Severity:         SeverityMedium,
			Evaluate:         checkLighting,
		},
		{
			ID:               "LOG-005",
			Name:             "Weather Consistency",
			Category:         CategoryLogic,
			RequiredDocTypes: []documents.Type{documents.TypePoliceReport, documents.TypeDamagePhoto},
			Severity:         SeverityMedium,
			Evaluate:         checkWeather,
		},
		{
			ID:               "LOG-006",
			Name:             "Airbag Deployment Consistency",
			Category:         CategoryLogic,
			RequiredDocTypes: []documents.Type{documents.TypeDamagePhoto},
			Severity:         SeverityMedium,
			Evaluate:         checkAirbag,
		},
		{
			ID:               "LOG-007",
			Name:             "Police Report Signatures",
			Category:         CategoryLogic,
			RequiredDocTypes: []documents.Type{documents.TypePoliceReport},
			Severity:         SeverityMedium,
			Evaluate:         checkSignatures,
		},
		{
			ID:               "LOG-008",
			Name:             "Repair Cost Within Sum Insured",
			Category:         CategoryLogic,
			RequiredDocTypes: []documents.Type{documents.TypeRepairQuotation, documents.TypePolicyDocument},
			Severity:         SeverityHigh,
			Evaluate:         checkRepairCost,
		},
	}
}

// checkPolicyPeriod: the incident must fall inside
// [effective_date, expiry_date], both ends inclusive.
func checkPolicyPeriod(claim *claims.Claim, bag documents.Bag) (Outcome, error) {
	pol := bag[documents.TypePolicyDocument].Policy

	if claim.IncidentDate.IsZero() {
		return passUnknown("claim has no incident date"), nil
	}
	effStr, effOK := pol.EffectiveDate.Get()
	expStr, expOK := pol.ExpiryDate.Get()
	if !effOK || !expOK {
		return passUnknown("policy period not extracted"), nil
	}
	eff, ok1 := parseDate(effStr)
	exp, ok2 := parseDate(expStr)
	if !ok1 || !ok2 {
		return passUnknown(fmt.Sprintf("policy period %q..%q not parseable", effStr, expStr)), nil
	}
	incident := claim.IncidentDate
	inside := (!incident.Before(eff) || sameDay(incident, eff)) &&
		(!incident.After(exp) || sameDay(incident, exp))
	if !inside {
		return fail(1.0,
			fmt.Sprintf("incident %s is outside the policy period %s to %s",
				incident.Format("2006-01-02"), eff.Format("2006-01-02"), exp.Format("2006-01-02")),
			"Accident outside policy period"), nil
	}
	return pass(1.0, fmt.Sprintf("incident %s within policy period %s to %s",
		incident.Format("2006-01-02"), eff.Format("2006-01-02"), exp.Format("2006-01-02"))), nil
}

// directional keyword buckets for the claimed collision vs photographed damage
var (
	rearClaimHints  = []string{"rear-ended", "rear ended", "hit from behind", "from the back", "belakang"}
	frontClaimHints = []string{"head-on", "head on", "hit the front", "frontal", "depan"}
)

// checkDamageDirection: a claim of being rear-ended with damage only on the
// front of the car does not add up.
func checkDamageDirection(claim *claims.Claim, bag documents.Bag) (Outcome, error) {
	photo := bag[documents.TypeDamagePhoto].Photo
	if photo.Assessment == nil || len(photo.Assessment.DamagedAreas) == 0 {
		return passUnknown("no damaged areas extracted from photos"), nil
	}

	narrative := strings.ToLower(claim.Description)
	if rep, ok := bag[documents.TypePoliceReport]; ok && rep.Police != nil && rep.Police.Incident != nil {
		if d, known := rep.Police.Incident.Description.Get(); known {
			narrative += " " + strings.ToLower(d)
		}
	}
	claimedRear := containsAny(narrative, rearClaimHints)
	claimedFront := containsAny(narrative, frontClaimHints)
	if !claimedRear && !claimedFront {
		return passUnknown("claim narrative does not state a collision direction"), nil
	}

	var frontDamage, rearDamage bool
	for _, area := range photo.Assessment.DamagedAreas {
		a := strings.ToLower(area)
		if strings.Contains(a, "front") || strings.Contains(a, "bonnet") || strings.Contains(a, "hood") || strings.Contains(a, "windscreen") {
			frontDamage = true
		}
		if strings.Contains(a, "rear") || strings.Contains(a, "boot") || strings.Contains(a, "trunk") {
			rearDamage = true
		}
	}

	if claimedRear && !rearDamage && frontDamage {
		return fail(0.7,
			fmt.Sprintf("claimant states a rear collision but photos show damage at: %s",
				strings.Join(photo.Assessment.DamagedAreas, ", ")),
			"Inconsistent damage location", "Physics mismatch"), nil
	}
	if claimedFront && !frontDamage && rearDamage {
		return fail(0.7,
			fmt.Sprintf("claimant states a frontal collision but photos show damage at: %s",
				strings.Join(photo.Assessment.DamagedAreas, ", ")),
			"Inconsistent damage location", "Physics mismatch"), nil
	}
	return pass(0.8, "claimed collision direction is consistent with photographed damage"), nil
}

// checkPhotoTimestamp: damage photos cannot have been taken before the
// incident happened.
func checkPhotoTimestamp(claim *claims.Claim, bag documents.Bag) (Outcome, error) {
	photo := bag[documents.TypeDamagePhoto].Photo
	if claim.IncidentDate.IsZero() {
		return passUnknown("claim has no incident date"), nil
	}
	if photo.Metadata == nil {
		return passUnknown("photo metadata not extracted"), nil
	}
	createdStr, ok := photo.Metadata.DateCreated.Get()
	if !ok {
		return passUnknown("photo creation timestamp not extracted"), nil
	}
	created, ok := parseDate(createdStr)
	if !ok {
		return passUnknown(fmt.Sprintf("photo creation timestamp %q not parseable", createdStr)), nil
	}
	if created.Before(claim.IncidentDate) && !sameDay(created, claim.IncidentDate) {
		return fail(0.9,
			fmt.Sprintf("photo metadata says %s, before the incident on %s",
				created.Format("2006-01-02"), claim.IncidentDate.Format("2006-01-02")),
			"Photo taken before accident", "Metadata inconsistency"), nil
	}
	return pass(1.0, "photo timestamps do not precede the incident"), nil
}

// checkLighting: incident at 2pm with photos showing night is an anomaly.
func checkLighting(claim *claims.Claim, bag documents.Bag) (Outcome, error) {
	rep := bag[documents.TypePoliceReport].Police
	photo := bag[documents.TypeDamagePhoto].Photo

	if rep.Incident == nil || photo.Environment == nil {
		return passUnknown("incident time or photo lighting not extracted"), nil
	}
	timeStr, tOK := rep.Incident.Time.Get()
	lighting, lOK := photo.Environment.LightingCondition.Get()
	if !tOK || !lOK {
		return passUnknown("incident time or photo lighting not extracted"), nil
	}
	hour, ok := parseHour(timeStr)
	if !ok {
		return passUnknown(fmt.Sprintf("incident time %q not parseable", timeStr)), nil
	}
	daytime := hour >= 7 && hour < 19
	night := strings.Contains(strings.ToUpper(lighting), "NIGHT")

	if daytime && night {
		return fail(0.7,
			fmt.Sprintf("incident reported at %02d:00 but photos show %s", hour, lighting),
			"Lighting condition mismatch"), nil
	}
	if !daytime && strings.Contains(strings.ToUpper(lighting), "DAY") {
		return fail(0.7,
			fmt.Sprintf("incident reported at %02d:00 but photos show %s", hour, lighting),
			"Lighting condition mismatch"), nil
	}
	return pass(0.8, "photo lighting is consistent with the reported incident time"), nil
}

// checkWeather: a heavy-rain report with bone-dry sunny photos is an anomaly.
func checkWeather(claim *claims.Claim, bag documents.Bag) (Outcome, error) {
	rep := bag[documents.TypePoliceReport].Police
	photo := bag[documents.TypeDamagePhoto].Photo

	reported := weatherFromReport(rep)
	if reported == "" {
		return passUnknown("police report states no weather condition"), nil
	}
	observed, obsOK := photo.WeatherCondition.Get()
	surface, surfOK := photo.RoadSurfaceCondition.Get()
	if !obsOK && !surfOK {
		return passUnknown("photos carry no weather or road surface reading"), nil
	}

	wetReported := isWet(reported)
	dryObserved := (obsOK && isDry(observed)) || (surfOK && isDry(surface))
	wetObserved := (obsOK && isWet(observed)) || (surfOK && isWet(surface))

	if wetReported && dryObserved && !wetObserved {
		return fail(0.7,
			fmt.Sprintf("report states %s but photos show %s", reported, firstNonEmpty(observed, surface)),
			"Weather condition mismatch"), nil
	}
	if !wetReported && wetObserved && !dryObserved {
		return fail(0.7,
			fmt.Sprintf("report states %s but photos show %s", reported, firstNonEmpty(observed, surface)),
			"Weather condition mismatch"), nil
	}
	return pass(0.8, "reported weather is consistent with the photos"), nil
}

// checkAirbag: severe visible impact with airbags not deployed suggests the
// photos are not from this accident or the car has been stripped.
func checkAirbag(claim *claims.Claim, bag documents.Bag) (Outcome, error) {
	photo := bag[documents.TypeDamagePhoto].Photo
	if photo.Context == nil {
		return passUnknown("photo analysis has no accident context"), nil
	}
	severity, sevOK := photo.Context.ImpactSeverity.Get()
	airbag, airOK := photo.Context.AirbagDeployed.Get()
	if !sevOK || !airOK {
		return passUnknown("impact severity or airbag state not extracted"), nil
	}
	severe := strings.Contains(strings.ToUpper(severity), "SEVERE")
	if !severe && photo.Assessment != nil {
		if v, ok := photo.Assessment.StructuralDamageVisible.Get(); ok && strings.EqualFold(v, "YES") {
			severe = true
		}
	}
	deployed := strings.EqualFold(airbag, "YES")
	if severe && !deployed {
		return fail(0.7,
			fmt.Sprintf("impact severity %s with airbag_deployed=%s", severity, airbag),
			"Airbag deployment anomaly"), nil
	}
	return pass(0.8, "airbag state is consistent with the visible impact"), nil
}

// checkSignatures: a police report without the receiving officer's signature
// is not a usable legal document.
func checkSignatures(claim *claims.Claim, bag documents.Bag) (Outcome, error) {
	rep := bag[documents.TypePoliceReport].Police
	if rep.Signatures == nil {
		return passUnknown("signature block not extracted from the report"), nil
	}
	officer, offOK := rep.Signatures.ReceivingOfficerPresent.Get()
	complainant, compOK := rep.Signatures.ComplainantPresent.Get()
	if !offOK && !compOK {
		return passUnknown("signature states not extracted"), nil
	}
	var missing []string
	if offOK && !officer {
		missing = append(missing, "receiving officer")
	}
	if compOK && !complainant {
		missing = append(missing, "complainant")
	}
	if len(missing) > 0 {
		return fail(0.7,
			fmt.Sprintf("mandatory signatures missing: %s", strings.Join(missing, ", ")),
			"Missing officer signature", "Incomplete document"), nil
	}
	return pass(0.9, "mandatory police report signatures are present"), nil
}

// checkRepairCost: the workshop quotation should not exceed the sum insured.
func checkRepairCost(claim *claims.Claim, bag documents.Bag) (Outcome, error) {
	quo := bag[documents.TypeRepairQuotation].Quotation
	pol := bag[documents.TypePolicyDocument].Policy

	if quo.Costs == nil || pol.Coverage == nil {
		return passUnknown("quotation total or sum insured not extracted"), nil
	}
	total, tOK := quo.Costs.TotalAmount.Get()
	sum, sOK := pol.Coverage.SumInsured.Get()
	if !tOK || !sOK || sum <= 0 {
		return passUnknown("quotation total or sum insured not extracted"), nil
	}
	ratio := total / sum * 100
	if total > sum {
		return fail(0.9,
			fmt.Sprintf("repair estimate RM%.2f is %.1f%% of the RM%.2f sum insured", total, ratio, sum),
			"Repair cost exceeds sum insured"), nil
	}
	return pass(1.0, fmt.Sprintf("repair estimate RM%.2f is %.1f%% of the sum insured", total, ratio)), nil
}

// --- small helpers ---

func containsAny(s string, hints []string) bool {
	for _, h := range hints {
		if strings.Contains(s, h) {
			return true
		}
	}
	return false
}

func parseHour(s string) (int, bool) {
	s = strings.TrimSpace(s)
	parts := strings.SplitN(s, ":", 2)
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}

func weatherFromReport(rep *documents.PoliceReport) string {
	if v, ok := rep.WeatherCondition.Get(); ok {
		return v
	}
	if rep.Incident != nil {
		if v, ok := rep.Incident.Weather.Get(); ok {
			return v
		}
	}
	return ""
}

func isWet(s string) bool {
	u := strings.ToUpper(s)
	return strings.Contains(u, "RAIN") || strings.Contains(u, "WET") || strings.Contains(u, "STORM")
}

func isDry(s string) bool {
	u := strings.ToUpper(s)
	return strings.Contains(u, "DRY") || strings.Contains(u, "SUNNY") || strings.Contains(u, "CLEAR")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

package trinity

import (
	"time"

	"github.com/tci-platform/trinity/internal/domain/claims"
	"github.com/tci-platform/trinity/internal/domain/documents"
)

// Consistent baseline fixtures. Every mutation-based test starts from a claim
// and document set that passes the entire catalog.

const (
	fixtureName    = "Ahmad Bin Abdullah"
	fixtureNRIC    = "900101-01-1234"
	fixturePlate   = "WXY1234"
	fixtureChassis = "PM2L250S003456789"
)

var fixtureIncident = time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

func baselineClaim() *claims.Claim {
	return &claims.Claim{
		ID:                 "claim-1",
		TenantID:           "acme-insurance",
		ClaimNumber:        "CLM-2024-0042",
		VehiclePlateNumber: fixturePlate,
		VehicleMake:        "PERODUA",
		VehicleModel:       "MYVI",
		ChassisNumber:      fixtureChassis,
		IncidentDate:       fixtureIncident,
		Claimant:           claims.Claimant{Name: fixtureName, NRIC: fixtureNRIC},
		Description:        "Head-on collision involving vehicle WXY 1234 at KM 12 Jalan Ipoh",
	}
}

func docOf(t documents.Type) *documents.Document {
	return &documents.Document{ID: "doc-" + string(t), Type: t, Confidence: 0.95, CreatedAt: fixtureIncident}
}

func baselineMyKad() *documents.Document {
	d := docOf(documents.TypeMyKadFront)
	d.MyKad = &documents.MyKad{
		FullName:    documents.Known(fixtureName),
		ICNumber:    documents.Known(fixtureNRIC),
		DateOfBirth: documents.Known("1990-01-01"),
	}
	return d
}

func baselinePolicy() *documents.Document {
	d := docOf(documents.TypePolicyDocument)
	d.Policy = &documents.PolicyDocument{
		PolicyNumber:  documents.Known("POL-88211"),
		EffectiveDate: documents.Known("2023-06-01"),
		ExpiryDate:    documents.Known("2024-06-01"),
		Policyholder: &documents.PolicyParty{
			Name:     documents.Known(fixtureName),
			ICNumber: documents.Known(fixtureNRIC),
		},
		Coverage: &documents.PolicyCoverage{
			SumInsured: documents.Known(50000.0),
		},
		Vehicle: &documents.PolicyVehicle{
			RegistrationNumber: documents.Known(fixturePlate),
			ChassisNumber:      documents.Known(fixtureChassis),
			Make:               documents.Known("PERODUA"),
			Model:              documents.Known("MYVI"),
		},
	}
	return d
}

func baselinePoliceReport() *documents.Document {
	d := docOf(documents.TypePoliceReport)
	d.Police = &documents.PoliceReport{
		ReportNumber: documents.Known("RPT/2024/5521"),
		Complainant: &documents.Complainant{
			Name:     documents.Known(fixtureName),
			ICNumber: documents.Known(fixtureNRIC),
		},
		Incident: &documents.Incident{
			Date:        documents.Known("2024-03-05"),
			Time:        documents.Known("14:00"),
			Description: documents.Known("Head-on collision involving vehicle WXY 1234 at KM 12"),
			Weather:     documents.Known("SUNNY"),
		},
		Signatures: &documents.Signatures{
			ComplainantPresent:      documents.Known(true),
			ReceivingOfficerPresent: documents.Known(true),
		},
	}
	return d
}

func baselineRegCard() *documents.Document {
	d := docOf(documents.TypeVehicleRegCard)
	d.RegCard = &documents.VehicleRegCard{
		RegistrationNumber: documents.Known(fixturePlate),
		OwnerName:          documents.Known(fixtureName),
		OwnerICNumber:      documents.Known(fixtureNRIC),
		ChassisNumber:      documents.Known(fixtureChassis),
		VehicleMake:        documents.Known("PERODUA"),
		VehicleModel:       documents.Known("MYVI"),
		Colour:             documents.Known("RED"),
		RoadTaxExpiry:      documents.Known("2024-12-31"),
	}
	return d
}

func baselineQuotation() *documents.Document {
	d := docOf(documents.TypeRepairQuotation)
	d.Quotation = &documents.RepairQuotation{
		QuotationNumber: documents.Known("Q-2024-118"),
		Costs: &documents.QuotationCosts{
			TotalAmount: documents.Known(8000.0),
		},
		PartsItems: []documents.LineItem{
			{Description: documents.Known("Front bumper assembly"), TotalPrice: documents.Known(1200.0)},
			{Description: documents.Known("Bonnet panel"), TotalPrice: documents.Known(900.0)},
		},
		Vehicle: &documents.QuotationVehicle{
			RegistrationNumber: documents.Known(fixturePlate),
			Make:               documents.Known("PERODUA"),
			ChassisNumber:      documents.Known(fixtureChassis),
		},
	}
	return d
}

func baselinePhoto() *documents.Document {
	d := docOf(documents.TypeDamagePhoto)
	d.Photo = &documents.DamagePhoto{
		ImageCount:           documents.Known(4),
		WeatherCondition:     documents.Known("DRY"),
		RoadSurfaceCondition: documents.Known("DRY"),
		Metadata:             &documents.PhotoMetadata{DateCreated: documents.Known("2024-03-05")},
		Assessment: &documents.DamageAssessment{
			DamagedAreas: []string{"front_bumper", "bonnet"},
		},
		Vehicle: &documents.PhotoVehicle{
			RegistrationNumber: documents.Known(fixturePlate),
			Make:               documents.Known("PERODUA"),
			Model:              documents.Known("MYVI"),
			Color:              documents.Known("RED"),
		},
		Environment: &documents.PhotoEnvironment{
			LightingCondition: documents.Known("DAYLIGHT"),
		},
		Context: &documents.AccidentContext{
			ImpactSeverity: documents.Known("MODERATE"),
			AirbagDeployed: documents.Known("NO"),
		},
	}
	return d
}

// fullBag carries every document type, internally consistent.
func fullBag() documents.Bag {
	return documents.NewBag([]*documents.Document{
		baselineMyKad(),
		baselinePolicy(),
		baselinePoliceReport(),
		baselineRegCard(),
		baselineQuotation(),
		baselinePhoto(),
	})
}

func bagOf(docs ...*documents.Document) documents.Bag {
	return documents.NewBag(docs)
}

func mustCatalog() *Catalog {
	c, err := DefaultCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

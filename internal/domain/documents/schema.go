package documents

// Normalized per-type schemas. Every field is a two-state Field so a missing
// extraction never crashes a check; the check decides what unknown means.

// Authenticity flags produced by the extraction vision pass.
type Authenticity struct {
	AIGenerated           Field[bool]   `json:"ai_generated"`
	ScreenCapture         Field[bool]   `json:"screen_capture"`
	SuspiciousElements    []string      `json:"suspicious_elements,omitempty"`
	PotentialManipulation []string      `json:"potential_manipulation,omitempty"`
}

// MyKad front side (NRIC card).
type MyKad struct {
	FullName    Field[string] `json:"full_name"`
	ICNumber    Field[string] `json:"ic_number"`
	DateOfBirth Field[string] `json:"date_of_birth"`
	Age         Field[int]    `json:"age"`
	Gender      Field[string] `json:"gender"`
	Citizenship Field[string] `json:"citizenship"`
	Address     Field[string] `json:"address"`

	Authenticity *Authenticity `json:"authenticity,omitempty"`
}

type PolicyParty struct {
	Name        Field[string] `json:"name"`
	ICNumber    Field[string] `json:"ic_number"`
	DateOfBirth Field[string] `json:"date_of_birth"`
	Address     Field[string] `json:"address"`
	Email       Field[string] `json:"email"`
	// relationship hanya untuk insured_person
	RelationshipToPolicyholder Field[string] `json:"relationship_to_policyholder"`
}

type PolicyCoverage struct {
	SumInsured    Field[float64] `json:"sum_insured"`
	PremiumAmount Field[float64] `json:"premium_amount"`
	Description   Field[string]  `json:"description"`
}

type PolicyVehicle struct {
	RegistrationNumber Field[string] `json:"registration_number"`
	ChassisNumber      Field[string] `json:"chassis_number"`
	Make               Field[string] `json:"make"`
	Model              Field[string] `json:"model"`
}

type PolicyDocument struct {
	InsurerName   Field[string] `json:"insurer_name"`
	PolicyNumber  Field[string] `json:"policy_number"`
	PolicyStatus  Field[string] `json:"policy_status"`
	EffectiveDate Field[string] `json:"effective_date"`
	ExpiryDate    Field[string] `json:"expiry_date"`

	Policyholder  *PolicyParty    `json:"policyholder,omitempty"`
	InsuredPerson *PolicyParty    `json:"insured_person,omitempty"`
	Coverage      *PolicyCoverage `json:"coverage,omitempty"`
	Vehicle       *PolicyVehicle  `json:"vehicle,omitempty"`

	Authenticity *Authenticity `json:"authenticity,omitempty"`
}

type VehicleRegCard struct {
	RegistrationNumber Field[string] `json:"registration_number"`
	OwnerName          Field[string] `json:"owner_name"`
	OwnerICNumber      Field[string] `json:"owner_ic_number"`
	ChassisNumber      Field[string] `json:"chassis_number"`
	EngineNumber       Field[string] `json:"engine_number"`
	VehicleMake        Field[string] `json:"vehicle_make"`
	VehicleModel       Field[string] `json:"vehicle_model"`
	Colour             Field[string] `json:"colour"`
	YearOfManufacture  Field[string] `json:"year_of_manufacture"`
	RoadTaxExpiry      Field[string] `json:"road_tax_expiry"`

	Authenticity *Authenticity `json:"authenticity,omitempty"`
}

type Complainant struct {
	Name     Field[string] `json:"name"`
	ICNumber Field[string] `json:"ic_number"`
	Gender   Field[string] `json:"gender"`
	Age      Field[int]    `json:"age"`
}

type Incident struct {
	Date        Field[string] `json:"date"`
	Time        Field[string] `json:"time"`
	Location    Field[string] `json:"location"`
	Description Field[string] `json:"description"`
	Weather     Field[string] `json:"weather"`
	RoadSurface Field[string] `json:"road_surface"`
}

type Signatures struct {
	ComplainantPresent      Field[bool] `json:"complainant_present"`
	InterpreterPresent      Field[bool] `json:"interpreter_present"`
	ReceivingOfficerPresent Field[bool] `json:"receiving_officer_present"`
}

type PoliceReport struct {
	ReportNumber Field[string] `json:"report_number"`
	ReportDate   Field[string] `json:"report_date"`
	ReportTime   Field[string] `json:"report_time"`

	Complainant *Complainant `json:"complainant,omitempty"`
	Incident    *Incident    `json:"incident,omitempty"`
	Signatures  *Signatures  `json:"signatures,omitempty"`

	WeatherCondition Field[string] `json:"weather_condition"`

	Authenticity *Authenticity `json:"authenticity,omitempty"`
}

type LineItem struct {
	Description Field[string]  `json:"description"`
	Quantity    Field[int]     `json:"quantity"`
	UnitPrice   Field[float64] `json:"unit_price"`
	TotalPrice  Field[float64] `json:"total_price"`
}

type QuotationCosts struct {
	SubtotalAmount Field[float64] `json:"subtotal_amount"`
	TotalAmount    Field[float64] `json:"total_amount"`
}

type QuotationVehicle struct {
	RegistrationNumber Field[string] `json:"registration_number"`
	Make               Field[string] `json:"make"`
	Model              Field[string] `json:"model"`
	Color              Field[string] `json:"color"`
	ChassisNumber      Field[string] `json:"chassis_number"`
}

type RepairQuotation struct {
	QuotationNumber Field[string] `json:"quotation_number"`
	QuotationDate   Field[string] `json:"quotation_date"`

	Costs      *QuotationCosts   `json:"costs,omitempty"`
	PartsItems []LineItem        `json:"parts_items,omitempty"`
	LaborItems []LineItem        `json:"labor_items,omitempty"`
	Vehicle    *QuotationVehicle `json:"vehicle,omitempty"`

	Authenticity *Authenticity `json:"authenticity,omitempty"`
}

type DamageAssessment struct {
	DamagedAreas            []string      `json:"damaged_areas,omitempty"`
	DamageTypes             []string      `json:"damage_types,omitempty"`
	StructuralDamageVisible Field[string] `json:"structural_damage_visible"`
}

type PhotoVehicle struct {
	RegistrationNumber Field[string] `json:"registration_number"`
	Type               Field[string] `json:"type"`
	Make               Field[string] `json:"make"`
	Model              Field[string] `json:"model"`
	Color              Field[string] `json:"color"`
}

type PhotoEnvironment struct {
	LocationType      Field[string] `json:"location_type"`
	RoadCondition     Field[string] `json:"road_condition"`
	LightingCondition Field[string] `json:"lighting_condition"`
}

type AccidentContext struct {
	CollisionType   Field[string] `json:"collision_type"`
	ImpactSeverity  Field[string] `json:"impact_severity"`
	AirbagDeployed  Field[string] `json:"airbag_deployed"`
}

type PhotoMetadata struct {
	DateCreated Field[string] `json:"date_created"`
}

type DamagePhoto struct {
	ImageCount Field[int] `json:"image_count"`

	Metadata    *PhotoMetadata    `json:"metadata,omitempty"`
	Assessment  *DamageAssessment `json:"damage_assessment,omitempty"`
	Vehicle     *PhotoVehicle     `json:"vehicle,omitempty"`
	Environment *PhotoEnvironment `json:"environment,omitempty"`
	Context     *AccidentContext  `json:"accident_context,omitempty"`

	WeatherCondition     Field[string] `json:"weather_condition"`
	RoadSurfaceCondition Field[string] `json:"road_surface_condition"`

	Authenticity *Authenticity `json:"authenticity,omitempty"`
}

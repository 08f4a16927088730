package trinity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tci-platform/trinity/internal/domain/claims"
	"github.com/tci-platform/trinity/internal/domain/documents"
)

// Severity enum
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// RunStatus enum
type RunStatus string

const (
	StatusRun     RunStatus = "RUN"
	StatusSkipped RunStatus = "SKIPPED"
	StatusError   RunStatus = "ERROR"
)

// Verdict enum
type Verdict string

const (
	VerdictVerified   Verdict = "VERIFIED"
	VerdictFlagged    Verdict = "FLAGGED"
	VerdictRejected   Verdict = "REJECTED"
	VerdictIncomplete Verdict = "INCOMPLETE"
)

// Category enum
type Category string

const (
	CategoryIdentity Category = "IDENTITY"
	CategoryLogic    Category = "LOGIC"
	CategoryVehicle  Category = "VEHICLE"
)

// Outcome of a single check. IsPass nil berarti check tidak dievaluasi.
type Outcome struct {
	CheckID    string    `json:"check_id"`
	IsPass     *bool     `json:"is_pass"`
	Confidence float64   `json:"confidence"`
	Details    string    `json:"details"`
	RedFlags   []string  `json:"red_flags,omitempty"`
	Status     RunStatus `json:"status"`
	Priority   Severity  `json:"priority"`
}

// Failed reports a check that actually ran and did not pass.
func (o Outcome) Failed() bool {
	return o.Status == StatusRun && o.IsPass != nil && !*o.IsPass
}

// Passed reports a check that ran and passed.
func (o Outcome) Passed() bool {
	return o.Status == StatusRun && o.IsPass != nil && *o.IsPass
}

// EvalFunc is one pure comparison rule. It must be deterministic for
// identical inputs and free of side effects. A returned error is captured by
// the engine as a status ERROR outcome; it never aborts the run.
type EvalFunc func(claim *claims.Claim, bag documents.Bag) (Outcome, error)

// Definition describes one check as plain data: which documents it needs,
// how severe a failure is, and the rule itself.
type Definition struct {
	ID               string
	Name             string
	Category         Category
	RequiredDocTypes []documents.Type
	Severity         Severity
	Evaluate         EvalFunc
}

// CheckResults keeps outcomes in catalog declaration order and serialises to
// a JSON object keyed by check id, so identical inputs produce byte-identical
// reports.
type CheckResults []Outcome

func (cr CheckResults) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, o := range cr {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(o.CheckID)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(o)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (cr *CheckResults) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("check results: expected object")
	}
	var out CheckResults
	for dec.More() {
		if _, err := dec.Token(); err != nil { // key, duplicated inside value
			return err
		}
		var o Outcome
		if err := dec.Decode(&o); err != nil {
			return err
		}
		out = append(out, o)
	}
	*cr = out
	return nil
}

// Get returns the outcome for a check id.
func (cr CheckResults) Get(checkID string) (Outcome, bool) {
	for _, o := range cr {
		if o.CheckID == checkID {
			return o, true
		}
	}
	return Outcome{}, false
}

// Report is the aggregate TrinityCheck result persisted per claim.
type Report struct {
	ID                   string       `json:"id"`
	TenantID             string       `json:"tenant_id,omitempty"`
	ClaimID              string       `json:"claim_id"`
	Status               Verdict      `json:"status"`
	TotalScore           float64      `json:"total_score"`
	Checks               CheckResults `json:"checks"`
	Summary              string       `json:"summary"`
	RiskFactors          []string     `json:"risk_factors"`
	Reasoning            string       `json:"reasoning,omitempty"`
	ReasoningInsights    []string     `json:"reasoning_insights,omitempty"`
	VerificationCoverage float64      `json:"verification_coverage"`
	Fingerprint          string       `json:"fingerprint,omitempty"`
	ArtifactURL          string       `json:"artifact_url,omitempty"`
	CreatedAt            time.Time    `json:"created_at"`
	UpdatedAt            time.Time    `json:"updated_at"`
}

// Weights maps severity to score deduction per failing check. These are
// deployment configuration, not contract values.
type Weights struct {
	Critical float64 `yaml:"critical" json:"critical"`
	High     float64 `yaml:"high" json:"high"`
	Medium   float64 `yaml:"medium" json:"medium"`
	Low      float64 `yaml:"low" json:"low"`
}

// DefaultWeights per the production aggregator defaults.
func DefaultWeights() Weights {
	return Weights{Critical: 40, High: 20, Medium: 10, Low: 5}
}

// For returns the deduction weight for a severity.
func (w Weights) For(s Severity) float64 {
	switch s {
	case SeverityCritical:
		return w.Critical
	case SeverityHigh:
		return w.High
	case SeverityMedium:
		return w.Medium
	case SeverityLow:
		return w.Low
	}
	return 0
}

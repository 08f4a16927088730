package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tci-platform/trinity/internal/domain/trinity"
)

// GetSystemPrompt provides strict directions and schema for JSON output.
func GetSystemPrompt() string {
	return `You are a senior motor insurance fraud analyst. You must produce one valid JSON object only (no markdown, no commentary) that follows the schema below. Do not include code fences.

Requirements:
- Output must be a single JSON object.
- narrative is a short paragraph for a human claims adjuster explaining the verdict.
- insights is an array of concise strings, one per notable finding. Keep items concise.
- Never contradict the verdict or the check outcomes you are given; you explain them, you do not re-decide them.

Schema (example with empty values):
{
  "narrative": "<string>",
  "insights": ["<string>"]
}`
}

// BuildUserPrompt serialises the deterministic run for the model. Only failed
// and errored checks are spelled out; passes are summarised as a count.
func BuildUserPrompt(report *trinity.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Claim %s was evaluated with verdict %s, fraud score %.1f/100, verification coverage %.0f%%.\n",
		report.ClaimID, report.Status, report.TotalScore, report.VerificationCoverage*100)

	passed := 0
	for _, o := range report.Checks {
		if o.Passed() {
			passed++
		}
	}
	fmt.Fprintf(&b, "%d checks passed.\n", passed)

	for _, o := range report.Checks {
		switch {
		case o.Failed():
			fmt.Fprintf(&b, "FAILED %s (%s, confidence %.2f): %s\n", o.CheckID, o.Priority, o.Confidence, o.Details)
		case o.Status == trinity.StatusError:
			fmt.Fprintf(&b, "ERROR %s: %s\n", o.CheckID, o.Details)
		case o.Status == trinity.StatusSkipped:
			fmt.Fprintf(&b, "SKIPPED %s: %s\n", o.CheckID, o.Details)
		}
	}
	if len(report.RiskFactors) > 0 {
		fmt.Fprintf(&b, "Red flags: %s\n", strings.Join(report.RiskFactors, "; "))
	}
	b.WriteString("Respond with the JSON per schema.")
	return b.String()
}

// ParseReasoning decodes the model output into the domain shape.
func ParseReasoning(raw string) (trinity.Reasoning, error) {
	var out trinity.Reasoning
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &out); err != nil {
		return trinity.Reasoning{}, fmt.Errorf("parse reasoning output: %w", err)
	}
	if strings.TrimSpace(out.Narrative) == "" {
		return trinity.Reasoning{}, fmt.Errorf("reasoning output has no narrative")
	}
	return out, nil
}

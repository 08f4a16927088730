package trinity

import (
	"fmt"
	"strings"
)

// Score starts at 100 and deducts weight x confidence for every check that
// ran and failed. Skipped and errored checks never deduct. Floor is 0.
func Score(results CheckResults, w Weights) float64 {
	score := 100.0
	for _, o := range results {
		if !o.Failed() {
			continue
		}
		score -= w.For(o.Priority) * o.Confidence
	}
	if score < 0 {
		return 0
	}
	return score
}

// Coverage is the fraction of catalog checks that actually ran. An empty
// catalog counts as full coverage.
func Coverage(results CheckResults) float64 {
	if len(results) == 0 {
		return 1
	}
	ran := 0
	for _, o := range results {
		if o.Status == StatusRun {
			ran++
		}
	}
	return float64(ran) / float64(len(results))
}

// RiskFactors collects every red flag across failing checks, deduplicated,
// first occurrence wins so the list order is stable across runs.
func RiskFactors(results CheckResults) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, o := range results {
		if !o.Failed() {
			continue
		}
		for _, f := range o.RedFlags {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			out = append(out, f)
		}
	}
	return out
}

// buildSummary writes the one-line mechanical narrative stored alongside the
// numeric verdict. The AI reasoning, when available, replaces it client-side.
func buildSummary(results CheckResults, verdict Verdict, score float64) string {
	var passed, failed, skipped, errored int
	var failedIDs []string
	for _, o := range results {
		switch {
		case o.Passed():
			passed++
		case o.Failed():
			failed++
			failedIDs = append(failedIDs, o.CheckID)
		case o.Status == StatusSkipped:
			skipped++
		case o.Status == StatusError:
			errored++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (score %.1f): %d passed, %d failed, %d skipped", verdict, score, passed, failed, skipped)
	if errored > 0 {
		fmt.Fprintf(&b, ", %d errored", errored)
	}
	if len(failedIDs) > 0 {
		fmt.Fprintf(&b, ". Failing checks: %s", strings.Join(failedIDs, ", "))
	}
	return b.String()
}

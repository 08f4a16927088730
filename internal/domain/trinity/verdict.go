package trinity

// Classify maps the aggregate state to a verdict. Order matters:
//
//  1. any CRITICAL failure rejects outright, even with thin coverage
//  2. thin coverage (skips above the threshold) is INCOMPLETE
//  3. a low score or any HIGH/MEDIUM failure flags for manual review
//  4. otherwise VERIFIED
func Classify(results CheckResults, score, coverage float64, opts Options) Verdict {
	for _, o := range results {
		if o.Failed() && o.Priority == SeverityCritical {
			return VerdictRejected
		}
	}

	if 1-coverage > opts.CoverageThreshold {
		return VerdictIncomplete
	}

	if score < opts.FlagBelowScore {
		return VerdictFlagged
	}
	for _, o := range results {
		if o.Failed() && (o.Priority == SeverityHigh || o.Priority == SeverityMedium) {
			return VerdictFlagged
		}
	}

	return VerdictVerified
}

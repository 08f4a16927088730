package trinity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func classifyOpts() Options {
	return Options{}.withDefaults()
}

func TestClassifyVerified(t *testing.T) {
	results := CheckResults{
		outcome("A", false, 1, SeverityCritical),
		outcome("B", false, 1, SeverityHigh),
	}
	assert.Equal(t, VerdictVerified, Classify(results, 100, 1, classifyOpts()))
}

func TestClassifyRejectedOnCriticalFailure(t *testing.T) {
	results := CheckResults{
		outcome("A", true, 1, SeverityCritical),
	}
	assert.Equal(t, VerdictRejected, Classify(results, 60, 1, classifyOpts()))
}

func TestClassifyRejectionBeatsIncomplete(t *testing.T) {
	// thin coverage AND a critical failure: rejection wins
	results := CheckResults{
		outcome("A", true, 1, SeverityCritical),
		skipped("B", SeverityHigh),
		skipped("C", SeverityHigh),
		skipped("D", SeverityHigh),
	}
	assert.Equal(t, VerdictRejected, Classify(results, 60, 0.25, classifyOpts()))
}

func TestClassifyIncomplete(t *testing.T) {
	results := CheckResults{
		outcome("A", false, 1, SeverityCritical),
		skipped("B", SeverityHigh),
		skipped("C", SeverityHigh),
		skipped("D", SeverityHigh),
	}
	assert.Equal(t, VerdictIncomplete, Classify(results, 100, 0.25, classifyOpts()))
}

func TestClassifyFlaggedOnLowScore(t *testing.T) {
	// four HIGH fails: 100 - 4*20 = 20, no critical fail
	results := CheckResults{
		outcome("A", true, 1, SeverityHigh),
		outcome("B", true, 1, SeverityHigh),
		outcome("C", true, 1, SeverityHigh),
		outcome("D", true, 1, SeverityHigh),
	}
	assert.Equal(t, VerdictFlagged, Classify(results, 20, 1, classifyOpts()))
}

func TestClassifyFlaggedOnMediumFailureDespiteHighScore(t *testing.T) {
	// one medium fail at 0.7 leaves the score at 93, still flagged
	results := CheckResults{
		outcome("A", true, 0.7, SeverityMedium),
		outcome("B", false, 1, SeverityCritical),
	}
	assert.Equal(t, VerdictFlagged, Classify(results, 93, 1, classifyOpts()))
}

func TestClassifyLowFailureStaysVerified(t *testing.T) {
	// a LOW severity failure alone neither rejects nor flags
	results := CheckResults{
		outcome("A", true, 1, SeverityLow),
	}
	assert.Equal(t, VerdictVerified, Classify(results, 95, 1, classifyOpts()))
}

func TestClassifyCoverageBoundary(t *testing.T) {
	opts := classifyOpts()
	// exactly half skipped is not over the threshold
	assert.Equal(t, VerdictVerified, Classify(CheckResults{
		outcome("A", false, 1, SeverityLow),
		skipped("B", SeverityLow),
	}, 100, 0.5, opts))
}

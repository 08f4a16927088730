package trinity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tci-platform/trinity/internal/domain/claims"
	"github.com/tci-platform/trinity/internal/domain/documents"
)

// Options tunes the engine. Zero values fall back to the production defaults.
type Options struct {
	Weights Weights
	// FlagBelowScore: skor di bawah ini selalu FLAGGED.
	FlagBelowScore float64
	// CoverageThreshold: if more than this fraction of checks was skipped the
	// verdict is INCOMPLETE (unless a critical failure already rejects).
	CoverageThreshold float64
	// CheckTimeout bounds one evaluation; breaching it yields status ERROR.
	CheckTimeout time.Duration
	// Parallelism caps concurrent evaluations. 0 means one goroutine per check.
	Parallelism int
}

func (o Options) withDefaults() Options {
	if o.Weights == (Weights{}) {
		o.Weights = DefaultWeights()
	}
	if o.FlagBelowScore == 0 {
		o.FlagBelowScore = 80
	}
	if o.CoverageThreshold == 0 {
		o.CoverageThreshold = 0.5
	}
	if o.CheckTimeout == 0 {
		o.CheckTimeout = 500 * time.Millisecond
	}
	return o
}

// Engine runs every catalog check against a claim's document bag and folds
// the outcomes into a Report. The engine itself is stateless and safe for
// concurrent use.
type Engine struct {
	catalog *Catalog
	opts    Options
}

func NewEngine(catalog *Catalog, opts Options) *Engine {
	return &Engine{catalog: catalog, opts: opts.withDefaults()}
}

// Evaluate runs the full catalog. The returned report always carries one
// outcome per registered check, in catalog order, regardless of per-check
// panics, errors, or timeouts.
func (e *Engine) Evaluate(ctx context.Context, claim *claims.Claim, bag documents.Bag) Report {
	defs := e.catalog.Definitions()
	outcomes := make([]Outcome, len(defs))

	g, gctx := errgroup.WithContext(ctx)
	if e.opts.Parallelism > 0 {
		g.SetLimit(e.opts.Parallelism)
	}
	for i, def := range defs {
		i, def := i, def
		if !bag.Has(def.RequiredDocTypes...) {
			outcomes[i] = Outcome{
				CheckID:  def.ID,
				Status:   StatusSkipped,
				Priority: def.Severity,
				Details:  missingDocsDetail(def.RequiredDocTypes, bag),
			}
			continue
		}
		g.Go(func() error {
			outcomes[i] = e.runGuarded(gctx, def, claim, bag)
			return nil
		})
	}
	// check goroutines never return errors; Wait only orders the writes
	_ = g.Wait()

	results := CheckResults(outcomes)
	score := Score(results, e.opts.Weights)
	coverage := Coverage(results)
	verdict := Classify(results, score, coverage, e.opts)

	return Report{
		ClaimID:              string(claim.ID),
		TenantID:             claim.TenantID,
		Status:               verdict,
		TotalScore:           score,
		Checks:               results,
		Summary:              buildSummary(results, verdict, score),
		RiskFactors:          RiskFactors(results),
		VerificationCoverage: coverage,
	}
}

// runGuarded evaluates one check with panic containment and a soft timeout.
// A check that overruns keeps its goroutine until it returns, but its result
// is discarded and the outcome recorded as ERROR.
func (e *Engine) runGuarded(ctx context.Context, def Definition, claim *claims.Claim, bag documents.Bag) Outcome {
	type evalResult struct {
		out Outcome
		err error
	}
	done := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- evalResult{err: fmt.Errorf("check panicked: %v", r)}
			}
		}()
		out, err := def.Evaluate(claim, bag)
		done <- evalResult{out: out, err: err}
	}()

	timer := time.NewTimer(e.opts.CheckTimeout)
	defer timer.Stop()

	var res evalResult
	select {
	case res = <-done:
	case <-timer.C:
		res.err = fmt.Errorf("check timed out after %s", e.opts.CheckTimeout)
	case <-ctx.Done():
		res.err = ctx.Err()
	}

	if res.err != nil {
		return Outcome{
			CheckID:  def.ID,
			Status:   StatusError,
			Priority: def.Severity,
			Details:  res.err.Error(),
		}
	}

	out := res.out
	out.CheckID = def.ID
	out.Priority = def.Severity
	if out.Status == "" {
		out.Status = StatusRun
	}
	return out
}

func missingDocsDetail(required []documents.Type, bag documents.Bag) string {
	var missing []string
	for _, t := range required {
		if _, ok := bag[t]; !ok {
			missing = append(missing, string(t))
		}
	}
	if len(missing) == 0 {
		return "required documents not available"
	}
	return "missing required document(s): " + strings.Join(missing, ", ")
}

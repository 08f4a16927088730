package trinity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/tci-platform/trinity/internal/domain/claims"
	"github.com/tci-platform/trinity/internal/domain/documents"
	domain "github.com/tci-platform/trinity/internal/domain/trinity"
)

// Clock abstraction supaya gampang ditest
type Clock interface {
	Now() time.Time
}

// Service implements use-cases untuk Trinity check
// Service is designed to be used concurrently and is thread-safe
type Service struct {
	Claims   claims.Repository
	Docs     documents.Repository
	Reports  domain.Repository
	Analyses domain.AnalysisRepository

	Catalog *domain.Catalog
	Engine  *domain.Engine

	// optional collaborators; nil disables the feature
	Reasoner domain.Reasoner
	Archive  domain.ReportArchive

	Cache    *gocache.Cache
	CacheTTL time.Duration
	Clock    Clock
	Log      *slog.Logger

	group singleflight.Group
}

// Command untuk trigger check
type RunCheckCommand struct {
	TenantID string
	ClaimID  string
	// Force re-runs the engine even when the document set is unchanged.
	Force bool
}

// RunCheck evaluates the full catalog for a claim's current document set.
//
// Identical document sets are idempotent: the fingerprint of the set keys an
// in-memory cache, and concurrent requests for the same claim are coalesced
// so the engine runs once.
func (s *Service) RunCheck(ctx context.Context, cmd RunCheckCommand) (*domain.Report, error) {
	claim, err := s.Claims.FindByID(ctx, cmd.TenantID, claims.ClaimID(cmd.ClaimID))
	if err != nil {
		return nil, fmt.Errorf("load claim %s: %w", cmd.ClaimID, err)
	}

	extracted, err := s.Docs.ListByClaimID(ctx, cmd.TenantID, cmd.ClaimID)
	if err != nil {
		return nil, fmt.Errorf("load documents for claim %s: %w", cmd.ClaimID, err)
	}

	var normalized []*documents.Document
	for _, src := range extracted {
		doc, nerr := documents.Normalize(src)
		if nerr != nil {
			// un-normalizable extraction degrades coverage, it never aborts
			s.logger().WarnContext(ctx, "skipping document",
				"document_id", src.ID, "type", src.Type, "err", nerr)
			continue
		}
		normalized = append(normalized, doc)
	}
	bag := documents.NewBag(normalized)

	fp := Fingerprint(cmd.ClaimID, extracted)
	cacheKey := cmd.TenantID + "/" + cmd.ClaimID

	if !cmd.Force && s.Cache != nil {
		if v, ok := s.Cache.Get(cacheKey); ok {
			if rep, ok := v.(*domain.Report); ok && rep.Fingerprint == fp {
				return rep, nil
			}
		}
	}

	v, err, _ := s.group.Do(cacheKey+"/"+fp, func() (any, error) {
		return s.runOnce(ctx, cmd.TenantID, claim, bag, fp)
	})
	if err != nil {
		return nil, err
	}
	rep := v.(*domain.Report)

	if s.Cache != nil {
		s.Cache.Set(cacheKey, rep, s.CacheTTL)
	}
	return rep, nil
}

func (s *Service) runOnce(ctx context.Context, tenantID string, claim *claims.Claim, bag documents.Bag, fp string) (*domain.Report, error) {
	now := s.Clock.Now()

	report := s.Engine.Evaluate(ctx, claim, bag)
	report.ID = uuid.New().String()
	report.Fingerprint = fp
	report.CreatedAt = now
	report.UpdatedAt = now

	if s.Reasoner != nil {
		reasoning, rerr := s.Reasoner.Reason(ctx, &report, bag)
		if rerr != nil {
			// narrative is decoration, the deterministic verdict stands
			s.logger().WarnContext(ctx, "reasoner failed", "claim_id", report.ClaimID, "err", rerr)
		} else {
			report.Reasoning = reasoning.Narrative
			report.ReasoningInsights = reasoning.Insights
		}
	}

	if s.Archive != nil {
		url, aerr := s.Archive.Archive(ctx, tenantID, &report)
		if aerr != nil {
			s.logger().WarnContext(ctx, "report archive failed", "claim_id", report.ClaimID, "err", aerr)
		} else {
			report.ArtifactURL = url
		}
	}

	if err := s.Reports.Save(ctx, tenantID, &report); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}

	analyses := s.buildAnalyses(&report, bag)
	if len(analyses) > 0 {
		if err := s.Analyses.SaveBatch(ctx, tenantID, analyses); err != nil {
			s.logger().WarnContext(ctx, "save document analyses failed", "claim_id", report.ClaimID, "err", err)
		}
	}

	return &report, nil
}

// GetReport returns the persisted report for a claim.
func (s *Service) GetReport(ctx context.Context, tenantID, claimID string) (*domain.Report, error) {
	return s.Reports.FindByClaimID(ctx, tenantID, claimID)
}

// GetDocumentAnalysis returns the per-document view from the latest run.
func (s *Service) GetDocumentAnalysis(ctx context.Context, tenantID, documentID string) (*domain.DocumentAnalysis, error) {
	return s.Analyses.FindByDocumentID(ctx, tenantID, documentID)
}

// buildAnalyses projects the report onto each document: which checks consumed
// it and what they concluded.
func (s *Service) buildAnalyses(report *domain.Report, bag documents.Bag) []domain.DocumentAnalysis {
	var out []domain.DocumentAnalysis
	for _, t := range bag.Types() {
		doc := bag[t]
		a := domain.DocumentAnalysis{
			DocumentID:   doc.ID,
			ClaimID:      report.ClaimID,
			DocumentType: t,
			Confidence:   doc.Confidence,
		}
		for _, def := range s.Catalog.Definitions() {
			if !requiresType(def, t) {
				continue
			}
			o, ok := report.Checks.Get(def.ID)
			if !ok || o.Status != domain.StatusRun {
				continue
			}
			a.ChecksRun = append(a.ChecksRun, def.ID)
			if o.Failed() {
				a.ChecksFailed = append(a.ChecksFailed, def.ID)
				a.RedFlags = append(a.RedFlags, o.RedFlags...)
			}
		}
		out = append(out, a)
	}
	return out
}

func requiresType(def domain.Definition, t documents.Type) bool {
	for _, rt := range def.RequiredDocTypes {
		if rt == t {
			return true
		}
	}
	return false
}

// Fingerprint hashes the identity of a claim's document set. Order of the
// input slice does not matter.
func Fingerprint(claimID string, docs []documents.ExtractedDocument) string {
	keys := make([]string, 0, len(docs))
	for _, d := range docs {
		keys = append(keys, fmt.Sprintf("%s:%s:%d", d.ID, d.Type, d.CreatedAt.UnixNano()))
	}
	sort.Strings(keys)

	h := sha256.New()
	h.Write([]byte(claimID))
	for _, k := range keys {
		h.Write([]byte{0})
		h.Write([]byte(k))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (s *Service) logger() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}

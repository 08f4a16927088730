package trinity

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tci-platform/trinity/internal/domain/claims"
	"github.com/tci-platform/trinity/internal/domain/documents"
	domain "github.com/tci-platform/trinity/internal/domain/trinity"
)

// --- in-memory fakes ---

type fakeClaims struct {
	claim *claims.Claim
}

func (f *fakeClaims) FindByID(_ context.Context, _ string, id claims.ClaimID) (*claims.Claim, error) {
	if f.claim == nil || f.claim.ID != id {
		return nil, claims.ErrClaimNotFound
	}
	return f.claim, nil
}

type fakeDocs struct {
	docs []documents.ExtractedDocument
}

func (f *fakeDocs) ListByClaimID(context.Context, string, string) ([]documents.ExtractedDocument, error) {
	return f.docs, nil
}

func (f *fakeDocs) FindByID(_ context.Context, _ string, id string) (*documents.ExtractedDocument, error) {
	for i := range f.docs {
		if f.docs[i].ID == id {
			return &f.docs[i], nil
		}
	}
	return nil, documents.ErrDocumentNotFound
}

type fakeReports struct {
	saves int
	last  *domain.Report
}

func (f *fakeReports) Save(_ context.Context, _ string, report *domain.Report) error {
	f.saves++
	cp := *report
	f.last = &cp
	return nil
}

func (f *fakeReports) FindByClaimID(context.Context, string, string) (*domain.Report, error) {
	if f.last == nil {
		return nil, domain.ErrReportNotFound
	}
	return f.last, nil
}

type fakeAnalyses struct {
	batches [][]domain.DocumentAnalysis
}

func (f *fakeAnalyses) SaveBatch(_ context.Context, _ string, analyses []domain.DocumentAnalysis) error {
	f.batches = append(f.batches, analyses)
	return nil
}

func (f *fakeAnalyses) FindByDocumentID(_ context.Context, _ string, documentID string) (*domain.DocumentAnalysis, error) {
	for _, batch := range f.batches {
		for i := range batch {
			if batch[i].DocumentID == documentID {
				return &batch[i], nil
			}
		}
	}
	return nil, domain.ErrAnalysisNotFound
}

type fakeReasoner struct {
	reasoning domain.Reasoning
	err       error
	calls     int
}

func (f *fakeReasoner) Reason(context.Context, *domain.Report, documents.Bag) (domain.Reasoning, error) {
	f.calls++
	return f.reasoning, f.err
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// --- fixtures ---

var testNow = time.Date(2024, 3, 10, 8, 30, 0, 0, time.UTC)

func testClaim() *claims.Claim {
	return &claims.Claim{
		ID:       "claim-1",
		TenantID: "tenant-a",
		Claimant: claims.Claimant{Name: "Ahmad Bin Abdullah", NRIC: "900101-01-1234"},
	}
}

func mykadExtraction(id string, createdAt time.Time) documents.ExtractedDocument {
	return documents.ExtractedDocument{
		ID:              id,
		ClaimID:         "claim-1",
		Type:            documents.TypeMyKadFront,
		ExtractedData:   json.RawMessage(`{"full_name": "Ahmad Bin Abdullah", "ic_number": "900101-01-1234"}`),
		ConfidenceScore: 0.9,
		CreatedAt:       createdAt,
	}
}

func passingCatalog(t *testing.T) *domain.Catalog {
	t.Helper()
	c := domain.NewCatalog()
	yes := true
	require.NoError(t, c.Register(domain.Definition{
		ID:               "T-001",
		Name:             "mykad present",
		Category:         domain.CategoryIdentity,
		RequiredDocTypes: []documents.Type{documents.TypeMyKadFront},
		Severity:         domain.SeverityHigh,
		Evaluate: func(*claims.Claim, documents.Bag) (domain.Outcome, error) {
			return domain.Outcome{IsPass: &yes, Confidence: 1, Details: "ok", Status: domain.StatusRun}, nil
		},
	}))
	return c
}

func newTestService(t *testing.T) (*Service, *fakeReports, *fakeAnalyses, *fakeDocs) {
	t.Helper()
	catalog := passingCatalog(t)
	reports := &fakeReports{}
	analyses := &fakeAnalyses{}
	docs := &fakeDocs{docs: []documents.ExtractedDocument{mykadExtraction("doc-1", testNow.Add(-time.Hour))}}
	svc := &Service{
		Claims:   &fakeClaims{claim: testClaim()},
		Docs:     docs,
		Reports:  reports,
		Analyses: analyses,
		Catalog:  catalog,
		Engine:   domain.NewEngine(catalog, domain.Options{}),
		Cache:    gocache.New(time.Minute, time.Minute),
		CacheTTL: time.Minute,
		Clock:    fixedClock{t: testNow},
	}
	return svc, reports, analyses, docs
}

// --- tests ---

func TestRunCheckPersistsReport(t *testing.T) {
	svc, reports, analyses, _ := newTestService(t)

	rep, err := svc.RunCheck(context.Background(), RunCheckCommand{TenantID: "tenant-a", ClaimID: "claim-1"})
	require.NoError(t, err)

	assert.Equal(t, 1, reports.saves)
	assert.Equal(t, domain.VerdictVerified, rep.Status)
	assert.Equal(t, "claim-1", rep.ClaimID)
	assert.NotEmpty(t, rep.ID)
	assert.NotEmpty(t, rep.Fingerprint)
	assert.Equal(t, testNow, rep.CreatedAt)
	assert.Equal(t, testNow, rep.UpdatedAt)

	require.Len(t, analyses.batches, 1)
	require.Len(t, analyses.batches[0], 1)
	a := analyses.batches[0][0]
	assert.Equal(t, "doc-1", a.DocumentID)
	assert.Equal(t, []string{"T-001"}, a.ChecksRun)
	assert.Empty(t, a.ChecksFailed)
}

func TestRunCheckIdempotentForUnchangedDocuments(t *testing.T) {
	svc, reports, _, _ := newTestService(t)
	cmd := RunCheckCommand{TenantID: "tenant-a", ClaimID: "claim-1"}

	first, err := svc.RunCheck(context.Background(), cmd)
	require.NoError(t, err)
	second, err := svc.RunCheck(context.Background(), cmd)
	require.NoError(t, err)

	assert.Equal(t, 1, reports.saves, "unchanged document set must not re-run the engine")
	assert.Equal(t, first.ID, second.ID)
}

func TestRunCheckForceBypassesCache(t *testing.T) {
	svc, reports, _, _ := newTestService(t)
	cmd := RunCheckCommand{TenantID: "tenant-a", ClaimID: "claim-1"}

	_, err := svc.RunCheck(context.Background(), cmd)
	require.NoError(t, err)
	cmd.Force = true
	_, err = svc.RunCheck(context.Background(), cmd)
	require.NoError(t, err)

	assert.Equal(t, 2, reports.saves)
}

func TestRunCheckReRunsWhenDocumentSetChanges(t *testing.T) {
	svc, reports, _, docs := newTestService(t)
	cmd := RunCheckCommand{TenantID: "tenant-a", ClaimID: "claim-1"}

	first, err := svc.RunCheck(context.Background(), cmd)
	require.NoError(t, err)

	// re-upload lands as a new extraction record
	docs.docs = append(docs.docs, mykadExtraction("doc-2", testNow))

	second, err := svc.RunCheck(context.Background(), cmd)
	require.NoError(t, err)

	assert.Equal(t, 2, reports.saves)
	assert.NotEqual(t, first.Fingerprint, second.Fingerprint)
}

func TestRunCheckClaimNotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.RunCheck(context.Background(), RunCheckCommand{TenantID: "tenant-a", ClaimID: "claim-404"})
	assert.ErrorIs(t, err, claims.ErrClaimNotFound)
}

func TestRunCheckSkipsUnnormalizableDocument(t *testing.T) {
	svc, reports, _, docs := newTestService(t)
	docs.docs = append(docs.docs, documents.ExtractedDocument{
		ID:            "doc-bad",
		Type:          documents.Type("PASSPORT"),
		ExtractedData: json.RawMessage(`{}`),
		CreatedAt:     testNow,
	})

	rep, err := svc.RunCheck(context.Background(), RunCheckCommand{TenantID: "tenant-a", ClaimID: "claim-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, reports.saves)
	assert.Equal(t, domain.VerdictVerified, rep.Status)
}

func TestRunCheckReasonerFailureIsNonFatal(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	svc.Reasoner = &fakeReasoner{err: errors.New("model unavailable")}

	rep, err := svc.RunCheck(context.Background(), RunCheckCommand{TenantID: "tenant-a", ClaimID: "claim-1"})
	require.NoError(t, err)
	assert.Empty(t, rep.Reasoning)
}

func TestRunCheckAttachesReasoning(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	svc.Reasoner = &fakeReasoner{reasoning: domain.Reasoning{
		Narrative: "All identity evidence is consistent.",
		Insights:  []string{"MyKad matches claimant"},
	}}

	rep, err := svc.RunCheck(context.Background(), RunCheckCommand{TenantID: "tenant-a", ClaimID: "claim-1"})
	require.NoError(t, err)
	assert.Equal(t, "All identity evidence is consistent.", rep.Reasoning)
	assert.Equal(t, []string{"MyKad matches claimant"}, rep.ReasoningInsights)
}

func TestGetReportAndAnalysis(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.GetReport(context.Background(), "tenant-a", "claim-1")
	assert.ErrorIs(t, err, domain.ErrReportNotFound)

	_, err = svc.GetDocumentAnalysis(context.Background(), "tenant-a", "doc-1")
	assert.ErrorIs(t, err, domain.ErrAnalysisNotFound)

	_, err = svc.RunCheck(context.Background(), RunCheckCommand{TenantID: "tenant-a", ClaimID: "claim-1"})
	require.NoError(t, err)

	rep, err := svc.GetReport(context.Background(), "tenant-a", "claim-1")
	require.NoError(t, err)
	assert.Equal(t, "claim-1", rep.ClaimID)

	a, err := svc.GetDocumentAnalysis(context.Background(), "tenant-a", "doc-1")
	require.NoError(t, err)
	assert.Equal(t, documents.TypeMyKadFront, a.DocumentType)
}

func TestFingerprintOrderIndependent(t *testing.T) {
	a := mykadExtraction("doc-1", testNow)
	b := documents.ExtractedDocument{ID: "doc-2", Type: documents.TypePoliceReport, CreatedAt: testNow}

	assert.Equal(t,
		Fingerprint("claim-1", []documents.ExtractedDocument{a, b}),
		Fingerprint("claim-1", []documents.ExtractedDocument{b, a}))
}

func TestFingerprintSensitivity(t *testing.T) {
	a := mykadExtraction("doc-1", testNow)
	base := Fingerprint("claim-1", []documents.ExtractedDocument{a})

	assert.NotEqual(t, base, Fingerprint("claim-2", []documents.ExtractedDocument{a}))

	later := a
	later.CreatedAt = testNow.Add(time.Second)
	assert.NotEqual(t, base, Fingerprint("claim-1", []documents.ExtractedDocument{later}))

	assert.NotEqual(t, base, Fingerprint("claim-1", nil))
}

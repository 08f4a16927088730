package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	apptrinity "github.com/tci-platform/trinity/internal/application/trinity"
	"github.com/tci-platform/trinity/internal/domain/claims"
	"github.com/tci-platform/trinity/internal/domain/documents"
	domain "github.com/tci-platform/trinity/internal/domain/trinity"
	"github.com/tci-platform/trinity/internal/middleware"
)

type Router struct {
	trinitySvc *apptrinity.Service
}

func NewRouter(trinitySvc *apptrinity.Service) http.Handler {
	r := &Router{trinitySvc: trinitySvc}
	mux := chi.NewRouter()

	mux.Route("/v1/{tenant}", func(rt chi.Router) {
		rt.Post("/claims/{claimID}/documents/trinity-check", r.wrap(r.handleRunCheck))
		rt.Get("/risk/claims/{claimID}/trinity", r.wrap(r.handleGetReport))
		rt.Get("/risk/documents/{documentID}/analysis", r.wrap(r.handleDocumentAnalysis))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			switch {
			case errors.Is(err, claims.ErrClaimNotFound),
				errors.Is(err, documents.ErrDocumentNotFound),
				errors.Is(err, domain.ErrReportNotFound),
				errors.Is(err, domain.ErrAnalysisNotFound),
				errors.Is(err, sql.ErrNoRows):
				http.Error(w, "not found", http.StatusNotFound)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

// POST /v1/{tenant}/claims/{claimID}/documents/trinity-check
// Optional body: {"force": true} to bypass the fingerprint cache.
func (r *Router) handleRunCheck(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	claimID := chi.URLParam(req, "claimID")
	if err := middleware.ValidateClaimID(claimID); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	}

	var body struct {
		Force bool `json:"force"`
	}
	if req.Body != nil && req.ContentLength != 0 {
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return nil
		}
	}

	middleware.IncrementChecks()
	report, err := r.trinitySvc.RunCheck(req.Context(), apptrinity.RunCheckCommand{
		TenantID: tenant,
		ClaimID:  claimID,
		Force:    body.Force,
	})
	if err != nil {
		middleware.IncrementChecksFailed()
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(report)
}

// GET /v1/{tenant}/risk/claims/{claimID}/trinity
func (r *Router) handleGetReport(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	claimID := chi.URLParam(req, "claimID")
	if err := middleware.ValidateClaimID(claimID); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	}

	report, err := r.trinitySvc.GetReport(req.Context(), tenant, claimID)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(report)
}

// GET /v1/{tenant}/risk/documents/{documentID}/analysis
func (r *Router) handleDocumentAnalysis(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	documentID := chi.URLParam(req, "documentID")
	if err := middleware.ValidateDocumentID(documentID); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	}

	analysis, err := r.trinitySvc.GetDocumentAnalysis(req.Context(), tenant, documentID)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(analysis)
}

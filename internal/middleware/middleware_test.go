package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAPIKeyAuth(t *testing.T) {
	keys := map[string]string{"tenant-a": "secret-a"}
	handler := APIKeyAuth(keys)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tenant-a", GetTenantFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("bearer key accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/tenant-a/risk", nil)
		req.Header.Set("Authorization", "Bearer secret-a")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("raw key accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/tenant-a/risk", nil)
		req.Header.Set("Authorization", "secret-a")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/tenant-a/risk", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong key rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/tenant-a/risk", nil)
		req.Header.Set("Authorization", "Bearer wrong")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("health bypasses auth", func(t *testing.T) {
		bypass := APIKeyAuth(keys)(okHandler())
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		bypass.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireValidTenant(t *testing.T) {
	router := chi.NewRouter()
	router.Use(APIKeyAuth(map[string]string{"tenant-a": "secret-a"}))
	router.Use(RequireValidTenant)
	router.Get("/v1/{tenant}/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("own tenant allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/tenant-a/ping", nil)
		req.Header.Set("Authorization", "Bearer secret-a")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("foreign tenant forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/tenant-b/ping", nil)
		req.Header.Set("Authorization", "Bearer secret-a")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("malformed tenant rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/ten%20ant/ping", nil)
		req.Header.Set("Authorization", "Bearer secret-a")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestValidateTenantID(t *testing.T) {
	assert.NoError(t, ValidateTenantID("tenant-a"))
	assert.NoError(t, ValidateTenantID("Tenant_01"))
	assert.Error(t, ValidateTenantID(""))
	assert.Error(t, ValidateTenantID("tenant a"))
	assert.Error(t, ValidateTenantID("../../etc"))
}

func TestValidateClaimID(t *testing.T) {
	assert.NoError(t, ValidateClaimID("a3bb189e-8bf9-3888-9912-ace4e6543002"))
	assert.NoError(t, ValidateClaimID("CLM-2026-000123"))
	assert.Error(t, ValidateClaimID(""))
	assert.Error(t, ValidateClaimID("claim 1"))
	assert.Error(t, ValidateClaimID("../../etc"))
}

func TestValidateDocumentID(t *testing.T) {
	assert.NoError(t, ValidateDocumentID("doc_01"))
	assert.Error(t, ValidateDocumentID(""))
	assert.Error(t, ValidateDocumentID("doc;drop"))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello\x00 "))
	assert.Equal(t, "a\tb", SanitizeString("a\tb\x1b"))
}

func TestTokenBucketExhaustion(t *testing.T) {
	tb := NewTokenBucket(3, 1)
	for i := 0; i < 3; i++ {
		require.True(t, tb.Allow())
	}
	assert.False(t, tb.Allow())
}

func TestRateLimiterPerKey(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	assert.True(t, rl.Allow("tenant-a:1.2.3.4"))
	assert.False(t, rl.Allow("tenant-a:1.2.3.4"))
	assert.True(t, rl.Allow("tenant-b:1.2.3.4"), "buckets are per tenant and address")
}

func TestRateLimitMiddlewareRejects(t *testing.T) {
	handler := RateLimitMiddleware(1, 1)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/tenant-a/ping", nil)
	req.RemoteAddr = "10.0.0.1:5000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestRateLimiter_AllowsWithinBudgetThenBlocks verifies the token bucket.
func TestRateLimiter_AllowsWithinBudgetThenBlocks(t *testing.T) {
	rl := NewRateLimiter(3, time.Hour)
	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("fourth request should be blocked")
	}
	if !rl.Allow("10.0.0.2") {
		t.Fatal("other IPs must have their own bucket")
	}
}

// TestSecurityHeaders_SetsOWASPHeaders verifies the header set.
func TestSecurityHeaders_SetsOWASPHeaders(t *testing.T) {
	h := SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers", nil))

	for _, header := range []string{"Content-Security-Policy", "X-Frame-Options", "X-Content-Type-Options", "Referrer-Policy"} {
		if rec.Header().Get(header) == "" {
			t.Fatalf("missing header %s", header)
		}
	}
}

// TestCSRF_JSONRequestsExempt verifies API clients bypass token checks.
func TestCSRF_JSONRequestsExempt(t *testing.T) {
	key := make([]byte, 32)
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}), CSRF(key, []string{"localhost:8080"}))

	req := httptest.NewRequest(http.MethodPost, "/api/customers", nil)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status=%d want 204", rec.Code)
	}
}

// TestCSRF_FormPostWithoutTokenRejected verifies form submissions are
// protected.
func TestCSRF_FormPostWithoutTokenRejected(t *testing.T) {
	key := make([]byte, 32)
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}), CSRF(key, []string{"localhost:8080"}))

	req := httptest.NewRequest(http.MethodPost, "/customers/new", nil)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status=%d want 403", rec.Code)
	}
}

// TestChain_AppliesOuterToInner verifies ordering.
func TestChain_AppliesOuterToInner(t *testing.T) {
	var order []string
	mk := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), mk("inner"), mk("outer"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Fatalf("order=%v", order)
	}
}

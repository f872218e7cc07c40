package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequireAuthMissingToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	})
	h := RequireAuth(nil)(next)

	for _, tc := range []struct {
		name  string
		setup func(r *http.Request)
	}{
		{"no credentials", func(r *http.Request) {}},
		{"wrong scheme", func(r *http.Request) { r.Header.Set("Authorization", "Basic abc123") }},
		{"bearer with no token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer ") }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/search-papers", nil)
			tc.setup(req)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.JSONEq(t, `{"error":"not authenticated"}`, rec.Body.String())
		})
	}
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.Equal(t, "", bearerToken(req))

	req.Header.Set("Authorization", "Bearer tok-123")
	require.Equal(t, "tok-123", bearerToken(req))

	req.Header.Set("Authorization", "bearer tok-456")
	require.Equal(t, "tok-456", bearerToken(req))

	req.Header.Set("Authorization", "Token tok-789")
	require.Equal(t, "", bearerToken(req))
}

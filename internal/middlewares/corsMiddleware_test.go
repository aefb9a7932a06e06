package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func corsRequest(t *testing.T, origins, origin, method string) *httptest.ResponseRecorder {
	t.Helper()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(method, "/api/items", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	Cors(origins)(next).ServeHTTP(rec, req)
	return rec
}

func TestCorsAllowsListedOrigin(t *testing.T) {
	rec := corsRequest(t, "http://localhost:3000, https://app.example.com", "https://app.example.com", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCorsIgnoresUnlistedOrigin(t *testing.T) {
	rec := corsRequest(t, "http://localhost:3000", "https://evil.example.com", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorsEmptyAllowlistAllowsNothing(t *testing.T) {
	rec := corsRequest(t, "", "http://localhost:3000", http.MethodGet)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorsAnswersPreflightDirectly(t *testing.T) {
	rec := corsRequest(t, "http://localhost:3000", "http://localhost:3000", http.MethodOptions)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

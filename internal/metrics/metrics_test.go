package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewarePathLabel(t *testing.T) {

	t.Run("Wildcard Segments Collapse Into The Label", func(t *testing.T) {
		// Arrange
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/v1/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		labeled := httpRequestsTotal.WithLabelValues("200", http.MethodGet, "/api/v1/sessions/{id}")
		before := testutil.ToFloat64(labeled)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/0b7ad53e-8c19-4c40-90f3-aaa111222333", nil)
		rec := httptest.NewRecorder()

		// Act
		Middleware(mux).ServeHTTP(rec, req)

		// Assert
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, before+1, testutil.ToFloat64(labeled), "session ids must not leak into the path label")
	})

	t.Run("Keyword Segments Collapse Into The Label", func(t *testing.T) {
		// Arrange
		mux := http.NewServeMux()
		mux.HandleFunc("DELETE /api/v1/sessions/{id}/keywords/{keyword}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		labeled := httpRequestsTotal.WithLabelValues("200", http.MethodDelete, "/api/v1/sessions/{id}/keywords/{keyword}")
		before := testutil.ToFloat64(labeled)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/abc123/keywords/%D1%87%D0%B0%D0%B9%D0%BD%D0%B8%D0%BA", nil)
		rec := httptest.NewRecorder()

		// Act
		Middleware(mux).ServeHTTP(rec, req)

		// Assert
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, before+1, testutil.ToFloat64(labeled), "keyword values must not leak into the path label")
	})
}

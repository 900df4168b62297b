package address_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"cardcomposer/internal/address"
	appErrors "cardcomposer/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Suggestions Mapped", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "Москва, Тверская", r.URL.Query().Get("q"))
			assert.Equal(t, "json", r.URL.Query().Get("format"))
			assert.Equal(t, "5", r.URL.Query().Get("limit"))
			assert.Equal(t, "cardcomposer-test/1.0", r.Header.Get("User-Agent"))

			w.Write([]byte(`[{"display_name": "Тверская улица, Москва", "lat": "55.7616", "lon": "37.6095"}]`))
		}))
		defer server.Close()

		client := address.NewClient(server.URL, "cardcomposer-test/1.0", server.Client())

		// Act
		suggestions, err := client.Search(ctx, "Москва, Тверская")

		// Assert
		require.NoError(t, err)
		require.Len(t, suggestions, 1)
		assert.Equal(t, "Тверская улица, Москва", suggestions[0].Value)
		assert.Equal(t, "55.7616", suggestions[0].Lat)
		assert.Equal(t, "37.6095", suggestions[0].Lon)
	})

	t.Run("Success - Short Query Skips The Upstream", func(t *testing.T) {
		// Arrange
		var calls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))
		defer server.Close()

		client := address.NewClient(server.URL, "cardcomposer-test/1.0", server.Client())

		// Act
		suggestions, err := client.Search(ctx, "  ул ")

		// Assert
		require.NoError(t, err)
		assert.Empty(t, suggestions)
		assert.Equal(t, int32(0), calls.Load(), "queries under three characters never hit the upstream")
	})

	t.Run("Failure - Upstream Status Propagates", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := address.NewClient(server.URL, "cardcomposer-test/1.0", server.Client())

		// Act
		_, err := client.Search(ctx, "Москва")

		// Assert
		require.Error(t, err)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusServiceUnavailable, appErr.StatusCode)
	})
}

package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cardcomposer/internal/api/handlers"
	appErrors "cardcomposer/internal/errors"
	"cardcomposer/internal/models"
	"cardcomposer/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAddress struct {
	suggestions []models.AddressSuggestion
	err         error
}

func (s *stubAddress) Search(ctx context.Context, query string) ([]models.AddressSuggestion, error) {
	return s.suggestions, s.err
}

func TestAddressSearch(t *testing.T) {

	t.Run("Success", func(t *testing.T) {
		// Arrange
		handler := handlers.NewAddressHandler(&stubAddress{
			suggestions: []models.AddressSuggestion{{Value: "Тверская улица, Москва", Lat: "55.76", Lon: "37.61"}},
		})

		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/address", strings.NewReader(`{"query": "Москва"}`), nil)
		rec := httptest.NewRecorder()

		// Act
		handler.Search().ServeHTTP(rec, req)

		// Assert
		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.AddressSuggestionsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Suggestions, 1)
		assert.Equal(t, "Тверская улица, Москва", resp.Suggestions[0].Value)
	})

	t.Run("Failure - Flat Error Shape", func(t *testing.T) {
		// Arrange
		handler := handlers.NewAddressHandler(&stubAddress{
			err: appErrors.NewAppError(appErrors.ErrCodeThirdPartyError, "Address lookup failed", http.StatusServiceUnavailable),
		})

		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/address", strings.NewReader(`{"query": "Москва"}`), nil)
		rec := httptest.NewRecorder()

		// Act
		handler.Search().ServeHTTP(rec, req)

		// Assert
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Address lookup failed", resp["error"])
	})

	t.Run("Failure - Bad JSON", func(t *testing.T) {
		// Arrange
		handler := handlers.NewAddressHandler(&stubAddress{})

		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/address", strings.NewReader(`{broken`), nil)
		rec := httptest.NewRecorder()

		// Act
		handler.Search().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestNomenclatureCreate(t *testing.T) {

	t.Run("Success - Upstream Body Returned Verbatim", func(t *testing.T) {
		// Arrange
		handler := handlers.NewNomenclatureHandler(&stubCatalog{})

		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/nomenclature", strings.NewReader(`[{"name": "Чайник", "type": "product"}]`), nil)
		rec := httptest.NewRecorder()

		// Act
		handler.Create().ServeHTTP(rec, req)

		// Assert
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}

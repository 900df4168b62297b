package catalog_test

import (
	"encoding/json"
	"testing"

	"cardcomposer/internal/catalog"
	"cardcomposer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPayload(t *testing.T) {

	t.Run("Numeric Strings Converted At The Boundary", func(t *testing.T) {
		// Arrange
		values := models.DefaultValues()
		values.Name = "Чайник"
		values.MarketplacePrice = "1990.50"
		values.Latitude = "55.7558"
		values.Longitude = "37.6173"

		// Act
		payload := catalog.BuildPayload(values, []string{"чайник"})

		// Assert
		assert.Equal(t, "Чайник", payload.Name)
		assert.Equal(t, "product", payload.Type)

		require.NotNil(t, payload.Unit)
		assert.Equal(t, int64(116), *payload.Unit)
		require.NotNil(t, payload.Category)
		assert.Equal(t, int64(2477), *payload.Category)
		require.NotNil(t, payload.MarketplacePrice)
		assert.InDelta(t, 1990.50, *payload.MarketplacePrice, 0.001)
		require.NotNil(t, payload.Latitude)
		assert.InDelta(t, 55.7558, *payload.Latitude, 0.0001)
		require.NotNil(t, payload.ChattingPercent)
		assert.InDelta(t, 4, *payload.ChattingPercent, 0.001)

		assert.Equal(t, []string{"чайник"}, payload.SeoKeywords)
	})

	t.Run("Empty Numeric Field Omitted From JSON Entirely", func(t *testing.T) {
		// Arrange
		values := models.DefaultValues()
		values.Name = "Чайник"
		values.MarketplacePrice = ""

		// Act
		payload := catalog.BuildPayload(values, nil)

		data, err := json.Marshal(payload)
		require.NoError(t, err)

		var asMap map[string]any
		require.NoError(t, json.Unmarshal(data, &asMap))

		// Assert: no key at all, not 0 and not null
		assert.NotContains(t, asMap, "marketplace_price")
		assert.NotContains(t, asMap, "latitude")
		assert.NotContains(t, asMap, "longitude")
		assert.NotContains(t, asMap, "seo_title")
		assert.NotContains(t, asMap, "seo_keywords")
		assert.Contains(t, asMap, "name")
		assert.Contains(t, asMap, "unit")
	})

	t.Run("Unparsable Numeric Field Omitted", func(t *testing.T) {
		// Arrange
		values := models.DefaultValues()
		values.Name = "Чайник"
		values.MarketplacePrice = "дорого"

		// Act
		payload := catalog.BuildPayload(values, nil)

		// Assert
		assert.Nil(t, payload.MarketplacePrice)
	})
}

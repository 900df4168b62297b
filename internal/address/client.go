// Package address resolves free-form address queries to suggestions with
// coordinates through a Nominatim-compatible upstream.
package address

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	appErrors "cardcomposer/internal/errors"
	"cardcomposer/internal/models"
)

// Queries shorter than this return no suggestions without touching the
// upstream at all.
const minQueryLen = 3

const suggestionLimit = 5

type Client interface {
	Search(ctx context.Context, query string) ([]models.AddressSuggestion, error)
}

type httpClient struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func NewClient(baseURL, userAgent string, client *http.Client) Client {
	if client == nil {
		client = http.DefaultClient
	}

	return &httpClient{baseURL: baseURL, userAgent: userAgent, client: client}
}

type nominatimItem struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

func (c *httpClient) Search(ctx context.Context, query string) ([]models.AddressSuggestion, error) {

	query = strings.TrimSpace(query)
	if len([]rune(query)) < minQueryLen {
		return []models.AddressSuggestion{}, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", fmt.Sprintf("%d", suggestionLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build address request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Address service is unreachable").WithError(err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, appErrors.NewAppError(appErrors.ErrCodeThirdPartyError, "Address lookup failed", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Failed to read address response").WithError(err)
	}

	var items []nominatimItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, appErrors.ParseError("Address response is not valid JSON").WithError(err)
	}

	suggestions := make([]models.AddressSuggestion, 0, len(items))
	for _, item := range items {
		suggestions = append(suggestions, models.AddressSuggestion{
			Value: item.DisplayName,
			Lat:   item.Lat,
			Lon:   item.Lon,
		})
	}

	return suggestions, nil
}

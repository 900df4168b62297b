package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	appErrors "cardcomposer/internal/errors"
)

// Client talks to the upstream nomenclature API.
type Client interface {
	// Create posts one card. The upstream expects a JSON array holding
	// exactly one payload object.
	Create(ctx context.Context, payload *Payload) error
	// Forward sends a raw request body as-is and returns the upstream body
	// and status code. Used by the passthrough proxy route.
	Forward(ctx context.Context, body []byte) ([]byte, int, error)
}

type httpClient struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewClient(baseURL, token string, client *http.Client) Client {
	if client == nil {
		client = http.DefaultClient
	}

	return &httpClient{baseURL: baseURL, token: token, client: client}
}

func (c *httpClient) Create(ctx context.Context, payload *Payload) error {

	body, err := json.Marshal([]*Payload{payload})
	if err != nil {
		return appErrors.InternalError("Failed to encode catalog payload").WithError(err)
	}

	respBody, status, err := c.Forward(ctx, body)
	if err != nil {
		return appErrors.ThirdPartyError("Catalog service is unreachable").WithError(err)
	}

	if status < 200 || status >= 300 {
		return appErrors.ThirdPartyError(upstreamMessage(respBody, status))
	}

	return nil
}

func (c *httpClient) Forward(ctx context.Context, body []byte) ([]byte, int, error) {

	url := fmt.Sprintf("%s?token=%s", c.baseURL, c.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build catalog request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("catalog request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read catalog response: %w", err)
	}

	return respBody, resp.StatusCode, nil
}

// upstreamMessage prefers the server-supplied error string and falls back to
// a generic HTTP status message.
func upstreamMessage(body []byte, status int) string {

	var errResp struct {
		Error string `json:"error"`
	}

	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return errResp.Error
	}

	if len(bytes.TrimSpace(body)) > 0 {
		return string(bytes.TrimSpace(body))
	}

	return fmt.Sprintf("HTTP %d", status)
}

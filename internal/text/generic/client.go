package generic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/tutor/internal/models"
)

const userAgent = "tutor"

// Client posts JSON to one vendor endpoint. It owns the API key, the rate
// limiter and the debug switch, which are shared by the vendor adapters.
type Client struct {
	URL     string
	Limiter RateLimiter

	apiKey     string
	authHeader func(apiKey string) (string, string)
	client     *http.Client
	debug      bool
}

// BearerAuth sets the api key as an 'Authorization: Bearer' header.
func BearerAuth(apiKey string) (string, string) {
	return "Authorization", fmt.Sprintf("Bearer %v", apiKey)
}

// Setup the client by reading the api key from apiKeyEnv. An unset key is an
// error, so that no request is ever sent without credentials.
func (c *Client) Setup(apiKeyEnv, url, debugEnv string, authHeader func(string) (string, string)) error {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return fmt.Errorf("environment variable '%v' not set", apiKeyEnv)
	}
	c.apiKey = apiKey
	if c.URL == "" {
		c.URL = url
	}
	c.authHeader = authHeader
	if c.authHeader == nil {
		c.authHeader = BearerAuth
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: 5 * time.Minute}
	}
	if misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv(debugEnv)) {
		c.debug = true
	}
	return nil
}

// Debug reports if request and response payloads should be dumped.
func (c *Client) Debug() bool {
	return c.debug
}

// PostJSON encodes body, posts it and returns the raw response body.
// Non-2xx responses are returned as errors carrying status and body, 429 as
// *models.ErrRateLimit.
func (c *Client) PostJSON(ctx context.Context, body any, headers map[string]string) ([]byte, error) {
	if c.client == nil {
		return nil, errors.New("client not set up")
	}
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("request to '%v': %v\n", c.URL, debug.IndentedJsonFmt(body)))
	}

	c.Limiter.WaitIfNeeded(ctx)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	k, v := c.authHeader(c.apiKey)
	req.Header.Set(k, v)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer res.Body.Close()
	if err := c.Limiter.UpdateFromHeaders(res.Header); err != nil && c.debug {
		ancli.PrintWarn(fmt.Sprintf("failed to update rate limiter: %v\n", err))
	}

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("response, status: %v, body: %v\n", res.Status, string(resBody)))
	}
	if res.StatusCode == http.StatusTooManyRequests {
		return nil, models.NewRateLimitError(c.Limiter.ResetAt(), c.Limiter.RemainingTokens(), string(resBody))
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code: %v, body: %v", res.Status, string(resBody))
	}
	return resBody, nil
}

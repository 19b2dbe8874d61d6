package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"storefront-gateway/internal/core/logger"

	"go.uber.org/zap"
)

const maxBodyBytes = 4 << 20

type accessTokenKey struct{}

// WithAccessToken returns a context whose API calls carry the given bearer token.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, token)
}

// AccessTokenFrom returns the bearer token stored in ctx, or "".
func AccessTokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(accessTokenKey{}).(string)
	return token
}

// RequestOption customizes a single request.
type RequestOption func(*http.Request)

// WithHeader sets a request header.
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// WithQuery merges query parameters into the request URL. Empty values are skipped.
func WithQuery(params map[string]string) RequestOption {
	return func(r *http.Request) {
		q := r.URL.Query()
		for k, v := range params {
			if v != "" {
				q.Set(k, v)
			}
		}
		r.URL.RawQuery = q.Encode()
	}
}

// Client issues calls against the storefront commerce API.
// It does not retry: a failed call is reported to the caller immediately.
type Client struct {
	// httpClient is the HTTP client used for API requests.
	httpClient *http.Client
	// baseURL is the API root without trailing slash.
	baseURL string
	// storeID scopes storefront paths.
	storeID string
}

// New creates a Client.
func New(baseURL, storeID string, httpClient *http.Client) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		storeID:    storeID,
	}
}

// StorePath builds /storefront/store/{storeId}/seg1/seg2..., escaping each segment.
func (c *Client) StorePath(segments ...string) string {
	var b strings.Builder
	b.WriteString("/storefront/store/")
	b.WriteString(url.PathEscape(c.storeID))
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// Do executes method path with an optional JSON body and normalizes the response.
// It never returns nil.
func (c *Client) Do(ctx context.Context, method, path string, body any, opts ...RequestOption) *Result {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return failure(KindServer, 0, fmt.Sprintf("failed to encode request: %v", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return failure(KindServer, 0, fmt.Sprintf("failed to create request: %v", err))
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := AccessTokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, opt := range opts {
		opt(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		msg := "unable to reach the store, please check your connection"
		if errors.Is(err, context.DeadlineExceeded) {
			msg = "the store took too long to respond"
		}
		logger.Get().Warn("Commerce API unreachable",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return failure(KindNetwork, 0, msg)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return failure(KindNetwork, resp.StatusCode, fmt.Sprintf("failed to read response: %v", err))
	}

	res := parseEnvelope(resp.StatusCode, raw)
	if !res.Success {
		logger.Get().Debug("Commerce API call unsuccessful",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("kind", string(res.Err.Kind)),
			zap.String("message", res.Err.Message),
		)
	}
	return res
}

// Ping verifies that the API is reachable and the store exists.
func (c *Client) Ping(ctx context.Context) error {
	res := c.Do(ctx, http.MethodGet, c.StorePath(), nil)
	if !res.Success {
		return fmt.Errorf("health check failed: %w", res.Err)
	}
	return nil
}

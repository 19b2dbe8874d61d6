package httpclient

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/core/proxy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoggingRoundTripper verifies that requests pass through untouched.
func TestLoggingRoundTripper(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	require.NoError(t, logger.Init("development", "debug"))

	client := NewClient(1 * time.Second)
	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer secret")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestLoggingRoundTripper_Error verifies that failed requests are surfaced.
func TestLoggingRoundTripper_Error(t *testing.T) {
	require.NoError(t, logger.Init("development", "debug"))

	client := NewClient(1 * time.Second)
	_, err := client.Get("http://invalid-url-that-does-not-exist.local")
	require.Error(t, err)
}

// TestNewProxiedClient verifies that requests are routed through the configured proxy.
func TestNewProxiedClient(t *testing.T) {
	var proxiedHost string
	proxyServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		proxiedHost = r.Host
		w.WriteHeader(http.StatusNoContent)
	}))
	defer proxyServer.Close()

	u, err := url.Parse(proxyServer.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	settings := proxy.Settings{Enabled: true, Hostname: u.Hostname(), Port: port}

	client := NewProxiedClient(time.Second, settings)
	resp, err := client.Get("http://commerce.example.test/storefront/store/1/cart")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "commerce.example.test", proxiedHost)
}

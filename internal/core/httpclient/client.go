package httpclient

import (
	"net/http"
	"time"

	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/core/proxy"

	"go.uber.org/zap"
)

// LoggingRoundTripper captures request details for debugging.
// Header values are never logged; only whether the request carried credentials.
type LoggingRoundTripper struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
}

// RoundTrip executes the request and logs details.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	authenticated := req.Header.Get("Authorization") != ""

	logger.Get().Debug("HTTP Request Started",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Bool("authenticated", authenticated),
	)

	resp, err := lrt.Proxied.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		logger.Get().Error("HTTP Request Failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Get().Debug("HTTP Request Completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

// NewClient returns an http.Client with logging middleware.
func NewClient(timeout time.Duration) *http.Client {
	return NewProxiedClient(timeout, proxy.Settings{})
}

// NewProxiedClient returns an http.Client with logging middleware that routes
// through the given proxy when one is configured.
func NewProxiedClient(timeout time.Duration, settings proxy.Settings) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = settings.ProxyFunc()

	if settings.HasProxy() {
		logger.Get().Info("Outbound proxy enabled", zap.String("proxy", settings.HostPort()))
	}

	return &http.Client{
		Transport: &LoggingRoundTripper{
			Proxied: transport,
		},
		Timeout: timeout,
	}
}

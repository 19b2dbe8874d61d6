package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// HostedWidget implements ports.PaymentWidget for the gateway's CDN-hosted checkout script.
type HostedWidget struct {
	client    *http.Client
	scriptURL string
}

// NewHostedWidget creates a new HostedWidget.
func NewHostedWidget(client *http.Client, scriptURL string) *HostedWidget {
	return &HostedWidget{
		client:    client,
		scriptURL: scriptURL,
	}
}

// ScriptURL returns the script the browser must include.
func (w *HostedWidget) ScriptURL() string {
	return w.scriptURL
}

// Load fetches the script once to confirm the CDN is serving it.
func (w *HostedWidget) Load(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.scriptURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create widget script request: %w", err)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to load widget script: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("widget script returned status: %d", resp.StatusCode)
	}
	return nil
}

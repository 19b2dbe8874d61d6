package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHostedWidget_Load(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/checkout.js", r.URL.Path)
			w.Write([]byte("window.Razorpay = function(){};"))
		}))
		defer server.Close()

		widget := NewHostedWidget(server.Client(), server.URL+"/v1/checkout.js")

		assert.NoError(t, widget.Load(context.Background()))
		assert.Equal(t, server.URL+"/v1/checkout.js", widget.ScriptURL())
	})

	t.Run("NotFound", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		widget := NewHostedWidget(server.Client(), server.URL+"/v1/checkout.js")

		assert.ErrorContains(t, widget.Load(context.Background()), "status: 404")
	})

	t.Run("Unreachable", func(t *testing.T) {
		widget := NewHostedWidget(http.DefaultClient, "http://127.0.0.1:1/checkout.js")

		assert.ErrorContains(t, widget.Load(context.Background()), "failed to load widget script")
	})
}

package proxy

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_HasProxy(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		want     bool
	}{
		{name: "Disabled", settings: Settings{Hostname: "proxy", Port: 3128}, want: false},
		{name: "MissingHost", settings: Settings{Enabled: true, Port: 3128}, want: false},
		{name: "MissingPort", settings: Settings{Enabled: true, Hostname: "proxy"}, want: false},
		{name: "Configured", settings: Settings{Enabled: true, Hostname: "proxy", Port: 3128}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.settings.HasProxy())
		})
	}
}

func TestSettings_URL(t *testing.T) {
	t.Run("WithCredentials", func(t *testing.T) {
		s := Settings{Enabled: true, Hostname: "proxy", Port: 3128, Username: "u", Password: "p"}
		u := s.URL()
		require.NotNil(t, u)
		assert.Equal(t, "http://u:p@proxy:3128", u.String())
		assert.Equal(t, "http://proxy:3128", s.HostPort())
	})

	t.Run("WithoutCredentials", func(t *testing.T) {
		s := Settings{Enabled: true, Hostname: "proxy", Port: 3128}
		assert.Equal(t, "http://proxy:3128", s.URL().String())
	})

	t.Run("Disabled", func(t *testing.T) {
		assert.Nil(t, Settings{}.URL())
		assert.Empty(t, Settings{}.HostPort())
	})
}

func TestSettings_ProxyFunc(t *testing.T) {
	s := Settings{Enabled: true, Hostname: "proxy", Port: 3128}
	req, err := http.NewRequest(http.MethodGet, "https://api.example.com/cart", nil)
	require.NoError(t, err)

	u, err := s.ProxyFunc()(req)
	require.NoError(t, err)
	assert.Equal(t, "proxy:3128", u.Host)
}

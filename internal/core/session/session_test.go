package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-gateway/internal/core/apiclient"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp() *fiber.App {
	app := fiber.New()
	app.Use(New(Config{TTL: time.Hour}))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"session_id": ID(c),
			"token":      apiclient.AccessTokenFrom(Context(c)),
		})
	})
	return app
}

func decode(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestMiddleware_MintsSessionID(t *testing.T) {
	app := setupApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.NoError(t, err)

	body := decode(t, resp)
	_, err = uuid.Parse(body["session_id"])
	assert.NoError(t, err)
	assert.Equal(t, body["session_id"], resp.Header.Get(HeaderName))
	assert.Empty(t, body["token"])

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == CookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, body["session_id"], cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestMiddleware_ReusesHeaderAndCookie(t *testing.T) {
	app := setupApp()
	existing := uuid.NewString()

	t.Run("Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(HeaderName, existing)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, existing, decode(t, resp)["session_id"])
	})

	t.Run("Cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: existing})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, existing, decode(t, resp)["session_id"])
	})

	t.Run("MalformedIsReplaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(HeaderName, "../../etc/passwd")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.NotEqual(t, "../../etc/passwd", decode(t, resp)["session_id"])
	})
}

func TestMiddleware_ForwardsBearerToken(t *testing.T) {
	app := setupApp()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer tok_abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "tok_abc", decode(t, resp)["token"])

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Empty(t, decode(t, resp)["token"])
}

// Package session resolves the shopper session for each request.
//
// A session id is read from the X-Session-ID header or the sf_session cookie and
// minted with a random UUID otherwise. The inbound bearer token is copied into the
// request's user context so commerce API calls made on the shopper's behalf are
// authenticated as that shopper.
package session

import (
	"context"
	"strings"
	"time"

	"storefront-gateway/internal/core/apiclient"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// HeaderName carries the session id for non-browser clients.
	HeaderName = "X-Session-ID"
	// CookieName carries the session id for browsers.
	CookieName = "sf_session"

	localsKey = "session_id"
)

// Config tunes the middleware.
type Config struct {
	// TTL is the cookie lifetime.
	TTL time.Duration
	// Secure marks the cookie HTTPS-only.
	Secure bool
}

// New returns the session middleware.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := resolveID(c)

		c.Locals(localsKey, id)
		c.Set(HeaderName, id)
		c.Cookie(&fiber.Cookie{
			Name:     CookieName,
			Value:    id,
			Path:     "/",
			Expires:  time.Now().Add(cfg.TTL),
			HTTPOnly: true,
			Secure:   cfg.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})

		if token := bearerToken(c.Get(fiber.HeaderAuthorization)); token != "" {
			c.SetUserContext(apiclient.WithAccessToken(c.UserContext(), token))
		}

		return c.Next()
	}
}

// ID returns the session id resolved by the middleware, or "" if it did not run.
func ID(c *fiber.Ctx) string {
	id, _ := c.Locals(localsKey).(string)
	return id
}

// Context returns the request context carrying the shopper's access token.
func Context(c *fiber.Ctx) context.Context {
	return c.UserContext()
}

func resolveID(c *fiber.Ctx) string {
	for _, candidate := range []string{c.Get(HeaderName), c.Cookies(CookieName)} {
		if _, err := uuid.Parse(candidate); err == nil {
			return candidate
		}
	}
	return uuid.NewString()
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

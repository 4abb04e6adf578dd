package middleware

import (
	"errors"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/cache"
	"github.com/gofiber/fiber/v2"
)

const cacheHeader = "X-Cache"

// ResponseCache serves successful GET responses from store. Entries are keyed
// by prefix plus the full request URI and are dropped wholesale when a write
// evicts the prefix.
func ResponseCache(store cache.Store, prefix string, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet {
			return c.Next()
		}

		key := prefix + c.OriginalURL()
		body, err := store.Get(c.UserContext(), key)
		if err == nil {
			c.Set(cacheHeader, "HIT")
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(body)
		}
		if !errors.Is(err, cache.ErrMiss) {
			slog.Warn("read cache lookup failed", "action", "cache_get", "key", key, "error", err)
		}

		if err := c.Next(); err != nil {
			return err
		}
		c.Set(cacheHeader, "MISS")

		if c.Response().StatusCode() != fiber.StatusOK {
			return nil
		}
		// The response buffer is reused by fasthttp once the handler returns.
		payload := append([]byte(nil), c.Response().Body()...)
		if err := store.Set(c.UserContext(), key, payload, ttl); err != nil {
			slog.Warn("read cache store failed", "action", "cache_set", "key", key, "error", err)
		}
		return nil
	}
}

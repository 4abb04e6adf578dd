package middleware

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Throttle scopes.
const (
	ScopeLogin         = "login"
	ScopeCommentCreate = "comment-create"
	ScopeLike          = "like"
	ScopeReport        = "report"
)

// RateLimit allows max requests per minute within scope. Authenticated
// requests are keyed by user, anonymous ones by client IP, so it should run
// after the JWT middleware on protected routes.
func RateLimit(scope string, max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator: func(c *fiber.Ctx) string {
			if userID, err := UserID(c); err == nil {
				return scope + ":user:" + strconv.FormatUint(uint64(userID), 10)
			}
			return scope + ":ip:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			slog.Warn("request throttled", "action", "throttle", "scope", scope, "ip", c.IP(), "path", c.Path())
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Error: "Request was throttled.",
			})
		},
	})
}

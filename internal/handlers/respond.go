package handlers

import (
	"log/slog"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/services"
	"github.com/gofiber/fiber/v2"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
)

var kindStatus = map[services.Kind]int{
	services.KindValidation:   fiber.StatusBadRequest,
	services.KindPermission:   fiber.StatusForbidden,
	services.KindNotFound:     fiber.StatusNotFound,
	services.KindConflict:     fiber.StatusConflict,
	services.KindUnauthorized: fiber.StatusUnauthorized,
}

// fail writes err as a JSON error. Service errors keep their message; anything
// else is logged, reported to Sentry and hidden behind a generic 500.
func fail(c *fiber.Ctx, err error) error {
	if status, ok := kindStatus[services.KindOf(err)]; ok {
		return c.Status(status).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	slog.Error("request failed",
		"method", c.Method(),
		"path", c.Path(),
		"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
		"user_id", middleware.OptionalUserID(c),
		"error", err,
	)
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Internal server error"})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: "Authentication credentials were not provided.",
	})
}

func message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(dto.MessageResponse{Message: msg})
}

// pathID parses a numeric route parameter. Non-numeric IDs read as missing.
func pathID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// page reads limit/offset query parameters, clamped to the service bounds.
func page(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", services.DefaultPageSize)
	offset = c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = services.DefaultPageSize
	}
	if limit > services.MaxPageSize {
		limit = services.MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func postFilter(c *fiber.Ctx) services.PostFilter {
	limit, offset := page(c)
	return services.PostFilter{
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
		Limit:    limit,
		Offset:   offset,
	}
}

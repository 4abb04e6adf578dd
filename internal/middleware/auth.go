package middleware

import (
	"errors"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/config"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var errNoPrincipal = errors.New("no authenticated user")

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtConfig(cfg))
}

// OptionalJWT authenticates the request when an Authorization header is sent
// and lets anonymous requests through untouched. A bad token is still a 401.
func OptionalJWT(cfg *config.Config) fiber.Handler {
	conf := jwtConfig(cfg)
	conf.Filter = func(c *fiber.Ctx) bool {
		return c.Get(fiber.HeaderAuthorization) == ""
	}
	return jwtware.New(conf)
}

func jwtConfig(cfg *config.Config) jwtware.Config {
	return jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "Given token not valid for any token type",
			})
		},
	}
}

// UserID returns the authenticated user's ID from the verified token.
func UserID(c *fiber.Ctx) (uint, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return 0, errNoPrincipal
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return 0, errNoPrincipal
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, errNoPrincipal
	}
	return uint(id), nil
}

// OptionalUserID is UserID for routes that also serve anonymous readers; zero
// means anonymous.
func OptionalUserID(c *fiber.Ctx) uint {
	id, err := UserID(c)
	if err != nil {
		return 0
	}
	return id
}

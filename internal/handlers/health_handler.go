package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/cache"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/database"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/dto"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db           *gorm.DB
	cache        cache.Cache
	cacheEnabled bool
}

func NewHealthHandler(db *gorm.DB, c cache.Cache, cacheEnabled bool) *HealthHandler {
	return &HealthHandler{db: db, cache: c, cacheEnabled: cacheEnabled}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(h.db); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	cacheStatus := "disabled"
	if h.cacheEnabled {
		cacheStatus = "ok"
		if err := h.cache.Ping(c.UserContext()); err != nil {
			cacheStatus = "unhealthy: " + err.Error()
		}
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		Cache:     cacheStatus,
	})
}

package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/cache"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/config"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

// Handlers groups every HTTP handler the route table wires.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Relationship *handlers.RelationshipHandler
	Post         *handlers.PostHandler
	Comment      *handlers.CommentHandler
	Category     *handlers.CategoryHandler
	Moderation   *handlers.ModerationHandler
	Health       *handlers.HealthHandler
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, store cache.Store, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Request was throttled."})
		},
	}))

	protected := middleware.JWTProtected(cfg)
	optional := middleware.OptionalJWT(cfg)
	readCache := middleware.ResponseCache(store, cfg.CachePrefix, cfg.CacheTTL)

	api.Get("/health", h.Health.Check)

	// Accounts
	api.Post("/register", h.Auth.Register)
	api.Post("/token", middleware.RateLimit(middleware.ScopeLogin, cfg.LoginRateLimit), h.Auth.Login)
	api.Post("/token/refresh", h.Auth.Refresh)
	api.Post("/logout", protected, h.Auth.Logout)
	api.Get("/me/profile", protected, h.Auth.Me)
	api.Patch("/me/profile", protected, h.Auth.UpdateMe)
	api.Get("/me/blocks", protected, h.Relationship.BlockedUsers)

	// Posts. Fixed segments are registered before /posts/:slug.
	posts := api.Group("/posts")
	posts.Get("/", readCache, h.Post.List)
	posts.Post("/", protected, h.Post.Create)
	posts.Get("/my-posts", protected, h.Post.Mine)
	posts.Get("/author/:username", h.Post.ByAuthor)
	posts.Get("/category/:slug", readCache, h.Post.ByCategory)
	posts.Get("/:slug", optional, h.Post.Get)
	posts.Patch("/:slug", protected, h.Post.Update)
	posts.Delete("/:slug", protected, h.Post.Delete)
	posts.Post("/:slug/like", protected, middleware.RateLimit(middleware.ScopeLike, cfg.LikeRateLimit), h.Post.React)

	// Comments
	api.Get("/comments/:post_slug", optional, h.Comment.List)
	api.Post("/comments/:post_slug", protected, middleware.RateLimit(middleware.ScopeCommentCreate, cfg.CommentRateLimit), h.Comment.Create)
	api.Post("/comments/:id/report", protected, middleware.RateLimit(middleware.ScopeReport, cfg.ReportRateLimit), h.Comment.Report)

	// Categories: public reads, admin writes
	admin := middleware.AdminRequired(db, cfg)
	api.Get("/categories", h.Category.List)
	api.Post("/categories", protected, admin, h.Category.Create)
	api.Patch("/categories/:slug", protected, admin, h.Category.Update)
	api.Delete("/categories/:slug", protected, admin, h.Category.Delete)

	// Moderation panel
	mod := api.Group("/admin", protected, admin)
	mod.Get("/comments/pending", h.Moderation.Pending)
	mod.Post("/comments/:id/approve", h.Moderation.Approve)
	mod.Delete("/comments/:id", h.Moderation.Delete)
	mod.Get("/reports", h.Moderation.Reports)

	// Users. The :username routes are last so they never shadow the fixed
	// prefixes above; those words are also reserved at registration.
	api.Get("/:username/profile", h.Auth.PublicProfile)
	api.Post("/:username/block", protected, h.Relationship.Block)
	api.Delete("/:username/block", protected, h.Relationship.Unblock)
	api.Post("/:username/follow", protected, h.Relationship.Follow)
	api.Delete("/:username/follow", protected, h.Relationship.Unfollow)
}

// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"forkful/internal/config"
	"forkful/internal/database"
	"forkful/internal/middleware"
	"forkful/internal/models"
	"forkful/internal/repository"
	"forkful/internal/upload"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	userRepo       repository.UserRepository
	restaurantRepo repository.RestaurantRepository
	categoryRepo   repository.CategoryRepository
	commentRepo    repository.CommentRepository
	relationRepo   repository.RelationRepository
	uploader       upload.Uploader
}

// New wires a server over an already-open database connection. NewServer is
// the production path; tests inject an in-memory database here directly.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, uploader upload.Uploader) *Server {
	return &Server{
		config:         cfg,
		db:             db,
		redis:          rdb,
		userRepo:       repository.NewUserRepository(db),
		restaurantRepo: repository.NewRestaurantRepository(db),
		categoryRepo:   repository.NewCategoryRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		relationRepo:   repository.NewRelationRepository(db),
		uploader:       uploader,
	}
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	rdb := newRedisClient(cfg.RedisURL)

	var uploader upload.Uploader
	if s3, err := upload.NewS3Uploader(cfg); err != nil {
		return nil, fmt.Errorf("upload setup failed: %w", err)
	} else if s3 != nil {
		uploader = s3
	}

	return New(cfg, db, rdb, uploader), nil
}

func newRedisClient(addr string) *redis.Client {
	if addr == "" {
		return nil
	}

	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			middleware.Logger.Warn("invalid REDIS_URL, continuing without redis", "url", addr, "error", err)
			return nil
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	return redis.NewClient(opts)
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Request ID for tracing
	app.Use(requestid.New())

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware
	app.Use(middleware.StructuredLogger())
	app.Use(middleware.ContextMiddleware())

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Prometheus request metrics
	prom := fiberprometheus.New("forkful")
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health check
	api.Get("/", s.HealthCheck)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", middleware.AuthRequired(s.config.JWTSecret), s.Logout)

	// Public browse routes; the viewer is resolved when a token is present
	// so listings can be annotated, anonymous requests still succeed.
	public := api.Group("", middleware.OptionalAuth(s.config.JWTSecret))

	restaurants := public.Group("/restaurants")
	restaurants.Get("/", s.GetRestaurants)
	// Specific /feeds and /top routes before generic /:id
	restaurants.Get("/feeds", s.GetFeeds)
	restaurants.Get("/top", s.GetTopRestaurants)
	restaurants.Get("/:id/dashboard", s.GetDashboard)
	restaurants.Get("/:id", s.GetRestaurant)

	users := public.Group("/users")
	users.Get("/top", s.GetTopUsers)
	users.Get("/:id", s.GetUserProfile)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired(s.config.JWTSecret))
	protected.Put("/users/:id", s.UpdateUser)
	protected.Post("/favorites/:restaurantId", s.AddFavorite)
	protected.Delete("/favorites/:restaurantId", s.RemoveFavorite)
	protected.Post("/likes/:restaurantId", s.AddLike)
	protected.Delete("/likes/:restaurantId", s.RemoveLike)
	protected.Post("/following/:userId", s.AddFollowing)
	protected.Delete("/following/:userId", s.RemoveFollowing)
	protected.Post("/comments", middleware.RateLimit(s.redis, 10, time.Minute, "create_comment"), s.CreateComment)
	protected.Delete("/comments/:id", s.DeleteComment)
}

// HealthCheck handles health check requests
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status":   "ok",
		"database": dbStatus,
		"redis":    redisStatus,
	})
}

// Shutdown releases the server's external resources.
func (s *Server) Shutdown(_ context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// optionalUserID returns the authenticated user's ID when the request
// carried a valid token.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	uid, ok := c.Locals("userID").(uint)
	return uid, ok
}

// viewer loads the authenticated user with the associations the listing
// annotations need, or nil for anonymous requests.
func (s *Server) viewer(c *fiber.Ctx) (*models.User, error) {
	uid, ok := s.optionalUserID(c)
	if !ok {
		return nil, nil
	}
	return s.userRepo.GetViewer(c.UserContext(), uid)
}

// respondRelationError maps repository relation errors onto API responses.
// Both duplicate adds and missing removes surface as a conflict so the
// client can tell a stale toggle apart from a server fault.
func (s *Server) respondRelationError(c *fiber.Ctx, err error, conflictMsg string) error {
	if errors.Is(err, repository.ErrDuplicateRelation) || errors.Is(err, repository.ErrRelationNotFound) {
		return models.RespondWithError(c, fiber.StatusConflict, models.NewConflictError(conflictMsg))
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func restaurantIDSet(restaurants []models.Restaurant) map[uint]struct{} {
	set := make(map[uint]struct{}, len(restaurants))
	for _, r := range restaurants {
		set[r.ID] = struct{}{}
	}
	return set
}

func containsUserID(users []models.User, id uint) bool {
	for _, u := range users {
		if u.ID == id {
			return true
		}
	}
	return false
}

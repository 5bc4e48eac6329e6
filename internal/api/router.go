package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/awesomeeats/restaurant-api/internal/api/handler"
	"github.com/awesomeeats/restaurant-api/internal/api/middleware"
	"github.com/awesomeeats/restaurant-api/internal/core/domain"
	"github.com/awesomeeats/restaurant-api/internal/core/ports"
	"github.com/awesomeeats/restaurant-api/internal/core/service"
	mongodb "github.com/awesomeeats/restaurant-api/internal/infrastructure/db/mongo"
)

// Options bundles everything the router needs beyond the storage handles.
type Options struct {
	Auth         service.AuthOptions
	EventService ports.EventService
	Dispatcher   handler.EventDispatcher
	Logger       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("restaurant_api"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	restaurantRepo := mongodb.NewRestaurantRepository(db)
	ratingRepo := mongodb.NewRatingRepository(db)

	authService := service.NewAuthService(userRepo, opts.Auth, opts.Logger)
	restaurantService := service.NewRestaurantService(restaurantRepo, opts.Logger)
	ratingService := service.NewRatingService(ratingRepo, restaurantRepo, opts.Logger)

	authHandler := handler.NewAuthHandler(authService)
	restaurantHandler := handler.NewRestaurantHandler(restaurantService)
	ratingHandler := handler.NewRatingHandler(ratingService)
	meHandler := handler.NewMeHandler()
	eventHandler := handler.NewEventHandler(opts.EventService, opts.Dispatcher)

	requireAuth := middleware.Auth(middleware.Options{
		SecurityKey: opts.Auth.SecurityKey,
		Issuer:      opts.Auth.Issuer,
		Audience:    opts.Auth.Audience,
	})
	requireAdmin := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/me", meHandler.Get, requireAuth)

	// --- Restaurants & ratings ---
	e.GET("/restaurants", restaurantHandler.List)
	e.GET("/restaurants/:id", restaurantHandler.Get)
	e.POST("/restaurants", restaurantHandler.Create, requireAuth, requireAdmin)
	e.GET("/restaurants/:id/ratings", ratingHandler.List)
	e.GET("/restaurants/:id/ratings/:ratingId", ratingHandler.Get)
	e.POST("/restaurants/:id/ratings", ratingHandler.Submit, requireAuth)

	// --- Events feed ---
	e.GET("/events", eventHandler.List)
	e.GET("/events/:id", eventHandler.Get)
	e.POST("/events", eventHandler.Publish, requireAuth)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

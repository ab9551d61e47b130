package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/foodrescue/foodrescue-api/internal/api/handler"
	"github.com/foodrescue/foodrescue-api/internal/api/middleware"
	"github.com/foodrescue/foodrescue-api/internal/core/ports"
	"github.com/foodrescue/foodrescue-api/internal/infrastructure/config"
)

// Deps carries everything the router needs. Mongo and Redis are nil unless
// the corresponding driver/throttle is configured.
type Deps struct {
	Config      *config.Config
	AuthService ports.AuthService
	UserService ports.UserService
	Throttle    ports.LoginThrottle
	Mongo       *mongo.Database
	Redis       *redis.Client
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.Config.AllowedOrigins,
		AllowCredentials: true,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.AuthService, d.UserService, d.Throttle, d.Log)
	userHandler := handler.NewUserHandler(d.UserService)
	rootHandler := handler.NewRootHandler(d.Config.AppName)

	// Session tokens are issued on login/register but no route verifies
	// them: the middleware exists, nothing mounts it.
	authMiddleware := middleware.Auth(d.Config.JWTSecret)
	_ = authMiddleware

	e.GET("/", rootHandler.Info)

	grp := e.Group("/api")
	grp.POST("/auth/login", authHandler.Login)
	grp.POST("/auth/register", authHandler.Register)
	grp.GET("/users", userHandler.List)
	grp.GET("/users/:id", userHandler.GetByID)

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}

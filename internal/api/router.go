package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/veridian/identity-service/internal/api/handler"
	"github.com/veridian/identity-service/internal/api/middleware"
	"github.com/veridian/identity-service/internal/core/domain"
	"github.com/veridian/identity-service/internal/core/ports"
)

// Services bundles the core services the router exposes.
type Services struct {
	Users  ports.UserService
	Auth   ports.AuthService
	Tokens ports.TokenService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svcs Services, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svcs.Auth, svcs.Tokens)
	userHandler := handler.NewUserHandler(svcs.Users)
	authMiddleware := middleware.Auth(svcs.Tokens)

	// --- Auth routes (no token required) ---
	e.POST("/v1/auth/login", authHandler.Login)
	e.POST("/v1/auth/refresh", authHandler.Refresh)

	// --- User routes ---
	e.POST("/v1/users", userHandler.Register)

	users := e.Group("/v1/users", authMiddleware)
	users.GET("/me", userHandler.Me)
	users.GET("/:uuid", userHandler.Get)
	users.PUT("/:uuid", userHandler.Update)
	users.DELETE("/:uuid", userHandler.Delete, middleware.RBAC(domain.RoleAdmin))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

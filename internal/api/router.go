package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/mongotech/users-api/docs"
	"github.com/mongotech/users-api/internal/api/handler"
	"github.com/mongotech/users-api/internal/api/middleware"
	"github.com/mongotech/users-api/internal/core/ports"
	"github.com/mongotech/users-api/internal/core/service"
	"github.com/mongotech/users-api/internal/infrastructure/config"
	mongostore "github.com/mongotech/users-api/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger, audit ports.AuditRecorder) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	hasher := service.NewBcryptHasher(0)
	issuer := service.NewJWTIssuer(cfg.Auth.SecretKey, cfg.Auth.TokenTTL())
	authService := service.NewAuthService(userRepo, hasher, issuer, audit, log)
	userService := service.NewUserService(userRepo, hasher, audit, log)
	userHandler := handler.NewUserHandler(userService, authService)
	bearer := middleware.Auth(issuer)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("users"))
	e.Use(middleware.BasicAuth(authService))

	// --- User routes ---
	users := e.Group("/api/v1/users")
	users.POST("", userHandler.Create)
	users.POST("/token", userHandler.Token)
	users.GET("", userHandler.List)
	users.GET("/me", userHandler.Me, bearer)
	users.PUT("/admin/:id", userHandler.Update, bearer)
	users.DELETE("/:id", userHandler.Delete)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

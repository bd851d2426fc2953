package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/novalabs/landing-api/internal/api/handler"
	"github.com/novalabs/landing-api/internal/api/middleware"
	"github.com/novalabs/landing-api/internal/core/service"
	"github.com/novalabs/landing-api/internal/infrastructure/config"
	mongodb "github.com/novalabs/landing-api/internal/infrastructure/db/mongo"
	redisdb "github.com/novalabs/landing-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("landing"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	sessionRepo := mongodb.NewSessionRepository(db)
	sessionCache := redisdb.NewSessionCache(rdb, cfg.SessionCacheTTL)

	sessionProvider := service.NewSessionService(sessionRepo, userRepo, sessionCache, cfg.AuthSecret, log)
	adminService := service.NewAdminService(userRepo, cfg.AdminRoleList(), log)

	adminHandler := handler.NewAdminHandler(adminService)
	helloHandler := handler.NewHelloHandler()
	pageHandler := handler.NewPageHandler()

	// Guard first (cookie presence only), then full session resolution. Every
	// RPC procedure still re-checks the resolved session itself.
	e.Use(middleware.Guard(cfg.SessionCookie))
	e.Use(middleware.ResolveSession(sessionProvider, cfg.SessionCookie))

	// --- RPC surface ---
	e.GET("/rpc/hello", helloHandler.Hello)
	e.GET("/rpc/admin/users", adminHandler.ListUsers)
	e.POST("/rpc/admin/set-role", adminHandler.SetRole)
	e.POST("/rpc/admin/ban-user", adminHandler.BanUser)
	e.POST("/rpc/admin/unban-user", adminHandler.UnbanUser)
	e.POST("/rpc/admin/remove-user", adminHandler.RemoveUser)

	// --- Pages ---
	e.GET("/dashboard", pageHandler.Dashboard)
	e.GET("/admin", pageHandler.Admin)
	e.GET("/sign-in", pageHandler.SignIn)
	e.GET("/sign-up", pageHandler.SignUp)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability / docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wahho/rewards-platform/internal/api/handler"
	"github.com/wahho/rewards-platform/internal/api/middleware"
	"github.com/wahho/rewards-platform/internal/core/domain"
	"github.com/wahho/rewards-platform/internal/core/ports"
	"github.com/wahho/rewards-platform/internal/core/service"
	"github.com/wahho/rewards-platform/internal/infrastructure/config"
	mongodb "github.com/wahho/rewards-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/wahho/rewards-platform/internal/infrastructure/db/redis"
	"github.com/wahho/rewards-platform/internal/infrastructure/http/handlers"
)

// NewRouter builds the Echo instance with all routes registered. The ledger
// recorder is injected by the caller so its worker lifecycle stays in main.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, ledger ports.LedgerRecorder, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("rewards"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	taskRepo := redisdb.NewCatalogCache(rdb, mongodb.NewTaskRepository(db), log)
	withdrawalRepo := mongodb.NewWithdrawalRepository(db)
	ledgerRepo := mongodb.NewLedgerRepository(db)

	// --- Services ---
	identityService := service.NewIdentityService(userRepo, ledger, cfg.JWTSecret, cfg.JWTTTL, cfg.ReferralBonus, log)
	taskService := service.NewTaskService(taskRepo, userRepo, ledger, log)
	withdrawalService := service.NewWithdrawalService(userRepo, withdrawalRepo, ledger, log)
	dashboardService := service.NewDashboardService(userRepo)
	ledgerService := service.NewLedgerService(ledgerRepo)
	adminService := service.NewAdminService(userRepo, withdrawalRepo)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(identityService)
	taskHandler := handler.NewTaskHandler(taskService)
	withdrawalHandler := handler.NewWithdrawalHandler(withdrawalService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	adminHandler := handler.NewAdminHandler(adminService)

	authRequired := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Public routes ---
	e.POST("/v1/auth/signup", authHandler.Signup)
	e.POST("/v1/auth/login", authHandler.Login)
	e.GET("/v1/tasks", taskHandler.List)

	// --- Authenticated routes ---
	e.POST("/v1/tasks/complete", taskHandler.Complete, authRequired)
	e.GET("/v1/dashboard", dashboardHandler.Get, authRequired)
	e.GET("/v1/ledger", ledgerHandler.Recent, authRequired)
	e.POST("/v1/withdrawals", withdrawalHandler.Request, authRequired)

	// --- Admin routes ---
	e.GET("/v1/admin/users", adminHandler.Overview, authRequired, adminOnly)

	// --- Observability (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

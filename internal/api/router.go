package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/utilibill/billing-system/internal/api/handler"
	"github.com/utilibill/billing-system/internal/api/middleware"
	"github.com/utilibill/billing-system/internal/core/domain"
	"github.com/utilibill/billing-system/internal/core/service"
	"github.com/utilibill/billing-system/internal/infrastructure/config"
	mongodb "github.com/utilibill/billing-system/internal/infrastructure/db/mongo"
	redisdb "github.com/utilibill/billing-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("billing"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	users := mongodb.NewUserRepository(db)
	customers := mongodb.NewCustomerRepository(db)
	bills := mongodb.NewBillRepository(db)
	tx := mongodb.NewTxRunner(db.Client())
	sessions := redisdb.NewSessionStore(rdb, cfg.SessionTTL)

	identityService := service.NewIdentityService(users, customers, sessions, tx, cfg.JWTSecret, cfg.SessionTTL, log)
	adminService := service.NewAdminService(customers, bills, tx, log)
	customerService := service.NewCustomerService(customers, bills)

	authHandler := handler.NewAuthHandler(identityService, cfg.JWTSecret)
	adminHandler := handler.NewAdminHandler(adminService)
	customerHandler := handler.NewCustomerHandler(customerService)
	authMiddleware := middleware.Auth(cfg.JWTSecret, sessions)

	// --- Auth routes ---
	apiGroup := e.Group("/api")
	apiGroup.POST("/register", authHandler.Register)
	apiGroup.POST("/login", authHandler.Login)
	apiGroup.POST("/logout", authHandler.Logout)
	apiGroup.GET("/auth/check", authHandler.Check, authMiddleware)

	// --- Admin routes ---
	adminGroup := apiGroup.Group("/admin", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	adminGroup.POST("/customers", adminHandler.AddCustomer)
	adminGroup.GET("/customers", adminHandler.ListCustomers)
	adminGroup.DELETE("/customers/:id", adminHandler.DeleteCustomer)
	adminGroup.POST("/bills", adminHandler.GenerateBill)
	adminGroup.GET("/bills", adminHandler.ListBills)

	// --- Customer routes ---
	customerGroup := apiGroup.Group("/customer", authMiddleware, middleware.RBAC(domain.RoleCustomer))
	customerGroup.GET("/profile", customerHandler.GetProfile)
	customerGroup.GET("/bills", customerHandler.GetMyBills)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

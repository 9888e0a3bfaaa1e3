package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aseds/hive-platform/internal/api/handler"
	"github.com/aseds/hive-platform/internal/api/middleware"
	"github.com/aseds/hive-platform/internal/core/domain"
	"github.com/aseds/hive-platform/internal/core/ports"
	"github.com/aseds/hive-platform/internal/core/service"
	mongodb "github.com/aseds/hive-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/aseds/hive-platform/internal/infrastructure/db/redis"
	"github.com/aseds/hive-platform/pkg/logger"
)

// NewUserRouter builds the user-service Echo instance with all routes
// registered. The audit dispatcher is owned (and started) by the caller.
func NewUserRouter(db *mongo.Database, rdb *redis.Client, audit ports.AuditDispatcher, jwtSecret string) *echo.Echo {
	e := newEcho("hive_users")

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	cache := redisdb.NewUserCache(rdb)
	userService := service.NewUserService(userRepo, cache, audit, logger.Get())
	userHandler := handler.NewUserHandler(userService)
	auth := middleware.Auth(jwtSecret)

	// --- User routes ---
	e.POST("/v1/users/register", userHandler.Register)
	e.GET("/v1/users/:identifier", userHandler.Lookup,
		auth, middleware.RoleGate(string(domain.RoleAdmin), string(domain.RoleProjectManager)))

	registerHealth(e, db, rdb)
	return e
}

// NewProjectRouter builds the project-service Echo instance.
func NewProjectRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string) *echo.Echo {
	e := newEcho("hive_projects")

	// --- Dependencies ---
	projectRepo := mongodb.NewProjectRepository(db)
	projectService := service.NewProjectService(projectRepo, logger.Get())
	projectHandler := handler.NewProjectHandler(projectService)
	auth := middleware.Auth(jwtSecret)
	managerGate := middleware.RoleGate(string(domain.RoleAdmin), string(domain.RoleProjectManager))

	// --- Project routes ---
	g := e.Group("/v1/projects", auth)
	g.POST("", projectHandler.Create, middleware.RoleGate(string(domain.RoleAdmin)))
	g.POST("/:id/employees", projectHandler.AddEmployees, managerGate)
	g.GET("/:id", projectHandler.Get)
	g.GET("/manager/:managerId", projectHandler.ListByManager)
	g.GET("/employee/:employeeId", projectHandler.ListByEmployee)

	registerHealth(e, db, rdb)
	return e
}

func newEcho(subsystem string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Get())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware(subsystem))

	e.GET("/metrics", echoprometheus.NewHandler())
	return e
}

func registerHealth(e *echo.Echo, db *mongo.Database, rdb *redis.Client) {
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
}

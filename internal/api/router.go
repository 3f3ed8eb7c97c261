package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/studytrack/task-system/internal/api/handler"
	"github.com/studytrack/task-system/internal/api/middleware"
	"github.com/studytrack/task-system/internal/core/ports"
	"github.com/studytrack/task-system/internal/infrastructure/http/handlers"
)

// Deps holds every store and service handle the router needs. It is
// constructed once at process start and injected here, so handlers never
// reach for shared package-level state.
type Deps struct {
	Auth    ports.AuthService
	Modules ports.ModuleService
	Tasks   ports.TaskService
	Tokens  middleware.TokenVerifier
	Mongo   *mongo.Database
	Redis   *redis.Client
	Logger  zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("tasktracker"))

	// --- Handlers ---
	userHandler := handler.NewUserHandler(deps.Auth)
	moduleHandler := handler.NewModuleHandler(deps.Modules)
	taskHandler := handler.NewTaskHandler(deps.Tasks)
	authRequired := middleware.Auth(deps.Tokens)

	// --- User routes ---
	users := e.Group("/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.GET("", userHandler.List, authRequired)
	users.GET("/:id", userHandler.GetByID, authRequired)

	// --- Module routes (all owner-scoped, all authenticated) ---
	modules := e.Group("/modules", authRequired)
	modules.GET("", moduleHandler.List)
	modules.POST("", moduleHandler.Create)
	modules.GET("/:id", moduleHandler.Get)
	modules.PUT("/:id", moduleHandler.Update)
	modules.DELETE("/:id", moduleHandler.Delete)
	modules.GET("/:id/tasks", taskHandler.ListForModule)
	modules.POST("/:id/tasks", taskHandler.Create)

	// --- Task routes ---
	tasks := e.Group("/tasks", authRequired)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

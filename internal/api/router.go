package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/apiecommerce/catalog-api/internal/api/handler"
	"github.com/apiecommerce/catalog-api/internal/api/middleware"
	"github.com/apiecommerce/catalog-api/internal/core/domain"
	"github.com/apiecommerce/catalog-api/internal/core/ports"
)

// Deps carries the wired services the router needs. Construction happens in
// main so configuration faults (missing signing secret, unreachable stores)
// fail at startup, not on first request.
type Deps struct {
	Auth       ports.AuthService
	Users      ports.UserRepository
	Roles      ports.RoleRepository
	Categories ports.CategoryService
	Products   ports.ProductService
	Mongo      *mongo.Database
	Redis      *redis.Client
	JWTSecret  string
	Logger     zerolog.Logger
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
	e.Use(echoprometheus.NewMiddleware("catalog"))

	authMW := middleware.Auth(deps.JWTSecret)
	adminMW := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- User administration (Admin only) ---
	userHandler := handler.NewUserHandler(deps.Users, deps.Roles)
	users := e.Group("/users", authMW, adminMW)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.POST("/:id/roles", userHandler.AssignRole)

	// --- Categories: public reads, Admin mutations ---
	categoryHandler := handler.NewCategoryHandler(deps.Categories)
	e.GET("/categories", categoryHandler.List)
	e.GET("/categories/:id", categoryHandler.Get)
	e.POST("/categories", categoryHandler.Create, authMW, adminMW)
	e.PUT("/categories/:id", categoryHandler.Update, authMW, adminMW)
	e.DELETE("/categories/:id", categoryHandler.Delete, authMW, adminMW)

	// --- Products: public reads, Admin mutations, authenticated purchases ---
	productHandler := handler.NewProductHandler(deps.Products)
	e.GET("/products", productHandler.List)
	e.GET("/products/:id", productHandler.Get)
	e.POST("/products", productHandler.Create, authMW, adminMW)
	e.PUT("/products/:id", productHandler.Update, authMW, adminMW)
	e.DELETE("/products/:id", productHandler.Delete, authMW, adminMW)
	e.POST("/products/:id/buy", productHandler.Buy, authMW)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

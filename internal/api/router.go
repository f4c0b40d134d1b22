package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/portfolio-cms/portfolio-api/internal/api/handler"
	"github.com/portfolio-cms/portfolio-api/internal/api/middleware"
	"github.com/portfolio-cms/portfolio-api/internal/core/domain"
	"github.com/portfolio-cms/portfolio-api/internal/core/ports"
)

// Deps lists everything the router needs. Everything is constructed once
// in main and injected here.
type Deps struct {
	Logger     zerolog.Logger
	Resolver   ports.IdentityResolver
	Auth       ports.AuthService
	Users      ports.UserService
	Services   ports.ContentService[domain.Service]
	Projects   ports.ContentService[domain.Project]
	Categories ports.CategoryService
	// HealthChecks are run by the readiness endpoint, keyed by dependency name.
	HealthChecks map[string]handler.Check
	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: d.Registerer,
	}))

	// --- Dependencies ---
	authn := middleware.Authenticate(d.Resolver)
	admin := middleware.RequireAdmin()

	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users)
	serviceHandler := handler.NewServiceHandler(d.Services)
	projectHandler := handler.NewProjectHandler(d.Projects)
	categoryHandler := handler.NewCategoryHandler(d.Categories)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout, authn)
	api.GET("/auth/me", authHandler.Me, authn)

	// --- Users ---
	api.POST("/users", userHandler.Register, middleware.OptionalAuthenticate(d.Resolver))
	api.GET("/users", userHandler.List, authn, admin)
	api.GET("/users/:username", userHandler.Get, authn)
	api.DELETE("/users/:username", userHandler.Delete, authn, admin)

	// --- Public content ---
	api.GET("/services", serviceHandler.ListPublished)
	api.GET("/projects", projectHandler.ListPublished)
	api.GET("/categories", categoryHandler.List)

	// --- Admin content ---
	adm := api.Group("/admin", authn, admin)

	adm.GET("/services", serviceHandler.ListAll)
	adm.POST("/services", serviceHandler.Create)
	adm.PATCH("/services/:id", serviceHandler.Update)
	adm.PATCH("/services/:id/approve", serviceHandler.Approve)
	adm.DELETE("/services/:id", serviceHandler.Delete)

	adm.GET("/projects", projectHandler.ListAll)
	adm.POST("/projects", projectHandler.Create)
	adm.PATCH("/projects/:id", projectHandler.Update)
	adm.PATCH("/projects/:id/approve", projectHandler.Approve)
	adm.DELETE("/projects/:id", projectHandler.Delete)

	adm.POST("/categories", categoryHandler.Create)
	adm.DELETE("/categories/:id", categoryHandler.Delete)

	// --- Health checks (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.HealthChecks)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

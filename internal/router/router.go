package router

import (
	"github.com/Prashant-2024/Rental-App/internal/handler"
	"github.com/Prashant-2024/Rental-App/internal/middleware"
	"github.com/Prashant-2024/Rental-App/pkg/jwtutil"
	"github.com/Prashant-2024/Rental-App/pkg/logger"
	"github.com/Prashant-2024/Rental-App/prometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Roles accepted by the route groups
const (
	RoleTenant  = "tenant"
	RoleManager = "manager"
)

// Dependencies are the collaborators the routes are wired to
type Dependencies struct {
	Logger   *zap.Logger
	JWT      *jwtutil.JWTUtil
	Tenants  *handler.TenantHandler
	Managers *handler.ManagerHandler
}

// New builds the echo instance with the middleware pipeline and routes
func New(deps Dependencies) *echo.Echo {
	if deps.Logger == nil {
		deps.Logger = logger.GetLogger()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.Secure())
	e.Use(crossOriginResourcePolicy)
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(deps.Logger))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes
	e.GET("/", handler.Home)
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(prometheus.GetPrometheusHandler()))

	tenants := e.Group("/tenants", middleware.AuthMiddleware(deps.JWT, RoleTenant))
	tenants.POST("", deps.Tenants.CreateTenant)
	tenants.GET("/:cognitoId", deps.Tenants.GetTenant)
	tenants.PUT("/:cognitoId", deps.Tenants.UpdateTenant)
	tenants.GET("/:cognitoId/residences", deps.Tenants.GetCurrentResidences)
	tenants.POST("/:cognitoId/favorites/:propertyId", deps.Tenants.AddFavoriteProperty)
	tenants.DELETE("/:cognitoId/favorites/:propertyId", deps.Tenants.RemoveFavoriteProperty)

	managers := e.Group("/managers", middleware.AuthMiddleware(deps.JWT, RoleManager))
	managers.POST("", deps.Managers.CreateManager)
	managers.GET("/:cognitoId", deps.Managers.GetManager)
	managers.PUT("/:cognitoId", deps.Managers.UpdateManager)
	managers.GET("/:cognitoId/properties", deps.Managers.GetManagerProperties)

	return e
}

// crossOriginResourcePolicy lets other origins embed API responses
func crossOriginResourcePolicy(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Cross-Origin-Resource-Policy", "cross-origin")
		return next(c)
	}
}

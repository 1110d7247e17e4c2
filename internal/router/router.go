// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/game-storefront/internal/handler"
	"github.com/iliyamo/game-storefront/internal/metrics"
	"github.com/iliyamo/game-storefront/internal/middleware"
	"github.com/iliyamo/game-storefront/internal/model"
)

// RegisterRoutes registers the operational endpoints: /healthz, which
// pings db when it is non-nil, and /metrics when rec is non-nil.
func RegisterRoutes(e *echo.Echo, db handler.Pinger, rec *metrics.Recorder) {
	e.GET("/healthz", handler.Health(db))
	if rec != nil {
		e.GET("/metrics", echo.WrapHandler(rec.Handler()))
	}
}

// RegisterCatalog registers the public catalog under /v1/games.  The
// viewer is resolved from an optional bearer token before mw runs, so
// caches and limiters can key on it.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, jwtSecret string, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1/games", middleware.OptionalJWT(jwtSecret))
	g.Use(mw...)
	g.GET("", h.Index)
	g.POST("/filter", h.Filter)
	g.GET("/:id", h.Details)
}

// RegisterAdmin registers the catalog admin forms under
// /v1/admin/games.  Every route requires a valid token with the ADMIN
// role.
func RegisterAdmin(e *echo.Echo, h *handler.CatalogHandler, jwtSecret string, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1/admin/games",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)
	g.Use(mw...)
	g.GET("/new", h.New)
	g.POST("", h.Create)
	g.GET("/:id/edit", h.Edit)
	g.POST("/:id", h.Update)
	g.PUT("/:id", h.Update)
	g.GET("/:id/delete", h.DeleteConfirm)
	g.POST("/:id/delete", h.Delete)
	g.DELETE("/:id", h.Delete)
}

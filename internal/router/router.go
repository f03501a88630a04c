// Package router wires the HTTP surface: which paths exist, which sit
// behind authentication, and which get the response cache.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/library-catalog/internal/auth"
	"github.com/iliyamo/library-catalog/internal/handler"
	"github.com/iliyamo/library-catalog/internal/middleware"
)

// Register attaches every route to the Echo instance. Reads on the
// catalog are public; mutations require a valid bearer token. The cache
// middleware may be a pass-through when Redis is unavailable.
func Register(e *echo.Echo, a *handler.AuthHandler, b *handler.BookHandler, tm *auth.TokenManager, cache echo.MiddlewareFunc) {
	e.Use(middleware.HTTPMetrics)

	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/auth/register", a.Register)
	e.POST("/auth/login", a.Login)

	// Public catalog reads. /books/search must be registered alongside
	// /books/:id; Echo resolves the static segment first.
	e.GET("/books", b.List, cache)
	e.GET("/books/search", b.Search, cache)
	e.GET("/books/:id", b.Get, cache)

	// Mutations require any authenticated identity; there is no
	// per-owner restriction on update or delete.
	protected := e.Group("/books", middleware.JWTAuth(tm))
	protected.POST("", b.Create)
	protected.PUT("/:id", b.Update)
	protected.DELETE("/:id", b.Delete)
}

// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CatalogHandler *handler.CatalogHandler
	CartHandler    *handler.CartHandler
	AuthHandler    *handler.AuthHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	catalogHandler *handler.CatalogHandler
	cartHandler    *handler.CartHandler
	authHandler    *handler.AuthHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		catalogHandler: params.CatalogHandler,
		cartHandler:    params.CartHandler,
		authHandler:    params.AuthHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Catalog routes
	productGroup := e.Group("/products")
	{
		productGroup.GET("", r.catalogHandler.ListProducts)
		productGroup.GET("/categories", r.catalogHandler.Categories)
		productGroup.GET("/:id", r.catalogHandler.GetProduct)
		productGroup.GET("/:id/share", r.catalogHandler.ShareProductQR)
	}

	// Cart routes
	cartGroup := e.Group("/cart")
	{
		cartGroup.GET("", r.cartHandler.View)
		cartGroup.GET("/totals", r.cartHandler.Totals)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.PATCH("/items/:id", r.cartHandler.ChangeQuantity)
		cartGroup.PUT("/items/:id", r.cartHandler.SetQuantity)
		cartGroup.DELETE("/items/:id", r.cartHandler.RemoveItem)
	}

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.SignIn)
		authGroup.POST("/logout", r.authHandler.SignOut)
		authGroup.GET("/session", r.authHandler.CurrentSession)
	}
}

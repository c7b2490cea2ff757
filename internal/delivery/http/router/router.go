// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"todohub/internal/delivery/http/middleware"
	"todohub/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds the handlers the router wires up, injected by Fx.
type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	TodoHandler    *handler.TodoHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	todoHandler    *handler.TodoHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		todoHandler:    params.TodoHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Account routes. Register and login are the only unauthenticated
	// endpoints besides the health check.
	userGroup := e.Group("/users")
	{
		userGroup.POST("", r.accountHandler.Register)
		userGroup.POST("/login", r.accountHandler.Login)
		userGroup.DELETE("/logout", r.accountHandler.Logout, r.authMiddleware.Authenticate)
		userGroup.GET("/me", r.accountHandler.Me, r.authMiddleware.Authenticate)
	}

	// Todo routes all require authentication; the gate also resolves the
	// owner that scopes every query.
	todoGroup := e.Group("/todos")
	todoGroup.Use(r.authMiddleware.Authenticate)
	{
		todoGroup.POST("", r.todoHandler.Create)
		todoGroup.GET("", r.todoHandler.List)
		todoGroup.GET("/:id", r.todoHandler.Get)
		todoGroup.PATCH("/:id", r.todoHandler.Update)
		todoGroup.DELETE("/:id", r.todoHandler.Delete)
		todoGroup.DELETE("", r.todoHandler.DeleteAll)
	}
}

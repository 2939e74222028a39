// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"coursemart/internal/delivery/api/middleware"
	"coursemart/internal/delivery/api/router/handler"
	deliverymiddleware "coursemart/internal/delivery/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	CheckoutHandler *handler.CheckoutHandler
	AuthMiddleware  *middleware.AuthMiddleware
	LoginLimiter    *deliverymiddleware.RateLimiter
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	checkoutHandler *handler.CheckoutHandler
	authMiddleware  *middleware.AuthMiddleware
	loginLimiter    *deliverymiddleware.RateLimiter
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		checkoutHandler: params.CheckoutHandler,
		authMiddleware:  params.AuthMiddleware,
		loginLimiter:    params.LoginLimiter,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	apiV1 := e.Group("/api/v1")
	apiV1.GET("/health", handler.HealthCheck)

	authGroup := apiV1.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/register/verify", r.authHandler.VerifyEmail)
		authGroup.POST("/login/credentials", r.authHandler.LoginWithPassword, r.loginLimiter.Limit)
		authGroup.GET("/login/google", r.authHandler.GoogleLogin)
		authGroup.POST("/login/google", r.authHandler.GoogleCallback)

		authGroup.POST("/logout", r.authHandler.Logout, r.authMiddleware.Authenticate)
		authGroup.POST("/logout/session", r.authHandler.LogoutAll, r.authMiddleware.Authenticate)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
	}

	cartGroup := apiV1.Group("/cart", r.authMiddleware.Authenticate)
	{
		cartGroup.POST("/checkout", r.checkoutHandler.Checkout)
	}

	ordersGroup := apiV1.Group("/orders", r.authMiddleware.Authenticate)
	{
		ordersGroup.GET("/:id", r.checkoutHandler.GetOrder)
		ordersGroup.GET("/:id/receipt.png", r.checkoutHandler.OrderReceipt)
	}
}

package router

import (
    "github.com/labstack/echo/v4"

    "github.com/wildriver/resort-booking/internal/handler"
    "github.com/wildriver/resort-booking/internal/middleware"
)

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while the profile endpoint lives under /v1 behind JWT verification.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Route group for operations that do not require an existing session.
	g := e.Group("/v1/auth")
	// Register a POST endpoint to handle user registration at /v1/auth/register.
	g.POST("/register", a.Register)
	// Register a POST endpoint to handle user login at /v1/auth/login.
	g.POST("/login", a.Login)

	// Protected group: every handler registered here runs the JWTAuth
	// middleware first, so the identity is guaranteed to be present.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	// Register a GET endpoint at /v1/me that returns the authenticated user's information.
	auth.GET("/me", a.Me)
}

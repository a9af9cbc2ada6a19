package router

import (
	"github.com/labstack/echo/v4"

	"github.com/flintic/eats-reservation/internal/handler"
	"github.com/flintic/eats-reservation/internal/middleware"
)

// RegisterAuth registers the staff session endpoints and applies the
// necessary middleware.  Login, refresh and logout live under /v1/auth
// and need no token; /v1/me needs a valid session; creating further
// staff accounts is reserved for admins.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	// Rotates the refresh token and returns a fresh pair.
	g.POST("/refresh", a.Refresh)
	// Accepts a JSON body containing `refresh_token` and invalidates it.
	g.POST("/logout", a.Logout)
	g.POST("/register", a.Register,
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole("STAFF", "ADMIN"))
	auth.GET("/me", a.Me)
}

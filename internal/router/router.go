package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sponsorbridge/staff-auth/internal/handler"    // import the handlers that implement business logic
	"github.com/sponsorbridge/staff-auth/internal/middleware" // import middleware for session authentication
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance: a health check for load balancers and the
// prometheus scrape endpoint.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers all credential-service routes and applies the
// necessary middleware. The six operations under /v1/auth are
// unauthenticated by design (they are how a caller obtains or discards
// a session); rate limiting wraps the whole group. Protected endpoints
// live under /v1 behind SessionAuth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limiter echo.MiddlewareFunc, sessions middleware.SessionSource, staff middleware.StaffSource) {
	g := e.Group("/v1/auth")
	if limiter != nil {
		g.Use(limiter)
	}
	g.POST("/login", a.Login)
	g.POST("/register", a.Register)
	g.POST("/forgot-password", a.ForgotPassword)
	g.POST("/reset-password", a.ResetPassword)
	// verify-session is what the dashboard calls on every authenticated
	// request, so it stays out of the protected group and takes the
	// token in the body rather than a header.
	g.POST("/verify-session", a.VerifySession)
	g.POST("/logout", a.Logout)

	// Routes behind a valid session token presented as a Bearer header.
	auth := e.Group("/v1")
	auth.Use(middleware.SessionAuth(sessions, staff))
	auth.GET("/me", a.Me)
	auth.GET("/login-history", a.LoginHistory)
}

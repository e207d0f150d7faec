// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	emw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/arvelez/user-register-api/internal/config"
	"github.com/arvelez/user-register-api/internal/handler"
	"github.com/arvelez/user-register-api/internal/middleware"
)

// RegisterGlobal installs the ambient middleware stack: panic recovery,
// request logging, security headers and CORS with the configured origins.
func RegisterGlobal(e *echo.Echo, cfg config.Config) {
	e.Use(emw.Recover())
	e.Use(emw.Logger())
	e.Use(emw.Secure())
	e.Use(emw.CORSWithConfig(emw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))
}

// RegisterRoutes wires every endpoint of the API onto the Echo instance.
// /api/health and /api/auth/* are public; /api/user-registers* sit behind
// the JWT middleware. The Redis response cache (nil client disables it)
// fronts the two authenticated GETs, which are the read-heavy endpoints.
func RegisterRoutes(e *echo.Echo, cfg config.Config, a *handler.AuthHandler, r *handler.RegisterHandler, rdb *redis.Client) {
	e.GET("/api/health", handler.Health)

	auth := e.Group("/api/auth")
	auth.POST("/register", a.Register)
	auth.POST("/login", a.Login)

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	regs := e.Group("/api/user-registers")
	regs.Use(middleware.JWTAuth(cfg.JWTSecret))
	regs.POST("", r.Create)
	regs.GET("", r.List, cache)
	regs.GET("/check-email", r.CheckEmail, cache)
}

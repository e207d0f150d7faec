package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/arvelez/user-register-api/internal/utils"
)

// Context keys under which JWTAuth stores the verified caller identity.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxName   = "name"
)

// JWTAuth returns an Echo middleware that validates a Bearer auth token and
// injects the caller identity into the request context. The provided secret
// must match the one used when issuing tokens. Every request is verified
// independently; there is no server-side session state. Handlers behind
// this middleware read the identity via c.Get(CtxUserID) etc.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token requerido"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			id, err := utils.ParseAuthToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token inválido o expirado"})
			}

			c.Set(CtxUserID, id.UserID)
			c.Set(CtxEmail, id.Email)
			c.Set(CtxName, id.Name)
			return next(c)
		}
	}
}

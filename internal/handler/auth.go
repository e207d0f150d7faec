package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arvelez/user-register-api/internal/config"
	"github.com/arvelez/user-register-api/internal/model"
	"github.com/arvelez/user-register-api/internal/repository"
	"github.com/arvelez/user-register-api/internal/utils"
)

// UserStore is the credential persistence the auth handlers need. It is
// satisfied by *repository.UserRepo; tests provide in-memory fakes.
type UserStore interface {
	Create(ctx context.Context, email, password, name string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPart struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
type authResp struct {
	Token string   `json:"token"`
	User  userPart `json:"user"`
}

// Register creates an account and returns a token immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cuerpo inválido"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email, password y name son requeridos"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Email, req.Password, req.Name, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Email ya registrado"})
		}
		c.Logger().Errorf("register: create user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error en registro"})
	}

	tok, err := utils.NewAuthToken(h.Cfg.JWTSecret, uid, req.Email, req.Name, h.Cfg.TokenTTLMin)
	if err != nil {
		c.Logger().Errorf("register: issue token failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error en registro"})
	}

	return c.JSON(http.StatusCreated, authResp{
		Token: tok.Token,
		User:  userPart{ID: uid, Email: req.Email, Name: req.Name},
	})
}

// Login verifies credentials and returns a fresh token. Unknown email and
// wrong password produce the same response so callers cannot tell which
// check failed.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cuerpo inválido"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Credenciales inválidas"})
		}
		c.Logger().Errorf("login: query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error en login"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Credenciales inválidas"})
	}

	tok, err := utils.NewAuthToken(h.Cfg.JWTSecret, u.ID, u.Email, u.Name, h.Cfg.TokenTTLMin)
	if err != nil {
		c.Logger().Errorf("login: issue token failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error en login"})
	}

	return c.JSON(http.StatusOK, authResp{
		Token: tok.Token,
		User:  userPart{ID: u.ID, Email: u.Email, Name: u.Name},
	})
}

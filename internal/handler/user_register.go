package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arvelez/user-register-api/internal/middleware"
	"github.com/arvelez/user-register-api/internal/model"
	"github.com/arvelez/user-register-api/internal/queue"
	"github.com/arvelez/user-register-api/internal/repository"
	queue_publisher "github.com/arvelez/user-register-api/internal/service"
)

// RegisterStore is the survey-record persistence the handlers need. It is
// satisfied by *repository.RegisterRepo; tests provide in-memory fakes.
type RegisterStore interface {
	Create(ctx context.Context, in model.RegisterInput) (model.UserRegister, error)
	List(ctx context.Context, q repository.ListQuery) ([]model.UserRegister, int64, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// RegisterHandler serves the /api/user-registers endpoints. PublishEvents
// controls whether a register.created event is emitted after a successful
// create; tests switch it off.
type RegisterHandler struct {
	Store         RegisterStore
	PublishEvents bool
}

func NewRegisterHandler(store RegisterStore) *RegisterHandler {
	return &RegisterHandler{Store: store, PublishEvents: true}
}

type pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

type listResp struct {
	Items      []model.UserRegister `json:"items"`
	Pagination pagination           `json:"pagination"`
}

// Create validates and stores one survey record. Duplicate emails are
// rejected globally, regardless of which authenticated caller stored the
// first record.
func (h *RegisterHandler) Create(c echo.Context) error {
	var in model.RegisterInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cuerpo inválido"})
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rec, err := h.Store.Create(ctx, in)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "El correo electrónico ya está registrado"})
		}
		c.Logger().Errorf("user-register create failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "No se pudo crear el registro"})
	}

	if h.PublishEvents {
		ev := queue.RegisterCreatedEvent{
			RegisterID:  rec.ID,
			Email:       rec.Email,
			Universidad: rec.Universidad,
			Carrera:     rec.Carrera,
			CreatedBy:   callerID(c),
			CreatedAt:   rec.CreatedAt.UTC().Format(time.RFC3339),
		}
		// Fire and forget: broker trouble must not fail the request.
		go func() {
			_ = queue_publisher.PublishRegisterCreated(context.Background(), ev)
		}()
	}

	return c.JSON(http.StatusCreated, rec)
}

// List returns one page of records with search, sort and pagination.
func (h *RegisterHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = 10
	}

	q := repository.ListQuery{
		Search:    strings.TrimSpace(c.QueryParam("search")),
		SortBy:    strings.TrimSpace(c.QueryParam("sortBy")),
		SortOrder: strings.TrimSpace(c.QueryParam("sortOrder")),
		Page:      page,
		Limit:     limit,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, total, err := h.Store.List(ctx, q)
	if err != nil {
		c.Logger().Errorf("user-register list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "No se pudo listar"})
	}

	return c.JSON(http.StatusOK, listResp{
		Items: items,
		Pagination: pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages(total, limit),
		},
	})
}

// CheckEmail reports whether a record with the given email already exists.
// The answer is global: it is not scoped to the caller.
func (h *RegisterHandler) CheckEmail(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.QueryParam("email")))
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email es requerido"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	exists, err := h.Store.EmailExists(ctx, email)
	if err != nil {
		c.Logger().Errorf("check-email failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al verificar email"})
	}
	return c.JSON(http.StatusOK, echo.Map{"exists": exists})
}

// totalPages is ceil(total/limit) without floating point.
func totalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

// callerID extracts the authenticated user's ID stored by the JWT
// middleware. Zero when absent.
func callerID(c echo.Context) uint64 {
	if v, ok := c.Get(middleware.CtxUserID).(uint64); ok {
		return v
	}
	return 0
}

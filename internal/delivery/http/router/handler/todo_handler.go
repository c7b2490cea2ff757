package handler

import (
	"log/slog"
	"net/http"

	"todohub/internal/delivery/http/middleware"
	"todohub/internal/delivery/http/response"
	"todohub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// createTodoRequest is the body of POST /todos. Only text is caller-settable;
// completion state always starts false.
type createTodoRequest struct {
	Text string `json:"text" validate:"required"`
}

// updateTodoRequest is the body of PATCH /todos/:id. Absent fields are left
// unchanged; completedAt is not accepted, it is derived.
type updateTodoRequest struct {
	Text      *string `json:"text" validate:"omitempty,min=3"`
	Completed *bool   `json:"completed"`
}

// TodoHandler holds dependencies for todo-related handlers.
type TodoHandler struct {
	uc     usecase.TodoUsecase
	logger *slog.Logger
}

// NewTodoHandler is the constructor for TodoHandler, injected by Fx.
func NewTodoHandler(uc usecase.TodoUsecase, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{
		uc:     uc,
		logger: logger,
	}
}

// Create handles POST /todos.
func (h *TodoHandler) Create(c echo.Context) error {
	account, err := middleware.ActingAccount(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var req createTodoRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid todo input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.uc.Create(c.Request().Context(), &usecase.CreateTodoInput{
		OwnerID: account.ID,
		Text:    req.Text,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toTodoView(output.Todo), "Todo created successfully")
}

// List handles GET /todos.
func (h *TodoHandler) List(c echo.Context) error {
	account, err := middleware.ActingAccount(c)
	if err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.List(c.Request().Context(), account.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toTodoViews(output.Todos), "")
}

// Get handles GET /todos/:id.
func (h *TodoHandler) Get(c echo.Context) error {
	account, err := middleware.ActingAccount(c)
	if err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Get(c.Request().Context(), account.ID, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toTodoView(output.Todo), "")
}

// Update handles PATCH /todos/:id.
func (h *TodoHandler) Update(c echo.Context) error {
	account, err := middleware.ActingAccount(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var req updateTodoRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid todo patch")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.uc.Update(c.Request().Context(), &usecase.UpdateTodoInput{
		OwnerID:   account.ID,
		TodoID:    c.Param("id"),
		Text:      req.Text,
		Completed: req.Completed,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toTodoView(output.Todo), "Todo updated successfully")
}

// Delete handles DELETE /todos/:id and returns the removed record.
func (h *TodoHandler) Delete(c echo.Context) error {
	account, err := middleware.ActingAccount(c)
	if err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Delete(c.Request().Context(), account.ID, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toTodoView(output.Todo), "Todo deleted successfully")
}

// DeleteAll handles DELETE /todos and reports how many records were removed.
func (h *TodoHandler) DeleteAll(c echo.Context) error {
	account, err := middleware.ActingAccount(c)
	if err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.DeleteAll(c.Request().Context(), account.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int64{"deleted": output.Deleted}, "Todos deleted successfully")
}

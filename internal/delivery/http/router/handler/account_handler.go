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

// registerRequest is the body of POST /users. The tags catch absent fields
// at the edge; the domain rules (email grammar, password length) stay in the
// usecase.
type registerRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// loginRequest is the body of POST /users/login.
type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles the account registration request. The fresh session token
// travels back in the x-auth response header, not the body.
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(middleware.HeaderXAuth, output.Token)

	return response.Success(c, http.StatusCreated, toAccountView(output.Account), "Account registered successfully")
}

// Login handles the credential login request; the token rides the x-auth
// header exactly like registration.
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(middleware.HeaderXAuth, output.Token)

	return response.Success(c, http.StatusOK, toAccountView(output.Account), "Login successful")
}

// Logout revokes the session of the token that authenticated this request.
func (h *AccountHandler) Logout(c echo.Context) error {
	account, err := middleware.ActingAccount(c)
	if err != nil {
		return errors.WithStack(err)
	}
	token, err := middleware.ActingToken(c)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Logout(c.Request().Context(), account.ID, token); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

// Me returns the serialized acting account.
func (h *AccountHandler) Me(c echo.Context) error {
	account, err := middleware.ActingAccount(c)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAccountView(account), "Profile retrieved successfully")
}

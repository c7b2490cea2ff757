// Package middleware holds the HTTP-specific middlewares of the API.
package middleware

import (
	"todohub/internal/domain/entity"
	domainerrors "todohub/internal/domain/errors"
	"todohub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	// HeaderXAuth carries the session token on requests and on the
	// register/login responses.
	HeaderXAuth = "x-auth"

	keyAccount = "account"
	keyToken   = "token"
)

// AuthMiddleware gates protected routes on the x-auth token. A request passes
// only when the token's signature, scope, session row and account all check
// out; every failure mode yields the same opaque 401.
type AuthMiddleware struct {
	accountUC usecase.AccountUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(accountUC usecase.AccountUsecase) *AuthMiddleware {
	return &AuthMiddleware{accountUC: accountUC}
}

// Authenticate validates the x-auth token and stores the acting account on
// the request context for handlers to use.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := c.Request().Header.Get(HeaderXAuth)
		if token == "" {
			return errors.Wrap(domainerrors.ErrUnauthorized, "missing x-auth header")
		}

		authenticated, err := m.accountUC.AuthenticateToken(c.Request().Context(), token)
		if err != nil {
			return errors.WithStack(err)
		}

		c.Set(keyAccount, authenticated.Account)
		c.Set(keyToken, authenticated.Token)

		return next(c)
	}
}

// ActingAccount returns the account set by Authenticate. It must only be
// called from handlers behind the middleware.
func ActingAccount(c echo.Context) (*entity.Account, error) {
	account, ok := c.Get(keyAccount).(*entity.Account)
	if !ok || account == nil {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "no authenticated account on context")
	}

	return account, nil
}

// ActingToken returns the exact token string that authenticated this request.
func ActingToken(c echo.Context) (string, error) {
	token, ok := c.Get(keyToken).(string)
	if !ok || token == "" {
		return "", errors.Wrap(domainerrors.ErrUnauthorized, "no token on context")
	}

	return token, nil
}

// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"todohub/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email    string
	Password string
}

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput returns the account and its freshly issued auth token. Register
// and Login both end with a live session, so they share this shape.
type AuthOutput struct {
	Account *entity.Account
	Token   string
}

// AuthenticatedAccount is the result of resolving a raw token into the
// account that owns it. Token carries the exact string that matched the
// session row, which logout needs to revoke it.
type AuthenticatedAccount struct {
	Account *entity.Account
	Token   string
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	AuthenticateToken(ctx context.Context, token string) (*AuthenticatedAccount, error)
	Logout(ctx context.Context, accountID uuid.UUID, token string) error
}

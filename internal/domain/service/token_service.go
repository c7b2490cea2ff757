package service

import (
	"github.com/google/uuid"
)

// TokenClaims is the decoded payload of a session token: which account it was
// issued to and under which scope. Signature validity alone does not make a
// token usable; the account's live-session check is a separate step.
type TokenClaims struct {
	AccountID uuid.UUID
	Scope     string
}

// TokenService defines the interface for creating and verifying signed
// session tokens. Implementations are free to include random material, so two
// Issue calls with the same inputs need not produce the same token.
type TokenService interface {
	// Issue creates a signed token binding the account ID and scope.
	Issue(accountID uuid.UUID, scope string) (string, error)

	// Verify checks the signature and payload shape of a token string and
	// returns its claims. It does not consult session storage.
	Verify(token string) (*TokenClaims, error)
}

package repository

import (
	"context"

	"todohub/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrSessionNotFound is returned when no session row matches an exact
// (account, scope, token) triple.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository manages the per-account session rows that back bearer
// tokens. A token is live exactly while its row exists; each mutation is a
// single-row statement, so concurrent issuance for one account cannot lose
// sessions.
type SessionRepository interface {
	// Create persists a new session, making its token accepted by the gate.
	Create(ctx context.Context, session *entity.Session) error

	// Find retrieves the session matching the triple verbatim. Returns
	// ErrSessionNotFound when the token was never issued or has been revoked.
	Find(ctx context.Context, accountID uuid.UUID, scope, token string) (*entity.Session, error)

	// DeleteByToken removes the session holding the exact token for the
	// account and reports how many rows were removed. Zero is not an error;
	// revocation is idempotent.
	DeleteByToken(ctx context.Context, accountID uuid.UUID, token string) (int64, error)
}

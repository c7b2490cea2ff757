// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ScopeAuth is the only session scope issued by this service. The scope is
// stored alongside each session so narrower scopes can be added later without
// a schema change.
const ScopeAuth = "auth"

const (
	minEmailLength    = 3
	minPasswordLength = 6
)

// Account is the registered user identity. PasswordHash holds the bcrypt
// digest of the password; the plaintext is hashed before the entity is ever
// persisted and is never stored.
type Account struct {
	ID           uuid.UUID // The unique identifier for the account, assigned at creation.
	Email        string    // Unique, trimmed login identifier.
	PasswordHash string    // bcrypt digest of the credential. Never serialized outward.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// Session is one active (scope, token) pair granting bearer access as an
// account. An account may hold any number of concurrent sessions, one per
// logged-in device. A token is only valid while its exact session row exists;
// logout removes the row, which is what actually expires the token.
type Session struct {
	ID        uuid.UUID // The unique ID for this session record.
	AccountID uuid.UUID // Links this session to the Account it belongs to.
	Scope     string    // Capability label, always ScopeAuth in this service.
	Token     string    // The signed token string, matched verbatim on lookup and revocation.
	CreatedAt time.Time // Timestamp of when this session was created.
}

// NormalizeEmail applies the canonical form used for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// ValidateRegistration checks the registration input against the account
// constraints and returns one entry per failing field.
func ValidateRegistration(email, password string) map[string]string {
	fields := make(map[string]string)

	email = NormalizeEmail(email)
	if len(email) < minEmailLength {
		fields["email"] = "email is too short"
	} else if _, err := mail.ParseAddress(email); err != nil {
		fields["email"] = "email is not a valid address"
	}

	if len(password) < minPasswordLength {
		fields["password"] = "password must be at least 6 characters long"
	}

	if len(fields) == 0 {
		return nil
	}

	return fields
}

package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"todohub/config"
	"todohub/internal/domain/service"
)

// ErrInvalidToken is returned for any token whose signature or payload cannot
// be verified. Callers get no finer-grained cause.
var ErrInvalidToken = errors.New("invalid token")

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret string
}

// NewJWTService is the constructor for jwtService. The signing secret is
// injected through configuration, never read from process globals, so tests
// can pin a fixed secret.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Auth == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{secret: cfg.SecretKey.Auth}, nil
}

// Issue creates a signed token embedding the account ID and scope. Tokens
// carry a random jti, so repeated issuance for the same account yields
// distinct tokens and each session row stays individually revocable. There is
// no exp claim: a token dies when its session row is removed, not by clock.
func (s *jwtService) Issue(accountID uuid.UUID, scope string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   accountID.String(),
		"scope": scope,
		"iat":   jwt.NewNumericDate(time.Now()),
		"jti":   uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify checks the token signature and extracts the claims. Any malformed
// payload, wrong signing method or bad signature collapses into
// ErrInvalidToken.
func (s *jwtService) Verify(tokenString string) (*service.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	accountID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}

	scope, ok := claims["scope"].(string)
	if !ok || scope == "" {
		return nil, ErrInvalidToken
	}

	return &service.TokenClaims{
		AccountID: accountID,
		Scope:     scope,
	}, nil
}

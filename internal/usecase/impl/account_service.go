// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "todohub/internal/delivery/context"
	"todohub/internal/domain/entity"
	domainerrors "todohub/internal/domain/errors"
	"todohub/internal/domain/repository"
	"todohub/internal/domain/service"
	"todohub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager    repository.TransactionManager
	accountRepo  repository.AccountRepository
	sessionRepo  repository.SessionRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	AccountRepo  repository.AccountRepository
	SessionRepo  repository.SessionRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:    params.TxManager,
		accountRepo:  params.AccountRepo,
		sessionRepo:  params.SessionRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account and immediately opens an authenticated
// session for it, so the client receives a usable token in the same response.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)

	if fields := entity.ValidateRegistration(email, input.Password); len(fields) > 0 {
		srv.log(ctx).Warn("Registration validation failed", slog.String("email", email))

		return nil, domainerrors.NewValidationError(fields)
	}

	// bcrypt is CPU-bound; hash outside the transaction.
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	var registeredAccount *entity.Account
	var token string

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()
		sessionRepo := repoFactory.SessionRepo()

		// The unique index is the real guard; this check just yields a
		// cleaner error on the common path.
		_, findErr := accountRepo.FindByEmail(ctx, email)
		if findErr == nil {
			return domainerrors.ErrEmailTaken.WrapMessage("email already registered")
		}
		if !errors.Is(findErr, repository.ErrAccountNotFound) {
			return errors.Wrap(findErr, "failed to check email availability")
		}

		newAccount := &entity.Account{
			Email:        email,
			PasswordHash: hashedPassword,
		}
		if createErr := accountRepo.Create(ctx, newAccount); createErr != nil {
			return errors.Wrap(createErr, "failed to create account during registration")
		}

		issuedToken, issueErr := srv.tokenService.Issue(newAccount.ID, entity.ScopeAuth)
		if issueErr != nil {
			return errors.Wrap(issueErr, "failed to issue token during registration")
		}

		newSession := &entity.Session{
			AccountID: newAccount.ID,
			Scope:     entity.ScopeAuth,
			Token:     issuedToken,
		}
		if sessionErr := sessionRepo.Create(ctx, newSession); sessionErr != nil {
			return errors.Wrap(sessionErr, "failed to create session during registration")
		}

		registeredAccount = newAccount
		token = issuedToken

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to execute registration transaction", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("accountID", registeredAccount.ID))

	return &usecase.AuthOutput{Account: registeredAccount, Token: token}, nil
}

// Login verifies the credentials and opens a new session. Unknown email and
// wrong password produce the same error, so callers cannot probe for
// registered addresses.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting login", slog.String("email", email))

	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", err))

		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	// Check password outside transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	token, err := srv.tokenService.Issue(account.ID, entity.ScopeAuth)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token during login", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token during login")
	}

	newSession := &entity.Session{
		AccountID: account.ID,
		Scope:     entity.ScopeAuth,
		Token:     token,
	}
	if err := srv.sessionRepo.Create(ctx, newSession); err != nil {
		srv.log(ctx).Error("Failed to create session during login", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create session during login")
	}

	srv.log(ctx).Debug("Login completed", slog.Any("accountID", account.ID))

	return &usecase.AuthOutput{Account: account, Token: token}, nil
}

// AuthenticateToken resolves a raw token into its account. The token must
// carry a valid signature, the auth scope, and a live session row; any
// failure collapses into ErrUnauthorized so the response reveals nothing
// about which check broke.
func (srv *accountService) AuthenticateToken(ctx context.Context, token string) (*usecase.AuthenticatedAccount, error) {
	claims, err := srv.tokenService.Verify(token)
	if err != nil {
		srv.log(ctx).Debug("Token verification failed", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "token verification failed")
	}

	if claims.Scope != entity.ScopeAuth {
		srv.log(ctx).Debug("Token carries wrong scope", slog.String("scope", claims.Scope))

		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "token scope mismatch")
	}

	// The session row is what makes the token live; a signed token whose row
	// was removed by logout must fail here.
	if _, err := srv.sessionRepo.Find(ctx, claims.AccountID, claims.Scope, token); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUnauthorized, "no live session for token")
		}

		return nil, errors.Wrap(err, "failed to find session for token")
	}

	account, err := srv.accountRepo.FindByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUnauthorized, "account for token no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load account for token")
	}

	return &usecase.AuthenticatedAccount{Account: account, Token: token}, nil
}

// Logout revokes the session holding the given token. Revoking a token whose
// session is already gone is a no-op; the end state is identical.
func (srv *accountService) Logout(ctx context.Context, accountID uuid.UUID, token string) error {
	deleted, err := srv.sessionRepo.DeleteByToken(ctx, accountID, token)
	if err != nil {
		srv.log(ctx).Error("Failed to delete session during logout", slog.Any("error", err), slog.Any("accountID", accountID))

		return errors.Wrap(err, "failed to delete session during logout")
	}

	srv.log(ctx).Debug("Logout completed", slog.Any("accountID", accountID), slog.Int64("deleted", deleted))

	return nil
}

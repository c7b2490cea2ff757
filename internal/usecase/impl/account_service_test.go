package impl

import (
	"context"
	"testing"

	domainerrors "todohub/internal/domain/errors"
	"todohub/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccountServiceForTest() (usecase.AccountUsecase, *fakeAccountRepo, *fakeSessionRepo) {
	accountRepo := newFakeAccountRepo()
	sessionRepo := newFakeSessionRepo()
	factory := &fakeRepoFactory{
		accountRepo: accountRepo,
		sessionRepo: sessionRepo,
		todoRepo:    newFakeTodoRepo(),
	}

	svc := NewAccountService(AccountServiceParams{
		TxManager:    &fakeTxManager{factory: factory},
		AccountRepo:  accountRepo,
		SessionRepo:  sessionRepo,
		Hasher:       newTestHasher(),
		TokenService: newTestTokenService(),
		Logger:       newDiscardLogger(),
	})

	return svc, accountRepo, sessionRepo
}

func TestAccountService_Register_Success(t *testing.T) {
	svc, _, sessionRepo := newAccountServiceForTest()
	ctx := context.Background()

	output, err := svc.Register(ctx, &usecase.RegisterInput{
		Email:    "  a@example.com  ",
		Password: "secret1",
	})

	require.NoError(t, err)
	assert.Equal(t, "a@example.com", output.Account.Email)
	assert.NotEmpty(t, output.Token)
	assert.NotEqual(t, "secret1", output.Account.PasswordHash)
	assert.Equal(t, 1, sessionRepo.count())

	// The returned token must already be live.
	authenticated, err := svc.AuthenticateToken(ctx, output.Token)
	require.NoError(t, err)
	assert.Equal(t, output.Account.ID, authenticated.Account.ID)
}

func TestAccountService_Register_ValidationFailure(t *testing.T) {
	svc, _, _ := newAccountServiceForTest()
	ctx := context.Background()

	_, err := svc.Register(ctx, &usecase.RegisterInput{
		Email:    "no",
		Password: "short",
	})

	require.Error(t, err)
	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields(), "email")
	assert.Contains(t, validationErr.Fields(), "password")
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAccountServiceForTest()
	ctx := context.Background()

	_, err := svc.Register(ctx, &usecase.RegisterInput{Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &usecase.RegisterInput{Email: "a@example.com", Password: "secret2"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
}

func TestAccountService_Login_Success(t *testing.T) {
	svc, _, sessionRepo := newAccountServiceForTest()
	ctx := context.Background()

	registered, err := svc.Register(ctx, &usecase.RegisterInput{Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	output, err := svc.Login(ctx, &usecase.LoginInput{Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, registered.Account.ID, output.Account.ID)
	assert.NotEmpty(t, output.Token)

	// Each login opens its own session alongside the registration one.
	assert.Equal(t, 2, sessionRepo.count())
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	svc, _, _ := newAccountServiceForTest()
	ctx := context.Background()

	_, err := svc.Register(ctx, &usecase.RegisterInput{Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &usecase.LoginInput{Email: "a@example.com", Password: "wrong-password"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_Login_UnknownEmailSameError(t *testing.T) {
	svc, _, _ := newAccountServiceForTest()
	ctx := context.Background()

	_, err := svc.Register(ctx, &usecase.RegisterInput{Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, wrongPassErr := svc.Login(ctx, &usecase.LoginInput{Email: "a@example.com", Password: "wrong-password"})
	_, unknownErr := svc.Login(ctx, &usecase.LoginInput{Email: "nobody@example.com", Password: "secret1"})

	require.Error(t, wrongPassErr)
	require.Error(t, unknownErr)

	// Unknown email and wrong password must be indistinguishable.
	assert.True(t, errors.Is(wrongPassErr, domainerrors.ErrInvalidCredentials))
	assert.True(t, errors.Is(unknownErr, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_AuthenticateToken_GarbageToken(t *testing.T) {
	svc, _, _ := newAccountServiceForTest()

	_, err := svc.AuthenticateToken(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}

func TestAccountService_AuthenticateToken_RevokedSession(t *testing.T) {
	svc, _, _ := newAccountServiceForTest()
	ctx := context.Background()

	output, err := svc.Register(ctx, &usecase.RegisterInput{Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, output.Account.ID, output.Token))

	// The signature is still valid; only the missing session row rejects it.
	_, err = svc.AuthenticateToken(ctx, output.Token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}

func TestAccountService_AuthenticateToken_DeletedAccount(t *testing.T) {
	svc, accountRepo, _ := newAccountServiceForTest()
	ctx := context.Background()

	output, err := svc.Register(ctx, &usecase.RegisterInput{Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	accountRepo.delete(output.Account.ID)

	_, err = svc.AuthenticateToken(ctx, output.Token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}

func TestAccountService_Logout_Idempotent(t *testing.T) {
	svc, _, sessionRepo := newAccountServiceForTest()
	ctx := context.Background()

	output, err := svc.Register(ctx, &usecase.RegisterInput{Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, output.Account.ID, output.Token))
	assert.Equal(t, 0, sessionRepo.count())

	// Revoking an already-removed token is a no-op, not an error.
	require.NoError(t, svc.Logout(ctx, output.Account.ID, output.Token))
}

func TestAccountService_Logout_OnlyRevokesPresentedToken(t *testing.T) {
	svc, _, sessionRepo := newAccountServiceForTest()
	ctx := context.Background()

	registered, err := svc.Register(ctx, &usecase.RegisterInput{Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	loggedIn, err := svc.Login(ctx, &usecase.LoginInput{Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, 2, sessionRepo.count())

	require.NoError(t, svc.Logout(ctx, registered.Account.ID, registered.Token))

	// The other device's session survives.
	_, err = svc.AuthenticateToken(ctx, loggedIn.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, sessionRepo.count())
}

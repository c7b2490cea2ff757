package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"todohub/config"
	"todohub/internal/domain/entity"
	"todohub/internal/domain/repository"
	"todohub/internal/domain/service"
	"todohub/internal/infra/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHasher() service.PasswordHasher {
	// MinCost keeps the suite fast; strength is not under test here.
	return auth.NewBcryptHasherWithCost(bcrypt.MinCost)
}

func newTestTokenService() service.TokenService {
	cfg := &config.Config{}
	cfg.SecretKey.Auth = "test-secret-key-for-usecase-tests"

	svc, err := auth.NewJWTService(cfg)
	if err != nil {
		panic(err)
	}

	return svc
}

// --- In-memory repository fakes ---
//
// The fakes mirror the repository contracts closely enough to exercise the
// services end to end, including the not-found sentinels the services branch
// on.

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*entity.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uuid.UUID]*entity.Account)}
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	copied := *account

	return &copied, nil
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if account.Email == email {
			copied := *account

			return &copied, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *fakeAccountRepo) Create(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account.ID = uuid.New()
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	copied := *account
	r.accounts[account.ID] = &copied

	return nil
}

func (r *fakeAccountRepo) delete(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.accounts, id)
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions []*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session.ID = uuid.New()
	session.CreatedAt = time.Now()
	copied := *session
	r.sessions = append(r.sessions, &copied)

	return nil
}

func (r *fakeSessionRepo) Find(_ context.Context, accountID uuid.UUID, scope, token string) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, session := range r.sessions {
		if session.AccountID == accountID && session.Scope == scope && session.Token == token {
			copied := *session

			return &copied, nil
		}
	}

	return nil, repository.ErrSessionNotFound
}

func (r *fakeSessionRepo) DeleteByToken(_ context.Context, accountID uuid.UUID, token string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var kept []*entity.Session
	var deleted int64
	for _, session := range r.sessions {
		if session.AccountID == accountID && session.Token == token {
			deleted++

			continue
		}
		kept = append(kept, session)
	}
	r.sessions = kept

	return deleted, nil
}

func (r *fakeSessionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}

type fakeTodoRepo struct {
	mu    sync.Mutex
	todos []*entity.Todo
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{}
}

func (r *fakeTodoRepo) Create(_ context.Context, todo *entity.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	todo.ID = uuid.New()
	todo.CreatedAt = time.Now()
	todo.UpdatedAt = todo.CreatedAt
	copied := *todo
	r.todos = append(r.todos, &copied)

	return nil
}

func (r *fakeTodoRepo) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var owned []*entity.Todo
	for _, todo := range r.todos {
		if todo.OwnerID == ownerID {
			copied := *todo
			owned = append(owned, &copied)
		}
	}

	return owned, nil
}

func (r *fakeTodoRepo) FindByIDAndOwner(_ context.Context, id, ownerID uuid.UUID) (*entity.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, todo := range r.todos {
		if todo.ID == id && todo.OwnerID == ownerID {
			copied := *todo

			return &copied, nil
		}
	}

	return nil, repository.ErrTodoNotFound
}

func (r *fakeTodoRepo) Update(_ context.Context, updated *entity.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, todo := range r.todos {
		if todo.ID == updated.ID && todo.OwnerID == updated.OwnerID {
			copied := *updated
			copied.CreatedAt = todo.CreatedAt
			copied.UpdatedAt = time.Now()
			r.todos[i] = &copied

			return nil
		}
	}

	return repository.ErrTodoNotFound
}

func (r *fakeTodoRepo) DeleteByIDAndOwner(_ context.Context, id, ownerID uuid.UUID) (*entity.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, todo := range r.todos {
		if todo.ID == id && todo.OwnerID == ownerID {
			copied := *todo
			r.todos = append(r.todos[:i], r.todos[i+1:]...)

			return &copied, nil
		}
	}

	return nil, repository.ErrTodoNotFound
}

func (r *fakeTodoRepo) DeleteByOwner(_ context.Context, ownerID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var kept []*entity.Todo
	var deleted int64
	for _, todo := range r.todos {
		if todo.OwnerID == ownerID {
			deleted++

			continue
		}
		kept = append(kept, todo)
	}
	r.todos = kept

	return deleted, nil
}

// --- Transaction fakes ---

type fakeRepoFactory struct {
	accountRepo *fakeAccountRepo
	sessionRepo *fakeSessionRepo
	todoRepo    *fakeTodoRepo
}

func (f *fakeRepoFactory) AccountRepo() repository.AccountRepository { return f.accountRepo }
func (f *fakeRepoFactory) SessionRepo() repository.SessionRepository { return f.sessionRepo }
func (f *fakeRepoFactory) TodoRepo() repository.TodoRepository       { return f.todoRepo }

// fakeTxManager runs the callback against the shared fakes. There is no
// rollback; tests that need failure paths inject them at the repo level.
type fakeTxManager struct {
	factory *fakeRepoFactory
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

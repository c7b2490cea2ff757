package repository

import (
	"context"

	"todohub/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrTodoNotFound is returned when a todo does not exist for the given owner.
// A todo owned by a different account is reported identically to one that
// does not exist at all.
var ErrTodoNotFound = errors.New("todo not found")

// TodoRepository defines the owner-scoped operations for todo persistence.
// Every method takes the acting account's ID and filters on it; there is no
// unscoped access path.
type TodoRepository interface {
	// Create persists a new todo entity to the storage.
	Create(ctx context.Context, todo *entity.Todo) error

	// FindByOwner retrieves all todos of the owner in insertion order.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Todo, error)

	// FindByIDAndOwner retrieves a single todo owned by ownerID.
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Todo, error)

	// Update persists the new state of an existing todo, scoped to its owner.
	Update(ctx context.Context, todo *entity.Todo) error

	// DeleteByIDAndOwner removes a single owned todo and returns the removed
	// record.
	DeleteByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Todo, error)

	// DeleteByOwner removes every todo of the owner and returns the count.
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

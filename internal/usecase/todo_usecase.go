package usecase

import (
	"context"

	"todohub/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateTodoInput defines the data required to create a new todo.
type CreateTodoInput struct {
	OwnerID uuid.UUID
	Text    string
}

// UpdateTodoInput defines a partial update to an existing todo. Nil fields
// are left untouched.
type UpdateTodoInput struct {
	OwnerID   uuid.UUID
	TodoID    string
	Text      *string
	Completed *bool
}

// --- Output DTOs ---

// TodoOutput returns a single todo.
type TodoOutput struct {
	Todo *entity.Todo
}

// TodoListOutput returns the owner's todos in insertion order.
type TodoListOutput struct {
	Todos []*entity.Todo
}

// DeleteAllOutput returns how many todos were removed.
type DeleteAllOutput struct {
	Deleted int64
}

// TodoUsecase defines the interface for todo-related business operations.
// Every operation is scoped to the owner; a todo belonging to another account
// behaves exactly like a missing one. TodoID parameters arrive as raw path
// strings and are validated here, so malformed ids never reach the store.
type TodoUsecase interface {
	Create(ctx context.Context, input *CreateTodoInput) (*TodoOutput, error)
	List(ctx context.Context, ownerID uuid.UUID) (*TodoListOutput, error)
	Get(ctx context.Context, ownerID uuid.UUID, todoID string) (*TodoOutput, error)
	Update(ctx context.Context, input *UpdateTodoInput) (*TodoOutput, error)
	Delete(ctx context.Context, ownerID uuid.UUID, todoID string) (*TodoOutput, error)
	DeleteAll(ctx context.Context, ownerID uuid.UUID) (*DeleteAllOutput, error)
}

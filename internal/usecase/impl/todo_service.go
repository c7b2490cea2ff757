package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "todohub/internal/delivery/context"
	"todohub/internal/domain/entity"
	domainerrors "todohub/internal/domain/errors"
	"todohub/internal/domain/repository"
	"todohub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// todoService implements the TodoUsecase interface.
type todoService struct {
	todoRepo repository.TodoRepository
	logger   *slog.Logger
}

// TodoServiceParams holds dependencies for todoService, injected by Fx.
type TodoServiceParams struct {
	fx.In

	TodoRepo repository.TodoRepository
	Logger   *slog.Logger
}

// NewTodoService is the constructor for todoService.
func NewTodoService(params TodoServiceParams) usecase.TodoUsecase {
	return &todoService{
		todoRepo: params.TodoRepo,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *todoService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// parseTodoID turns the raw path segment into a UUID. A string that cannot be
// a todo id maps to ErrTodoNotFound before any query runs, so malformed and
// absent ids are indistinguishable to the caller.
func parseTodoID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.Wrap(domainerrors.ErrTodoNotFound, "malformed todo id")
	}

	return id, nil
}

// Create validates the text and persists a new todo for the owner.
func (srv *todoService) Create(ctx context.Context, input *usecase.CreateTodoInput) (*usecase.TodoOutput, error) {
	if fields := entity.ValidateTodoText(input.Text); len(fields) > 0 {
		srv.log(ctx).Warn("Todo validation failed", slog.Any("ownerID", input.OwnerID))

		return nil, domainerrors.NewValidationError(fields)
	}

	newTodo := entity.NewTodo(input.OwnerID, input.Text)
	if err := srv.todoRepo.Create(ctx, &newTodo); err != nil {
		srv.log(ctx).Error("Failed to create todo", slog.Any("error", err), slog.Any("ownerID", input.OwnerID))

		return nil, errors.Wrap(err, "failed to create todo")
	}

	srv.log(ctx).Debug("Todo created", slog.Any("todoID", newTodo.ID), slog.Any("ownerID", input.OwnerID))

	return &usecase.TodoOutput{Todo: &newTodo}, nil
}

// List returns every todo of the owner in insertion order.
func (srv *todoService) List(ctx context.Context, ownerID uuid.UUID) (*usecase.TodoListOutput, error) {
	todos, err := srv.todoRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		srv.log(ctx).Error("Failed to list todos", slog.Any("error", err), slog.Any("ownerID", ownerID))

		return nil, errors.Wrap(err, "failed to list todos")
	}

	return &usecase.TodoListOutput{Todos: todos}, nil
}

// Get returns a single owned todo.
func (srv *todoService) Get(ctx context.Context, ownerID uuid.UUID, todoID string) (*usecase.TodoOutput, error) {
	id, err := parseTodoID(todoID)
	if err != nil {
		return nil, err
	}

	todo, err := srv.todoRepo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, errors.Wrap(domainerrors.ErrTodoNotFound, "todo not found")
		}
		srv.log(ctx).Error("Failed to find todo", slog.Any("error", err), slog.Any("ownerID", ownerID))

		return nil, errors.Wrap(err, "failed to find todo")
	}

	return &usecase.TodoOutput{Todo: todo}, nil
}

// Update applies a partial patch to an owned todo and re-establishes the
// completion invariant: completedAt is stamped when completed flips to true
// and cleared whenever completed is false.
func (srv *todoService) Update(ctx context.Context, input *usecase.UpdateTodoInput) (*usecase.TodoOutput, error) {
	id, err := parseTodoID(input.TodoID)
	if err != nil {
		return nil, err
	}

	patch := entity.TodoPatch{Text: input.Text, Completed: input.Completed}
	if input.Text != nil {
		if fields := entity.ValidateTodoText(*input.Text); len(fields) > 0 {
			srv.log(ctx).Warn("Todo validation failed", slog.Any("todoID", id), slog.Any("ownerID", input.OwnerID))

			return nil, domainerrors.NewValidationError(fields)
		}
	}

	current, err := srv.todoRepo.FindByIDAndOwner(ctx, id, input.OwnerID)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, errors.Wrap(domainerrors.ErrTodoNotFound, "todo not found")
		}
		srv.log(ctx).Error("Failed to load todo for update", slog.Any("error", err), slog.Any("ownerID", input.OwnerID))

		return nil, errors.Wrap(err, "failed to load todo for update")
	}

	updated := entity.ApplyTodoPatch(*current, patch, time.Now())
	if err := srv.todoRepo.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, errors.Wrap(domainerrors.ErrTodoNotFound, "todo not found")
		}
		srv.log(ctx).Error("Failed to update todo", slog.Any("error", err), slog.Any("todoID", id))

		return nil, errors.Wrap(err, "failed to update todo")
	}

	srv.log(ctx).Debug("Todo updated", slog.Any("todoID", id), slog.Any("ownerID", input.OwnerID))

	return &usecase.TodoOutput{Todo: &updated}, nil
}

// Delete removes a single owned todo and returns the removed record.
func (srv *todoService) Delete(ctx context.Context, ownerID uuid.UUID, todoID string) (*usecase.TodoOutput, error) {
	id, err := parseTodoID(todoID)
	if err != nil {
		return nil, err
	}

	deleted, err := srv.todoRepo.DeleteByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, errors.Wrap(domainerrors.ErrTodoNotFound, "todo not found")
		}
		srv.log(ctx).Error("Failed to delete todo", slog.Any("error", err), slog.Any("ownerID", ownerID))

		return nil, errors.Wrap(err, "failed to delete todo")
	}

	srv.log(ctx).Debug("Todo deleted", slog.Any("todoID", id), slog.Any("ownerID", ownerID))

	return &usecase.TodoOutput{Todo: deleted}, nil
}

// DeleteAll removes every todo of the owner and reports the count. An owner
// with no todos gets a zero count, not an error.
func (srv *todoService) DeleteAll(ctx context.Context, ownerID uuid.UUID) (*usecase.DeleteAllOutput, error) {
	deleted, err := srv.todoRepo.DeleteByOwner(ctx, ownerID)
	if err != nil {
		srv.log(ctx).Error("Failed to delete todos", slog.Any("error", err), slog.Any("ownerID", ownerID))

		return nil, errors.Wrap(err, "failed to delete todos")
	}

	srv.log(ctx).Debug("Todos deleted", slog.Any("ownerID", ownerID), slog.Int64("deleted", deleted))

	return &usecase.DeleteAllOutput{Deleted: deleted}, nil
}

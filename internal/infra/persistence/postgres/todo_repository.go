package postgres

import (
	"context"

	"todohub/internal/domain/entity"
	domainerrors "todohub/internal/domain/errors"
	"todohub/internal/domain/repository"
	"todohub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// todoRepository implements the repository.TodoRepository interface using GORM.
// Every query carries the owner filter; there is no unscoped access path.
type todoRepository struct {
	db *gorm.DB
}

// NewTodoRepository is the constructor for todoRepository.
func NewTodoRepository(db *gorm.DB) repository.TodoRepository {
	return &todoRepository{db: db}
}

// Create persists a new todo entity to the database.
func (repo *todoRepository) Create(ctx context.Context, todo *entity.Todo) error {
	todoM := fromTodoDomain(todo)

	if err := repo.db.WithContext(ctx).Create(todoM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid owner reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required todo information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create todo")
	}

	// Update the todo entity with the generated ID and timestamps
	todo.ID = todoM.ID
	todo.CreatedAt = todoM.CreatedAt
	todo.UpdatedAt = todoM.UpdatedAt

	return nil
}

// FindByOwner retrieves all todos of the owner in insertion order.
func (repo *todoRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Todo, error) {
	var todoModels []*model.TodoModel
	err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&todoModels).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to list todos by owner")
	}

	todos := make([]*entity.Todo, 0, len(todoModels))
	for _, todoM := range todoModels {
		todos = append(todos, toTodoDomain(todoM))
	}

	return todos, nil
}

// FindByIDAndOwner retrieves a single todo owned by ownerID. A todo owned by
// a different account is indistinguishable from a missing one.
func (repo *todoRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Todo, error) {
	var todoM model.TodoModel
	err := repo.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&todoM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTodoNotFound
		}

		return nil, errors.Wrap(err, "failed to find todo")
	}

	return toTodoDomain(&todoM), nil
}

// Update persists the new state of an existing todo, scoped to its owner.
// Select forces completed_at to be written even when nil, so clearing the
// completion timestamp reaches the database; updated_at is listed so GORM's
// modification tracking survives the explicit column set.
func (repo *todoRepository) Update(ctx context.Context, todo *entity.Todo) error {
	todoM := fromTodoDomain(todo)

	result := repo.db.WithContext(ctx).
		Model(&model.TodoModel{}).
		Where("id = ? AND owner_id = ?", todo.ID, todo.OwnerID).
		Select("text", "completed", "completed_at", "updated_at").
		Updates(todoM)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update todo")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTodoNotFound
	}

	return nil
}

// DeleteByIDAndOwner removes a single owned todo and returns the removed
// record.
func (repo *todoRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Todo, error) {
	var todoM model.TodoModel
	err := repo.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&todoM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTodoNotFound
		}

		return nil, errors.Wrap(err, "failed to load todo for delete")
	}

	result := repo.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.TodoModel{})

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to delete todo")
	}
	if result.RowsAffected == 0 {
		// Lost a race with a concurrent delete; report as not found.
		return nil, repository.ErrTodoNotFound
	}

	return toTodoDomain(&todoM), nil
}

// DeleteByOwner removes every todo of the owner and returns the count.
func (repo *todoRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Delete(&model.TodoModel{})

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to delete todos by owner")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

// toTodoDomain converts a GORM TodoModel to a domain Todo entity.
func toTodoDomain(data *model.TodoModel) *entity.Todo {
	if data == nil {
		return nil
	}

	return &entity.Todo{
		ID:          data.ID,
		OwnerID:     data.OwnerID,
		Text:        data.Text,
		Completed:   data.Completed,
		CompletedAt: data.CompletedAt,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromTodoDomain converts a domain Todo entity to a GORM TodoModel.
func fromTodoDomain(data *entity.Todo) *model.TodoModel {
	if data == nil {
		return nil
	}

	return &model.TodoModel{
		ID:          data.ID,
		OwnerID:     data.OwnerID,
		Text:        data.Text,
		Completed:   data.Completed,
		CompletedAt: data.CompletedAt,
	}
}

package impl

import (
	"context"
	"testing"

	domainerrors "todohub/internal/domain/errors"
	"todohub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTodoServiceForTest() usecase.TodoUsecase {
	return NewTodoService(TodoServiceParams{
		TodoRepo: newFakeTodoRepo(),
		Logger:   newDiscardLogger(),
	})
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestTodoService_Create_Success(t *testing.T) {
	svc := newTodoServiceForTest()
	ctx := context.Background()
	ownerID := uuid.New()

	output, err := svc.Create(ctx, &usecase.CreateTodoInput{OwnerID: ownerID, Text: "  Walk the dog  "})

	require.NoError(t, err)
	assert.Equal(t, "Walk the dog", output.Todo.Text)
	assert.Equal(t, ownerID, output.Todo.OwnerID)
	assert.False(t, output.Todo.Completed)
	assert.Nil(t, output.Todo.CompletedAt)
	assert.NotEqual(t, uuid.Nil, output.Todo.ID)
}

func TestTodoService_Create_TextTooShort(t *testing.T) {
	svc := newTodoServiceForTest()

	_, err := svc.Create(context.Background(), &usecase.CreateTodoInput{OwnerID: uuid.New(), Text: "  ab  "})

	require.Error(t, err)
	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields(), "text")
}

func TestTodoService_Get_MalformedID(t *testing.T) {
	svc := newTodoServiceForTest()

	// A malformed id must behave exactly like a missing one.
	_, err := svc.Get(context.Background(), uuid.New(), "123abc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTodoNotFound))
}

func TestTodoService_Get_ForeignOwner(t *testing.T) {
	svc := newTodoServiceForTest()
	ctx := context.Background()
	ownerA := uuid.New()
	ownerB := uuid.New()

	created, err := svc.Create(ctx, &usecase.CreateTodoInput{OwnerID: ownerA, Text: "owned by A"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, ownerB, created.Todo.ID.String())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTodoNotFound))

	// The owner still sees it.
	got, err := svc.Get(ctx, ownerA, created.Todo.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.Todo.ID, got.Todo.ID)
}

func TestTodoService_List_OnlyOwnTodos(t *testing.T) {
	svc := newTodoServiceForTest()
	ctx := context.Background()
	ownerA := uuid.New()
	ownerB := uuid.New()

	_, err := svc.Create(ctx, &usecase.CreateTodoInput{OwnerID: ownerA, Text: "first of A"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &usecase.CreateTodoInput{OwnerID: ownerB, Text: "first of B"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &usecase.CreateTodoInput{OwnerID: ownerA, Text: "second of A"})
	require.NoError(t, err)

	output, err := svc.List(ctx, ownerA)
	require.NoError(t, err)
	require.Len(t, output.Todos, 2)
	assert.Equal(t, "first of A", output.Todos[0].Text)
	assert.Equal(t, "second of A", output.Todos[1].Text)
}

func TestTodoService_Update_CompleteStampsTimestamp(t *testing.T) {
	svc := newTodoServiceForTest()
	ctx := context.Background()
	ownerID := uuid.New()

	created, err := svc.Create(ctx, &usecase.CreateTodoInput{OwnerID: ownerID, Text: "finish this"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, &usecase.UpdateTodoInput{
		OwnerID:   ownerID,
		TodoID:    created.Todo.ID.String(),
		Completed: boolPtr(true),
	})

	require.NoError(t, err)
	assert.True(t, updated.Todo.Completed)
	require.NotNil(t, updated.Todo.CompletedAt)
	assert.Positive(t, *updated.Todo.CompletedAt)
}

func TestTodoService_Update_ReopenClearsTimestamp(t *testing.T) {
	svc := newTodoServiceForTest()
	ctx := context.Background()
	ownerID := uuid.New()

	created, err := svc.Create(ctx, &usecase.CreateTodoInput{OwnerID: ownerID, Text: "finish this"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, &usecase.UpdateTodoInput{
		OwnerID:   ownerID,
		TodoID:    created.Todo.ID.String(),
		Completed: boolPtr(true),
	})
	require.NoError(t, err)

	reopened, err := svc.Update(ctx, &usecase.UpdateTodoInput{
		OwnerID:   ownerID,
		TodoID:    created.Todo.ID.String(),
		Completed: boolPtr(false),
	})

	require.NoError(t, err)
	assert.False(t, reopened.Todo.Completed)
	assert.Nil(t, reopened.Todo.CompletedAt)
}

func TestTodoService_Update_TextOnlyKeepsCompletion(t *testing.T) {
	svc := newTodoServiceForTest()
	ctx := context.Background()
	ownerID := uuid.New()

	created, err := svc.Create(ctx, &usecase.CreateTodoInput{OwnerID: ownerID, Text: "finish this"})
	require.NoError(t, err)

	completed, err := svc.Update(ctx, &usecase.UpdateTodoInput{
		OwnerID:   ownerID,
		TodoID:    created.Todo.ID.String(),
		Completed: boolPtr(true),
	})
	require.NoError(t, err)
	require.NotNil(t, completed.Todo.CompletedAt)
	stamp := *completed.Todo.CompletedAt

	renamed, err := svc.Update(ctx, &usecase.UpdateTodoInput{
		OwnerID: ownerID,
		TodoID:  created.Todo.ID.String(),
		Text:    strPtr("finish this soon"),
	})

	require.NoError(t, err)
	assert.Equal(t, "finish this soon", renamed.Todo.Text)
	assert.True(t, renamed.Todo.Completed)
	require.NotNil(t, renamed.Todo.CompletedAt)
	assert.Equal(t, stamp, *renamed.Todo.CompletedAt)
}

func TestTodoService_Update_ForeignOwner(t *testing.T) {
	svc := newTodoServiceForTest()
	ctx := context.Background()
	ownerA := uuid.New()
	ownerB := uuid.New()

	created, err := svc.Create(ctx, &usecase.CreateTodoInput{OwnerID: ownerA, Text: "owned by A"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, &usecase.UpdateTodoInput{
		OwnerID:   ownerB,
		TodoID:    created.Todo.ID.String(),
		Completed: boolPtr(true),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTodoNotFound))
}

func TestTodoService_Delete_ReturnsRemovedRecord(t *testing.T) {
	svc := newTodoServiceForTest()
	ctx := context.Background()
	ownerID := uuid.New()

	created, err := svc.Create(ctx, &usecase.CreateTodoInput{OwnerID: ownerID, Text: "remove me"})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, ownerID, created.Todo.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.Todo.ID, deleted.Todo.ID)
	assert.Equal(t, "remove me", deleted.Todo.Text)

	// A second delete finds nothing.
	_, err = svc.Delete(ctx, ownerID, created.Todo.ID.String())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTodoNotFound))
}

func TestTodoService_DeleteAll_ScopedToOwner(t *testing.T) {
	svc := newTodoServiceForTest()
	ctx := context.Background()
	ownerA := uuid.New()
	ownerB := uuid.New()

	_, err := svc.Create(ctx, &usecase.CreateTodoInput{OwnerID: ownerA, Text: "first of A"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &usecase.CreateTodoInput{OwnerID: ownerA, Text: "second of A"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &usecase.CreateTodoInput{OwnerID: ownerB, Text: "only of B"})
	require.NoError(t, err)

	output, err := svc.DeleteAll(ctx, ownerA)
	require.NoError(t, err)
	assert.Equal(t, int64(2), output.Deleted)

	remaining, err := svc.List(ctx, ownerB)
	require.NoError(t, err)
	assert.Len(t, remaining.Todos, 1)

	// Deleting again reports zero, not an error.
	again, err := svc.DeleteAll(ctx, ownerA)
	require.NoError(t, err)
	assert.Zero(t, again.Deleted)
}

package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const minTodoTextLength = 3

// Todo is a single task owned by exactly one account. CompletedAt is the
// completion time in milliseconds since epoch and is nil whenever Completed
// is false; the pair is recomputed on every mutation, never trusted from
// callers.
type Todo struct {
	ID          uuid.UUID // The unique identifier for the todo.
	OwnerID     uuid.UUID // The account that created the todo. Immutable after creation.
	Text        string    // Trimmed task description.
	Completed   bool      // Completion state, defaults to false.
	CompletedAt *int64    // Completion time in epoch milliseconds, nil while not completed.
	CreatedAt   time.Time // Timestamp of when this todo was created. List order follows it.
	UpdatedAt   time.Time // Timestamp of the last modification to this todo.
}

// TodoPatch carries the caller-settable fields of an update. Nil means
// "leave unchanged". CompletedAt is deliberately absent: it is derived.
type TodoPatch struct {
	Text      *string
	Completed *bool
}

// NewTodo builds a fresh, not-yet-persisted todo for the given owner.
func NewTodo(ownerID uuid.UUID, text string) Todo {
	return Todo{
		OwnerID:   ownerID,
		Text:      strings.TrimSpace(text),
		Completed: false,
	}
}

// ApplyTodoPatch returns the next state of a todo after applying the patch at
// the given time. The completed/completedAt invariant is re-established
// unconditionally: flipping to completed stamps now, anything else clears the
// timestamp. Persistence is the caller's concern.
func ApplyTodoPatch(todo Todo, patch TodoPatch, now time.Time) Todo {
	next := todo

	if patch.Text != nil {
		next.Text = strings.TrimSpace(*patch.Text)
	}
	if patch.Completed != nil {
		next.Completed = *patch.Completed
	}

	if next.Completed {
		if !todo.Completed || todo.CompletedAt == nil {
			millis := now.UnixMilli()
			next.CompletedAt = &millis
		}
	} else {
		next.CompletedAt = nil
	}

	return next
}

// ValidateTodoText checks the text constraint shared by create and update.
func ValidateTodoText(text string) map[string]string {
	if len(strings.TrimSpace(text)) < minTodoTextLength {
		return map[string]string{"text": "text must be at least 3 characters long"}
	}

	return nil
}

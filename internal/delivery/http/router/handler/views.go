// Package handler contains the HTTP handlers for the application.
package handler

import (
	"todohub/internal/domain/entity"
)

// accountView is the only outward shape of an account. The password hash and
// sessions never appear in a response body.
type accountView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func toAccountView(account *entity.Account) accountView {
	return accountView{
		ID:    account.ID.String(),
		Email: account.Email,
	}
}

// todoView is the outward shape of a todo. CompletedAt is epoch milliseconds
// and serializes as null while the todo is open.
type todoView struct {
	ID          string `json:"id"`
	OwnerID     string `json:"ownerId"`
	Text        string `json:"text"`
	Completed   bool   `json:"completed"`
	CompletedAt *int64 `json:"completedAt"`
}

func toTodoView(todo *entity.Todo) todoView {
	return todoView{
		ID:          todo.ID.String(),
		OwnerID:     todo.OwnerID.String(),
		Text:        todo.Text,
		Completed:   todo.Completed,
		CompletedAt: todo.CompletedAt,
	}
}

func toTodoViews(todos []*entity.Todo) []todoView {
	views := make([]todoView, 0, len(todos))
	for _, todo := range todos {
		views = append(views, toTodoView(todo))
	}

	return views
}

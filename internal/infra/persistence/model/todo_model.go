package model

import (
	"time"

	"github.com/google/uuid"
)

// TodoModel mirrors the 'todos' table. CompletedAt stores epoch milliseconds
// and is NULL while the todo is open. CreatedAt doubles as the list order.
type TodoModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Text        string    `gorm:"type:text;not null"`
	Completed   bool      `gorm:"not null;default:false"`
	CompletedAt *int64    `gorm:"type:bigint"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (TodoModel) TableName() string {
	return "todos"
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionModel mirrors the 'sessions' table. One row per issued token; the
// composite index backs the exact-match lookup the authorization gate runs on
// every request.
type SessionModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index:idx_sessions_account_token"`
	Scope     string    `gorm:"type:varchar(32);not null"`
	Token     string    `gorm:"type:text;not null;index:idx_sessions_account_token"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}

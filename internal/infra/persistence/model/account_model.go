package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table.
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName     string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_accounts_email"`
	PasswordHash *string   `gorm:"type:varchar(255)"`
	Role         string    `gorm:"type:varchar(20);not null;default:'guest'"`
	IsVerified   bool      `gorm:"not null;default:false"`
	GoogleSignIn bool      `gorm:"not null;default:false"`
	GoogleID     *string   `gorm:"type:varchar(255);uniqueIndex:idx_accounts_google_id"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	SessionTokens []SessionTokenModel `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// SessionTokenModel mirrors the 'session_tokens' table, one row per live bearer token.
type SessionTokenModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index:idx_session_tokens_account_id"`
	TokenHash string    `gorm:"type:char(64);not null;uniqueIndex:idx_session_tokens_token_hash"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (SessionTokenModel) TableName() string {
	return "session_tokens"
}

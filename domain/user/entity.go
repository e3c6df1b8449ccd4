// Package user defines the user entity and authentication value types.
package user

import (
	"time"
)

// User represents an authenticated account that owns tasks and tags.
type User struct {
	ID           string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"uniqueIndex;not null;size:254"`
	PasswordHash string `gorm:"not null;size:100"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// TokenPair holds an access/refresh token set issued at login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
	TokenType    string `json:"tokenType"`
}

// Claims is the identity extracted from a validated access token.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an account on the platform.
// Uniqueness: username, email and public key each carry a unique index;
// the auth layer and the delete cascade rely on them for point lookups.
// PasswordHash is a bcrypt hash (salt embedded), never plaintext.
// PrivateKeyEnc is encrypted client-side; the server cannot read it.
type User struct {
	ID            uuid.UUID `gorm:"type:char(36);primaryKey"`
	Username      string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Email         string    `gorm:"type:varchar(128);not null;uniqueIndex"`
	PasswordHash  string    `gorm:"type:varchar(255);not null"`
	PublicKey     string    `gorm:"type:varchar(768);not null;uniqueIndex"`
	PrivateKeyEnc []byte    `gorm:"type:blob"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (User) TableName() string { return "user" }

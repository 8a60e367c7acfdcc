package model

import (
	"time"

	"campus-im/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is an issued login session. A row past its expiry is logically
// dead: it stays persisted but must be rejected at use time. Hard deletion
// happens only through the user cascade.
type Session struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index"`
	Token     string    `gorm:"type:varchar(512);not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Session) TableName() string { return "session" }

// BeforeSave rejects any insert or update that would persist a session whose
// expiry is not strictly in the future.
func (s *Session) BeforeSave(tx *gorm.DB) error {
	if !s.ExpiresAt.After(time.Now()) {
		return apperrors.ErrSessionExpiry
	}
	return nil
}

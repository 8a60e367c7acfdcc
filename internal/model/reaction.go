package model

import (
	"time"

	"github.com/google/uuid"
)

// Reaction is an emoji attached to a message by a user. The composite key
// allows the same user to react to the same message with different emojis,
// but only once per emoji. Rows cascade with the message or the user.
type Reaction struct {
	MessageID uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);primaryKey"`
	Emoji     string    `gorm:"type:varchar(32);primaryKey"`
	CreatedAt time.Time

	Message *Message `gorm:"foreignKey:MessageID;constraint:OnDelete:RESTRICT" json:"-"`
	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Reaction) TableName() string { return "reaction" }

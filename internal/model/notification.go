package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification types.
const (
	NotificationMessage       = "message"
	NotificationFriendRequest = "friend_request"
	NotificationGroup         = "group"
)

// Notification is a per-user event record. Rows become garbage once read,
// or once the owning user is gone; the housekeeping job prunes both cases.
// UserID is deliberately not FK-severed on user deletion so the orphan
// condition stays detectable by the prune query.
type Notification struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index"`
	Type      string    `gorm:"type:varchar(32);not null"`
	Content   string    `gorm:"type:text"`
	IsRead    bool      `gorm:"not null;default:false;index"`
	CreatedAt time.Time `gorm:"index"`
}

func (Notification) TableName() string { return "notification" }

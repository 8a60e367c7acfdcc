package model

import (
	"time"

	"campus-im/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a direct or group message. Content arrives encrypted from the
// client and is stored as an opaque blob.
//
// Addressing: exactly one of RecipientID and GroupID is set at creation.
// SenderID/RecipientID are severed (set to NULL) when the referenced user is
// deleted; DeletedSender/DeletedRecipient keep the former id so the row
// stays attributable for audit. The row itself is never hard-deleted by a
// user cascade.
type Message struct {
	ID               uuid.UUID  `gorm:"type:char(36);primaryKey"`
	SenderID         *uuid.UUID `gorm:"type:char(36);index"`
	DeletedSender    *uuid.UUID `gorm:"type:char(36);index"`
	RecipientID      *uuid.UUID `gorm:"type:char(36);index"`
	DeletedRecipient *uuid.UUID `gorm:"type:char(36);index"`
	GroupID          *uuid.UUID `gorm:"type:char(36);index"`
	Content          []byte     `gorm:"type:blob;not null"`
	SentAt           time.Time  `gorm:"not null;index"`
	IsDeleted        bool       `gorm:"not null;default:false"`

	// GroupID carries no FK constraint: group history outlives the group.
	// The deleted_* columns hold ids of users that no longer exist, so
	// they carry none either.
	Sender    *User `gorm:"foreignKey:SenderID;constraint:OnDelete:RESTRICT" json:"-"`
	Recipient *User `gorm:"foreignKey:RecipientID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Message) TableName() string { return "message" }

// BeforeCreate enforces the addressing invariant at the store boundary:
// a message targets a recipient or a group, never both and never neither.
// The service layer validates the same thing earlier; this hook is the last
// line of defense and aborts the surrounding transaction.
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if (m.RecipientID == nil) == (m.GroupID == nil) {
		return apperrors.ErrMessageAddressing
	}
	return nil
}

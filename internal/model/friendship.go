package model

import (
	"time"

	"github.com/google/uuid"
)

// Friendship statuses.
const (
	FriendshipFriend  = "friend"
	FriendshipUnknown = "unknown"
	FriendshipPending = "pending"
)

// Friendship links an unordered pair of users.
// The pair is stored normalized (UserID1 < UserID2 by string order) so the
// composite primary key covers both directions with a single row.
// Rows for either side are hard-deleted when that user is deleted.
type Friendship struct {
	UserID1   uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID2   uuid.UUID `gorm:"type:char(36);primaryKey"`
	Status    string    `gorm:"type:varchar(16);not null;default:'pending';index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User1 *User `gorm:"foreignKey:UserID1;constraint:OnDelete:RESTRICT" json:"-"`
	User2 *User `gorm:"foreignKey:UserID2;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Friendship) TableName() string { return "friendship" }

// NormalizePair orders a user pair for storage. Both lookup and insert must
// go through this so (a,b) and (b,a) address the same row.
func NormalizePair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() > b.String() {
		return b, a
	}
	return a, b
}

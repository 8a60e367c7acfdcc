package model

import (
	"time"

	"github.com/google/uuid"
)

// Group member roles.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// GroupMember joins users to groups. Rows are hard-deleted together with
// either parent.
type GroupMember struct {
	GroupID  uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID   uuid.UUID `gorm:"type:char(36);primaryKey"`
	Role     string    `gorm:"type:varchar(16);not null;default:'member'"`
	JoinedAt time.Time

	Group *Group `gorm:"foreignKey:GroupID;constraint:OnDelete:RESTRICT" json:"-"`
	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (GroupMember) TableName() string { return "group_member" }

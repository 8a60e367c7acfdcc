package model

import (
	"time"

	"github.com/google/uuid"
)

// Group is a multi-user conversation.
// AdminID is nullable on purpose: deleting the admin user nulls it first,
// and the succession pass then either promotes a remaining member or deletes
// the group. Outside that window every existing group has exactly one admin.
type Group struct {
	ID        uuid.UUID  `gorm:"type:char(36);primaryKey"`
	Name      string     `gorm:"type:varchar(128);not null"`
	AdminID   *uuid.UUID `gorm:"type:char(36);index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Admin *User `gorm:"foreignKey:AdminID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Group) TableName() string { return "group_chat" }

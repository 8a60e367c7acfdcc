package model

import (
	"time"

	"github.com/google/uuid"
)

// ErrorLog is an append-only diagnostic record. It has no cascade
// relationships: rows survive the deletion of whatever entity they mention.
type ErrorLog struct {
	ID            uuid.UUID `gorm:"type:char(36);primaryKey"`
	Message       string    `gorm:"type:text;not null"`
	Operation     string    `gorm:"type:varchar(64);not null"`
	RelatedEntity string    `gorm:"type:varchar(128)"`
	StackTrace    string    `gorm:"type:text"`
	Extra         string    `gorm:"type:text"`
	CreatedAt     time.Time
}

func (ErrorLog) TableName() string { return "error_log" }

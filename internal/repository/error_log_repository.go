package repository

import (
	"campus-im/internal/model"

	"gorm.io/gorm"
)

// ErrorLogRepository appends diagnostic records. There is no update or
// delete path; the table is append-only.
type ErrorLogRepository struct {
	db *gorm.DB
}

func NewErrorLogRepository(db *gorm.DB) *ErrorLogRepository {
	return &ErrorLogRepository{db: db}
}

func (r *ErrorLogRepository) Append(e *model.ErrorLog) error {
	return r.db.Create(e).Error
}

func (r *ErrorLogRepository) ListRecent(limit int) ([]*model.ErrorLog, error) {
	var es []*model.ErrorLog
	err := r.db.Order("created_at DESC").Limit(limit).Find(&es).Error
	return es, err
}

package repository

import (
	"campus-im/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *model.Notification) error {
	return r.db.Create(n).Error
}

func (r *NotificationRepository) CreateBatch(ns []*model.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return r.db.Create(ns).Error
}

func (r *NotificationRepository) ListByUser(userID uuid.UUID, unreadOnly bool, limit int) ([]*model.Notification, error) {
	q := r.db.Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	var ns []*model.Notification
	err := q.Order("created_at DESC").Limit(limit).Find(&ns).Error
	return ns, err
}

// MarkRead settles one notification. The user filter keeps callers from
// settling someone else's rows; zero matches is a not-found, not a
// success.
func (r *NotificationRepository) MarkRead(id, userID uuid.UUID) error {
	res := r.db.Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteStale removes every notification that is already read or whose
// owner no longer exists, and reports how many rows went. This is the whole
// of a housekeeping run; repeating it with no new writes deletes nothing.
func (r *NotificationRepository) DeleteStale() (int64, error) {
	res := r.db.
		Where("is_read = ?", true).
		Or("user_id NOT IN (?)", r.db.Model(&model.User{}).Select("id")).
		Delete(&model.Notification{})
	return res.RowsAffected, res.Error
}

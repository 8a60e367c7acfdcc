package service

import (
	"campus-im/internal/model"
	"campus-im/internal/repository"
	"campus-im/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationService reads and settles a user's notifications. Creation
// happens inside the mutation that causes the event (see MessageService);
// deletion is the housekeeping job's business.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) ListNotifications(userID uuid.UUID, unreadOnly bool, limit int) ([]*model.Notification, error) {
	limit = clampPage(limit)
	ns, err := repository.NewNotificationRepository(s.db).ListByUser(userID, unreadOnly, limit)
	if err != nil {
		return nil, apperrors.FromStore(err, "list notifications")
	}
	return ns, nil
}

func (s *NotificationService) MarkRead(id, userID uuid.UUID) error {
	if err := repository.NewNotificationRepository(s.db).MarkRead(id, userID); err != nil {
		return apperrors.FromStore(err, "mark notification read")
	}
	return nil
}

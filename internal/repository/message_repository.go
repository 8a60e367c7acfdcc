package repository

import (
	"campus-im/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageRepository persists messages and the soft-delete markers the user
// cascade maintains.
type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(message *model.Message) error {
	return r.db.Create(message).Error
}

func (r *MessageRepository) GetByID(id uuid.UUID) (*model.Message, error) {
	var m model.Message
	if err := r.db.First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// MarkSenderDeleted stamps deleted_sender on every message the user sent.
// It matches by the live sender_id, so it must run while the user row and
// its references are still intact.
func (r *MessageRepository) MarkSenderDeleted(userID uuid.UUID) error {
	return r.db.Model(&model.Message{}).
		Where("sender_id = ?", userID).
		Update("deleted_sender", userID).Error
}

// MarkRecipientDeleted is the recipient-side counterpart of
// MarkSenderDeleted.
func (r *MessageRepository) MarkRecipientDeleted(userID uuid.UUID) error {
	return r.db.Model(&model.Message{}).
		Where("recipient_id = ?", userID).
		Update("deleted_recipient", userID).Error
}

// SeverUserLinks nulls the live references to a user once the markers are
// in place, standing in for an ON DELETE SET NULL policy.
func (r *MessageRepository) SeverUserLinks(userID uuid.UUID) error {
	if err := r.db.Model(&model.Message{}).
		Where("sender_id = ?", userID).
		Update("sender_id", nil).Error; err != nil {
		return err
	}
	return r.db.Model(&model.Message{}).
		Where("recipient_id = ?", userID).
		Update("recipient_id", nil).Error
}

// ListDirect returns the direct conversation between two users, newest
// first.
func (r *MessageRepository) ListDirect(a, b uuid.UUID, limit, offset int) ([]*model.Message, error) {
	var messages []*model.Message
	err := r.db.Where(
		"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
		a, b, b, a,
	).
		Where("group_id IS NULL").
		Order("sent_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	return messages, err
}

// ListGroup returns a group's messages, newest first.
func (r *MessageRepository) ListGroup(groupID uuid.UUID, limit, offset int) ([]*model.Message, error) {
	var messages []*model.Message
	err := r.db.Where("group_id = ?", groupID).
		Order("sent_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	return messages, err
}

// MarkDeleted flips the user-facing deletion flag; the row itself stays.
func (r *MessageRepository) MarkDeleted(id uuid.UUID) error {
	return r.db.Model(&model.Message{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

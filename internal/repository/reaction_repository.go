package repository

import (
	"campus-im/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) *ReactionRepository {
	return &ReactionRepository{db: db}
}

func (r *ReactionRepository) Create(reaction *model.Reaction) error {
	return r.db.Create(reaction).Error
}

func (r *ReactionRepository) ListForMessage(messageID uuid.UUID) ([]*model.Reaction, error) {
	var rs []*model.Reaction
	err := r.db.Where("message_id = ?", messageID).Find(&rs).Error
	return rs, err
}

func (r *ReactionRepository) Delete(messageID, userID uuid.UUID, emoji string) error {
	return r.db.Where("message_id = ? AND user_id = ? AND emoji = ?", messageID, userID, emoji).
		Delete(&model.Reaction{}).Error
}

// DeleteAllForUser removes a user's reactions everywhere; part of the user
// cascade.
func (r *ReactionRepository) DeleteAllForUser(userID uuid.UUID) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.Reaction{}).Error
}

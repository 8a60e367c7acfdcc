package repository

import (
	"campus-im/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FriendshipRepository persists the unordered user-pair relation. All pair
// arguments are normalized internally, callers may pass them either way
// around.
type FriendshipRepository struct {
	db *gorm.DB
}

func NewFriendshipRepository(db *gorm.DB) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

func (r *FriendshipRepository) Create(f *model.Friendship) error {
	f.UserID1, f.UserID2 = model.NormalizePair(f.UserID1, f.UserID2)
	return r.db.Create(f).Error
}

func (r *FriendshipRepository) GetPair(a, b uuid.UUID) (*model.Friendship, error) {
	a, b = model.NormalizePair(a, b)
	var f model.Friendship
	if err := r.db.First(&f, "user_id1 = ? AND user_id2 = ?", a, b).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FriendshipRepository) UpdateStatus(a, b uuid.UUID, status string) error {
	a, b = model.NormalizePair(a, b)
	return r.db.Model(&model.Friendship{}).
		Where("user_id1 = ? AND user_id2 = ?", a, b).
		Update("status", status).Error
}

func (r *FriendshipRepository) ListForUser(userID uuid.UUID) ([]*model.Friendship, error) {
	var fs []*model.Friendship
	err := r.db.Where("user_id1 = ? OR user_id2 = ?", userID, userID).Find(&fs).Error
	return fs, err
}

// DeleteAllForUser removes every row mentioning the user on either side.
func (r *FriendshipRepository) DeleteAllForUser(userID uuid.UUID) error {
	return r.db.Where("user_id1 = ? OR user_id2 = ?", userID, userID).
		Delete(&model.Friendship{}).Error
}

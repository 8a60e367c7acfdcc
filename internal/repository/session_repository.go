package repository

import (
	"campus-im/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(s *model.Session) error {
	return r.db.Create(s).Error
}

func (r *SessionRepository) GetByID(id uuid.UUID) (*model.Session, error) {
	var s model.Session
	if err := r.db.First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) GetByToken(token string) (*model.Session, error) {
	var s model.Session
	if err := r.db.First(&s, "token = ?", token).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes the full row back so the model's write-time expiry guard
// runs.
func (r *SessionRepository) Save(s *model.Session) error {
	return r.db.Save(s).Error
}

// DeleteAllForUser hard-deletes a user's sessions; part of the user
// cascade. Natural expiry never deletes rows.
func (r *SessionRepository) DeleteAllForUser(userID uuid.UUID) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.Session{}).Error
}

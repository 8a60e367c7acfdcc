package service

import (
	"campus-im/internal/model"
	"campus-im/internal/repository"
	"campus-im/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FriendshipService maintains the unordered user-pair relation.
type FriendshipService struct {
	db *gorm.DB
}

func NewFriendshipService(db *gorm.DB) *FriendshipService {
	return &FriendshipService{db: db}
}

// Request creates a pending friendship and notifies the target.
func (s *FriendshipService) Request(fromID, toID uuid.UUID) (*model.Friendship, error) {
	if fromID == toID {
		return nil, apperrors.Validation("cannot befriend yourself")
	}

	f := &model.Friendship{
		UserID1: fromID,
		UserID2: toID,
		Status:  model.FriendshipPending,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)
		from, err := users.GetByID(fromID)
		if err != nil {
			return apperrors.FromStore(err, "user not found")
		}
		if _, err := users.GetByID(toID); err != nil {
			return apperrors.FromStore(err, "user not found")
		}
		if err := repository.NewFriendshipRepository(tx).Create(f); err != nil {
			return apperrors.FromStore(err, "create friendship")
		}
		return repository.NewNotificationRepository(tx).Create(&model.Notification{
			ID:      uuid.New(),
			UserID:  toID,
			Type:    model.NotificationFriendRequest,
			Content: "friend request from " + from.Username,
		})
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Accept moves a pending friendship to friend status.
func (s *FriendshipService) Accept(a, b uuid.UUID) error {
	friendships := repository.NewFriendshipRepository(s.db)
	f, err := friendships.GetPair(a, b)
	if err != nil {
		return apperrors.FromStore(err, "friendship not found")
	}
	if f.Status != model.FriendshipPending {
		return apperrors.Validation("friendship is not pending")
	}
	if err := friendships.UpdateStatus(a, b, model.FriendshipFriend); err != nil {
		return apperrors.FromStore(err, "accept friendship")
	}
	return nil
}

func (s *FriendshipService) ListForUser(userID uuid.UUID) ([]*model.Friendship, error) {
	fs, err := repository.NewFriendshipRepository(s.db).ListForUser(userID)
	if err != nil {
		return nil, apperrors.FromStore(err, "list friendships")
	}
	return fs, nil
}

package service

import (
	"math/rand/v2"
	"time"

	"campus-im/internal/model"
	"campus-im/internal/repository"
	"campus-im/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroupService owns group lifecycle and membership. It maintains the same
// invariant the user cascade does: a group either has exactly one admin
// among its members or stops existing.
type GroupService struct {
	db         *gorm.DB
	pickMember func(n int) int
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{
		db:         db,
		pickMember: rand.IntN,
	}
}

// CreateGroup creates a group with its creator as admin and first member.
func (s *GroupService) CreateGroup(name string, adminID uuid.UUID) (*model.Group, error) {
	if name == "" {
		return nil, apperrors.Validation("group name is required")
	}

	group := &model.Group{
		ID:      uuid.New(),
		Name:    name,
		AdminID: &adminID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := repository.NewUserRepository(tx).GetByID(adminID); err != nil {
			return apperrors.FromStore(err, "admin user not found")
		}
		groups := repository.NewGroupRepository(tx)
		if err := groups.Create(group); err != nil {
			return apperrors.FromStore(err, "create group")
		}
		member := &model.GroupMember{
			GroupID:  group.ID,
			UserID:   adminID,
			Role:     model.RoleAdmin,
			JoinedAt: time.Now(),
		}
		if err := groups.AddMember(member); err != nil {
			return apperrors.FromStore(err, "add admin member")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

// AddMember joins a user to a group.
func (s *GroupService) AddMember(groupID, userID uuid.UUID) (*model.GroupMember, error) {
	member := &model.GroupMember{
		GroupID:  groupID,
		UserID:   userID,
		Role:     model.RoleMember,
		JoinedAt: time.Now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := repository.NewGroupRepository(tx).GetByID(groupID); err != nil {
			return apperrors.FromStore(err, "group not found")
		}
		if _, err := repository.NewUserRepository(tx).GetByID(userID); err != nil {
			return apperrors.FromStore(err, "user not found")
		}
		if err := repository.NewGroupRepository(tx).AddMember(member); err != nil {
			return apperrors.FromStore(err, "add member")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// RemoveGroupMember drops a membership. Removing the current admin runs the
// same succession rule as the user cascade: a remaining member is promoted
// at random, or the group is deleted when nobody is left.
func (s *GroupService) RemoveGroupMember(groupID, userID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		groups := repository.NewGroupRepository(tx)

		group, err := groups.GetByID(groupID)
		if err != nil {
			return apperrors.FromStore(err, "group not found")
		}
		if _, err := groups.GetMember(groupID, userID); err != nil {
			return apperrors.FromStore(err, "user is not a member of the group")
		}
		if err := groups.RemoveMember(groupID, userID); err != nil {
			return err
		}

		if group.AdminID == nil || *group.AdminID != userID {
			return nil
		}

		if err := groups.SetAdmin(groupID, nil); err != nil {
			return err
		}
		group.AdminID = nil
		runner := &cascadeRunner{tx: tx, pick: s.pickMember}
		return runner.settleGroupAdmin(group)
	})
}

func (s *GroupService) GetByID(id uuid.UUID) (*model.Group, error) {
	g, err := repository.NewGroupRepository(s.db).GetByID(id)
	if err != nil {
		return nil, apperrors.FromStore(err, "group not found")
	}
	return g, nil
}

func (s *GroupService) ListMembers(groupID uuid.UUID) ([]*model.GroupMember, error) {
	ms, err := repository.NewGroupRepository(s.db).ListMembers(groupID)
	if err != nil {
		return nil, apperrors.FromStore(err, "list members")
	}
	return ms, nil
}

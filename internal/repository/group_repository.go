package repository

import (
	"campus-im/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroupRepository persists groups and their membership rows.
type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) Create(g *model.Group) error {
	return r.db.Create(g).Error
}

func (r *GroupRepository) GetByID(id uuid.UUID) (*model.Group, error) {
	var g model.Group
	if err := r.db.First(&g, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GroupRepository) SetAdmin(groupID uuid.UUID, adminID *uuid.UUID) error {
	return r.db.Model(&model.Group{}).
		Where("id = ?", groupID).
		Update("admin_id", adminID).Error
}

// ClearAdminFor nulls admin_id on every group the user administers. This is
// the simulated ON DELETE SET NULL step of the user cascade.
func (r *GroupRepository) ClearAdminFor(userID uuid.UUID) error {
	return r.db.Model(&model.Group{}).
		Where("admin_id = ?", userID).
		Update("admin_id", nil).Error
}

// FindAdminless returns every group currently without an admin.
func (r *GroupRepository) FindAdminless() ([]*model.Group, error) {
	var gs []*model.Group
	err := r.db.Where("admin_id IS NULL").Find(&gs).Error
	return gs, err
}

// Delete removes the group and all of its membership rows.
func (r *GroupRepository) Delete(id uuid.UUID) error {
	if err := r.db.Where("group_id = ?", id).Delete(&model.GroupMember{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.Group{}, "id = ?", id).Error
}

func (r *GroupRepository) AddMember(m *model.GroupMember) error {
	return r.db.Create(m).Error
}

func (r *GroupRepository) GetMember(groupID, userID uuid.UUID) (*model.GroupMember, error) {
	var m model.GroupMember
	if err := r.db.First(&m, "group_id = ? AND user_id = ?", groupID, userID).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *GroupRepository) ListMembers(groupID uuid.UUID) ([]*model.GroupMember, error) {
	var ms []*model.GroupMember
	err := r.db.Where("group_id = ?", groupID).Find(&ms).Error
	return ms, err
}

func (r *GroupRepository) RemoveMember(groupID, userID uuid.UUID) error {
	return r.db.Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&model.GroupMember{}).Error
}

func (r *GroupRepository) SetMemberRole(groupID, userID uuid.UUID, role string) error {
	return r.db.Model(&model.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Update("role", role).Error
}

// RemoveMemberships drops every membership row of a user across groups.
func (r *GroupRepository) RemoveMemberships(userID uuid.UUID) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.GroupMember{}).Error
}

package service

import (
	"testing"
	"time"

	"campus-im/internal/model"
	"campus-im/internal/repository"
	"campus-im/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGroup(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	svc := NewGroupService(db)

	g, err := svc.CreateGroup("study group", alice.ID)
	require.NoError(t, err)
	require.NotNil(t, g.AdminID)
	assert.Equal(t, alice.ID, *g.AdminID)

	member, err := repository.NewGroupRepository(db).GetMember(g.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, member.Role)

	_, err = svc.CreateGroup("", alice.ID)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))

	_, err = svc.CreateGroup("ghost group", uuid.New())
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestAddMember(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	svc := NewGroupService(db)

	g, err := svc.CreateGroup("study group", alice.ID)
	require.NoError(t, err)

	m, err := svc.AddMember(g.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleMember, m.Role)

	// Joining twice violates the membership key.
	_, err = svc.AddMember(g.ID, bob.ID)
	assert.Equal(t, apperrors.CodeConstraint, apperrors.CodeOf(err))

	_, err = svc.AddMember(uuid.New(), bob.ID)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

// The schema itself rejects membership rows pointing at missing parents,
// so a write racing a deletion cannot slip an orphan past the service
// checks.
func TestAddMemberRequiresExistingParents(t *testing.T) {
	db := setupDB(t)

	err := repository.NewGroupRepository(db).AddMember(&model.GroupMember{
		GroupID:  uuid.New(),
		UserID:   uuid.New(),
		Role:     model.RoleMember,
		JoinedAt: time.Now(),
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConstraint,
		apperrors.CodeOf(apperrors.FromStore(err, "add member")))
	assert.Zero(t, countRows(t, db, &model.GroupMember{}, ""))
}

func TestRemoveGroupMember(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	g := createGroupWith(t, db, alice, bob)
	svc := NewGroupService(db)

	require.NoError(t, svc.RemoveGroupMember(g.ID, bob.ID))

	// A non-admin leaving does not touch the admin.
	got, err := svc.GetByID(g.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AdminID)
	assert.Equal(t, alice.ID, *got.AdminID)

	err = svc.RemoveGroupMember(g.ID, bob.ID)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

// Removing the admin runs the same succession rule as the user cascade.
func TestRemoveGroupMemberAdminSuccession(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	g := createGroupWith(t, db, alice, bob)
	svc := NewGroupService(db)

	require.NoError(t, svc.RemoveGroupMember(g.ID, alice.ID))

	got, err := svc.GetByID(g.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AdminID)
	assert.Equal(t, bob.ID, *got.AdminID)

	member, err := repository.NewGroupRepository(db).GetMember(g.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, member.Role)
}

func TestRemoveLastMemberDeletesGroup(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	g := createGroupWith(t, db, alice)

	require.NoError(t, NewGroupService(db).RemoveGroupMember(g.ID, alice.ID))

	assert.Zero(t, countRows(t, db, &model.Group{}, "id = ?", g.ID))
	assert.Zero(t, countRows(t, db, &model.GroupMember{}, "group_id = ?", g.ID))
}

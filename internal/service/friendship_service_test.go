package service

import (
	"testing"

	"campus-im/internal/model"
	"campus-im/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendshipRequestAndAccept(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	svc := NewFriendshipService(db)

	f, err := svc.Request(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, model.FriendshipPending, f.Status)

	// The target gets a notification.
	assert.EqualValues(t, 1, countRows(t, db, &model.Notification{},
		"user_id = ? AND type = ?", bob.ID, model.NotificationFriendRequest))

	// Accept works with the pair in either order.
	require.NoError(t, svc.Accept(bob.ID, alice.ID))

	fs, err := svc.ListForUser(alice.ID)
	require.NoError(t, err)
	require.Len(t, fs, 1)
	assert.Equal(t, model.FriendshipFriend, fs[0].Status)

	// Accepting again is rejected, the pair is no longer pending.
	err = svc.Accept(alice.ID, bob.ID)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}

func TestFriendshipRequestValidation(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	svc := NewFriendshipService(db)

	_, err := svc.Request(alice.ID, alice.ID)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))

	// One row per unordered pair, whichever side asks first.
	_, err = svc.Request(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.Request(bob.ID, alice.ID)
	assert.Equal(t, apperrors.CodeConstraint, apperrors.CodeOf(err))
}

package service

import (
	"testing"

	"campus-im/internal/model"
	"campus-im/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListNotifications(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	svc := NewNotificationService(db)

	notify(t, db, alice.ID, true)
	unread := notify(t, db, alice.ID, false)
	notify(t, db, bob.ID, false)

	ns, err := svc.ListNotifications(alice.ID, false, 50)
	require.NoError(t, err)
	assert.Len(t, ns, 2)

	ns, err = svc.ListNotifications(alice.ID, true, 50)
	require.NoError(t, err)
	require.Len(t, ns, 1)
	assert.Equal(t, unread, ns[0].ID)
}

func TestMarkRead(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	svc := NewNotificationService(db)

	id := notify(t, db, alice.ID, false)

	// The wrong user cannot settle someone else's notification, and the
	// attempt is reported as not found rather than silently succeeding.
	err := svc.MarkRead(id, bob.ID)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
	assert.EqualValues(t, 1, countRows(t, db, &model.Notification{},
		"id = ? AND is_read = ?", id, false))

	err = svc.MarkRead(uuid.New(), alice.ID)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))

	require.NoError(t, svc.MarkRead(id, alice.ID))
	assert.EqualValues(t, 1, countRows(t, db, &model.Notification{},
		"id = ? AND is_read = ?", id, true))
}

package service

import (
	"sync"
	"testing"

	"campus-im/internal/model"
	"campus-im/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent map[uuid.UUID]int
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{sent: make(map[uuid.UUID]int)}
}

func (n *recordingNotifier) SendToUser(userID uuid.UUID, payload []byte) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent[userID]++
}

// A message targets a recipient or a group, never both and never neither.
func TestSendMessageAddressing(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	g := createGroupWith(t, db, alice, bob)
	svc := NewMessageService(db, nil)

	_, err := svc.SendMessage(alice.ID, nil, nil, []byte("x"))
	assert.ErrorIs(t, err, apperrors.ErrMessageAddressing)

	_, err = svc.SendMessage(alice.ID, &bob.ID, &g.ID, []byte("x"))
	assert.ErrorIs(t, err, apperrors.ErrMessageAddressing)

	assert.Zero(t, countRows(t, db, &model.Message{}, ""))
}

func TestSendDirectMessage(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	notifier := newRecordingNotifier()
	svc := NewMessageService(db, notifier)

	m, err := svc.SendMessage(alice.ID, &bob.ID, nil, []byte("ciphertext"))
	require.NoError(t, err)
	require.NotNil(t, m.SenderID)
	assert.Equal(t, alice.ID, *m.SenderID)

	// One notification row for the recipient, none for the sender.
	assert.EqualValues(t, 1, countRows(t, db, &model.Notification{},
		"user_id = ? AND type = ?", bob.ID, model.NotificationMessage))
	assert.Zero(t, countRows(t, db, &model.Notification{}, "user_id = ?", alice.ID))

	assert.Equal(t, 1, notifier.sent[bob.ID])
	assert.Zero(t, notifier.sent[alice.ID])
}

func TestSendMessageValidation(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	svc := NewMessageService(db, nil)

	_, err := svc.SendMessage(alice.ID, &bob.ID, nil, nil)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))

	_, err = svc.SendMessage(alice.ID, &alice.ID, nil, []byte("x"))
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))

	missing := uuid.New()
	_, err = svc.SendMessage(alice.ID, &missing, nil, []byte("x"))
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestSendGroupMessageNotifiesMembers(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	g := createGroupWith(t, db, alice, bob, carol)
	notifier := newRecordingNotifier()
	svc := NewMessageService(db, notifier)

	_, err := svc.SendMessage(alice.ID, nil, &g.ID, []byte("hello group"))
	require.NoError(t, err)

	assert.EqualValues(t, 1, countRows(t, db, &model.Notification{}, "user_id = ?", bob.ID))
	assert.EqualValues(t, 1, countRows(t, db, &model.Notification{}, "user_id = ?", carol.ID))
	assert.Zero(t, countRows(t, db, &model.Notification{}, "user_id = ?", alice.ID))
	assert.Equal(t, 1, notifier.sent[bob.ID])
	assert.Equal(t, 1, notifier.sent[carol.ID])
}

func TestSendGroupMessageRequiresMembership(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	mallory := createUser(t, db, "mallory")
	g := createGroupWith(t, db, alice)

	_, err := NewMessageService(db, nil).SendMessage(mallory.ID, nil, &g.ID, []byte("x"))
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
	assert.Zero(t, countRows(t, db, &model.Message{}, ""))
}

func TestReactToMessage(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	m := sendDirect(t, db, alice, bob, "hi")
	svc := NewMessageService(db, nil)

	_, err := svc.ReactToMessage(m.ID, bob.ID, "👍")
	require.NoError(t, err)

	// Same emoji twice is a constraint violation; a different emoji is fine.
	_, err = svc.ReactToMessage(m.ID, bob.ID, "👍")
	assert.Equal(t, apperrors.CodeConstraint, apperrors.CodeOf(err))

	_, err = svc.ReactToMessage(m.ID, bob.ID, "🎉")
	require.NoError(t, err)

	_, err = svc.ReactToMessage(uuid.New(), bob.ID, "👍")
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestDeleteMessageSenderOnly(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	m := sendDirect(t, db, alice, bob, "hi")
	svc := NewMessageService(db, nil)

	err := svc.DeleteMessage(m.ID, bob.ID)
	assert.Equal(t, apperrors.CodePermissionDenied, apperrors.CodeOf(err))

	require.NoError(t, svc.DeleteMessage(m.ID, alice.ID))

	// Soft delete: the row is still there, flagged.
	assert.EqualValues(t, 1, countRows(t, db, &model.Message{},
		"id = ? AND is_deleted = ?", m.ID, true))
}

func TestListDirect(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	sendDirect(t, db, alice, bob, "one")
	sendDirect(t, db, bob, alice, "two")
	sendDirect(t, db, alice, carol, "other thread")

	ms, err := NewMessageService(db, nil).ListDirect(alice.ID, bob.ID, 50, 0)
	require.NoError(t, err)
	assert.Len(t, ms, 2)
}

func TestListGroupRequiresMembership(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	mallory := createUser(t, db, "mallory")
	g := createGroupWith(t, db, alice)

	svc := NewMessageService(db, nil)
	_, err := svc.SendMessage(alice.ID, nil, &g.ID, []byte("x"))
	require.NoError(t, err)

	ms, err := svc.ListGroup(g.ID, alice.ID, 50, 0)
	require.NoError(t, err)
	assert.Len(t, ms, 1)

	_, err = svc.ListGroup(g.ID, mallory.ID, 50, 0)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

package service

import (
	"time"

	"campus-im/internal/model"
	"campus-im/internal/repository"
	"campus-im/pkg/apperrors"
	"campus-im/pkg/jwt"
	"campus-im/pkg/password"
	"campus-im/pkg/redis"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionService issues and renews login sessions. Every write goes through
// the future-expiry guard; an expired row is never created or refreshed
// into existence.
type SessionService struct {
	db     *gorm.DB
	jwtSvc *jwt.JWTService
}

func NewSessionService(db *gorm.DB, jwtSvc *jwt.JWTService) *SessionService {
	return &SessionService{db: db, jwtSvc: jwtSvc}
}

// Login verifies credentials and creates a session with a fresh token.
func (s *SessionService) Login(identifier, plainPassword string) (*model.User, *model.Session, error) {
	if identifier == "" || plainPassword == "" {
		return nil, nil, apperrors.Validation("identifier and password are required")
	}

	u, err := repository.NewUserRepository(s.db).GetByUsernameOrEmail(identifier)
	if err != nil {
		return nil, nil, apperrors.ErrBadCredentials
	}
	if !password.Verify(plainPassword, u.PasswordHash) {
		return nil, nil, apperrors.ErrBadCredentials
	}

	token, err := s.jwtSvc.GenerateToken(u.ID.String(), map[string]interface{}{"username": u.Username})
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.CodeInternal, "issue token", err)
	}

	sess, err := s.CreateSession(u.ID, token, time.Now().Add(s.jwtSvc.ExpireAfter()))
	if err != nil {
		return nil, nil, err
	}

	// Presence is best-effort; a dead redis must not fail a login.
	_ = redis.SetUserPresence(u.ID, u.Username, "online")

	return u, sess, nil
}

// CreateSession persists a session row. The expiry must be strictly in the
// future; the model hook enforces the same rule for any other write path.
func (s *SessionService) CreateSession(userID uuid.UUID, token string, expiresAt time.Time) (*model.Session, error) {
	if !expiresAt.After(time.Now()) {
		return nil, apperrors.ErrSessionExpiry
	}

	sess := &model.Session{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	if err := repository.NewSessionRepository(s.db).Create(sess); err != nil {
		return nil, apperrors.FromStore(err, "create session")
	}
	return sess, nil
}

// VerifySession checks that a bearer token is still backed by a live
// session row. The row must exist (the user cascade hard-deletes it) and
// its expiry must still lie in the future; an expired row is rejected but
// never deleted here.
func (s *SessionService) VerifySession(token string) error {
	sess, err := repository.NewSessionRepository(s.db).GetByToken(token)
	if err != nil {
		return apperrors.Unauthorized("session not found")
	}
	if !sess.ExpiresAt.After(time.Now()) {
		return apperrors.Unauthorized("session expired")
	}
	return nil
}

// RenewSession extends a session's expiry, subject to the same guard. Only
// the session's own user may renew it.
func (s *SessionService) RenewSession(id, userID uuid.UUID, expiresAt time.Time) (*model.Session, error) {
	if !expiresAt.After(time.Now()) {
		return nil, apperrors.ErrSessionExpiry
	}

	sessions := repository.NewSessionRepository(s.db)
	sess, err := sessions.GetByID(id)
	if err != nil {
		return nil, apperrors.FromStore(err, "session not found")
	}
	if sess.UserID != userID {
		return nil, apperrors.Forbidden("session belongs to another user")
	}

	sess.ExpiresAt = expiresAt
	if err := sessions.Save(sess); err != nil {
		return nil, apperrors.FromStore(err, "renew session")
	}
	return sess, nil
}

// Logout only drops presence. Session rows persist until the user cascade
// removes them; expiry is enforced at use time.
func (s *SessionService) Logout(userID uuid.UUID) {
	_ = redis.RemoveUserPresence(userID)
}

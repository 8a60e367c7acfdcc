package service

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"campus-im/internal/model"
	"campus-im/internal/repository"
	"campus-im/pkg/apperrors"
	"campus-im/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService owns account creation and the deletion cascade.
type UserService struct {
	db *gorm.DB

	// pickMember draws the successor index during admin reassignment.
	// Defaults to a uniform draw; tests swap in a seeded source.
	pickMember func(n int) int
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		db:         db,
		pickMember: rand.IntN,
	}
}

// CreateUser registers an account. The public key must be unique platform
// wide; the encrypted private key blob is stored opaquely.
func (s *UserService) CreateUser(username, email, plainPassword, publicKey string, privateKeyEnc []byte) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || plainPassword == "" {
		return nil, apperrors.Validation("username and password are required")
	}
	if email == "" || publicKey == "" {
		return nil, apperrors.Validation("email and public key are required")
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "hash password", err)
	}

	user := &model.User{
		ID:            uuid.New(),
		Username:      username,
		Email:         email,
		PasswordHash:  hash,
		PublicKey:     publicKey,
		PrivateKeyEnc: privateKeyEnc,
	}
	if err := repository.NewUserRepository(s.db).Create(user); err != nil {
		return nil, apperrors.FromStore(err, "create user")
	}
	return user, nil
}

func (s *UserService) GetByID(id uuid.UUID) (*model.User, error) {
	u, err := repository.NewUserRepository(s.db).GetByID(id)
	if err != nil {
		return nil, apperrors.FromStore(err, "user not found")
	}
	return u, nil
}

// DeleteUser removes an account and everything hanging off it in one
// transaction: either all cascade effects apply, or none do. See cascade.go
// for the phase ordering.
func (s *UserService) DeleteUser(id uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)
		if _, err := users.GetByID(id); err != nil {
			return apperrors.FromStore(err, "user not found")
		}

		runner := &cascadeRunner{tx: tx, pick: s.pickMember}

		if err := runner.beforeUserDelete(id); err != nil {
			return err
		}
		if err := users.Delete(id); err != nil {
			return err
		}
		return runner.afterUserDelete()
	})
	if err == nil {
		return nil
	}

	if apperrors.CodeOf(err) == apperrors.CodeNotFound {
		return err
	}

	// The transaction rolled back; record the failure outside it.
	s.recordFailure("user.delete", id, err)
	return apperrors.CascadeFailure("delete user", err)
}

func (s *UserService) recordFailure(operation string, entityID uuid.UUID, cause error) {
	_ = repository.NewErrorLogRepository(s.db).Append(&model.ErrorLog{
		ID:            uuid.New(),
		Message:       cause.Error(),
		Operation:     operation,
		RelatedEntity: fmt.Sprintf("user:%s", entityID),
		CreatedAt:     time.Now(),
	})
}

package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeValidation, CodeOf(Validation("bad input")))
	assert.Equal(t, CodeCascadeFailure, CodeOf(CascadeFailure("delete user", errors.New("boom"))))
	assert.Equal(t, CodeUnknown, CodeOf(errors.New("plain")))
	assert.Equal(t, CodeUnknown, CodeOf(nil))
}

func TestFromStore(t *testing.T) {
	assert.NoError(t, FromStore(nil, "x"))

	assert.Equal(t, CodeNotFound, CodeOf(FromStore(gorm.ErrRecordNotFound, "x")))
	assert.Equal(t, CodeConstraint, CodeOf(FromStore(gorm.ErrDuplicatedKey, "x")))
	assert.Equal(t, CodeConstraint, CodeOf(FromStore(gorm.ErrForeignKeyViolated, "x")))
	assert.Equal(t, CodeInternal, CodeOf(FromStore(errors.New("disk on fire"), "x")))

	// Already-typed errors pass through untouched.
	err := Forbidden("nope")
	assert.Same(t, err, FromStore(err, "x"))
}

func TestUnwrap(t *testing.T) {
	err := FromStore(gorm.ErrRecordNotFound, "user not found")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.EqualError(t, err, "user not found: record not found")
}


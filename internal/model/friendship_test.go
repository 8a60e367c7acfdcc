package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePair(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	b := uuid.MustParse("00000000-0000-0000-0000-000000000002")

	x, y := NormalizePair(a, b)
	assert.Equal(t, a, x)
	assert.Equal(t, b, y)

	// Both orders address the same row.
	x, y = NormalizePair(b, a)
	assert.Equal(t, a, x)
	assert.Equal(t, b, y)
}

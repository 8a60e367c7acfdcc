package jwt

import (
	"testing"
	"time"

	"campus-im/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     "test-secret",
		ExpireTime: time.Hour,
		Issuer:     "campus-im-test",
	})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateToken("user-1", map[string]interface{}{"username": "alice"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "campus-im-test", claims.Issuer)
	assert.Equal(t, "alice", claims.Data["username"])
}

func TestTokensAreUnique(t *testing.T) {
	svc := newTestService()

	a, err := svc.GenerateToken("user-1", nil)
	require.NoError(t, err)
	b, err := svc.GenerateToken("user-1", nil)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestValidateRejectsTampering(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateToken("user-1", nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.Error(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:     "different-secret",
		ExpireTime: time.Hour,
		Issuer:     "campus-im-test",
	})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)

	_, err = svc.ValidateToken("")
	assert.Error(t, err)
}

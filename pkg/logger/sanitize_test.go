package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSanitizeFields(t *testing.T) {
	fields := sanitizeFields([]zap.Field{
		zap.String("username", "alice"),
		zap.String("password", "hunter2"),
		zap.String("user_password", "hunter2"),
		zap.String("refreshToken", "abc"),
		zap.String("private_key", "pem"),
		zap.String("Authorization", "Bearer abc"),
	})

	assert.Equal(t, "alice", fields[0].String)
	for _, f := range fields[1:] {
		assert.Equal(t, redacted, f.String, f.Key)
	}
}

func TestIsSensitiveKey(t *testing.T) {
	assert.False(t, isSensitiveKey("email"))
	assert.False(t, isSensitiveKey("public_key"))
	assert.True(t, isSensitiveKey("PrivateKeyEnc"))
	assert.True(t, isSensitiveKey("jwt_secret"))
}

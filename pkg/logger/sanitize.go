package logger

import (
	"strings"

	"go.uber.org/zap"
)

const redacted = "[REDACTED]"

// Field names whose values must never be logged verbatim. Matching is by
// substring on the lowercased key, so "user_password" and "refreshToken"
// are both caught.
var sensitiveKeys = []string{
	"password",
	"token",
	"secret",
	"private_key",
	"privatekey",
	"authorization",
}

func isSensitiveKey(key string) bool {
	k := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(k, s) {
			return true
		}
	}
	return false
}

func sanitizeFields(fields []zap.Field) []zap.Field {
	for i, f := range fields {
		if isSensitiveKey(f.Key) {
			fields[i] = zap.String(f.Key, redacted)
		}
	}
	return fields
}

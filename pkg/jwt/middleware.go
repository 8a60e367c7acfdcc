package jwt

import (
	"strings"

	"campus-im/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextUserIDKey is the gin.Context key holding the caller's user id.
	ContextUserIDKey = "user_id"
	// ContextClaimsKey is the gin.Context key holding the parsed claims.
	ContextClaimsKey = "jwt_claims"
)

// SessionVerifier checks that a token is still backed by a live session
// row. A valid signature alone is not enough: the user cascade removes
// session rows, and renewal moves their expiry, neither of which the JWT
// can reflect.
type SessionVerifier interface {
	VerifySession(token string) error
}

// AuthMiddleware extracts "Authorization: Bearer <token>", verifies the
// signature and the backing session, and stores the caller identity in the
// gin.Context.
func (s *JWTService) AuthMiddleware(sessions SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing Authorization header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c, "Authorization header must be: Bearer <token>")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			response.Unauthorized(c, "empty token")
			c.Abort()
			return
		}

		claims, err := s.ValidateToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		if sessions != nil {
			if err := sessions.VerifySession(tokenString); err != nil {
				response.Unauthorized(c, "session expired or revoked")
				c.Abort()
				return
			}
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			response.Unauthorized(c, "invalid token subject")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// GetUserID returns the authenticated user id, uuid.Nil when absent.
func GetUserID(c *gin.Context) uuid.UUID {
	if v, exists := c.Get(ContextUserIDKey); exists {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// GetClaims returns the parsed claims, nil when absent.
func GetClaims(c *gin.Context) *CustomClaims {
	if v, exists := c.Get(ContextClaimsKey); exists {
		if claims, ok := v.(*CustomClaims); ok {
			return claims
		}
	}
	return nil
}

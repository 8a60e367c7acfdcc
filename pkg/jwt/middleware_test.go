package jwt

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	err error
}

func (s stubVerifier) VerifySession(string) error { return s.err }

func authRouter(svc *JWTService, sessions SessionVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", svc.AuthMiddleware(sessions), func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c).String())
	})
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()
	token, err := svc.GenerateToken(userID.String(), nil)
	require.NoError(t, err)

	r := authRouter(svc, stubVerifier{})

	w := doGet(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Token "+token).Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer not-a-token").Code)
}

// A valid signature is not enough: the backing session row must still be
// live.
func TestAuthMiddlewareChecksSession(t *testing.T) {
	svc := newTestService()
	token, err := svc.GenerateToken(uuid.NewString(), nil)
	require.NoError(t, err)

	r := authRouter(svc, stubVerifier{err: errors.New("session expired")})
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer "+token).Code)
}

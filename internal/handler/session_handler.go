package handler

import (
	"time"

	"campus-im/internal/service"
	"campus-im/pkg/jwt"
	"campus-im/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SessionHandler struct {
	sessions *service.SessionService
}

func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Renew extends a session's expiry; the new expiry must lie in the future.
func (h *SessionHandler) Renew(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		response.BadRequest(c, "invalid session id")
		return
	}
	type req struct {
		ExpiresAt time.Time `json:"expires_at" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	sess, err := h.sessions.RenewSession(sessionID, jwt.GetUserID(c), r.ExpiresAt)
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Success(c, gin.H{
		"session_id": sess.ID,
		"expires_at": sess.ExpiresAt.Format(time.RFC3339),
	})
}

package handler

import (
	"time"

	"campus-im/internal/service"
	"campus-im/pkg/jwt"
	"campus-im/pkg/redis"
	"campus-im/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users    *service.UserService
	sessions *service.SessionService
}

func NewUserHandler(users *service.UserService, sessions *service.SessionService) *UserHandler {
	return &UserHandler{users: users, sessions: sessions}
}

// Register creates an account.
func (h *UserHandler) Register(c *gin.Context) {
	type req struct {
		Username      string `json:"username" binding:"required"`
		Email         string `json:"email" binding:"required"`
		Password      string `json:"password" binding:"required"`
		PublicKey     string `json:"public_key" binding:"required"`
		PrivateKeyEnc []byte `json:"private_key_enc"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.users.CreateUser(r.Username, r.Email, r.Password, r.PublicKey, r.PrivateKeyEnc)
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Created(c, &response.RegisterResponse{
		User: response.FilterUserInfo(user),
	})
}

// Login verifies credentials and opens a session.
func (h *UserHandler) Login(c *gin.Context) {
	type req struct {
		UsernameOrEmail string `json:"usernameOrEmail" binding:"required"`
		Password        string `json:"password" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, sess, err := h.sessions.Login(r.UsernameOrEmail, r.Password)
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Success(c, &response.LoginResponse{
		User:        response.FilterUserInfo(user),
		AccessToken: sess.Token,
		SessionID:   sess.ID,
		ExpiresAt:   sess.ExpiresAt.Format(time.RFC3339),
	})
}

// Logout drops presence for the caller.
func (h *UserHandler) Logout(c *gin.Context) {
	h.sessions.Logout(jwt.GetUserID(c))
	response.SuccessWithMessage(c, "logged out", nil)
}

// GetProfile returns the caller's account.
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.users.GetByID(jwt.GetUserID(c))
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Success(c, response.FilterUserInfo(user))
}

// DeleteAccount removes the caller's account with all cascade effects.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	if err := h.users.DeleteUser(jwt.GetUserID(c)); err != nil {
		response.Err(c, err)
		return
	}
	response.SuccessWithMessage(c, "account deleted", nil)
}

// GetOnlineUsers lists users with a live presence record.
func (h *UserHandler) GetOnlineUsers(c *gin.Context) {
	presences, err := redis.GetOnlineUsers()
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Success(c, gin.H{
		"online_count": len(presences),
		"users":        presences,
	})
}

package handler

import (
	"campus-im/internal/service"
	"campus-im/pkg/jwt"
	"campus-im/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FriendshipHandler struct {
	friendships *service.FriendshipService
}

func NewFriendshipHandler(friendships *service.FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{friendships: friendships}
}

// Request sends a friend request from the caller.
func (h *FriendshipHandler) Request(c *gin.Context) {
	type req struct {
		UserID uuid.UUID `json:"user_id" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	f, err := h.friendships.Request(jwt.GetUserID(c), r.UserID)
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Created(c, f)
}

// Accept confirms a pending request involving the caller.
func (h *FriendshipHandler) Accept(c *gin.Context) {
	otherID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	if err := h.friendships.Accept(jwt.GetUserID(c), otherID); err != nil {
		response.Err(c, err)
		return
	}
	response.SuccessWithMessage(c, "friend request accepted", nil)
}

// List returns the caller's friendships.
func (h *FriendshipHandler) List(c *gin.Context) {
	fs, err := h.friendships.ListForUser(jwt.GetUserID(c))
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Success(c, fs)
}

package handler

import (
	"campus-im/internal/service"
	"campus-im/pkg/jwt"
	"campus-im/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MessageHandler struct {
	messages *service.MessageService
}

func NewMessageHandler(messages *service.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// Send stores a message for exactly one of a recipient or a group.
func (h *MessageHandler) Send(c *gin.Context) {
	type req struct {
		RecipientID *uuid.UUID `json:"recipient_id"`
		GroupID     *uuid.UUID `json:"group_id"`
		Content     []byte     `json:"content" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	message, err := h.messages.SendMessage(jwt.GetUserID(c), r.RecipientID, r.GroupID, r.Content)
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Created(c, response.FilterMessageInfo(message))
}

// ListDirect returns the caller's direct history with another user.
func (h *MessageHandler) ListDirect(c *gin.Context) {
	otherID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	limit, offset := pagination(c)
	ms, err := h.messages.ListDirect(jwt.GetUserID(c), otherID, limit, offset)
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Success(c, response.FilterMessageList(ms))
}

// ListGroup returns a group's history for a member.
func (h *MessageHandler) ListGroup(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("group_id"))
	if err != nil {
		response.BadRequest(c, "invalid group id")
		return
	}
	limit, offset := pagination(c)
	ms, err := h.messages.ListGroup(groupID, jwt.GetUserID(c), limit, offset)
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Success(c, response.FilterMessageList(ms))
}

// React attaches an emoji to a message.
func (h *MessageHandler) React(c *gin.Context) {
	messageID, err := uuid.Parse(c.Param("message_id"))
	if err != nil {
		response.BadRequest(c, "invalid message id")
		return
	}
	type req struct {
		Emoji string `json:"emoji" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	reaction, err := h.messages.ReactToMessage(messageID, jwt.GetUserID(c), r.Emoji)
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Created(c, reaction)
}

// Delete flags the caller's own message as deleted.
func (h *MessageHandler) Delete(c *gin.Context) {
	messageID, err := uuid.Parse(c.Param("message_id"))
	if err != nil {
		response.BadRequest(c, "invalid message id")
		return
	}
	if err := h.messages.DeleteMessage(messageID, jwt.GetUserID(c)); err != nil {
		response.Err(c, err)
		return
	}
	response.SuccessWithMessage(c, "message deleted", nil)
}

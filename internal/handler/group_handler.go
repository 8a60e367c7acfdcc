package handler

import (
	"campus-im/internal/service"
	"campus-im/pkg/jwt"
	"campus-im/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GroupHandler struct {
	groups *service.GroupService
}

func NewGroupHandler(groups *service.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// Create makes the caller the admin of a new group.
func (h *GroupHandler) Create(c *gin.Context) {
	type req struct {
		Name string `json:"name" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	group, err := h.groups.CreateGroup(r.Name, jwt.GetUserID(c))
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Created(c, group)
}

// AddMember joins a user to a group.
func (h *GroupHandler) AddMember(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("group_id"))
	if err != nil {
		response.BadRequest(c, "invalid group id")
		return
	}
	type req struct {
		UserID uuid.UUID `json:"user_id" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	member, err := h.groups.AddMember(groupID, r.UserID)
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Created(c, member)
}

// RemoveMember drops a membership, with admin succession when needed.
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("group_id"))
	if err != nil {
		response.BadRequest(c, "invalid group id")
		return
	}
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	if err := h.groups.RemoveGroupMember(groupID, userID); err != nil {
		response.Err(c, err)
		return
	}
	response.SuccessWithMessage(c, "member removed", nil)
}

// ListMembers returns a group's membership.
func (h *GroupHandler) ListMembers(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("group_id"))
	if err != nil {
		response.BadRequest(c, "invalid group id")
		return
	}
	members, err := h.groups.ListMembers(groupID)
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Success(c, members)
}

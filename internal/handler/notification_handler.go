package handler

import (
	"strconv"

	"campus-im/internal/service"
	"campus-im/pkg/jwt"
	"campus-im/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	notifications *service.NotificationService
}

func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List returns the caller's notifications, optionally unread only.
func (h *NotificationHandler) List(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"
	limit, _ := pagination(c)
	ns, err := h.notifications.ListNotifications(jwt.GetUserID(c), unreadOnly, limit)
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Success(c, ns)
}

// MarkRead settles one notification.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("notification_id"))
	if err != nil {
		response.BadRequest(c, "invalid notification id")
		return
	}
	if err := h.notifications.MarkRead(id, jwt.GetUserID(c)); err != nil {
		response.Err(c, err)
		return
	}
	response.SuccessWithMessage(c, "notification read", nil)
}

// pagination reads limit/offset query parameters with sane fallbacks.
func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

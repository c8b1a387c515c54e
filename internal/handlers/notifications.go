package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"appointments-server/internal/middleware"
	"appointments-server/internal/notify"
	"appointments-server/internal/utils"
)

// notificationLimit is how many of the latest notifications are listed.
const notificationLimit = 20

// NotificationHandler handles a provider's booking notifications.
type NotificationHandler struct {
	Notifications notify.Store
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifications notify.Store) *NotificationHandler {
	return &NotificationHandler{Notifications: notifications}
}

// GetNotifications returns the latest notifications addressed to the requester.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	notifications, err := h.Notifications.ListForUser(c.Request.Context(), userID, notificationLimit)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch notifications")
		return
	}

	utils.Success(c, "Notifications retrieved successfully", notifications)
}

// MarkNotificationAsRead marks one of the requester's notifications as read.
func (h *NotificationHandler) MarkNotificationAsRead(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	ctx := c.Request.Context()

	notification, err := h.Notifications.FindByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, notify.ErrNotFound) {
			utils.NotFound(c, "Notification not found")
		} else {
			utils.InternalServerError(c, "Failed to fetch notification")
		}
		return
	}
	// Only the recipient can mark a notification as read
	if notification.User != userID {
		utils.Unauthorized(c, "You are not authorized to update this notification")
		return
	}

	if notification.Read {
		utils.Success(c, "Notification already marked as read", notification)
		return
	}

	updated, err := h.Notifications.MarkRead(ctx, notification.ID.Hex())
	if err != nil {
		utils.InternalServerError(c, "Failed to update notification")
		return
	}

	utils.Success(c, "Notification marked as read successfully", updated)
}

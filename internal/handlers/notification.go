package handlers

import (
	"net/http"

	"stackit/internal/middleware"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifications NotificationService
}

func NewNotificationHandler(notifications NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// Page 通知页
func (h *NotificationHandler) Page(c *gin.Context) {
	user := middleware.CurrentUser(c)

	notifications, err := h.notifications.List(c.Request.Context(), user.ID)
	if err != nil {
		renderError(c, err)
		return
	}

	Render(c, http.StatusOK, "notification/list.html", gin.H{
		"Title":         "Notifications",
		"Notifications": notifications,
	})
}

// List GET /api/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	notifications, err := h.notifications.List(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	result := make([]gin.H, len(notifications))
	for i, n := range notifications {
		result[i] = gin.H{
			"id":         n.ID,
			"message":    n.Message,
			"is_read":    n.IsRead,
			"created_at": n.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, result)
}

// Read POST /api/notifications/:id/read
func (h *NotificationHandler) Read(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), middleware.CurrentUser(c).ID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// ReadAll POST /api/notifications/mark_all_read
func (h *NotificationHandler) ReadAll(c *gin.Context) {
	if _, err := h.notifications.MarkAllRead(c.Request.Context(), middleware.CurrentUser(c).ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jobdesk/notifier/internal/entities"
	"github.com/jobdesk/notifier/internal/repositories"
	"github.com/jobdesk/notifier/internal/services"
)

type notificationHandler struct {
	notifier *services.Notifier
}

func (h *notificationHandler) list(c *gin.Context) {
	actor := actorFrom(c)

	filter := repositories.NotificationFilter{
		Type:   entities.NotificationType(c.Query("type")),
		Limit:  20,
		Offset: 0,
	}
	if value, err := strconv.Atoi(c.Query("limit")); err == nil && value > 0 {
		filter.Limit = value
	}
	if value, err := strconv.Atoi(c.Query("offset")); err == nil && value > 0 {
		filter.Offset = value
	}
	if value, err := strconv.ParseBool(c.Query("unread")); err == nil {
		filter.Unread = &value
	}

	notifications, err := h.notifier.List(c.Request.Context(), actor, actor.ID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": notifications})
}

func (h *notificationHandler) unreadCount(c *gin.Context) {
	actor := actorFrom(c)

	count, err := h.notifier.CountUnread(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *notificationHandler) markRead(c *gin.Context) {
	actor := actorFrom(c)

	if err := h.notifier.MarkRead(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "marked as read"})
}

func (h *notificationHandler) markAllRead(c *gin.Context) {
	actor := actorFrom(c)

	count, err := h.notifier.MarkAllRead(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"marked": count})
}

func (h *notificationHandler) delete(c *gin.Context) {
	actor := actorFrom(c)

	if err := h.notifier.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h *notificationHandler) deleteRead(c *gin.Context) {
	actor := actorFrom(c)

	count, err := h.notifier.DeleteRead(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": count})
}

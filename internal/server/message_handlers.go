package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobdesk/notifier/internal/services"
	"github.com/jobdesk/notifier/pkg/apperror"
)

type messageHandler struct {
	messenger *services.Messenger
}

type sendMessageRequest struct {
	ReceiverID     string `json:"receiver_id"`
	Content        string `json:"content"`
	JobID          string `json:"job_id"`
	ApplicationID  string `json:"application_id"`
	AttachmentURL  string `json:"attachment_url"`
	AttachmentName string `json:"attachment_name"`
}

func (h *messageHandler) send(c *gin.Context) {
	actor := actorFrom(c)

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.ErrValidation)
		return
	}

	message, err := h.messenger.SendMessage(c.Request.Context(), services.MessageInput{
		SenderID:       actor.ID,
		ReceiverID:     req.ReceiverID,
		Content:        req.Content,
		JobID:          req.JobID,
		ApplicationID:  req.ApplicationID,
		AttachmentURL:  req.AttachmentURL,
		AttachmentName: req.AttachmentName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": message})
}

func (h *messageHandler) listConversations(c *gin.Context) {
	actor := actorFrom(c)

	conversations, err := h.messenger.ListConversations(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": conversations})
}

func (h *messageHandler) listMessages(c *gin.Context) {
	actor := actorFrom(c)

	messages, err := h.messenger.ListMessages(c.Request.Context(), actor.ID, c.Param("userID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": messages})
}

func (h *messageHandler) unreadCount(c *gin.Context) {
	actor := actorFrom(c)

	count, err := h.messenger.CountUnread(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *messageHandler) markRead(c *gin.Context) {
	actor := actorFrom(c)

	if err := h.messenger.MarkRead(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "marked as read"})
}

func (h *messageHandler) markConversationRead(c *gin.Context) {
	actor := actorFrom(c)

	if err := h.messenger.MarkConversationRead(c.Request.Context(), actor, c.Param("userID")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "conversation marked as read"})
}

func (h *messageHandler) delete(c *gin.Context) {
	actor := actorFrom(c)

	if err := h.messenger.DeleteMessage(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

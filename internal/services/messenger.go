package services

import (
	"context"
	"sort"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jobdesk/notifier/internal/entities"
	"github.com/jobdesk/notifier/internal/events"
	"github.com/jobdesk/notifier/internal/logger"
	"github.com/jobdesk/notifier/pkg/apperror"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type messageRepository interface {
	Add(ctx context.Context, message entities.Message) error
	GetByID(ctx context.Context, id string) (*entities.Message, error)
	GetByConversation(ctx context.Context, conversationID string) ([]entities.Message, error)
	GetByParticipant(ctx context.Context, userID string) ([]entities.Message, error)
	CountUnread(ctx context.Context, receiverID string) (int64, error)
	MarkAsRead(ctx context.Context, id string, readAt time.Time) error
	MarkConversationRead(ctx context.Context, conversationID string, receiverID string, readAt time.Time) (int64, error)
	Remove(ctx context.Context, id string) error
}

type MessageInput struct {
	SenderID       string `validate:"required"`
	ReceiverID     string `validate:"required,nefield=SenderID"`
	Content        string `validate:"required"`
	JobID          string
	ApplicationID  string
	AttachmentURL  string
	AttachmentName string
}

// ConversationSummary is one row of a user's inbox: the latest message of a
// conversation plus that user's unread count in it.
type ConversationSummary struct {
	ConversationID string
	OtherUserID    string
	LastMessage    entities.Message
	UnreadCount    int
}

type Messenger struct {
	messages messageRepository
	writer   notificationWriter
	bus      EventBus.Bus
	validate *validator.Validate
}

func NewMessenger(messages messageRepository, writer notificationWriter, bus EventBus.Bus) *Messenger {
	return &Messenger{messages: messages, writer: writer, bus: bus, validate: validator.New()}
}

// SendMessage persists one message and notifies the receiver. The message
// send succeeds even when the notification write fails; that failure is
// logged and dropped, never surfaced to the sender.
func (m *Messenger) SendMessage(ctx context.Context, input MessageInput) (*entities.Message, error) {

	if err := m.validate.Struct(input); err != nil {
		return nil, errors.Wrap(apperror.ErrValidation, err.Error())
	}

	message := entities.Message{
		ID:             uuid.NewString(),
		SenderID:       input.SenderID,
		ReceiverID:     input.ReceiverID,
		Content:        input.Content,
		ConversationID: entities.ConversationID(input.SenderID, input.ReceiverID),
		JobID:          input.JobID,
		ApplicationID:  input.ApplicationID,
		AttachmentURL:  input.AttachmentURL,
		AttachmentName: input.AttachmentName,
		CreatedAt:      time.Now().UTC(),
	}

	if err := m.messages.Add(ctx, message); err != nil {
		return nil, errors.Wrap(err, "failed to persist message")
	}

	m.bus.Publish(events.MessageSentTopic, events.MessageSent{Message: message})

	_, err := m.writer.Write(ctx, NotificationInput{
		RecipientID: message.ReceiverID,
		SenderID:    message.SenderID,
		Type:        entities.NotificationMessage,
		Title:       "New message",
		Message:     "You have received a new message.",
		Link:        "/messages/" + message.SenderID,
		MessageID:   message.ID,
	})
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to write message notification for user %v: %v", message.ReceiverID, err)
	}

	return &message, nil
}

// ListConversations groups the user's messages by conversation, newest
// conversation first.
func (m *Messenger) ListConversations(ctx context.Context, userID string) ([]ConversationSummary, error) {

	messages, err := m.messages.GetByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	groups := lo.GroupBy(messages, func(message entities.Message) string {
		return message.ConversationID
	})

	summaries := make([]ConversationSummary, 0, len(groups))
	for conversationID, group := range groups {

		last := lo.MaxBy(group, func(a entities.Message, b entities.Message) bool {
			return a.CreatedAt.After(b.CreatedAt)
		})

		unread := lo.CountBy(group, func(message entities.Message) bool {
			return message.ReceiverID == userID && !message.Read
		})

		otherUserID := last.SenderID
		if otherUserID == userID {
			otherUserID = last.ReceiverID
		}

		summaries = append(summaries, ConversationSummary{
			ConversationID: conversationID,
			OtherUserID:    otherUserID,
			LastMessage:    last,
			UnreadCount:    unread,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].LastMessage.CreatedAt.After(summaries[j].LastMessage.CreatedAt)
	})

	return summaries, nil
}

// ListMessages returns the conversation between the two users oldest-first.
func (m *Messenger) ListMessages(ctx context.Context, userA string, userB string) ([]entities.Message, error) {
	return m.messages.GetByConversation(ctx, entities.ConversationID(userA, userB))
}

func (m *Messenger) CountUnread(ctx context.Context, userID string) (int64, error) {
	return m.messages.CountUnread(ctx, userID)
}

// MarkRead marks one message read. Only the receiver may do this; read state
// belongs to the reader.
func (m *Messenger) MarkRead(ctx context.Context, actor entities.Actor, messageID string) error {

	message, err := m.messages.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message == nil {
		return apperror.ErrNotFound
	}
	if message.ReceiverID != actor.ID {
		return apperror.ErrDenied
	}
	if message.Read {
		return nil
	}

	return m.messages.MarkAsRead(ctx, messageID, time.Now().UTC())
}

// MarkConversationRead marks every message the actor received and has not yet
// read in the conversation with otherUserID. Nothing unread is a no-op.
func (m *Messenger) MarkConversationRead(ctx context.Context, actor entities.Actor, otherUserID string) error {

	conversationID := entities.ConversationID(actor.ID, otherUserID)
	_, err := m.messages.MarkConversationRead(ctx, conversationID, actor.ID, time.Now().UTC())
	return err
}

// DeleteMessage removes one message; only its sender (or an administrator)
// may do so.
func (m *Messenger) DeleteMessage(ctx context.Context, actor entities.Actor, messageID string) error {

	message, err := m.messages.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message == nil {
		return apperror.ErrNotFound
	}
	if message.SenderID != actor.ID && !actor.IsAdmin() {
		return apperror.ErrDenied
	}

	return m.messages.Remove(ctx, messageID)
}

package services

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jobdesk/notifier/internal/entities"
	"github.com/jobdesk/notifier/internal/metrics"
	"github.com/jobdesk/notifier/internal/repositories"
	"github.com/jobdesk/notifier/pkg/apperror"
	"github.com/pkg/errors"
)

type notificationRepository interface {
	Add(ctx context.Context, notification entities.Notification) error
	GetByID(ctx context.Context, id string) (*entities.Notification, error)
	GetByRecipient(ctx context.Context, recipientID string,
		filter repositories.NotificationFilter) ([]entities.Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	MarkAsRead(ctx context.Context, id string, readAt time.Time) error
	MarkAllAsRead(ctx context.Context, recipientID string, readAt time.Time) (int64, error)
	Remove(ctx context.Context, id string) error
	RemoveRead(ctx context.Context, recipientID string) (int64, error)
}

// NotificationInput describes one notification to persist. Recipient and type
// are mandatory; everything else is optional context for the reader.
type NotificationInput struct {
	RecipientID   string                    `validate:"required"`
	SenderID      string                    `validate:"omitempty,nefield=RecipientID"`
	Type          entities.NotificationType `validate:"required,oneof=application message job_alert system interview status_update"`
	Title         string
	Message       string
	Link          string
	JobID         string
	ApplicationID string
	MessageID     string
	Priority      entities.NotificationPriority `validate:"omitempty,oneof=low normal high"`
}

type Notifier struct {
	notifications notificationRepository
	validate      *validator.Validate
}

func NewNotifier(notifications notificationRepository) *Notifier {
	return &Notifier{notifications: notifications, validate: validator.New()}
}

// Write validates and persists a single notification record. Failures are
// returned to the immediate caller only; triggering operations decide for
// themselves whether to care.
func (n *Notifier) Write(ctx context.Context, input NotificationInput) (*entities.Notification, error) {

	if err := n.validate.Struct(input); err != nil {
		return nil, errors.Wrap(apperror.ErrValidation, err.Error())
	}

	priority := input.Priority
	if priority == "" {
		priority = entities.PriorityNormal
	}

	notification := entities.Notification{
		ID:            uuid.NewString(),
		RecipientID:   input.RecipientID,
		SenderID:      input.SenderID,
		Type:          input.Type,
		Title:         input.Title,
		Message:       input.Message,
		Link:          input.Link,
		JobID:         input.JobID,
		ApplicationID: input.ApplicationID,
		MessageID:     input.MessageID,
		Priority:      priority,
		CreatedAt:     time.Now().UTC(),
	}

	if err := n.notifications.Add(ctx, notification); err != nil {
		return nil, errors.Wrap(err, "failed to persist notification")
	}

	metrics.NotificationsCreatedCounter.WithLabelValues(string(notification.Type)).Inc()
	return &notification, nil
}

func (n *Notifier) List(ctx context.Context, actor entities.Actor, recipientID string,
	filter repositories.NotificationFilter) ([]entities.Notification, error) {

	if actor.ID != recipientID && !actor.IsAdmin() {
		return nil, apperror.ErrDenied
	}
	return n.notifications.GetByRecipient(ctx, recipientID, filter)
}

func (n *Notifier) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	return n.notifications.CountUnread(ctx, recipientID)
}

func (n *Notifier) MarkRead(ctx context.Context, actor entities.Actor, id string) error {

	notification, err := n.notifications.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notification == nil {
		return apperror.ErrNotFound
	}
	if notification.RecipientID != actor.ID && !actor.IsAdmin() {
		return apperror.ErrDenied
	}
	if notification.Read {
		return nil
	}

	return n.notifications.MarkAsRead(ctx, id, time.Now().UTC())
}

func (n *Notifier) MarkAllRead(ctx context.Context, actor entities.Actor) (int64, error) {
	return n.notifications.MarkAllAsRead(ctx, actor.ID, time.Now().UTC())
}

func (n *Notifier) Delete(ctx context.Context, actor entities.Actor, id string) error {

	notification, err := n.notifications.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notification == nil {
		return apperror.ErrNotFound
	}
	if notification.RecipientID != actor.ID && !actor.IsAdmin() {
		return apperror.ErrDenied
	}

	return n.notifications.Remove(ctx, id)
}

// DeleteRead removes every already-read notification of the actor.
func (n *Notifier) DeleteRead(ctx context.Context, actor entities.Actor) (int64, error) {
	return n.notifications.RemoveRead(ctx, actor.ID)
}

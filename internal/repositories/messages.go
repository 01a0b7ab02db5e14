package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jobdesk/notifier/internal/entities"
	"gorm.io/gorm"
)

type Messages struct {
	db *gorm.DB
}

func NewMessagesRepository(db *gorm.DB) *Messages {
	return &Messages{db: db}
}

func (repo *Messages) Add(ctx context.Context, message entities.Message) error {
	return repo.db.WithContext(ctx).Create(&message).Error
}

func (repo *Messages) GetByID(ctx context.Context, id string) (*entities.Message, error) {

	var message entities.Message
	err := repo.db.WithContext(ctx).First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

// GetByConversation returns the conversation oldest-first, chat read order.
func (repo *Messages) GetByConversation(ctx context.Context, conversationID string) ([]entities.Message, error) {

	var messages []entities.Message
	err := repo.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// GetByParticipant returns every message the user sent or received.
func (repo *Messages) GetByParticipant(ctx context.Context, userID string) ([]entities.Message, error) {

	var messages []entities.Message
	err := repo.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (repo *Messages) CountUnread(ctx context.Context, receiverID string) (int64, error) {

	var count int64
	err := repo.db.WithContext(ctx).Model(&entities.Message{}).
		Where("receiver_id = ? AND read = ?", receiverID, false).
		Count(&count).Error
	return count, err
}

func (repo *Messages) MarkAsRead(ctx context.Context, id string, readAt time.Time) error {
	return repo.db.WithContext(ctx).Model(&entities.Message{}).Where("id = ?", id).
		Updates(map[string]any{"read": true, "read_at": readAt}).Error
}

// MarkConversationRead bulk-marks the requester's unread messages in one
// conversation. Returns the number of rows touched; zero is not an error.
func (repo *Messages) MarkConversationRead(ctx context.Context, conversationID string,
	receiverID string, readAt time.Time) (int64, error) {

	res := repo.db.WithContext(ctx).Model(&entities.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND read = ?", conversationID, receiverID, false).
		Updates(map[string]any{"read": true, "read_at": readAt})
	return res.RowsAffected, res.Error
}

func (repo *Messages) Remove(ctx context.Context, id string) error {
	return repo.db.WithContext(ctx).Delete(&entities.Message{}, "id = ?", id).Error
}

package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jobdesk/notifier/internal/entities"
	"gorm.io/gorm"
)

// NotificationFilter narrows a recipient's notification listing. Zero values
// mean "no constraint"; Unread is a tri-state pointer.
type NotificationFilter struct {
	Type   entities.NotificationType
	Unread *bool
	Limit  int
	Offset int
}

type Notifications struct {
	db *gorm.DB
}

func NewNotificationsRepository(db *gorm.DB) *Notifications {
	return &Notifications{db: db}
}

func (repo *Notifications) Add(ctx context.Context, notification entities.Notification) error {
	return repo.db.WithContext(ctx).Create(&notification).Error
}

func (repo *Notifications) GetByID(ctx context.Context, id string) (*entities.Notification, error) {

	var notification entities.Notification
	err := repo.db.WithContext(ctx).First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notification, nil
}

func (repo *Notifications) GetByRecipient(ctx context.Context, recipientID string,
	filter NotificationFilter) ([]entities.Notification, error) {

	query := repo.db.WithContext(ctx).Where("recipient_id = ?", recipientID)
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Unread != nil {
		query = query.Where("read = ?", !*filter.Unread)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var notifications []entities.Notification
	err := query.Offset(filter.Offset).Order("created_at desc").Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (repo *Notifications) CountUnread(ctx context.Context, recipientID string) (int64, error) {

	var count int64
	err := repo.db.WithContext(ctx).Model(&entities.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

func (repo *Notifications) MarkAsRead(ctx context.Context, id string, readAt time.Time) error {
	return repo.db.WithContext(ctx).Model(&entities.Notification{}).Where("id = ?", id).
		Updates(map[string]any{"read": true, "read_at": readAt}).Error
}

func (repo *Notifications) MarkAllAsRead(ctx context.Context, recipientID string, readAt time.Time) (int64, error) {
	res := repo.db.WithContext(ctx).Model(&entities.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Updates(map[string]any{"read": true, "read_at": readAt})
	return res.RowsAffected, res.Error
}

func (repo *Notifications) Remove(ctx context.Context, id string) error {
	return repo.db.WithContext(ctx).Delete(&entities.Notification{}, "id = ?", id).Error
}

func (repo *Notifications) RemoveRead(ctx context.Context, recipientID string) (int64, error) {
	res := repo.db.WithContext(ctx).
		Delete(&entities.Notification{}, "recipient_id = ? AND read = ?", recipientID, true)
	return res.RowsAffected, res.Error
}

// RemoveReadBefore deletes notifications marked read before the cutoff.
// Unread notifications never expire.
func (repo *Notifications) RemoveReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := repo.db.WithContext(ctx).
		Delete(&entities.Notification{}, "read = ? AND read_at < ?", true, cutoff)
	return res.RowsAffected, res.Error
}

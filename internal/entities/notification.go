package entities

import "time"

type NotificationType string

const (
	NotificationApplication  NotificationType = "application"
	NotificationMessage      NotificationType = "message"
	NotificationJobAlert     NotificationType = "job_alert"
	NotificationSystem       NotificationType = "system"
	NotificationInterview    NotificationType = "interview"
	NotificationStatusUpdate NotificationType = "status_update"
)

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "high"
)

// Notification is immutable once created except for the read flag and ReadAt.
// SenderID is empty for system-generated notifications.
type Notification struct {
	ID            string `gorm:"primaryKey"`
	RecipientID   string `gorm:"index"`
	SenderID      string
	Type          NotificationType `gorm:"index"`
	Title         string
	Message       string
	Link          string
	JobID         string
	ApplicationID string
	MessageID     string
	Read          bool `gorm:"default:false"`
	ReadAt        *time.Time
	Priority      NotificationPriority
	CreatedAt     time.Time
}

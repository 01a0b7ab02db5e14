package repositories

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/jobdesk/notifier/internal/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	err := c.DB.AutoMigrate(entities.JobAlert{})
	if err != nil {
		return fmt.Errorf("failed to migrate JobAlert entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.Notification{})
	if err != nil {
		return fmt.Errorf("failed to migrate Notification entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.Message{})
	if err != nil {
		return fmt.Errorf("failed to migrate Message entity: %w", err)
	}

	if err = c.DB.Exec("CREATE INDEX IF NOT EXISTS idx_notifications_recipient_read ON notifications (recipient_id, read); " +
		"CREATE INDEX IF NOT EXISTS idx_messages_conversation_created ON messages (conversation_id, created_at);").
		Error; err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}

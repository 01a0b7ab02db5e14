package repositories

import (
	"context"
	"errors"

	"github.com/jobdesk/notifier/internal/entities"
	"gorm.io/gorm"
)

type Alerts struct {
	db *gorm.DB
}

func NewAlertsRepository(db *gorm.DB) *Alerts {
	return &Alerts{db: db}
}

func (repo *Alerts) Add(ctx context.Context, alert entities.JobAlert) error {
	return repo.db.WithContext(ctx).Create(&alert).Error
}

func (repo *Alerts) GetByOwner(ctx context.Context, ownerID string) ([]entities.JobAlert, error) {

	var alerts []entities.JobAlert
	if err := repo.db.WithContext(ctx).Find(&alerts, "owner_id = ?", ownerID).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (repo *Alerts) GetByID(ctx context.Context, id string) (*entities.JobAlert, error) {

	var alert entities.JobAlert
	err := repo.db.WithContext(ctx).First(&alert, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &alert, nil
}

// GetActive returns every alert eligible for a fan-out pass.
func (repo *Alerts) GetActive(ctx context.Context) ([]entities.JobAlert, error) {

	var alerts []entities.JobAlert
	if err := repo.db.WithContext(ctx).Find(&alerts, "active = ?", true).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (repo *Alerts) GetCountByOwner(ctx context.Context, ownerID string) (int64, error) {

	var count int64
	if err := repo.db.WithContext(ctx).Model(&entities.JobAlert{}).Where("owner_id = ?", ownerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *Alerts) Update(ctx context.Context, alert entities.JobAlert) error {
	// full-row save so cleared dimensions persist as empty values
	return repo.db.WithContext(ctx).Save(&alert).Error
}

func (repo *Alerts) SetActive(ctx context.Context, id string, active bool) error {
	return repo.db.WithContext(ctx).Model(&entities.JobAlert{}).Where("id = ?", id).
		Update("active", active).Error
}

func (repo *Alerts) Remove(ctx context.Context, id string) error {
	return repo.db.WithContext(ctx).Delete(&entities.JobAlert{}, "id = ?", id).Error
}

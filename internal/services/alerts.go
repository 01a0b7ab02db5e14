package services

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jobdesk/notifier/internal/entities"
	"github.com/jobdesk/notifier/pkg/apperror"
	"github.com/pkg/errors"
)

const maxAlertsPerUser = 20

type alertRepository interface {
	Add(ctx context.Context, alert entities.JobAlert) error
	GetByID(ctx context.Context, id string) (*entities.JobAlert, error)
	GetByOwner(ctx context.Context, ownerID string) ([]entities.JobAlert, error)
	GetCountByOwner(ctx context.Context, ownerID string) (int64, error)
	Update(ctx context.Context, alert entities.JobAlert) error
	SetActive(ctx context.Context, id string, active bool) error
	Remove(ctx context.Context, id string) error
}

type alertCacheFlusher interface {
	Flush()
}

type AlertInput struct {
	Keywords           []string `validate:"max=10,dive,max=64"`
	City               string
	State              string
	Country            string
	Category           string
	JobType            string
	MinSalary          float64 `validate:"gte=0"`
	MinExperienceYears int     `validate:"gte=0"`
}

// AlertService owns the saved-alert lifecycle. Every mutation flushes the
// fan-out scan cache so the next dispatch pass sees current alerts.
type AlertService struct {
	alerts   alertRepository
	cache    alertCacheFlusher
	validate *validator.Validate
}

func NewAlertService(alerts alertRepository, cache alertCacheFlusher) *AlertService {
	return &AlertService{alerts: alerts, cache: cache, validate: validator.New()}
}

func (s *AlertService) Create(ctx context.Context, actor entities.Actor, input AlertInput) (*entities.JobAlert, error) {

	if err := s.validate.Struct(input); err != nil {
		return nil, errors.Wrap(apperror.ErrValidation, err.Error())
	}

	count, err := s.alerts.GetCountByOwner(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if count >= maxAlertsPerUser {
		return nil, errors.Wrap(apperror.ErrValidation, "alert limit reached")
	}

	alert := entities.NewJobAlert(actor.ID, input.Keywords)
	alert.ID = uuid.NewString()
	alert.City = input.City
	alert.State = input.State
	alert.Country = input.Country
	alert.Category = input.Category
	alert.JobType = input.JobType
	alert.MinSalary = input.MinSalary
	alert.MinExperienceYears = input.MinExperienceYears
	alert.CreatedAt = time.Now().UTC()

	if err := s.alerts.Add(ctx, *alert); err != nil {
		return nil, errors.Wrap(err, "failed to persist alert")
	}

	s.cache.Flush()
	return alert, nil
}

func (s *AlertService) ListByOwner(ctx context.Context, actor entities.Actor, ownerID string) ([]entities.JobAlert, error) {

	if actor.ID != ownerID && !actor.IsAdmin() {
		return nil, apperror.ErrDenied
	}
	return s.alerts.GetByOwner(ctx, ownerID)
}

func (s *AlertService) Update(ctx context.Context, actor entities.Actor, id string, input AlertInput) (*entities.JobAlert, error) {

	if err := s.validate.Struct(input); err != nil {
		return nil, errors.Wrap(apperror.ErrValidation, err.Error())
	}

	alert, err := s.getOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	alert.SetKeywords(input.Keywords)
	alert.City = input.City
	alert.State = input.State
	alert.Country = input.Country
	alert.Category = input.Category
	alert.JobType = input.JobType
	alert.MinSalary = input.MinSalary
	alert.MinExperienceYears = input.MinExperienceYears

	if err := s.alerts.Update(ctx, *alert); err != nil {
		return nil, errors.Wrap(err, "failed to update alert")
	}

	s.cache.Flush()
	return alert, nil
}

// SetActive toggles an alert without deleting it.
func (s *AlertService) SetActive(ctx context.Context, actor entities.Actor, id string, active bool) error {

	if _, err := s.getOwned(ctx, actor, id); err != nil {
		return err
	}

	if err := s.alerts.SetActive(ctx, id, active); err != nil {
		return err
	}

	s.cache.Flush()
	return nil
}

func (s *AlertService) Delete(ctx context.Context, actor entities.Actor, id string) error {

	if _, err := s.getOwned(ctx, actor, id); err != nil {
		return err
	}

	if err := s.alerts.Remove(ctx, id); err != nil {
		return err
	}

	s.cache.Flush()
	return nil
}

func (s *AlertService) getOwned(ctx context.Context, actor entities.Actor, id string) (*entities.JobAlert, error) {

	alert, err := s.alerts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, apperror.ErrNotFound
	}
	if alert.OwnerID != actor.ID && !actor.IsAdmin() {
		return nil, apperror.ErrDenied
	}
	return alert, nil
}

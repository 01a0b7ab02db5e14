package services

import (
	"context"
	"testing"
	"time"

	"github.com/jobdesk/notifier/internal/entities"
	"github.com/jobdesk/notifier/internal/repositories"
	"github.com/jobdesk/notifier/pkg/apperror"
	"github.com/stretchr/testify/assert"
)

func newTestAlertService(t *testing.T) (*AlertService, *repositories.CachedAlerts) {
	dbContext := newTestDb(t)
	alerts := repositories.NewAlertsRepository(dbContext.DB)
	cached := repositories.NewCachedAlerts(alerts, time.Minute)
	return NewAlertService(alerts, cached), cached
}

func Test_CreateAlert_StoresKeywordsAsListAndStartsActive(t *testing.T) {

	service, cached := newTestAlertService(t)
	ctx := context.Background()

	alert, err := service.Create(ctx, entities.Actor{ID: "user-1"}, AlertInput{
		Keywords: []string{"golang", " backend "},
		City:     "Berlin",
	})
	assert.NoError(t, err)
	assert.True(t, alert.Active)
	assert.Equal(t, []string{"golang", "backend"}, alert.KeywordsAsArray())

	active, err := cached.GetActive(ctx)
	assert.NoError(t, err)
	assert.Len(t, active, 1)
}

func Test_UpdateAlert_ByNonOwner_Denied(t *testing.T) {

	service, _ := newTestAlertService(t)
	ctx := context.Background()

	alert, err := service.Create(ctx, entities.Actor{ID: "user-1"}, AlertInput{Keywords: []string{"golang"}})
	assert.NoError(t, err)

	_, err = service.Update(ctx, entities.Actor{ID: "user-2"}, alert.ID, AlertInput{})
	assert.ErrorIs(t, err, apperror.ErrDenied)

	err = service.Delete(ctx, entities.Actor{ID: "user-2"}, alert.ID)
	assert.ErrorIs(t, err, apperror.ErrDenied)
}

func Test_UpdateAlert_ClearingDimensionsPersists(t *testing.T) {

	service, _ := newTestAlertService(t)
	ctx := context.Background()
	owner := entities.Actor{ID: "user-1"}

	alert, err := service.Create(ctx, owner, AlertInput{Keywords: []string{"golang"}, MinSalary: 50000})
	assert.NoError(t, err)

	updated, err := service.Update(ctx, owner, alert.ID, AlertInput{Keywords: []string{"golang"}})
	assert.NoError(t, err)
	assert.Zero(t, updated.MinSalary)

	alerts, err := service.ListByOwner(ctx, owner, owner.ID)
	assert.NoError(t, err)
	assert.Len(t, alerts, 1)
	assert.Zero(t, alerts[0].MinSalary)
}

func Test_SetActive_TogglesWithoutDeleting_AndFlushesScanCache(t *testing.T) {

	service, cached := newTestAlertService(t)
	ctx := context.Background()
	owner := entities.Actor{ID: "user-1"}

	alert, err := service.Create(ctx, owner, AlertInput{Keywords: []string{"golang"}})
	assert.NoError(t, err)

	// warm the cache, then deactivate
	active, err := cached.GetActive(ctx)
	assert.NoError(t, err)
	assert.Len(t, active, 1)

	assert.NoError(t, service.SetActive(ctx, owner, alert.ID, false))

	active, err = cached.GetActive(ctx)
	assert.NoError(t, err)
	assert.Empty(t, active)

	alerts, err := service.ListByOwner(ctx, owner, owner.ID)
	assert.NoError(t, err)
	assert.Len(t, alerts, 1)
	assert.False(t, alerts[0].Active)
}

func Test_CreateAlert_UnknownAlertID_NotFound(t *testing.T) {

	service, _ := newTestAlertService(t)

	err := service.Delete(context.Background(), entities.Actor{ID: "user-1"}, "no-such-alert")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

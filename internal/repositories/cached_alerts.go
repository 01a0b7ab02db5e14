package repositories

import (
	"context"
	"time"

	"github.com/jobdesk/notifier/internal/entities"
	gocache "github.com/patrickmn/go-cache"
)

type activeAlertsRepository interface {
	GetActive(ctx context.Context) ([]entities.JobAlert, error)
}

const activeAlertsCacheKey = "active_alerts"

// CachedAlerts caches the active-alert scan between fan-out passes so that a
// burst of postings does not rescan the table for every event. Mutations go
// through the Alerts repository directly and call Flush.
type CachedAlerts struct {
	repo  activeAlertsRepository
	cache *gocache.Cache
}

func NewCachedAlerts(repo activeAlertsRepository, ttl time.Duration) *CachedAlerts {
	return &CachedAlerts{repo: repo, cache: gocache.New(ttl, 2*ttl)}
}

func (c *CachedAlerts) GetActive(ctx context.Context) ([]entities.JobAlert, error) {
	if value, found := c.cache.Get(activeAlertsCacheKey); found {
		return value.([]entities.JobAlert), nil
	}

	alerts, err := c.repo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	c.cache.Set(activeAlertsCacheKey, alerts, gocache.DefaultExpiration)
	return alerts, nil
}

func (c *CachedAlerts) Flush() {
	c.cache.Delete(activeAlertsCacheKey)
}

package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/jobdesk/notifier/internal/entities"
	"github.com/jobdesk/notifier/internal/events"
	"github.com/jobdesk/notifier/internal/logger"
	"github.com/jobdesk/notifier/internal/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type alertScanner interface {
	GetActive(ctx context.Context) ([]entities.JobAlert, error)
}

type notificationWriter interface {
	Write(ctx context.Context, input NotificationInput) (*entities.Notification, error)
}

type FanoutFailure struct {
	RecipientID string
	Err         error
}

// FanoutResult reports a dispatch pass to the caller as a side channel.
// Partial failure is an observable outcome, never a hard error.
type FanoutResult struct {
	Notified []string
	Failed   []FanoutFailure
}

type fanoutOutcome struct {
	recipientID string
	err         error
	skipped     bool
}

// Fanout evaluates every active alert against a triggering event and writes a
// notification per match. Subscribed bus handlers run asynchronously so the
// operation that published the event never waits on, or fails with, fan-out.
type Fanout struct {
	bus     EventBus.Bus
	alerts  alertScanner
	writer  notificationWriter
	workers int
	limiter *rate.Limiter
}

func NewFanout(bus EventBus.Bus, alerts alertScanner, writer notificationWriter, workers int) (*Fanout, error) {

	if workers <= 0 {
		return nil, errors.New("fan-out workers must be greater than zero")
	}

	f := &Fanout{bus: bus, alerts: alerts, writer: writer, workers: workers}

	if err := bus.SubscribeAsync(events.JobPostedTopic, f.onJobPosted, false); err != nil {
		return nil, err
	}
	if err := bus.SubscribeAsync(events.ApplicationStatusChangedTopic, f.onStatusChanged, false); err != nil {
		return nil, err
	}

	return f, nil
}

func (f *Fanout) SetWriteRateLimit(maxWritesPerSecond float32) {
	f.limiter = rate.NewLimiter(rate.Limit(maxWritesPerSecond), 1)
}

func (f *Fanout) onJobPosted(event events.JobPosted) {
	result := f.DispatchJobAlerts(context.Background(), event.Job)
	log.Infof("job alert fan-out for job %v: %d notified, %d failed",
		event.Job.ID, len(result.Notified), len(result.Failed))
}

func (f *Fanout) onStatusChanged(event events.ApplicationStatusChanged) {
	if _, err := f.NotifyStatusChange(context.Background(), event.Application, event.OldStatus); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeBus).
			Errorf("failed to notify status change for application %v: %v", event.Application.ID, err)
	}
}

// DispatchJobAlerts runs one fan-out pass for a freshly posted job. Every
// alert is evaluated and written independently on a bounded worker pool;
// one recipient's failure never reaches its siblings.
func (f *Fanout) DispatchJobAlerts(ctx context.Context, job entities.JobPosting) FanoutResult {

	startTime := time.Now()
	defer func() {
		metrics.FanoutDuration.Observe(time.Since(startTime).Seconds())
	}()

	alerts, err := f.alerts.GetActive(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get active alerts: %v", err)
		return FanoutResult{}
	}

	pending := make(chan entities.JobAlert)
	outcomes := make(chan fanoutOutcome)

	var wg sync.WaitGroup
	for i := 0; i < f.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for alert := range pending {
				outcomes <- f.dispatchToAlert(ctx, alert, job)
			}
		}()
	}

	aggregated := make(chan FanoutResult)
	go func() {
		var result FanoutResult
		for outcome := range outcomes {
			if outcome.skipped {
				continue
			}
			if outcome.err != nil {
				metrics.FanoutFailuresCounter.Inc()
				result.Failed = append(result.Failed, FanoutFailure{RecipientID: outcome.recipientID, Err: outcome.err})
			} else {
				result.Notified = append(result.Notified, outcome.recipientID)
			}
		}
		aggregated <- result
	}()

	for _, alert := range alerts {
		pending <- alert
	}
	close(pending)
	wg.Wait()
	close(outcomes)

	return <-aggregated
}

func (f *Fanout) dispatchToAlert(ctx context.Context, alert entities.JobAlert,
	job entities.JobPosting) (outcome fanoutOutcome) {

	defer func() {
		if r := recover(); r != nil {
			outcome = fanoutOutcome{recipientID: alert.OwnerID, err: errors.Errorf("panic during dispatch: %v", r)}
		}
	}()

	if !MatchesAlert(alert, job) {
		return fanoutOutcome{skipped: true}
	}
	metrics.MatchedAlertsCounter.Inc()

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return fanoutOutcome{recipientID: alert.OwnerID, err: err}
		}
	}

	_, err := f.writer.Write(ctx, NotificationInput{
		RecipientID: alert.OwnerID,
		Type:        entities.NotificationJobAlert,
		Title:       "New job matches your alert",
		Message:     fmt.Sprintf("A new posting %q matches your saved job alert.", job.Title),
		Link:        "/jobs/" + job.ID,
		JobID:       job.ID,
	})
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to write job alert notification for user %v: %v", alert.OwnerID, err)
		return fanoutOutcome{recipientID: alert.OwnerID, err: err}
	}

	return fanoutOutcome{recipientID: alert.OwnerID}
}

var statusMessages = map[entities.ApplicationStatus]string{
	entities.StatusShortlisted: "Good news! You have been shortlisted for %q.",
	entities.StatusInterviewed: "You have been invited to an interview for %q.",
	entities.StatusAccepted:    "Congratulations! Your application for %q has been accepted.",
	entities.StatusRejected:    "Your application for %q was not selected this time.",
}

// NotifyStatusChange writes the single applicant-facing notification for an
// application status transition. Returns (nil, nil) when the status did not
// actually change.
func (f *Fanout) NotifyStatusChange(ctx context.Context, application entities.Application,
	oldStatus entities.ApplicationStatus) (*entities.Notification, error) {

	if application.Status == oldStatus {
		return nil, nil
	}

	text, mapped := "", false
	if template, ok := statusMessages[application.Status]; ok {
		text, mapped = fmt.Sprintf(template, application.JobTitle), true
	} else {
		text = fmt.Sprintf("The status of your application for %q changed to %s.",
			application.JobTitle, application.Status)
	}

	notificationType := entities.NotificationStatusUpdate
	if application.Status == entities.StatusInterviewed {
		notificationType = entities.NotificationInterview
	}

	priority := entities.PriorityNormal
	if mapped && application.Status == entities.StatusAccepted {
		priority = entities.PriorityHigh
	}

	return f.writer.Write(ctx, NotificationInput{
		RecipientID:   application.ApplicantID,
		Type:          notificationType,
		Title:         "Application status updated",
		Message:       text,
		Link:          "/applications/" + application.ID,
		JobID:         application.JobID,
		ApplicationID: application.ID,
		Priority:      priority,
	})
}

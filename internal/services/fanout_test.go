package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/jobdesk/notifier/internal/entities"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockAlerts struct {
	mock.Mock
}

func (m *mockAlerts) GetActive(ctx context.Context) ([]entities.JobAlert, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.JobAlert), args.Error(1)
}

type stubWriter struct {
	mu       sync.Mutex
	failFor  map[string]error
	panicFor map[string]bool
	written  []NotificationInput
}

func (s *stubWriter) Write(_ context.Context, input NotificationInput) (*entities.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.panicFor[input.RecipientID] {
		panic("writer exploded")
	}
	if err, ok := s.failFor[input.RecipientID]; ok {
		return nil, err
	}

	s.written = append(s.written, input)
	return &entities.Notification{ID: "n-" + input.RecipientID, RecipientID: input.RecipientID,
		Type: input.Type, Message: input.Message}, nil
}

func (s *stubWriter) recipients() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []string
	for _, input := range s.written {
		ids = append(ids, input.RecipientID)
	}
	return ids
}

func newTestFanout(t *testing.T, alerts alertScanner, writer notificationWriter) *Fanout {
	fanout, err := NewFanout(EventBus.New(), alerts, writer, 4)
	assert.NoError(t, err)
	return fanout
}

func Test_DispatchJobAlerts_OnlyMatchingAlertsProduceNotifications(t *testing.T) {

	alerts := &mockAlerts{}
	alerts.On("GetActive", mock.Anything).Return([]entities.JobAlert{
		{ID: "a1", OwnerID: "user-1", Keywords: "golang"},
		{ID: "a2", OwnerID: "user-2", Keywords: "go"},
		{ID: "a3", OwnerID: "user-3", Keywords: "cobol"},
	}, nil)

	writer := &stubWriter{}
	fanout := newTestFanout(t, alerts, writer)

	result := fanout.DispatchJobAlerts(context.Background(), sampleJob())

	assert.ElementsMatch(t, []string{"user-1", "user-2"}, result.Notified)
	assert.Empty(t, result.Failed)
	assert.ElementsMatch(t, []string{"user-1", "user-2"}, writer.recipients())
}

func Test_DispatchJobAlerts_OneFailureDoesNotSinkSiblings(t *testing.T) {

	alerts := &mockAlerts{}
	alerts.On("GetActive", mock.Anything).Return([]entities.JobAlert{
		{ID: "a1", OwnerID: "user-1", Keywords: "golang"},
		{ID: "a2", OwnerID: "user-2", Keywords: "golang"},
		{ID: "a3", OwnerID: "user-3", Keywords: "cobol"},
	}, nil)

	writer := &stubWriter{failFor: map[string]error{"user-2": errors.New("disk full")}}
	fanout := newTestFanout(t, alerts, writer)

	result := fanout.DispatchJobAlerts(context.Background(), sampleJob())

	assert.Equal(t, []string{"user-1"}, result.Notified)
	assert.Len(t, result.Failed, 1)
	assert.Equal(t, "user-2", result.Failed[0].RecipientID)
	assert.EqualError(t, result.Failed[0].Err, "disk full")
}

func Test_DispatchJobAlerts_PanicInOneWriteIsCapturedPerItem(t *testing.T) {

	alerts := &mockAlerts{}
	alerts.On("GetActive", mock.Anything).Return([]entities.JobAlert{
		{ID: "a1", OwnerID: "user-1", Keywords: "golang"},
		{ID: "a2", OwnerID: "user-2", Keywords: "golang"},
	}, nil)

	writer := &stubWriter{panicFor: map[string]bool{"user-1": true}}
	fanout := newTestFanout(t, alerts, writer)

	var result FanoutResult
	assert.NotPanics(t, func() {
		result = fanout.DispatchJobAlerts(context.Background(), sampleJob())
	})

	assert.Equal(t, []string{"user-2"}, result.Notified)
	assert.Len(t, result.Failed, 1)
	assert.Equal(t, "user-1", result.Failed[0].RecipientID)
}

func Test_DispatchJobAlerts_ScanFailureReturnsEmptyResult(t *testing.T) {

	alerts := &mockAlerts{}
	alerts.On("GetActive", mock.Anything).Return([]entities.JobAlert(nil), errors.New("db down"))

	writer := &stubWriter{}
	fanout := newTestFanout(t, alerts, writer)

	result := fanout.DispatchJobAlerts(context.Background(), sampleJob())

	assert.Empty(t, result.Notified)
	assert.Empty(t, result.Failed)
	assert.Empty(t, writer.recipients())
}

func Test_NotifyStatusChange_SameStatus_ProducesNothing(t *testing.T) {

	writer := &stubWriter{}
	fanout := newTestFanout(t, &mockAlerts{}, writer)

	application := entities.Application{ID: "app-1", ApplicantID: "user-1", Status: entities.StatusPending}
	notification, err := fanout.NotifyStatusChange(context.Background(), application, entities.StatusPending)

	assert.NoError(t, err)
	assert.Nil(t, notification)
	assert.Empty(t, writer.written)
}

func Test_NotifyStatusChange_MappedStatusesUseFixedTemplates(t *testing.T) {

	cases := map[entities.ApplicationStatus]string{
		entities.StatusShortlisted: `Good news! You have been shortlisted for "Go Developer".`,
		entities.StatusInterviewed: `You have been invited to an interview for "Go Developer".`,
		entities.StatusAccepted:    `Congratulations! Your application for "Go Developer" has been accepted.`,
		entities.StatusRejected:    `Your application for "Go Developer" was not selected this time.`,
	}

	for status, expected := range cases {
		t.Run(string(status), func(t *testing.T) {
			writer := &stubWriter{}
			fanout := newTestFanout(t, &mockAlerts{}, writer)

			application := entities.Application{
				ID: "app-1", JobID: "job-1", JobTitle: "Go Developer",
				ApplicantID: "user-1", Status: status,
			}
			notification, err := fanout.NotifyStatusChange(context.Background(), application, entities.StatusPending)

			assert.NoError(t, err)
			assert.Equal(t, expected, notification.Message)
			assert.Equal(t, "user-1", notification.RecipientID)
		})
	}
}

func Test_NotifyStatusChange_UnmappedStatusUsesGenericTemplate(t *testing.T) {

	writer := &stubWriter{}
	fanout := newTestFanout(t, &mockAlerts{}, writer)

	application := entities.Application{
		ID: "app-1", JobTitle: "Go Developer", ApplicantID: "user-1", Status: entities.StatusPending,
	}
	notification, err := fanout.NotifyStatusChange(context.Background(), application, entities.StatusShortlisted)

	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("The status of your application for %q changed to %s.", "Go Developer", "pending"),
		notification.Message)
}

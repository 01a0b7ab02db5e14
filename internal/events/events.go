package events

import "github.com/jobdesk/notifier/internal/entities"

var (
	JobPostedTopic                = "JobPostedEvent"
	ApplicationStatusChangedTopic = "ApplicationStatusChangedEvent"
	MessageSentTopic              = "MessageSentEvent"
)

type JobPosted struct {
	Job entities.JobPosting
}

type ApplicationStatusChanged struct {
	Application entities.Application
	OldStatus   entities.ApplicationStatus
}

type MessageSent struct {
	Message entities.Message
}

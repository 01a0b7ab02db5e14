package entities

import "errors"

type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusInterviewed ApplicationStatus = "interviewed"
	StatusAccepted    ApplicationStatus = "accepted"
	StatusRejected    ApplicationStatus = "rejected"
)

func ToApplicationStatus(s string) (ApplicationStatus, error) {
	switch s {
	case string(StatusPending):
		return StatusPending, nil
	case string(StatusShortlisted):
		return StatusShortlisted, nil
	case string(StatusInterviewed):
		return StatusInterviewed, nil
	case string(StatusAccepted):
		return StatusAccepted, nil
	case string(StatusRejected):
		return StatusRejected, nil
	default:
		return "", errors.New("invalid application status")
	}
}

// Application is supplied by the application store at status-change time.
type Application struct {
	ID          string
	JobID       string
	JobTitle    string
	ApplicantID string
	Status      ApplicationStatus
}

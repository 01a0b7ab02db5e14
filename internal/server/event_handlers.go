package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobdesk/notifier/internal/entities"
	"github.com/jobdesk/notifier/internal/events"
	"github.com/jobdesk/notifier/pkg/apperror"
)

// EventPublisher decouples trigger hooks from the bus implementation.
type EventPublisher interface {
	Publish(topic string, args ...interface{})
}

// eventHandler accepts trigger events from the surrounding job-board
// services. Each handler publishes to the bus and returns immediately:
// fan-out latency and failures stay invisible to the triggering caller.
type eventHandler struct {
	publisher EventPublisher
}

type jobPostedRequest struct {
	ID          string  `json:"id" binding:"required"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Skills      string  `json:"skills"`
	Category    string  `json:"category"`
	JobType     string  `json:"job_type"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Country     string  `json:"country"`
	SalaryFrom  float64 `json:"salary_from"`
	SalaryTo    float64 `json:"salary_to"`
	EmployerID  string  `json:"employer_id"`
}

func (h *eventHandler) jobPosted(c *gin.Context) {

	var req jobPostedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.ErrValidation)
		return
	}

	h.publisher.Publish(events.JobPostedTopic, events.JobPosted{Job: entities.JobPosting{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Skills:      req.Skills,
		Category:    req.Category,
		JobType:     req.JobType,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		SalaryFrom:  req.SalaryFrom,
		SalaryTo:    req.SalaryTo,
		EmployerID:  req.EmployerID,
	}})

	c.JSON(http.StatusAccepted, gin.H{"message": "accepted"})
}

type applicationStatusRequest struct {
	ID          string `json:"id" binding:"required"`
	JobID       string `json:"job_id"`
	JobTitle    string `json:"job_title"`
	ApplicantID string `json:"applicant_id" binding:"required"`
	Status      string `json:"status" binding:"required"`
	OldStatus   string `json:"old_status" binding:"required"`
}

func (h *eventHandler) applicationStatusChanged(c *gin.Context) {

	var req applicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.ErrValidation)
		return
	}

	status, err := entities.ToApplicationStatus(req.Status)
	if err != nil {
		respondError(c, apperror.ErrValidation)
		return
	}
	oldStatus, err := entities.ToApplicationStatus(req.OldStatus)
	if err != nil {
		respondError(c, apperror.ErrValidation)
		return
	}

	h.publisher.Publish(events.ApplicationStatusChangedTopic, events.ApplicationStatusChanged{
		Application: entities.Application{
			ID:          req.ID,
			JobID:       req.JobID,
			JobTitle:    req.JobTitle,
			ApplicantID: req.ApplicantID,
			Status:      status,
		},
		OldStatus: oldStatus,
	})

	c.JSON(http.StatusAccepted, gin.H{"message": "accepted"})
}

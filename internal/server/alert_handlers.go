package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobdesk/notifier/internal/services"
	"github.com/jobdesk/notifier/pkg/apperror"
)

type alertHandler struct {
	alerts *services.AlertService
}

type alertRequest struct {
	Keywords           []string `json:"keywords"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Country            string   `json:"country"`
	Category           string   `json:"category"`
	JobType            string   `json:"job_type"`
	MinSalary          float64  `json:"min_salary"`
	MinExperienceYears int      `json:"min_experience_years"`
}

func (r alertRequest) toInput() services.AlertInput {
	return services.AlertInput{
		Keywords:           r.Keywords,
		City:               r.City,
		State:              r.State,
		Country:            r.Country,
		Category:           r.Category,
		JobType:            r.JobType,
		MinSalary:          r.MinSalary,
		MinExperienceYears: r.MinExperienceYears,
	}
}

func (h *alertHandler) list(c *gin.Context) {
	actor := actorFrom(c)

	alerts, err := h.alerts.ListByOwner(c.Request.Context(), actor, actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": alerts})
}

func (h *alertHandler) create(c *gin.Context) {
	actor := actorFrom(c)

	var req alertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.ErrValidation)
		return
	}

	alert, err := h.alerts.Create(c.Request.Context(), actor, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": alert})
}

func (h *alertHandler) update(c *gin.Context) {
	actor := actorFrom(c)

	var req alertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.ErrValidation)
		return
	}

	alert, err := h.alerts.Update(c.Request.Context(), actor, c.Param("id"), req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": alert})
}

func (h *alertHandler) setActive(c *gin.Context) {
	actor := actorFrom(c)

	var req struct {
		Active bool `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.ErrValidation)
		return
	}

	if err := h.alerts.SetActive(c.Request.Context(), actor, c.Param("id"), req.Active); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func (h *alertHandler) delete(c *gin.Context) {
	actor := actorFrom(c)

	if err := h.alerts.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

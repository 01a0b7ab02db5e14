package services

import (
	"strings"

	"github.com/jobdesk/notifier/internal/entities"
	"github.com/samber/lo"
)

// MatchesAlert reports whether a posting satisfies every dimension the alert
// specifies. Dimensions combine conjunctively; the keyword list is satisfied
// by any single keyword. An unspecified dimension never causes failure.
func MatchesAlert(alert entities.JobAlert, job entities.JobPosting) bool {
	return matchesKeywords(alert, job) &&
		matchesLocation(alert, job) &&
		matchesJobType(alert, job) &&
		matchesCategory(alert, job) &&
		matchesSalary(alert, job)
}

func matchesKeywords(alert entities.JobAlert, job entities.JobPosting) bool {
	keywords := alert.KeywordsAsArray()
	if len(keywords) == 0 {
		return true
	}

	haystack := strings.ToLower(job.Title + " " + job.Description + " " + job.Skills)
	return lo.SomeBy(keywords, func(keyword string) bool {
		return strings.Contains(haystack, strings.ToLower(keyword))
	})
}

func matchesLocation(alert entities.JobAlert, job entities.JobPosting) bool {
	locationText := strings.ToLower(job.LocationText())
	parts := []string{alert.City, alert.State, alert.Country}
	return lo.EveryBy(parts, func(part string) bool {
		return part == "" || strings.Contains(locationText, strings.ToLower(part))
	})
}

func matchesJobType(alert entities.JobAlert, job entities.JobPosting) bool {
	return alert.JobType == "" || alert.JobType == job.JobType
}

func matchesCategory(alert entities.JobAlert, job entities.JobPosting) bool {
	return alert.Category == "" || alert.Category == job.Category
}

func matchesSalary(alert entities.JobAlert, job entities.JobPosting) bool {
	// a posting without a salary floor fails any alert that sets a minimum
	return alert.MinSalary == 0 || job.SalaryFrom >= alert.MinSalary
}

package entities

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

// JobAlert is a saved set of filter dimensions a user wants matched against
// new postings. Every dimension is optional; an empty dimension never causes
// a match to fail.
type JobAlert struct {
	ID                 string `gorm:"primaryKey"`
	OwnerID            string `gorm:"index"`
	Keywords           string
	City               string
	State              string
	Country            string
	Category           string
	JobType            string
	MinSalary          float64
	MinExperienceYears int
	Active             bool `gorm:"default:true;index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func NewJobAlert(ownerID string, keywords []string) *JobAlert {
	trimmed := lo.FilterMap(keywords, func(k string, _ int) (string, bool) {
		k = strings.TrimSpace(k)
		return k, k != ""
	})
	return &JobAlert{
		OwnerID:  ownerID,
		Keywords: strings.Join(trimmed, ","),
		Active:   true,
	}
}

func (a *JobAlert) KeywordsAsArray() []string {
	if a.Keywords == "" {
		return []string{}
	}
	return lo.FilterMap(strings.Split(a.Keywords, ","), func(k string, _ int) (string, bool) {
		k = strings.TrimSpace(k)
		return k, k != ""
	})
}

func (a *JobAlert) SetKeywords(keywords []string) {
	a.Keywords = strings.Join(keywords, ",")
}

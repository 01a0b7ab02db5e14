package entities

// JobPosting is the candidate entity evaluated against saved alerts. Postings
// are owned by the job store elsewhere in the system; this subsystem only
// reads them, so the struct carries no persistence tags.
type JobPosting struct {
	ID          string
	Title       string
	Description string
	Skills      string
	Category    string
	JobType     string
	City        string
	State       string
	Country     string
	SalaryFrom  float64
	SalaryTo    float64
	EmployerID  string
}

// LocationText joins the structured location fields for substring matching.
func (j *JobPosting) LocationText() string {
	return j.City + " " + j.State + " " + j.Country
}

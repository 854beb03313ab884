package model

// RedirectStat counts how often users were sent to a third-party listing.
type RedirectStat struct {
	JobID    string `json:"jobId"`
	JobTitle string `json:"jobTitle"`
	Clicks   int    `json:"clicks"`
}

// AdminStats is the aggregate view shown to admins.
type AdminStats struct {
	TotalJobs      int            `json:"totalJobs"`
	TotalCompanies int            `json:"totalCompanies"`
	TotalUsers     int            `json:"totalUsers"`
	Redirects      []RedirectStat `json:"redirects"`
}

// Clicks returns the click count recorded for jobID, or 0.
func (s AdminStats) Clicks(jobID string) int {
	for _, r := range s.Redirects {
		if r.JobID == jobID {
			return r.Clicks
		}
	}
	return 0
}

package repository

import (
	"sync"

	"greenjobs/internal/model"
)

// UserRecord is a user together with its credential hash.
type UserRecord struct {
	User         model.User
	PasswordHash string
}

// Memory is the in-process data set every repository reads and writes.
// All access goes through mu.
type Memory struct {
	mu sync.RWMutex

	companies    map[string]model.Company
	companyOrder []string

	// jobs keep only the company id; the company is attached on read so
	// that verification shows up on every listing.
	jobs []model.Job

	users     map[string]*UserRecord
	userOrder []string

	redirects []model.RedirectStat
}

// NewMemory returns an empty data set.
func NewMemory() *Memory {
	return &Memory{
		companies: map[string]model.Company{},
		users:     map[string]*UserRecord{},
	}
}

// hydrateLocked attaches the current company record to j. Callers hold mu.
func (m *Memory) hydrateLocked(j model.Job) model.Job {
	if c, ok := m.companies[j.Company.ID]; ok {
		j.Company = c
	}
	j.Responsibilities = append([]string{}, j.Responsibilities...)
	j.Qualifications = append([]string{}, j.Qualifications...)
	return j
}

func copyRecord(r *UserRecord) *UserRecord {
	c := *r
	c.User = *r.User.Clone()
	return &c
}

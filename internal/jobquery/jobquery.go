// Package jobquery defines how a set of job filters matches a listing. The
// same Filters value is the predicate input for local matching and the query
// string sent to the remote API.
package jobquery

import (
	"fmt"
	"net/url"
	"strings"

	apperrors "greenjobs/internal/errors"
	"greenjobs/internal/model"
)

// Wire parameter names.
const (
	ParamTitle    = "title"
	ParamLocation = "location"
	ParamSector   = "sector"
	ParamWorkType = "workType"
)

// Filters constrains a job listing. A zero field places no constraint.
type Filters struct {
	Title    string
	Location string
	Sector   model.Sector
	WorkType model.WorkType
}

// IsZero reports whether f constrains nothing.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// Matches reports whether job satisfies every set field of f.
func (f Filters) Matches(job model.Job) bool {
	if f.Title != "" && !containsFold(job.Title, f.Title) {
		return false
	}
	if f.Location != "" && !containsFold(job.Location, f.Location) {
		return false
	}
	if f.Sector != "" && job.Sector != f.Sector {
		return false
	}
	if f.WorkType != "" && job.WorkType != f.WorkType {
		return false
	}
	return true
}

// Params encodes f as query parameters. Unset fields are still present
// with an empty value; the client drops them before sending.
func (f Filters) Params() map[string]string {
	return map[string]string{
		ParamTitle:    f.Title,
		ParamLocation: f.Location,
		ParamSector:   string(f.Sector),
		ParamWorkType: string(f.WorkType),
	}
}

// Apply returns the jobs that match f, in their original order. The
// result is never nil.
func Apply(jobs []model.Job, f Filters) []model.Job {
	out := make([]model.Job, 0, len(jobs))
	for _, j := range jobs {
		if f.Matches(j) {
			out = append(out, j)
		}
	}
	return out
}

// FromQuery decodes filters from a request query string.
func FromQuery(q url.Values) (Filters, error) {
	f := Filters{
		Title:    strings.TrimSpace(q.Get(ParamTitle)),
		Location: strings.TrimSpace(q.Get(ParamLocation)),
	}
	if s := q.Get(ParamSector); s != "" {
		sec, err := model.ParseSector(s)
		if err != nil {
			return Filters{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidFilter, err)
		}
		f.Sector = sec
	}
	if w := q.Get(ParamWorkType); w != "" {
		wt, err := model.ParseWorkType(w)
		if err != nil {
			return Filters{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidFilter, err)
		}
		f.WorkType = wt
	}
	return f, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

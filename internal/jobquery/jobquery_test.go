package jobquery

import (
	"errors"
	"math/rand"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "greenjobs/internal/errors"
	"greenjobs/internal/model"
)

func job(id, title, location string, sector model.Sector, wt model.WorkType) model.Job {
	return model.Job{ID: id, Title: title, Location: location, Sector: sector, WorkType: wt}
}

func TestApply_AnalystESGScenario(t *testing.T) {
	jobs := []model.Job{
		job("a", "ESG Analyst", "New York, NY", model.SectorESG, model.WorkTypeHybrid),
		job("b", "Project Manager", "New York, NY", model.SectorESG, model.WorkTypeHybrid),
	}
	got := Apply(jobs, Filters{Title: "Analyst", Sector: model.SectorESG})
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestFilters_Matches(t *testing.T) {
	j := job("job1", "Solar Panel Technician", "Austin, TX", model.SectorRenewableEnergy, model.WorkTypeOnSite)

	tests := []struct {
		name    string
		filters Filters
		want    bool
	}{
		{"empty filter matches", Filters{}, true},
		{"title case-insensitive", Filters{Title: "solar PANEL"}, true},
		{"title miss", Filters{Title: "wind"}, false},
		{"location substring", Filters{Location: "austin"}, true},
		{"location miss", Filters{Location: "Denver"}, false},
		{"sector exact", Filters{Sector: model.SectorRenewableEnergy}, true},
		{"sector miss", Filters{Sector: model.SectorESG}, false},
		{"work type exact", Filters{WorkType: model.WorkTypeOnSite}, true},
		{"work type miss", Filters{WorkType: model.WorkTypeRemote}, false},
		{"all fields", Filters{Title: "tech", Location: "TX", Sector: model.SectorRenewableEnergy, WorkType: model.WorkTypeOnSite}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filters.Matches(j))
		})
	}
}

func TestApply_EmptyInputNeverNil(t *testing.T) {
	got := Apply(nil, Filters{Title: "x"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

var (
	titleWords    = []string{"Solar", "Wind", "Analyst", "Manager", "Ranger", "Engineer", "ESG", "Consultant"}
	locationWords = []string{"Austin, TX", "Denver, CO", "Remote", "New York, NY", "Chicago, IL"}
)

func randomJob(r *rand.Rand, id int) model.Job {
	title := titleWords[r.Intn(len(titleWords))] + " " + titleWords[r.Intn(len(titleWords))]
	return model.Job{
		ID:       string(rune('a' + id%26)),
		Title:    title,
		Location: locationWords[r.Intn(len(locationWords))],
		Sector:   model.Sectors[r.Intn(len(model.Sectors))],
		WorkType: model.WorkTypes[r.Intn(len(model.WorkTypes))],
	}
}

func randomFilters(r *rand.Rand) Filters {
	var f Filters
	if r.Intn(2) == 0 {
		w := titleWords[r.Intn(len(titleWords))]
		if r.Intn(2) == 0 {
			w = strings.ToLower(w)
		}
		f.Title = w[:1+r.Intn(len(w))]
	}
	if r.Intn(2) == 0 {
		l := locationWords[r.Intn(len(locationWords))]
		f.Location = strings.ToUpper(l[:1+r.Intn(len(l))])
	}
	if r.Intn(3) == 0 {
		f.Sector = model.Sectors[r.Intn(len(model.Sectors))]
	}
	if r.Intn(3) == 0 {
		f.WorkType = model.WorkTypes[r.Intn(len(model.WorkTypes))]
	}
	return f
}

// reference is an independent statement of the matching rule.
func reference(j model.Job, f Filters) bool {
	lower := strings.ToLower
	return (f.Title == "" || strings.Index(lower(j.Title), lower(f.Title)) >= 0) &&
		(f.Location == "" || strings.Index(lower(j.Location), lower(f.Location)) >= 0) &&
		(f.Sector == "" || j.Sector == f.Sector) &&
		(f.WorkType == "" || j.WorkType == f.WorkType)
}

func TestApply_Property(t *testing.T) {
	r := rand.New(rand.NewSource(20240601))
	for iter := 0; iter < 500; iter++ {
		n := r.Intn(12)
		jobs := make([]model.Job, n)
		for i := range jobs {
			jobs[i] = randomJob(r, i)
		}
		f := randomFilters(r)

		got := Apply(jobs, f)

		var want []model.Job
		for _, j := range jobs {
			if reference(j, f) {
				want = append(want, j)
			}
		}
		if len(want) == 0 {
			assert.Empty(t, got, "iteration %d filters %+v", iter, f)
			continue
		}
		assert.Equal(t, want, got, "iteration %d filters %+v", iter, f)
	}
}

func TestFromQuery(t *testing.T) {
	f, err := FromQuery(url.Values{
		"title":    {" Analyst "},
		"sector":   {"ESG"},
		"workType": {"Remote"},
	})
	require.NoError(t, err)
	assert.Equal(t, Filters{Title: "Analyst", Sector: model.SectorESG, WorkType: model.WorkTypeRemote}, f)

	_, err = FromQuery(url.Values{"sector": {"Mining"}})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidFilter))

	_, err = FromQuery(url.Values{"workType": {"Onsite"}})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidFilter))
}

func TestFilters_ParamsRoundTrip(t *testing.T) {
	f := Filters{Title: "Ranger", WorkType: model.WorkTypeOnSite}
	q := url.Values{}
	for k, v := range f.Params() {
		if v != "" {
			q.Set(k, v)
		}
	}
	assert.Equal(t, "Ranger", q.Get(ParamTitle))
	assert.False(t, q.Has(ParamSector))

	back, err := FromQuery(q)
	require.NoError(t, err)
	assert.Equal(t, f, back)
	assert.False(t, back.IsZero())
	assert.True(t, Filters{}.IsZero())
}

package repository

import (
	"context"

	"greenjobs/internal/model"
)

// RedirectRepository stores per-job click-through counters.
type RedirectRepository interface {
	// Increment adds one click for jobID, creating the counter at 1.
	Increment(ctx context.Context, jobID, jobTitle string) (model.RedirectStat, error)
	// Put overwrites the counter for stat.JobID.
	Put(ctx context.Context, stat model.RedirectStat) error
	List(ctx context.Context) ([]model.RedirectStat, error)
}

type redirectRepository struct {
	mem *Memory
}

// NewRedirectRepository builds a repository over mem.
func NewRedirectRepository(mem *Memory) RedirectRepository {
	return &redirectRepository{mem: mem}
}

func (r *redirectRepository) Increment(ctx context.Context, jobID, jobTitle string) (model.RedirectStat, error) {
	r.mem.mu.Lock()
	defer r.mem.mu.Unlock()
	for i := range r.mem.redirects {
		if r.mem.redirects[i].JobID == jobID {
			r.mem.redirects[i].Clicks++
			return r.mem.redirects[i], nil
		}
	}
	stat := model.RedirectStat{JobID: jobID, JobTitle: jobTitle, Clicks: 1}
	r.mem.redirects = append(r.mem.redirects, stat)
	return stat, nil
}

func (r *redirectRepository) Put(ctx context.Context, stat model.RedirectStat) error {
	r.mem.mu.Lock()
	defer r.mem.mu.Unlock()
	for i := range r.mem.redirects {
		if r.mem.redirects[i].JobID == stat.JobID {
			r.mem.redirects[i] = stat
			return nil
		}
	}
	r.mem.redirects = append(r.mem.redirects, stat)
	return nil
}

func (r *redirectRepository) List(ctx context.Context) ([]model.RedirectStat, error) {
	r.mem.mu.RLock()
	defer r.mem.mu.RUnlock()
	return append([]model.RedirectStat{}, r.mem.redirects...), nil
}

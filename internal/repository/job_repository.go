package repository

import (
	"context"
	"fmt"
	"sort"

	apperrors "greenjobs/internal/errors"
	"greenjobs/internal/model"
)

// JobRepository defines job persistence operations.
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	// List returns every job, newest posting first.
	List(ctx context.Context) ([]model.Job, error)
	FindByID(ctx context.Context, id string) (*model.Job, error)
	ListByCompany(ctx context.Context, companyID string) ([]model.Job, error)
	Count(ctx context.Context) (int, error)
}

type jobRepository struct {
	mem *Memory
}

// NewJobRepository builds a repository over mem.
func NewJobRepository(mem *Memory) JobRepository {
	return &jobRepository{mem: mem}
}

func (r *jobRepository) Create(ctx context.Context, job *model.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}
	r.mem.mu.Lock()
	defer r.mem.mu.Unlock()
	if _, ok := r.mem.companies[job.Company.ID]; !ok {
		return fmt.Errorf("create job %s: %w", job.ID, apperrors.ErrCompanyNotFound)
	}
	stored := *job
	stored.Company = model.Company{ID: job.Company.ID}
	r.mem.jobs = append(r.mem.jobs, stored)
	return nil
}

func (r *jobRepository) List(ctx context.Context) ([]model.Job, error) {
	return r.filter(func(model.Job) bool { return true }), nil
}

func (r *jobRepository) FindByID(ctx context.Context, id string) (*model.Job, error) {
	r.mem.mu.RLock()
	defer r.mem.mu.RUnlock()
	for _, j := range r.mem.jobs {
		if j.ID == id {
			out := r.mem.hydrateLocked(j)
			return &out, nil
		}
	}
	return nil, apperrors.ErrJobNotFound
}

func (r *jobRepository) ListByCompany(ctx context.Context, companyID string) ([]model.Job, error) {
	return r.filter(func(j model.Job) bool { return j.Company.ID == companyID }), nil
}

func (r *jobRepository) Count(ctx context.Context) (int, error) {
	r.mem.mu.RLock()
	defer r.mem.mu.RUnlock()
	return len(r.mem.jobs), nil
}

func (r *jobRepository) filter(keep func(model.Job) bool) []model.Job {
	r.mem.mu.RLock()
	defer r.mem.mu.RUnlock()
	out := make([]model.Job, 0, len(r.mem.jobs))
	for _, j := range r.mem.jobs {
		if keep(j) {
			out = append(out, r.mem.hydrateLocked(j))
		}
	}
	// postedDate is ISO 8601, so string order is date order
	sort.SliceStable(out, func(a, b int) bool { return out[a].PostedDate > out[b].PostedDate })
	return out
}

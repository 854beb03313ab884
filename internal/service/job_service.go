package service

import (
	"context"
	"fmt"

	apperrors "greenjobs/internal/errors"
	"greenjobs/internal/jobquery"
	"greenjobs/internal/model"
	"greenjobs/internal/repository"
)

// FeaturedLimit is how many jobs the landing page shows.
const FeaturedLimit = 4

// JobService serves listings, companies and redirect tracking.
type JobService interface {
	List(ctx context.Context, f jobquery.Filters) ([]model.Job, error)
	Featured(ctx context.Context) ([]model.Job, error)
	Get(ctx context.Context, id string) (*model.Job, error)
	TrackRedirect(ctx context.Context, jobID string) (model.RedirectStat, error)
	Company(ctx context.Context, id string) (*model.Company, error)
	// EmployerJobs lists the jobs of the employer's company.
	EmployerJobs(ctx context.Context, employer *model.User) ([]model.Job, error)
}

type jobService struct {
	jobs      repository.JobRepository
	companies repository.CompanyRepository
	redirects repository.RedirectRepository
}

// NewJobService creates a new job service.
func NewJobService(jobs repository.JobRepository, companies repository.CompanyRepository, redirects repository.RedirectRepository) JobService {
	return &jobService{jobs: jobs, companies: companies, redirects: redirects}
}

func (s *jobService) List(ctx context.Context, f jobquery.Filters) ([]model.Job, error) {
	all, err := s.jobs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobquery.Apply(all, f), nil
}

func (s *jobService) Featured(ctx context.Context) ([]model.Job, error) {
	all, err := s.jobs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	if len(all) > FeaturedLimit {
		all = all[:FeaturedLimit]
	}
	return all, nil
}

func (s *jobService) Get(ctx context.Context, id string) (*model.Job, error) {
	return s.jobs.FindByID(ctx, id)
}

func (s *jobService) TrackRedirect(ctx context.Context, jobID string) (model.RedirectStat, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return model.RedirectStat{}, err
	}
	return s.redirects.Increment(ctx, job.ID, job.Title)
}

func (s *jobService) Company(ctx context.Context, id string) (*model.Company, error) {
	return s.companies.FindByID(ctx, id)
}

func (s *jobService) EmployerJobs(ctx context.Context, employer *model.User) ([]model.Job, error) {
	companyID, ok := employer.CompanyID()
	if !ok {
		return nil, apperrors.ErrEmployerOnly
	}
	if companyID == "" {
		return []model.Job{}, nil
	}
	return s.jobs.ListByCompany(ctx, companyID)
}

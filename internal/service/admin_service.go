package service

import (
	"context"
	"fmt"

	"greenjobs/internal/model"
	"greenjobs/internal/repository"
)

// AdminService exposes platform-wide operations.
type AdminService interface {
	Stats(ctx context.Context) (*model.AdminStats, error)
	VerifyCompany(ctx context.Context, companyID string) (*model.Company, error)
}

type adminService struct {
	jobs      repository.JobRepository
	companies repository.CompanyRepository
	users     repository.UserRepository
	redirects repository.RedirectRepository
}

// NewAdminService creates a new admin service.
func NewAdminService(
	jobs repository.JobRepository,
	companies repository.CompanyRepository,
	users repository.UserRepository,
	redirects repository.RedirectRepository,
) AdminService {
	return &adminService{jobs: jobs, companies: companies, users: users, redirects: redirects}
}

func (s *adminService) Stats(ctx context.Context) (*model.AdminStats, error) {
	jobs, err := s.jobs.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}
	companies, err := s.companies.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count companies: %w", err)
	}
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	redirects, err := s.redirects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list redirects: %w", err)
	}
	return &model.AdminStats{
		TotalJobs:      jobs,
		TotalCompanies: companies,
		TotalUsers:     users,
		Redirects:      redirects,
	}, nil
}

// VerifyCompany marks a company verified. Verifying twice is not an error.
func (s *adminService) VerifyCompany(ctx context.Context, companyID string) (*model.Company, error) {
	return s.companies.SetVerified(ctx, companyID, true)
}

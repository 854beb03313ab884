package repository

import (
	"context"
	"fmt"

	apperrors "greenjobs/internal/errors"
	"greenjobs/internal/model"
)

// CompanyRepository defines company persistence operations.
type CompanyRepository interface {
	Create(ctx context.Context, company *model.Company) error
	FindByID(ctx context.Context, id string) (*model.Company, error)
	SetVerified(ctx context.Context, id string, verified bool) (*model.Company, error)
	Count(ctx context.Context) (int, error)
}

type companyRepository struct {
	mem *Memory
}

// NewCompanyRepository builds a repository over mem.
func NewCompanyRepository(mem *Memory) CompanyRepository {
	return &companyRepository{mem: mem}
}

func (r *companyRepository) Create(ctx context.Context, company *model.Company) error {
	r.mem.mu.Lock()
	defer r.mem.mu.Unlock()
	if _, exists := r.mem.companies[company.ID]; exists {
		return fmt.Errorf("company %s already exists", company.ID)
	}
	r.mem.companies[company.ID] = *company
	r.mem.companyOrder = append(r.mem.companyOrder, company.ID)
	return nil
}

func (r *companyRepository) FindByID(ctx context.Context, id string) (*model.Company, error) {
	r.mem.mu.RLock()
	defer r.mem.mu.RUnlock()
	c, ok := r.mem.companies[id]
	if !ok {
		return nil, apperrors.ErrCompanyNotFound
	}
	return &c, nil
}

func (r *companyRepository) SetVerified(ctx context.Context, id string, verified bool) (*model.Company, error) {
	r.mem.mu.Lock()
	defer r.mem.mu.Unlock()
	c, ok := r.mem.companies[id]
	if !ok {
		return nil, apperrors.ErrCompanyNotFound
	}
	c.IsVerified = verified
	r.mem.companies[id] = c
	return &c, nil
}

func (r *companyRepository) Count(ctx context.Context) (int, error) {
	r.mem.mu.RLock()
	defer r.mem.mu.RUnlock()
	return len(r.mem.companies), nil
}

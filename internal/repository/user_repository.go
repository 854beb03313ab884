package repository

import (
	"context"
	"strings"

	apperrors "greenjobs/internal/errors"
	"greenjobs/internal/model"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, rec *UserRecord) error
	FindByID(ctx context.Context, id string) (*UserRecord, error)
	FindByEmail(ctx context.Context, email string) (*UserRecord, error)
	// FirstByRole returns the earliest created user with role.
	FirstByRole(ctx context.Context, role model.Role) (*UserRecord, error)
	UpdateProfile(ctx context.Context, id string, upd model.ProfileUpdate) (*UserRecord, error)
	Count(ctx context.Context) (int, error)
}

type userRepository struct {
	mem *Memory
}

// NewUserRepository builds a repository over mem.
func NewUserRepository(mem *Memory) UserRepository {
	return &userRepository{mem: mem}
}

func (r *userRepository) Create(ctx context.Context, rec *UserRecord) error {
	r.mem.mu.Lock()
	defer r.mem.mu.Unlock()
	if r.findByEmailLocked(rec.User.Email) != nil {
		return apperrors.ErrEmailTaken
	}
	r.mem.users[rec.User.ID] = copyRecord(rec)
	r.mem.userOrder = append(r.mem.userOrder, rec.User.ID)
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*UserRecord, error) {
	r.mem.mu.RLock()
	defer r.mem.mu.RUnlock()
	rec, ok := r.mem.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return copyRecord(rec), nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*UserRecord, error) {
	r.mem.mu.RLock()
	defer r.mem.mu.RUnlock()
	rec := r.findByEmailLocked(email)
	if rec == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return copyRecord(rec), nil
}

func (r *userRepository) findByEmailLocked(email string) *UserRecord {
	for _, id := range r.mem.userOrder {
		rec := r.mem.users[id]
		if strings.EqualFold(rec.User.Email, email) {
			return rec
		}
	}
	return nil
}

func (r *userRepository) FirstByRole(ctx context.Context, role model.Role) (*UserRecord, error) {
	r.mem.mu.RLock()
	defer r.mem.mu.RUnlock()
	for _, id := range r.mem.userOrder {
		if rec := r.mem.users[id]; rec.User.Role() == role {
			return copyRecord(rec), nil
		}
	}
	return nil, apperrors.ErrNoUserForRole
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, upd model.ProfileUpdate) (*UserRecord, error) {
	r.mem.mu.Lock()
	defer r.mem.mu.Unlock()
	rec, ok := r.mem.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	profile, ok := rec.User.Profile()
	if !ok {
		return nil, apperrors.ErrEmployeesOnly
	}
	rec.User.Details = model.EmployeeDetails{Profile: upd.ApplyTo(profile)}
	return copyRecord(rec), nil
}

func (r *userRepository) Count(ctx context.Context) (int, error) {
	r.mem.mu.RLock()
	defer r.mem.mu.RUnlock()
	return len(r.mem.users), nil
}

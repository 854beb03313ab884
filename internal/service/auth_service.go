package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"greenjobs/internal/auth"
	apperrors "greenjobs/internal/errors"
	"greenjobs/internal/model"
	"greenjobs/internal/repository"
)

const bcryptCost = 10

const defaultCompanyLogo = "https://picsum.photos/seed/company/100"

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, data model.RegisterData) (*model.AuthResponse, error)
	Login(ctx context.Context, creds model.LoginData) (*model.AuthResponse, error)
	SocialLogin(ctx context.Context, role model.Role) (*model.AuthResponse, error)
	// Authenticate resolves a bearer token to its user.
	Authenticate(ctx context.Context, token string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, upd model.ProfileUpdate) (*model.User, error)
}

type authService struct {
	users      repository.UserRepository
	companies  repository.CompanyRepository
	jwtService *auth.JWTService
	admin      AdminAccount
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, companies repository.CompanyRepository, jwtService *auth.JWTService, admin AdminAccount) AuthService {
	return &authService{
		users:      users,
		companies:  companies,
		jwtService: jwtService,
		admin:      admin,
	}
}

func newID() string {
	return uuid.NewString()
}

// Register creates an employee or employer account. Employers either link
// an existing company or create an unverified one.
func (s *authService) Register(ctx context.Context, data model.RegisterData) (*model.AuthResponse, error) {
	if data.Role == model.RoleAdmin {
		return nil, apperrors.ErrAdminRegistration
	}
	if !data.Role.Valid() {
		return nil, apperrors.NewHTTPError(http.StatusUnprocessableEntity, fmt.Sprintf("unknown role %q", data.Role))
	}
	if _, err := s.users.FindByEmail(ctx, data.Email); err == nil {
		return nil, apperrors.ErrEmailTaken
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, fmt.Errorf("check account existence: %w", err)
	}

	user := model.User{ID: newID(), Name: data.Name, Email: data.Email}
	switch data.Role {
	case model.RoleEmployee:
		user.Details = model.EmployeeDetails{Profile: model.EmployeeProfile{
			Skills:     []string{},
			Experience: []model.Experience{},
			Education:  []model.Education{},
		}}
	case model.RoleEmployer:
		companyID, err := s.employerCompany(ctx, data)
		if err != nil {
			return nil, err
		}
		user.Details = model.EmployerDetails{CompanyID: companyID}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.Create(ctx, &repository.UserRecord{User: user, PasswordHash: string(hashedPassword)}); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return s.issue(user)
}

func (s *authService) employerCompany(ctx context.Context, data model.RegisterData) (string, error) {
	if data.Company != nil && strings.TrimSpace(data.Company.Name) != "" {
		company := &model.Company{
			ID:          newID(),
			Name:        strings.TrimSpace(data.Company.Name),
			Logo:        defaultCompanyLogo,
			Description: data.Company.Description,
			Website:     data.Company.Website,
			IsVerified:  false,
		}
		if err := s.companies.Create(ctx, company); err != nil {
			return "", fmt.Errorf("create company: %w", err)
		}
		return company.ID, nil
	}
	id := strings.TrimSpace(data.CompanyID)
	if id == "" {
		return "", apperrors.ErrEmployerCompany
	}
	if _, err := s.companies.FindByID(ctx, id); err != nil {
		return "", err
	}
	return id, nil
}

// Login authenticates with email and password. The configured admin
// credentials are accepted as is.
func (s *authService) Login(ctx context.Context, creds model.LoginData) (*model.AuthResponse, error) {
	if s.admin.Email != "" && creds.Email == s.admin.Email && creds.Password == s.admin.Password {
		if rec, err := s.users.FindByEmail(ctx, s.admin.Email); err == nil {
			return s.issue(rec.User)
		}
	}

	rec, err := s.users.FindByEmail(ctx, creds.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return s.issue(rec.User)
}

// SocialLogin signs in as the first account with role.
func (s *authService) SocialLogin(ctx context.Context, role model.Role) (*model.AuthResponse, error) {
	if role == "" {
		role = model.RoleEmployee
	}
	if role == model.RoleAdmin {
		return nil, apperrors.ErrAdminSocialLogin
	}
	rec, err := s.users.FirstByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	return s.issue(rec.User)
}

func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	rec, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	return &rec.User, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID string, upd model.ProfileUpdate) (*model.User, error) {
	rec, err := s.users.UpdateProfile(ctx, userID, upd)
	if err != nil {
		return nil, err
	}
	return &rec.User, nil
}

func (s *authService) issue(user model.User) (*model.AuthResponse, error) {
	token, err := s.jwtService.GenerateAccessToken(user.ID, user.Role())
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	return &model.AuthResponse{AccessToken: token, TokenType: "bearer", User: user}, nil
}

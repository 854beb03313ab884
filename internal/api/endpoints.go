package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"greenjobs/internal/jobquery"
	"greenjobs/internal/model"
)

// ErrNoToken is returned when a credential exchange succeeds but the
// response carries no access token.
var ErrNoToken = errors.New("authentication response carried no access token")

// RegisterRequest is the wire form of a registration. The company link is
// always sent as company_id.
type RegisterRequest struct {
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Password  string               `json:"password"`
	Role      model.Role           `json:"role"`
	CompanyID *string              `json:"company_id"`
	Company   *model.CompanyCreate `json:"company,omitempty"`
}

// RegisterPayload maps caller-side registration data to the wire form.
// A blank company description is filled with "<name> verified organization".
func RegisterPayload(d model.RegisterData) RegisterRequest {
	req := RegisterRequest{
		Name:     d.Name,
		Email:    d.Email,
		Password: d.Password,
		Role:     d.Role,
	}
	if id := strings.TrimSpace(d.CompanyID); id != "" {
		req.CompanyID = &id
	}
	if d.Company != nil {
		c := *d.Company
		if strings.TrimSpace(c.Description) == "" {
			c.Description = strings.TrimSpace(c.Name) + " verified organization"
		}
		req.Company = &c
	}
	return req
}

func (c *Client) authExchange(ctx context.Context, path string, body any) (*model.AuthResponse, error) {
	var out model.AuthResponse
	if err := c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrNoToken)
	}
	return &out, nil
}

// Login exchanges email and password for a token.
func (c *Client) Login(ctx context.Context, creds model.LoginData) (*model.AuthResponse, error) {
	return c.authExchange(ctx, "/auth/login", creds)
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, data model.RegisterData) (*model.AuthResponse, error) {
	return c.authExchange(ctx, "/auth/register", RegisterPayload(data))
}

// LoginWithGoogle performs the social sign-in for the given role.
func (c *Client) LoginWithGoogle(ctx context.Context, role model.Role) (*model.AuthResponse, error) {
	return c.authExchange(ctx, "/auth/google", model.SocialLoginRequest{Role: role})
}

// CurrentUser fetches the user the current token belongs to.
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var u model.User
	if err := c.Do(ctx, Request{Path: "/auth/me"}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile sends a partial profile update and returns the server's copy.
func (c *Client) UpdateProfile(ctx context.Context, upd model.ProfileUpdate) (*model.User, error) {
	var u model.User
	if err := c.Do(ctx, Request{Method: http.MethodPut, Path: "/auth/profile", Body: upd}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListJobs lists jobs matching f.
func (c *Client) ListJobs(ctx context.Context, f jobquery.Filters) ([]model.Job, error) {
	req := Request{Path: "/jobs"}
	if !f.IsZero() {
		req.Query = f.Params()
	}
	jobs := []model.Job{}
	if err := c.Do(ctx, req, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// FeaturedJobs returns the landing page selection.
func (c *Client) FeaturedJobs(ctx context.Context) ([]model.Job, error) {
	jobs := []model.Job{}
	if err := c.Do(ctx, Request{Path: "/jobs/featured"}, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetJob fetches one job.
func (c *Client) GetJob(ctx context.Context, id string) (*model.Job, error) {
	var j model.Job
	if err := c.Do(ctx, Request{Path: "/jobs/" + url.PathEscape(id)}, &j); err != nil {
		return nil, err
	}
	return &j, nil
}

// TrackRedirect records one click through to a third-party listing.
func (c *Client) TrackRedirect(ctx context.Context, jobID string) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: "/jobs/" + url.PathEscape(jobID) + "/track-redirect"}, nil)
}

// GetCompany fetches one company.
func (c *Client) GetCompany(ctx context.Context, id string) (*model.Company, error) {
	var co model.Company
	if err := c.Do(ctx, Request{Path: "/companies/" + url.PathEscape(id)}, &co); err != nil {
		return nil, err
	}
	return &co, nil
}

// VerifyCompany marks a company verified. Admin only.
func (c *Client) VerifyCompany(ctx context.Context, id string) (*model.Company, error) {
	var co model.Company
	if err := c.Do(ctx, Request{Method: http.MethodPost, Path: "/admin/companies/" + url.PathEscape(id) + "/verify"}, &co); err != nil {
		return nil, err
	}
	return &co, nil
}

// EmployerJobs lists the jobs of the caller's company. Employer only.
func (c *Client) EmployerJobs(ctx context.Context) ([]model.Job, error) {
	jobs := []model.Job{}
	if err := c.Do(ctx, Request{Path: "/employer/jobs"}, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// AdminStats returns aggregate counts. Admin only.
func (c *Client) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	var s model.AdminStats
	if err := c.Do(ctx, Request{Path: "/admin/stats"}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// StartApplication begins applying to job. For third-party listings the
// click is tracked and the external address returned; the address is
// returned even when tracking fails so the caller can still redirect.
// In-app listings return an empty address.
func (c *Client) StartApplication(ctx context.Context, job model.Job) (string, error) {
	if !job.IsThirdParty {
		return "", nil
	}
	if !job.RequiresRedirect() {
		return "", fmt.Errorf("job %s: %w", job.ID, model.ErrMissingRedirect)
	}
	if err := c.TrackRedirect(ctx, job.ID); err != nil {
		return job.RedirectURL, fmt.Errorf("track redirect for %s: %w", job.ID, err)
	}
	return job.RedirectURL, nil
}

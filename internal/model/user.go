package model

import (
	"encoding/json"
	"fmt"
)

// Role identifies what an authenticated user is allowed to do.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleEmployer Role = "employer"
	RoleAdmin    Role = "admin"
)

// ParseRole converts a raw string to a Role, returning an error for unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleEmployer, RoleAdmin:
		return true
	}
	return false
}

// RoleDetails carries the role-specific part of a User. The set of
// implementations is closed: EmployeeDetails, EmployerDetails, AdminDetails.
type RoleDetails interface {
	Role() Role
	roleDetails()
}

// EmployeeDetails holds the job seeker profile.
type EmployeeDetails struct {
	Profile EmployeeProfile
}

// EmployerDetails links an employer to the company it posts for.
type EmployerDetails struct {
	CompanyID string
}

// AdminDetails carries nothing; admins have neither profile nor company.
type AdminDetails struct{}

func (EmployeeDetails) Role() Role { return RoleEmployee }
func (EmployerDetails) Role() Role { return RoleEmployer }
func (AdminDetails) Role() Role    { return RoleAdmin }

func (EmployeeDetails) roleDetails() {}
func (EmployerDetails) roleDetails() {}
func (AdminDetails) roleDetails()    {}

// User is the identity record owned by the API. Clients hold a cached copy.
type User struct {
	ID             string
	Name           string
	Email          string
	ProfilePicture string
	Details        RoleDetails
}

// Role returns the user's role, or "" when Details is unset.
func (u User) Role() Role {
	if u.Details == nil {
		return ""
	}
	return u.Details.Role()
}

// Profile returns the employee profile; ok is false for other roles.
func (u User) Profile() (EmployeeProfile, bool) {
	d, ok := u.Details.(EmployeeDetails)
	if !ok {
		return EmployeeProfile{}, false
	}
	return d.Profile, true
}

// CompanyID returns the employer's company; ok is false for other roles.
func (u User) CompanyID() (string, bool) {
	d, ok := u.Details.(EmployerDetails)
	if !ok {
		return "", false
	}
	return d.CompanyID, true
}

// Clone returns a copy of u that shares no slices with it.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if d, ok := u.Details.(EmployeeDetails); ok {
		d.Profile = d.Profile.Clone()
		c.Details = d
	}
	return &c
}

type userWire struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Role           Role             `json:"role"`
	ProfilePicture string           `json:"profilePicture,omitempty"`
	Profile        *EmployeeProfile `json:"profile,omitempty"`
	CompanyID      *string          `json:"companyId,omitempty"`
}

// MarshalJSON writes the flat wire shape used by the API.
func (u User) MarshalJSON() ([]byte, error) {
	w := userWire{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role(),
		ProfilePicture: u.ProfilePicture,
	}
	switch d := u.Details.(type) {
	case EmployeeDetails:
		p := d.Profile
		w.Profile = &p
	case EmployerDetails:
		if d.CompanyID != "" {
			id := d.CompanyID
			w.CompanyID = &id
		}
	case AdminDetails:
	default:
		return nil, fmt.Errorf("user %s: missing role details", u.ID)
	}
	return json.Marshal(w)
}

// UnmarshalJSON reads the wire shape. Fields that do not belong to the
// user's role (a profile on an admin, a company on an employee) are dropped.
func (u *User) UnmarshalJSON(b []byte) error {
	var w userWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	var details RoleDetails
	switch w.Role {
	case RoleEmployee:
		d := EmployeeDetails{}
		if w.Profile != nil {
			d.Profile = *w.Profile
		}
		details = d
	case RoleEmployer:
		d := EmployerDetails{}
		if w.CompanyID != nil {
			d.CompanyID = *w.CompanyID
		}
		details = d
	case RoleAdmin:
		details = AdminDetails{}
	default:
		return fmt.Errorf("user %s: unknown role %q", w.ID, w.Role)
	}
	*u = User{
		ID:             w.ID,
		Name:           w.Name,
		Email:          w.Email,
		ProfilePicture: w.ProfilePicture,
		Details:        details,
	}
	return nil
}

package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Sector is the industry a job belongs to.
type Sector string

const (
	SectorRenewableEnergy          Sector = "Renewable Energy"
	SectorSustainabilityConsulting Sector = "Sustainability Consulting"
	SectorConservation             Sector = "Conservation"
	SectorESG                      Sector = "ESG"
	SectorNonProfit                Sector = "Non-Profit"
	SectorGreenTech                Sector = "Green Tech"
)

// Sectors lists every known sector in display order.
var Sectors = []Sector{
	SectorRenewableEnergy,
	SectorSustainabilityConsulting,
	SectorConservation,
	SectorESG,
	SectorNonProfit,
	SectorGreenTech,
}

func (s Sector) Valid() bool {
	for _, known := range Sectors {
		if s == known {
			return true
		}
	}
	return false
}

// ParseSector converts a raw string to a Sector.
func ParseSector(s string) (Sector, error) {
	sec := Sector(s)
	if !sec.Valid() {
		return "", fmt.Errorf("unknown sector %q", s)
	}
	return sec, nil
}

// WorkType describes where the work happens.
type WorkType string

const (
	WorkTypeRemote WorkType = "Remote"
	WorkTypeHybrid WorkType = "Hybrid"
	WorkTypeOnSite WorkType = "On-site"
)

var WorkTypes = []WorkType{WorkTypeRemote, WorkTypeHybrid, WorkTypeOnSite}

func (w WorkType) Valid() bool {
	for _, known := range WorkTypes {
		if w == known {
			return true
		}
	}
	return false
}

// ParseWorkType converts a raw string to a WorkType.
func ParseWorkType(s string) (WorkType, error) {
	wt := WorkType(s)
	if !wt.Valid() {
		return "", fmt.Errorf("unknown work type %q", s)
	}
	return wt, nil
}

// Company is an organisation that posts jobs. IsVerified changes only
// through an admin action.
type Company struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Logo        string `json:"logo"`
	Description string `json:"description"`
	Website     string `json:"website"`
	IsVerified  bool   `json:"isVerified"`
}

// CompanyCreate is the company embedded in an employer registration.
type CompanyCreate struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Website     string `json:"website,omitempty"`
}

// SalaryRange is encoded on the wire as [min, max].
type SalaryRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// NewSalaryRange builds a range from whole amounts.
func NewSalaryRange(lo, hi int64) SalaryRange {
	return SalaryRange{Min: decimal.NewFromInt(lo), Max: decimal.NewFromInt(hi)}
}

func (r SalaryRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]json.Number{json.Number(r.Min.String()), json.Number(r.Max.String())})
}

func (r *SalaryRange) UnmarshalJSON(b []byte) error {
	var pair []json.Number
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("salary range: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("salary range: want 2 values, got %d", len(pair))
	}
	lo, err := decimal.NewFromString(pair[0].String())
	if err != nil {
		return fmt.Errorf("salary range min: %w", err)
	}
	hi, err := decimal.NewFromString(pair[1].String())
	if err != nil {
		return fmt.Errorf("salary range max: %w", err)
	}
	r.Min, r.Max = lo, hi
	return nil
}

var (
	ErrSalaryRange      = errors.New("salary range minimum exceeds maximum")
	ErrMissingRedirect  = errors.New("third-party job has no redirect url")
	ErrInvalidJobSector = errors.New("job has an unknown sector")
	ErrInvalidWorkType  = errors.New("job has an unknown work type")
)

// Job is a single listing.
type Job struct {
	ID               string      `json:"id"`
	Title            string      `json:"title"`
	Company          Company     `json:"company"`
	Location         string      `json:"location"`
	Sector           Sector      `json:"sector"`
	WorkType         WorkType    `json:"workType"`
	SalaryRange      SalaryRange `json:"salaryRange"`
	PostedDate       string      `json:"postedDate"`
	Description      string      `json:"description"`
	Responsibilities []string    `json:"responsibilities"`
	Qualifications   []string    `json:"qualifications"`
	IsThirdParty     bool        `json:"isThirdParty,omitempty"`
	RedirectURL      string      `json:"redirectUrl,omitempty"`
}

// Validate checks the invariants every listing must hold.
func (j Job) Validate() error {
	if j.SalaryRange.Min.GreaterThan(j.SalaryRange.Max) {
		return fmt.Errorf("job %s: %w", j.ID, ErrSalaryRange)
	}
	if j.IsThirdParty && strings.TrimSpace(j.RedirectURL) == "" {
		return fmt.Errorf("job %s: %w", j.ID, ErrMissingRedirect)
	}
	if !j.Sector.Valid() {
		return fmt.Errorf("job %s: %w", j.ID, ErrInvalidJobSector)
	}
	if !j.WorkType.Valid() {
		return fmt.Errorf("job %s: %w", j.ID, ErrInvalidWorkType)
	}
	return nil
}

// RequiresRedirect reports whether applying sends the user to an external site.
func (j Job) RequiresRedirect() bool {
	return j.IsThirdParty && j.RedirectURL != ""
}

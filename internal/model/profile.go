package model

import (
	"path/filepath"
	"strings"
)

// EmployeeProfile is the job seeker's resume data.
type EmployeeProfile struct {
	Summary    string       `json:"summary"`
	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	ResumeURL  string       `json:"resumeUrl,omitempty"`
}

// Clone copies the profile's slices. Nil slices stay nil.
func (p EmployeeProfile) Clone() EmployeeProfile {
	if p.Skills != nil {
		p.Skills = append([]string{}, p.Skills...)
	}
	if p.Experience != nil {
		p.Experience = append([]Experience{}, p.Experience...)
	}
	if p.Education != nil {
		p.Education = append([]Education{}, p.Education...)
	}
	return p
}

type Experience struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description"`
}

type Education struct {
	ID           string `json:"id"`
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	GradYear     string `json:"gradYear"`
}

// ProfileUpdate is a partial EmployeeProfile. Nil fields are left untouched
// by the server.
type ProfileUpdate struct {
	Summary    *string       `json:"summary,omitempty"`
	Skills     *[]string     `json:"skills,omitempty"`
	Experience *[]Experience `json:"experience,omitempty"`
	Education  *[]Education  `json:"education,omitempty"`
	ResumeURL  *string       `json:"resumeUrl,omitempty"`
}

// Empty reports whether the update carries no field at all.
func (p ProfileUpdate) Empty() bool {
	return p.Summary == nil && p.Skills == nil && p.Experience == nil && p.Education == nil && p.ResumeURL == nil
}

// ApplyTo merges the set fields of p into profile.
func (p ProfileUpdate) ApplyTo(profile EmployeeProfile) EmployeeProfile {
	if p.Summary != nil {
		profile.Summary = *p.Summary
	}
	if p.Skills != nil {
		profile.Skills = NormalizeSkills(*p.Skills)
	}
	if p.Experience != nil {
		profile.Experience = append([]Experience(nil), (*p.Experience)...)
	}
	if p.Education != nil {
		profile.Education = append([]Education(nil), (*p.Education)...)
	}
	if p.ResumeURL != nil {
		profile.ResumeURL = *p.ResumeURL
	}
	return profile
}

// NormalizeSkills trims entries, drops blanks and removes case-insensitive
// duplicates. The first spelling of each skill wins and order is kept.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

// ResumeURLFromPath echoes the local file name as the resume reference.
// Nothing is uploaded.
func ResumeURLFromPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}

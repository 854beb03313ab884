package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"greenjobs/internal/model"
	"greenjobs/internal/repository"
)

// DemoPassword is the password of every seeded demo account.
const DemoPassword = "password123"

// AdminAccount is the administrator provisioned from configuration.
type AdminAccount struct {
	Name     string
	Email    string
	Password string
}

// SeedService loads the demo data set.
type SeedService interface {
	Seed(ctx context.Context) error
}

type seedService struct {
	companies repository.CompanyRepository
	jobs      repository.JobRepository
	users     repository.UserRepository
	redirects repository.RedirectRepository
	admin     AdminAccount
}

// NewSeedService creates a new seed service.
func NewSeedService(
	companies repository.CompanyRepository,
	jobs repository.JobRepository,
	users repository.UserRepository,
	redirects repository.RedirectRepository,
	admin AdminAccount,
) SeedService {
	return &seedService{companies: companies, jobs: jobs, users: users, redirects: redirects, admin: admin}
}

// Seed inserts the demo companies, jobs, users and redirect counter. It is
// a no-op when jobs already exist. The configured admin is created when no
// user has its email.
func (s *seedService) Seed(ctx context.Context) error {
	n, err := s.jobs.Count(ctx)
	if err != nil {
		return fmt.Errorf("count jobs: %w", err)
	}
	if n > 0 {
		return nil
	}

	for _, c := range seedCompanies() {
		c := c
		if err := s.companies.Create(ctx, &c); err != nil {
			return fmt.Errorf("seed company %s: %w", c.ID, err)
		}
	}
	jobs := seedJobs()
	for i := range jobs {
		if err := s.jobs.Create(ctx, &jobs[i]); err != nil {
			return fmt.Errorf("seed job %s: %w", jobs[i].ID, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	for _, u := range seedUsers() {
		if err := s.users.Create(ctx, &repository.UserRecord{User: u, PasswordHash: string(hash)}); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}

	last := jobs[len(jobs)-1]
	if err := s.redirects.Put(ctx, model.RedirectStat{JobID: last.ID, JobTitle: last.Title, Clicks: 42}); err != nil {
		return fmt.Errorf("seed redirect stat: %w", err)
	}

	return s.ensureAdmin(ctx)
}

func (s *seedService) ensureAdmin(ctx context.Context) error {
	if s.admin.Email == "" {
		return nil
	}
	if _, err := s.users.FindByEmail(ctx, s.admin.Email); err == nil {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(s.admin.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	rec := &repository.UserRecord{
		User: model.User{
			ID:      newID(),
			Name:    s.admin.Name,
			Email:   s.admin.Email,
			Details: model.AdminDetails{},
		},
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, rec); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}

func seedCompanies() []model.Company {
	return []model.Company{
		{
			ID:          "comp1",
			Name:        "EcoSolutions Inc.",
			Logo:        "https://picsum.photos/seed/comp1/100",
			Description: "Pioneering sustainable solutions for a greener planet. We focus on renewable energy and waste reduction technologies.",
			Website:     "https://ecosolutions.example.com",
			IsVerified:  true,
		},
		{
			ID:          "comp2",
			Name:        "GreenScape Foundation",
			Logo:        "https://picsum.photos/seed/comp2/100",
			Description: "A non-profit dedicated to reforestation and biodiversity conservation projects worldwide.",
			Website:     "https://greenscape.example.org",
			IsVerified:  true,
		},
		{
			ID:          "comp3",
			Name:        "SustainaConsult",
			Logo:        "https://picsum.photos/seed/comp3/100",
			Description: "Expert ESG and sustainability consulting for forward-thinking corporations.",
			Website:     "https://sustainaconsult.example.com",
			IsVerified:  false,
		},
		{
			ID:          "comp4",
			Name:        "Global Energy Watch",
			Logo:        "https://picsum.photos/seed/comp4/100",
			Description: "Global renewable energy data analysis and insights.",
			Website:     "https://globalenergywatch.example.com",
			IsVerified:  true,
		},
	}
}

func seedJobs() []model.Job {
	return []model.Job{
		{
			ID:          "job1",
			Title:       "Solar Panel Technician",
			Company:     model.Company{ID: "comp1"},
			Location:    "Austin, TX",
			Sector:      model.SectorRenewableEnergy,
			WorkType:    model.WorkTypeOnSite,
			SalaryRange: model.NewSalaryRange(60000, 80000),
			PostedDate:  "2024-07-20",
			Description: "Install and maintain solar panels for residential and commercial clients. Join a team dedicated to expanding clean energy access.",
			Responsibilities: []string{
				"Assemble and install solar modules on rooftops and other structures.",
				"Perform maintenance and troubleshooting of solar energy systems.",
				"Ensure compliance with safety standards and building codes.",
			},
			Qualifications: []string{
				"Previous experience in solar installation or a related trade.",
				"NABCEP certification is a plus.",
				"Comfortable working at heights.",
			},
		},
		{
			ID:          "job2",
			Title:       "Conservation Project Manager",
			Company:     model.Company{ID: "comp2"},
			Location:    "Portland, OR",
			Sector:      model.SectorConservation,
			WorkType:    model.WorkTypeHybrid,
			SalaryRange: model.NewSalaryRange(75000, 95000),
			PostedDate:  "2024-07-18",
			Description: "Lead and manage large-scale conservation projects, coordinating with local communities and stakeholders to protect vital ecosystems.",
			Responsibilities: []string{
				"Develop project plans and budgets.",
				"Manage a team of field researchers and volunteers.",
				"Write grant proposals and report to funders.",
			},
			Qualifications: []string{
				"Master's degree in Environmental Science or related field.",
				"5+ years of project management experience.",
				"Strong communication and leadership skills.",
			},
		},
		{
			ID:          "job3",
			Title:       "ESG Analyst",
			Company:     model.Company{ID: "comp3"},
			Location:    "New York, NY",
			Sector:      model.SectorESG,
			WorkType:    model.WorkTypeRemote,
			SalaryRange: model.NewSalaryRange(80000, 110000),
			PostedDate:  "2024-07-15",
			Description: "Analyze company data to assess their environmental, social, and governance (ESG) performance.",
			Responsibilities: []string{
				"Conduct research on corporate ESG practices.",
				"Develop and maintain ESG rating models.",
				"Prepare detailed reports and presentations.",
			},
			Qualifications: []string{
				"Bachelor's degree in Finance, Economics, or Sustainability.",
				"Strong analytical and quantitative skills.",
				"Familiarity with ESG frameworks (GRI, SASB).",
			},
		},
		{
			ID:          "job4",
			Title:       "Lead Frontend Engineer (Green Tech)",
			Company:     model.Company{ID: "comp1"},
			Location:    "Remote",
			Sector:      model.SectorGreenTech,
			WorkType:    model.WorkTypeRemote,
			SalaryRange: model.NewSalaryRange(120000, 150000),
			PostedDate:  "2024-07-21",
			Description: "Build beautiful and impactful user interfaces for our clean energy monitoring platform.",
			Responsibilities: []string{
				"Architect and develop scalable frontend systems using modern web technologies.",
				"Mentor junior engineers and lead code reviews.",
				"Collaborate with product and design teams.",
			},
			Qualifications: []string{
				"7+ years of frontend development experience.",
				"Expertise in React, TypeScript, and modern web technologies.",
				"Passion for sustainability and clean technology.",
			},
		},
		{
			ID:           "job5",
			Title:        "Third-Party Renewable Energy Analyst",
			Company:      model.Company{ID: "comp4"},
			Location:     "Global",
			Sector:       model.SectorRenewableEnergy,
			WorkType:     model.WorkTypeRemote,
			SalaryRange:  model.NewSalaryRange(90000, 120000),
			PostedDate:   "2024-07-19",
			Description:  "This is an external job posting. You will be redirected to apply on the company's website.",
			IsThirdParty: true,
			RedirectURL:  "https://google.com/search?q=jobs",
		},
	}
}

func seedUsers() []model.User {
	return []model.User{
		{
			ID:             "user1",
			Name:           "Alex Doe",
			Email:          "alex.doe@example.com",
			ProfilePicture: "https://picsum.photos/seed/user1/100",
			Details: model.EmployeeDetails{Profile: model.EmployeeProfile{
				Summary: "Passionate environmental scientist with 5 years of experience in conservation research and project management.",
				Skills:  []string{"Data Analysis", "Project Management", "GIS", "Grant Writing", "Public Speaking"},
				Experience: []model.Experience{
					{ID: "exp1", Title: "Research Scientist", Company: "Nature Conservancy", StartDate: "2019", EndDate: "Present", Description: "Led research on biodiversity impacts."},
					{ID: "exp2", Title: "Field Technician", Company: "National Park Service", StartDate: "2017", EndDate: "2019", Description: "Conducted ecological surveys."},
				},
				Education: []model.Education{
					{ID: "edu1", Institution: "University of Colorado Boulder", Degree: "M.S. in Environmental Science", FieldOfStudy: "Ecology", GradYear: "2017"},
				},
				ResumeURL: "https://example.com/resume.pdf",
			}},
		},
		{
			ID:             "user2",
			Name:           "Jane Smith",
			Email:          "jane.smith@ecosolutions.example.com",
			ProfilePicture: "https://picsum.photos/seed/user2/100",
			Details:        model.EmployerDetails{CompanyID: "comp1"},
		},
		{
			ID:             "user3",
			Name:           "Admin User",
			Email:          "admin@greenjobs.example.com",
			ProfilePicture: "https://picsum.photos/seed/user3/100",
			Details:        model.AdminDetails{},
		},
	}
}

package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/talentbridge/marketplace-web/internal/backend"
	"github.com/talentbridge/marketplace-web/internal/browse"
	"github.com/talentbridge/marketplace-web/internal/core/domain"
)

// Form records keep numeric fields as strings so a failed submission can be
// re-rendered with exactly what the visitor typed. Conversion to backend
// payloads happens in the build* methods.

type authForm struct {
	Mode     string `form:"mode"`
	Email    string `form:"email"     validate:"required,email"`
	Password string `form:"password"  validate:"required"`
	FullName string `form:"full_name"`
	UserType string `form:"user_type"`
}

func (f *authForm) signup() bool {
	return f.Mode == "signup"
}

// registration builds the signup payload. The role defaults to worker when
// the select was absent or tampered with.
func (f *authForm) registration() (backend.Registration, error) {
	if strings.TrimSpace(f.FullName) == "" {
		return backend.Registration{}, fmt.Errorf("full name is required")
	}
	role := domain.Role(f.UserType)
	if !role.Valid() {
		role = domain.RoleWorker
	}
	return backend.Registration{
		Email:    f.Email,
		Password: f.Password,
		FullName: strings.TrimSpace(f.FullName),
		UserType: role,
	}, nil
}

type applyForm struct {
	CoverLetter  string `form:"cover_letter"  validate:"required"`
	ProposedRate string `form:"proposed_rate" validate:"required"`
}

func (f *applyForm) application(jobID string) (backend.NewApplication, error) {
	rate, err := strconv.ParseFloat(strings.TrimSpace(f.ProposedRate), 64)
	if err != nil || rate <= 0 {
		return backend.NewApplication{}, fmt.Errorf("proposed rate must be a positive number")
	}
	return backend.NewApplication{
		JobID:        jobID,
		CoverLetter:  f.CoverLetter,
		ProposedRate: rate,
	}, nil
}

type jobForm struct {
	Title          string `form:"title"           validate:"required"`
	Description    string `form:"description"     validate:"required"`
	Category       string `form:"category"        validate:"required"`
	Subcategory    string `form:"subcategory"     validate:"required"`
	BudgetType     string `form:"budget_type"     validate:"required,oneof=hourly fixed"`
	BudgetAmount   string `form:"budget_amount"   validate:"required"`
	Location       string `form:"location"        validate:"required"`
	JobType        string `form:"job_type"        validate:"required,oneof=remote onsite hybrid"`
	SkillsRequired string `form:"skills_required" validate:"required"`
}

func (f *jobForm) payload() (backend.NewJob, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(f.BudgetAmount), 64)
	if err != nil || amount <= 0 {
		return backend.NewJob{}, fmt.Errorf("budget amount must be a positive number")
	}
	return backend.NewJob{
		Title:          f.Title,
		Description:    f.Description,
		Category:       f.Category,
		Subcategory:    f.Subcategory,
		BudgetType:     domain.BudgetType(f.BudgetType),
		BudgetAmount:   amount,
		Location:       f.Location,
		JobType:        domain.JobType(f.JobType),
		SkillsRequired: browse.SplitCSV(f.SkillsRequired),
	}, nil
}

type clientProfileForm struct {
	CompanyName string `form:"company_name" validate:"required"`
	Industry    string `form:"industry"     validate:"required"`
	Location    string `form:"location"     validate:"required"`
	CompanySize string `form:"company_size"`
	Website     string `form:"website"`
}

func (f *clientProfileForm) payload() backend.ClientProfileInput {
	return backend.ClientProfileInput{
		CompanyName: f.CompanyName,
		Industry:    f.Industry,
		CompanySize: f.CompanySize,
		Location:    f.Location,
		Website:     f.Website,
	}
}

type workerProfileForm struct {
	Title           string `form:"title"            validate:"required"`
	Bio             string `form:"bio"              validate:"required"`
	Category        string `form:"category"         validate:"required"`
	Skills          string `form:"skills"           validate:"required"`
	HourlyRate      string `form:"hourly_rate"      validate:"required"`
	ExperienceYears string `form:"experience_years" validate:"required"`
	Location        string `form:"location"         validate:"required"`
	PortfolioLinks  string `form:"portfolio_links"`
}

func (f *workerProfileForm) payload() (backend.WorkerProfileInput, error) {
	rate, err := strconv.ParseFloat(strings.TrimSpace(f.HourlyRate), 64)
	if err != nil || rate <= 0 {
		return backend.WorkerProfileInput{}, fmt.Errorf("hourly rate must be a positive number")
	}
	years, err := strconv.Atoi(strings.TrimSpace(f.ExperienceYears))
	if err != nil || years < 0 {
		return backend.WorkerProfileInput{}, fmt.Errorf("experience years must be a non-negative number")
	}
	return backend.WorkerProfileInput{
		Title:           f.Title,
		Bio:             f.Bio,
		Category:        f.Category,
		Skills:          browse.SplitCSV(f.Skills),
		HourlyRate:      rate,
		ExperienceYears: years,
		Location:        f.Location,
		PortfolioLinks:  browse.SplitCSV(f.PortfolioLinks),
	}, nil
}

// workerProfileFormFrom prefills the edit form from an existing profile.
func workerProfileFormFrom(p *domain.WorkerProfile) workerProfileForm {
	return workerProfileForm{
		Title:           p.Title,
		Bio:             p.Bio,
		Category:        p.Category,
		Skills:          strings.Join(p.Skills, ", "),
		HourlyRate:      strconv.FormatFloat(p.HourlyRate, 'f', -1, 64),
		ExperienceYears: strconv.Itoa(p.ExperienceYears),
		Location:        p.Location,
		PortfolioLinks:  strings.Join(p.PortfolioLinks, ", "),
	}
}

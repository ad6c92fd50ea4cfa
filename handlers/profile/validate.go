package profile

import (
	"regexp"
	"time"
)

// Server-side validation is authoritative. Failures are keyed by backend
// field name with one or more messages each, which is exactly the 400
// body shape clients reconcile onto their forms.

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var investorTypes = map[string]bool{
	"":                true, // not chosen yet
	"INDIVIDUAL":      true,
	"ANGEL":           true,
	"VENTURE_CAPITAL": true,
	"FAMILY_OFFICE":   true,
	"CORPORATE":       true,
}

type fieldErrors map[string][]string

func (fe fieldErrors) add(field, message string) {
	fe[field] = append(fe[field], message)
}

func checkLen(fe fieldErrors, field, value string, max int) {
	if len([]rune(value)) > max {
		fe.add(field, "Too long")
	}
}

func checkEmail(fe fieldErrors, field, value string) {
	checkLen(fe, field, value, 254)
	if value != "" && !emailPattern.MatchString(value) {
		fe.add(field, "Enter a valid email address")
	}
}

// ValidateVentureUpdate checks only the fields present on the update.
func ValidateVentureUpdate(u *VentureUpdate) map[string][]string {
	fe := fieldErrors{}
	if u.CompanyName != nil {
		checkLen(fe, "company_name", *u.CompanyName, 200)
	}
	if u.Sector != nil {
		checkLen(fe, "sector", *u.Sector, 100)
	}
	if u.ShortDescription != nil {
		checkLen(fe, "short_description", *u.ShortDescription, 5000)
	}
	if u.FounderName != nil {
		checkLen(fe, "founder_name", *u.FounderName, 200)
	}
	if u.ContactEmail != nil {
		checkEmail(fe, "contact_email", *u.ContactEmail)
	}
	if u.Website != nil {
		checkLen(fe, "website", *u.Website, 500)
	}
	if u.YearFounded != nil {
		if year := *u.YearFounded; year < 1800 || year > time.Now().Year()+1 {
			fe.add("year_founded", "Enter a valid founding year")
		}
	}
	if u.TeamSize != nil && *u.TeamSize < 0 {
		fe.add("team_size", "Team size cannot be negative")
	}
	if u.FundingStage != nil {
		checkLen(fe, "funding_stage", *u.FundingStage, 100)
	}
	if u.Location != nil {
		checkLen(fe, "location", *u.Location, 200)
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// ValidateInvestorUpdate checks only the fields present on the update.
func ValidateInvestorUpdate(u *InvestorUpdate) map[string][]string {
	fe := fieldErrors{}
	if u.FullName != nil {
		checkLen(fe, "full_name", *u.FullName, 200)
	}
	if u.InvestorType != nil && !investorTypes[*u.InvestorType] {
		fe.add("investor_type", "Unknown investor type")
	}
	for _, stage := range u.StagePreferences {
		if len([]rune(stage)) > 100 {
			fe.add("stage_preferences", "Too long")
			break
		}
	}
	if u.MinInvestment != nil {
		checkLen(fe, "min_investment", *u.MinInvestment, 100)
	}
	if u.MaxInvestment != nil {
		checkLen(fe, "max_investment", *u.MaxInvestment, 100)
	}
	if u.Bio != nil {
		checkLen(fe, "bio", *u.Bio, 5000)
	}
	if u.InvestmentExperience != nil {
		checkLen(fe, "investment_experience", *u.InvestmentExperience, 5000)
	}
	if u.ContactEmail != nil {
		checkEmail(fe, "contact_email", *u.ContactEmail)
	}
	if u.Website != nil {
		checkLen(fe, "website", *u.Website, 500)
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// ValidateMentorUpdate checks only the fields present on the update.
func ValidateMentorUpdate(u *MentorUpdate) map[string][]string {
	fe := fieldErrors{}
	if u.FullName != nil {
		checkLen(fe, "full_name", *u.FullName, 200)
	}
	if u.JobTitle != nil {
		checkLen(fe, "job_title", *u.JobTitle, 200)
	}
	for _, field := range u.ExpertiseFields {
		if len([]rune(field)) > 100 {
			fe.add("expertise_fields", "Too long")
			break
		}
	}
	if u.YearsExperience != nil {
		if years := *u.YearsExperience; years < 0 || years > 80 {
			fe.add("years_experience", "Enter a valid number of years")
		}
	}
	if u.Bio != nil {
		checkLen(fe, "bio", *u.Bio, 5000)
	}
	if u.ContactEmail != nil {
		checkEmail(fe, "contact_email", *u.ContactEmail)
	}
	if u.Website != nil {
		checkLen(fe, "website", *u.Website, 500)
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

package profile

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }
func intptr(n int) *int       { return &n }

func TestValidateVentureUpdate_CleanReturnsNil(t *testing.T) {
	u := &VentureUpdate{
		CompanyName:  strptr("Acme Robotics"),
		Sector:       strptr("Logistics"),
		ContactEmail: strptr("founder@acme.io"),
		YearFounded:  intptr(2019),
		TeamSize:     intptr(12),
	}
	assert.Nil(t, ValidateVentureUpdate(u))
}

func TestValidateVentureUpdate_AbsentFieldsAreSkipped(t *testing.T) {
	// A partial update carrying nothing is always valid; nil pointers mean
	// "leave unchanged", never "empty".
	assert.Nil(t, ValidateVentureUpdate(&VentureUpdate{}))
}

func TestValidateVentureUpdate_LengthAndFormat(t *testing.T) {
	u := &VentureUpdate{
		CompanyName:  strptr(strings.Repeat("a", 201)),
		ContactEmail: strptr("not-an-email"),
		YearFounded:  intptr(1492),
		TeamSize:     intptr(-3),
	}
	errs := ValidateVentureUpdate(u)

	assert.Equal(t, []string{"Too long"}, errs["company_name"])
	assert.Equal(t, []string{"Enter a valid email address"}, errs["contact_email"])
	assert.Equal(t, []string{"Enter a valid founding year"}, errs["year_founded"])
	assert.Equal(t, []string{"Team size cannot be negative"}, errs["team_size"])
}

func TestValidateVentureUpdate_FutureYearTolerance(t *testing.T) {
	next := time.Now().Year() + 1
	assert.Nil(t, ValidateVentureUpdate(&VentureUpdate{YearFounded: &next}))

	after := next + 1
	errs := ValidateVentureUpdate(&VentureUpdate{YearFounded: &after})
	assert.Contains(t, errs, "year_founded")
}

func TestValidateInvestorUpdate_InvestorType(t *testing.T) {
	assert.Nil(t, ValidateInvestorUpdate(&InvestorUpdate{InvestorType: strptr("VENTURE_CAPITAL")}))
	assert.Nil(t, ValidateInvestorUpdate(&InvestorUpdate{InvestorType: strptr("")}), "clearing the type is allowed")

	errs := ValidateInvestorUpdate(&InvestorUpdate{InvestorType: strptr("SYNDICATE")})
	assert.Equal(t, []string{"Unknown investor type"}, errs["investor_type"])
}

func TestValidateInvestorUpdate_OverlongEmail(t *testing.T) {
	long := strings.Repeat("a", 250) + "@" + strings.Repeat("b", 250) + ".io"
	errs := ValidateInvestorUpdate(&InvestorUpdate{ContactEmail: &long})
	assert.Equal(t, []string{"Too long"}, errs["contact_email"])
}

func TestValidateInvestorUpdate_StagePreferenceEntries(t *testing.T) {
	u := &InvestorUpdate{StagePreferences: []string{"seed", strings.Repeat("x", 101)}}
	errs := ValidateInvestorUpdate(u)
	assert.Equal(t, []string{"Too long"}, errs["stage_preferences"])
}

func TestValidateMentorUpdate_YearsExperienceBounds(t *testing.T) {
	assert.Nil(t, ValidateMentorUpdate(&MentorUpdate{YearsExperience: intptr(0)}))
	assert.Nil(t, ValidateMentorUpdate(&MentorUpdate{YearsExperience: intptr(80)}))

	for _, bad := range []int{-1, 81, 200} {
		errs := ValidateMentorUpdate(&MentorUpdate{YearsExperience: intptr(bad)})
		assert.Contains(t, errs, "years_experience", "years = %d", bad)
	}
}

func TestValidateMentorUpdate_BioCap(t *testing.T) {
	ok := strings.Repeat("b", 5000)
	assert.Nil(t, ValidateMentorUpdate(&MentorUpdate{Bio: &ok}))

	over := strings.Repeat("b", 5001)
	errs := ValidateMentorUpdate(&MentorUpdate{Bio: &over})
	assert.Equal(t, []string{"Too long"}, errs["bio"])
}

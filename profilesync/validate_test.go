package profilesync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_AllRequiredReportedAtOnce(t *testing.T) {
	form, err := InitializeFormData(RoleVenture, SessionUser{Role: RoleVenture})
	require.NoError(t, err)

	errs, err := Validate(RoleVenture, form)
	require.NoError(t, err)

	assert.Equal(t, "Company name is required", errs["companyName"])
	assert.Equal(t, "Sector is required", errs["sector"])
	assert.Equal(t, "Short description is required", errs["shortDescription"])
	assert.Equal(t, "Founder name is required", errs["founderName"])
	assert.Equal(t, "Email is required", errs["email"])
	assert.Len(t, errs, 5)
}

func TestValidate_WhitespaceOnlyIsEmpty(t *testing.T) {
	form, err := InitializeFormData(RoleMentor, SessionUser{Role: RoleMentor})
	require.NoError(t, err)
	form["fullName"] = "   "

	errs, err := Validate(RoleMentor, form)
	require.NoError(t, err)
	assert.Equal(t, "Full name is required", errs["fullName"])
}

func TestValidate_EmailFormat(t *testing.T) {
	form := completeInvestorForm(t)

	cases := map[string]bool{
		"jane@fund.vc":      true,
		"jane.roe@fund.vc":  true,
		"jane@fund":         false,
		"jane fund.vc":      false,
		"@fund.vc":          false,
		"jane@":             false,
	}
	for input, valid := range cases {
		form["email"] = input
		errs, err := Validate(RoleInvestor, form)
		require.NoError(t, err)
		if valid {
			assert.NotContains(t, errs, "email", "input %q", input)
		} else {
			assert.Equal(t, "Enter a valid email address", errs["email"], "input %q", input)
		}
	}
}

func TestValidate_RequiredTakesPrecedenceOverFormat(t *testing.T) {
	form := completeInvestorForm(t)
	form["email"] = ""

	errs, err := Validate(RoleInvestor, form)
	require.NoError(t, err)
	assert.Equal(t, "Email is required", errs["email"])
}

func TestValidate_URLFormat(t *testing.T) {
	form := completeInvestorForm(t)

	cases := map[string]bool{
		"https://fund.vc":     true,
		"http://fund.vc/team": true,
		"fund.vc":             true, // bare hostname with a dot is fine
		"ftp://fund.vc":       false,
		"not a url":           false,
		"justaword":           false,
	}
	for input, valid := range cases {
		form["website"] = input
		errs, err := Validate(RoleInvestor, form)
		require.NoError(t, err)
		if valid {
			assert.NotContains(t, errs, "website", "input %q", input)
		} else {
			assert.Equal(t, "Enter a valid URL", errs["website"], "input %q", input)
		}
	}
}

func TestValidate_OptionalFieldsMayStayEmpty(t *testing.T) {
	form := completeInvestorForm(t)
	form["website"] = ""
	form["minInvestment"] = ""

	errs, err := Validate(RoleInvestor, form)
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestFieldLabel(t *testing.T) {
	assert.Equal(t, "Company name", fieldLabel("companyName"))
	assert.Equal(t, "Investment experience", fieldLabel("investmentExperience"))
	assert.Equal(t, "Bio", fieldLabel("bio"))
}

func completeInvestorForm(t *testing.T) FormModel {
	t.Helper()
	form, err := InitializeFormData(RoleInvestor, SessionUser{Role: RoleInvestor})
	require.NoError(t, err)
	form["fullName"] = "Jane Roe"
	form["bio"] = "Early-stage investor."
	form["investmentExperience"] = "Fintech and climate."
	form["email"] = "jane@fund.vc"
	return form
}

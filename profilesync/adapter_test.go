package profilesync

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ventureForm(t *testing.T) FormModel {
	t.Helper()
	form, err := InitializeFormData(RoleVenture, SessionUser{Role: RoleVenture})
	require.NoError(t, err)
	return form
}

func TestHydrate_BackendWinsFormSurvives(t *testing.T) {
	form := ventureForm(t)
	form["companyName"] = "Typed while loading"
	form["location"] = "Berlin"

	profile := BackendProfile{
		"company_name": "Acme Robotics",
		"sector":       "Logistics",
	}

	out, err := Hydrate(RoleVenture, form, profile)
	require.NoError(t, err)

	// Backend values win where present; untouched fields keep local edits.
	assert.Equal(t, "Acme Robotics", out.String("companyName"))
	assert.Equal(t, "Logistics", out.String("sector"))
	assert.Equal(t, "Berlin", out.String("location"))

	// The input form is never mutated.
	assert.Equal(t, "Typed while loading", form.String("companyName"))
}

func TestHydrate_Idempotent(t *testing.T) {
	profile := BackendProfile{
		"company_name":  "Acme Robotics",
		"year_founded":  float64(2019),
		"team_size":     float64(12),
		"funding_stage": "seed",
	}

	once, err := Hydrate(RoleVenture, ventureForm(t), profile)
	require.NoError(t, err)
	twice, err := Hydrate(RoleVenture, once, profile)
	require.NoError(t, err)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second hydrate changed the form (-once +twice):\n%s", diff)
	}
}

func TestHydrate_NumbersRenderWithoutTrailingZero(t *testing.T) {
	out, err := Hydrate(RoleVenture, ventureForm(t), BackendProfile{"year_founded": float64(2021)})
	require.NoError(t, err)
	assert.Equal(t, "2021", out.String("yearFounded"))
}

func TestHydrate_AliasFallback(t *testing.T) {
	// Legacy records carry linkedin_or_website; the primary key wins when
	// both are present.
	out, err := Hydrate(RoleVenture, ventureForm(t), BackendProfile{"linkedin_or_website": "https://acme.io"})
	require.NoError(t, err)
	assert.Equal(t, "https://acme.io", out.String("website"))

	out, err = Hydrate(RoleVenture, ventureForm(t), BackendProfile{
		"website":             "https://new.acme.io",
		"linkedin_or_website": "https://old.acme.io",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://new.acme.io", out.String("website"))
}

func TestHydrate_EnumTranslatedToFrontend(t *testing.T) {
	form, err := InitializeFormData(RoleInvestor, SessionUser{Role: RoleInvestor})
	require.NoError(t, err)

	out, err := Hydrate(RoleInvestor, form, BackendProfile{"investor_type": "VENTURE_CAPITAL"})
	require.NoError(t, err)
	assert.Equal(t, "venture-capital", out.String("investorType"))
}

func TestHydrate_BoolsStayTriState(t *testing.T) {
	form, err := InitializeFormData(RoleMentor, SessionUser{Role: RoleMentor})
	require.NoError(t, err)

	// An explicit false must overwrite the default true.
	out, err := Hydrate(RoleMentor, form, BackendProfile{"allow_direct_contact": false})
	require.NoError(t, err)
	got, set := out.Bool("allowDirectContact")
	require.True(t, set)
	assert.False(t, got)

	// Non-bool junk never overwrites a bool field.
	out, err = Hydrate(RoleMentor, form, BackendProfile{"allow_direct_contact": "yes"})
	require.NoError(t, err)
	got, set = out.Bool("allowDirectContact")
	require.True(t, set)
	assert.True(t, got)
}

func TestHydrate_ListsFromJSON(t *testing.T) {
	form, err := InitializeFormData(RoleMentor, SessionUser{Role: RoleMentor})
	require.NoError(t, err)

	out, err := Hydrate(RoleMentor, form, BackendProfile{
		"expertise_fields": []any{"Fintech", "Climate"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Fintech", "Climate"}, out.Strings("expertiseFields"))
}

func TestHydrate_MediaPrefersDisplayKey(t *testing.T) {
	out, err := Hydrate(RoleVenture, ventureForm(t), BackendProfile{
		"logo_url":         "/uploads/profile_images/raw.png",
		"logo_url_display": "https://cdn.example.com/raw.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/raw.png", out.String("logoUrl"))

	out, err = Hydrate(RoleVenture, ventureForm(t), BackendProfile{
		"logo_url": "/uploads/profile_images/raw.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/profile_images/raw.png", out.String("logoUrl"))
}

func TestSerialize_OmitsEmptyFields(t *testing.T) {
	form := ventureForm(t)
	form["companyName"] = "Acme Robotics"
	form["email"] = "founder@acme.io"

	payload, err := Serialize(RoleVenture, form)
	require.NoError(t, err)

	fields, err := payload.Fields()
	require.NoError(t, err)
	assert.Equal(t, "Acme Robotics", fields["company_name"])
	assert.Equal(t, "founder@acme.io", fields["contact_email"])
	_, present := fields["sector"]
	assert.False(t, present, "empty fields are omitted, not sent blank")
	_, present = fields["year_founded"]
	assert.False(t, present)
}

func TestSerialize_NumericFailSoft(t *testing.T) {
	form := ventureForm(t)
	form["yearFounded"] = "about 2019"
	form["teamSize"] = "12"

	payload, err := Serialize(RoleVenture, form)
	require.NoError(t, err)

	fields, err := payload.Fields()
	require.NoError(t, err)
	_, present := fields["year_founded"]
	assert.False(t, present, "non-numeric input is dropped, not sent")
	assert.Equal(t, float64(12), fields["team_size"])
}

func TestSerialize_EnumBackToBackend(t *testing.T) {
	form, err := InitializeFormData(RoleInvestor, SessionUser{Role: RoleInvestor})
	require.NoError(t, err)
	form["investorType"] = "family-office"

	payload, err := Serialize(RoleInvestor, form)
	require.NoError(t, err)
	fields, err := payload.Fields()
	require.NoError(t, err)
	assert.Equal(t, "FAMILY_OFFICE", fields["investor_type"])
}

func TestSerialize_BoolsAlwaysExplicit(t *testing.T) {
	form, err := InitializeFormData(RoleMentor, SessionUser{Role: RoleMentor})
	require.NoError(t, err)
	form["isProBono"] = false
	form["allowDirectContact"] = true

	payload, err := Serialize(RoleMentor, form)
	require.NoError(t, err)
	mp, ok := payload.(*MentorPayload)
	require.True(t, ok)

	// An explicit false survives as a set pointer; it must never be
	// promoted to true or dropped.
	require.NotNil(t, mp.IsProBono)
	assert.False(t, *mp.IsProBono)
	require.NotNil(t, mp.AllowDirectContact)
	assert.True(t, *mp.AllowDirectContact)
}

func TestSerialize_ListsTrimmedAndOmittedWhenEmpty(t *testing.T) {
	form, err := InitializeFormData(RoleInvestor, SessionUser{Role: RoleInvestor})
	require.NoError(t, err)
	form["stagePreferences"] = []string{" seed ", "", "series-a"}

	payload, err := Serialize(RoleInvestor, form)
	require.NoError(t, err)
	ip, ok := payload.(*InvestorPayload)
	require.True(t, ok)
	assert.Equal(t, []string{"seed", "series-a"}, ip.StagePreferences)

	form["stagePreferences"] = []string{"  ", ""}
	payload, err = Serialize(RoleInvestor, form)
	require.NoError(t, err)
	assert.Nil(t, payload.(*InvestorPayload).StagePreferences)
}

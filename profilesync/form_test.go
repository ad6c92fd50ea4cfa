package profilesync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeFormData_VentureDefaults(t *testing.T) {
	user := SessionUser{ID: 7, Email: "founder@acme.io", Name: "Acme Robotics", Role: RoleVenture}
	form, err := InitializeFormData(RoleVenture, user)
	require.NoError(t, err)

	assert.Equal(t, "Acme Robotics", form.String("companyName"))
	assert.Equal(t, "founder@acme.io", form.String("email"))
	assert.Equal(t, "", form.String("sector"))
	assert.Equal(t, "", form.String("logoUrl"))

	// Every schema field has a definite value from the start.
	schema, err := schemaFor(RoleVenture)
	require.NoError(t, err)
	for i := range schema.Fields {
		_, present := form[schema.Fields[i].Frontend]
		assert.True(t, present, "missing %s", schema.Fields[i].Frontend)
	}
}

func TestInitializeFormData_BoolAndListDefaults(t *testing.T) {
	form, err := InitializeFormData(RoleInvestor, SessionUser{Role: RoleInvestor})
	require.NoError(t, err)

	visible, set := form.Bool("isVisible")
	require.True(t, set)
	assert.True(t, visible, "investors default to visible")
	assert.Equal(t, []string{}, form.Strings("stagePreferences"))

	form, err = InitializeFormData(RoleMentor, SessionUser{Role: RoleMentor})
	require.NoError(t, err)

	proBono, set := form.Bool("isProBono")
	require.True(t, set)
	assert.False(t, proBono)
	direct, set := form.Bool("allowDirectContact")
	require.True(t, set)
	assert.True(t, direct)
}

func TestInitializeFormData_NameSeedsFullNameForPeople(t *testing.T) {
	user := SessionUser{Email: "jane@fund.vc", Name: "Jane Roe", Role: RoleInvestor}
	form, err := InitializeFormData(RoleInvestor, user)
	require.NoError(t, err)

	assert.Equal(t, "Jane Roe", form.String("fullName"))
	assert.Equal(t, "jane@fund.vc", form.String("email"))
}

func TestInitializeFormData_AdminHasNoForm(t *testing.T) {
	_, err := InitializeFormData(RoleAdmin, SessionUser{Role: RoleAdmin})
	assert.Error(t, err)
}

func TestFormModel_CloneIsDeep(t *testing.T) {
	form := FormModel{"expertiseFields": []string{"Fintech"}, "bio": "hi"}
	copied := form.clone()
	copied.Strings("expertiseFields")[0] = "Climate"
	copied["bio"] = "changed"

	assert.Equal(t, "Fintech", form.Strings("expertiseFields")[0])
	assert.Equal(t, "hi", form.String("bio"))
}

package profilesync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_MapsBackendKeysToFrontend(t *testing.T) {
	verr := &ValidationError{Fields: map[string][]string{
		"company_name":  {"Too long"},
		"contact_email": {"Enter a valid email address"},
	}}

	errs, notices, err := Reconcile(RoleVenture, verr)
	require.NoError(t, err)

	assert.Equal(t, "Too long", errs["companyName"])
	assert.Equal(t, "Enter a valid email address", errs["email"])
	assert.Empty(t, notices)
}

func TestReconcile_NonFieldErrorsBecomeNotices(t *testing.T) {
	verr := &ValidationError{Fields: map[string][]string{
		"company_name":     {"Too long"},
		"non_field_errors": {"Generic"},
	}}

	errs, notices, err := Reconcile(RoleVenture, verr)
	require.NoError(t, err)

	assert.Equal(t, ErrorMap{"companyName": "Too long"}, errs)
	assert.Equal(t, []string{"Generic"}, notices)
	assert.NotContains(t, errs, NonFieldKey)
}

func TestReconcile_MultipleMessagesJoined(t *testing.T) {
	verr := &ValidationError{Fields: map[string][]string{
		"bio": {"Too long", "Contains unsupported characters"},
	}}

	errs, _, err := Reconcile(RoleInvestor, verr)
	require.NoError(t, err)
	assert.Equal(t, "Too long; Contains unsupported characters", errs["bio"])
}

func TestReconcile_UnmappedKeyKeptVerbatim(t *testing.T) {
	verr := &ValidationError{Fields: map[string][]string{
		"pitch_deck_url": {"Unsupported format"},
	}}

	errs, _, err := Reconcile(RoleVenture, verr)
	require.NoError(t, err)
	assert.Equal(t, "Unsupported format", errs["pitch_deck_url"])
}

func TestReconcile_AliasKeyMapsToSameField(t *testing.T) {
	verr := &ValidationError{Fields: map[string][]string{
		"linkedin_or_website": {"Enter a valid URL"},
	}}

	errs, _, err := Reconcile(RoleVenture, verr)
	require.NoError(t, err)
	assert.Equal(t, "Enter a valid URL", errs["website"])
}

func TestValidationError_ErrorListsSortedKeys(t *testing.T) {
	verr := &ValidationError{Fields: map[string][]string{
		"sector":       {"x"},
		"company_name": {"y"},
	}}
	assert.Equal(t, "profile update rejected: invalid fields company_name, sector", verr.Error())

	empty := &ValidationError{}
	assert.Equal(t, "profile update rejected", empty.Error())
}

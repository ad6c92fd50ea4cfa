package profilesync

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaFor_EditableRoles(t *testing.T) {
	for _, role := range []Role{RoleVenture, RoleInvestor, RoleMentor} {
		s, err := schemaFor(role)
		require.NoError(t, err, "role %s", role)
		assert.Equal(t, role, s.Role)
		assert.NotEmpty(t, s.Fields)
		assert.NotNil(t, s.Media)
	}
}

func TestSchemaFor_RejectsAdminAndUnknown(t *testing.T) {
	_, err := schemaFor(RoleAdmin)
	assert.Error(t, err)

	_, err = schemaFor(Role("recruiter"))
	assert.Error(t, err)
}

// Every mapped backend key must translate to a frontend name that
// translates back to the same field. Aliases resolve to the same field as
// their primary key.
func TestDictionary_RoundTrip(t *testing.T) {
	for role, schema := range schemas {
		for i := range schema.Fields {
			f := &schema.Fields[i]
			assert.Equal(t, f.Frontend, schema.ToFrontend(f.Backend), "%s/%s", role, f.Backend)

			got, ok := schema.field(f.Frontend)
			require.True(t, ok, "%s/%s", role, f.Frontend)
			assert.Equal(t, f.Backend, got.Backend)

			for _, alias := range f.Aliases {
				assert.Equal(t, f.Frontend, schema.ToFrontend(alias), "%s alias %s", role, alias)
			}
		}
	}
}

func TestDictionary_UnmappedKeyPassesThrough(t *testing.T) {
	schema, err := schemaFor(RoleVenture)
	require.NoError(t, err)
	assert.Equal(t, "pitch_deck_url", schema.ToFrontend("pitch_deck_url"))
}

func TestInvestorTypeEnum_BothDirections(t *testing.T) {
	schema, err := schemaFor(RoleInvestor)
	require.NoError(t, err)
	f, ok := schema.field("investorType")
	require.True(t, ok)

	assert.Equal(t, "venture-capital", f.enumToFrontend("VENTURE_CAPITAL"))
	assert.Equal(t, "VENTURE_CAPITAL", f.enumToBackend("venture-capital"))
	assert.Equal(t, "angel", f.enumToFrontend("ANGEL"))
	assert.Equal(t, "FAMILY_OFFICE", f.enumToBackend("family-office"))

	// Unknown values pass through verbatim in both directions.
	assert.Equal(t, "SYNDICATE", f.enumToFrontend("SYNDICATE"))
	assert.Equal(t, "syndicate", f.enumToBackend("syndicate"))
}

// Each schema's backend keys must line up with the wire tags of its
// payload struct, so serialization can never emit a key the dictionary
// does not know about.
func TestDictionary_MatchesPayloadTags(t *testing.T) {
	payloads := map[Role]any{
		RoleVenture:  VenturePayload{},
		RoleInvestor: InvestorPayload{},
		RoleMentor:   MentorPayload{},
	}

	for role, payload := range payloads {
		schema, err := schemaFor(role)
		require.NoError(t, err)

		tags := map[string]bool{}
		typ := reflect.TypeOf(payload)
		for i := 0; i < typ.NumField(); i++ {
			tag := typ.Field(i).Tag.Get("json")
			name, _, _ := strings.Cut(tag, ",")
			if name != "" && name != "-" {
				tags[name] = true
			}
		}

		// Every dictionary key must exist on the payload struct, including
		// portfolio_count, which the server derives but still echoes back.
		for i := range schema.Fields {
			f := &schema.Fields[i]
			assert.True(t, tags[f.Backend], "%s payload missing tag %s", role, f.Backend)
		}
		assert.True(t, tags[schema.Media.URLKey], "%s payload missing media tag %s", role, schema.Media.URLKey)
	}
}

package profilesync

import (
	"fmt"
	"strconv"
	"strings"
)

// BackendProfile is the role-specific record as the server returned it.
// The client never writes into it; hydrate reads from it.
type BackendProfile map[string]any

// Hydrate merges a backend profile over the current form. Backend values
// win for every field the backend actually sent; fields absent on the
// backend keep whatever the form already holds, so a slow fetch resolving
// after the user started typing never erases work in progress.
func Hydrate(role Role, form FormModel, profile BackendProfile) (FormModel, error) {
	schema, err := schemaFor(role)
	if err != nil {
		return nil, err
	}

	out := form.clone()
	if profile == nil {
		return out, nil
	}

	for i := range schema.Fields {
		f := &schema.Fields[i]
		raw, ok := lookupBackend(profile, f)
		if !ok {
			continue
		}
		switch f.Kind {
		case kindStringList:
			if list, ok := toStringList(raw); ok {
				out[f.Frontend] = list
			}
		case kindBool:
			// Only an actual boolean overwrites; "unset" and
			// "explicitly false" stay distinct.
			if b, ok := raw.(bool); ok {
				out[f.Frontend] = b
			}
		default:
			if s, ok := toFormString(raw); ok {
				out[f.Frontend] = f.enumToFrontend(s)
			}
		}
	}

	if m := schema.Media; m != nil {
		if s, ok := stringValue(profile[m.DisplayKey]); ok && s != "" {
			out[m.FormField] = s
		} else if s, ok := stringValue(profile[m.URLKey]); ok && s != "" {
			out[m.FormField] = s
		}
	}
	return out, nil
}

// lookupBackend resolves a field's value following the alias fallback
// chain: the specific key first, then each legacy alias in order.
func lookupBackend(profile BackendProfile, f *fieldSpec) (any, bool) {
	if v, ok := profile[f.Backend]; ok && v != nil {
		return v, true
	}
	for _, alias := range f.Aliases {
		if v, ok := profile[alias]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Serialize builds the outbound per-role payload from the form. Keys whose
// resolved value is empty are omitted entirely, numeric fields are coerced
// with fail-soft omission, and enumerated values are translated back to
// backend casing.
func Serialize(role Role, form FormModel) (Payload, error) {
	schema, err := schemaFor(role)
	if err != nil {
		return nil, err
	}
	switch role {
	case RoleVenture:
		return &VenturePayload{
			CompanyName:      optString(schema, form, "companyName"),
			Sector:           optString(schema, form, "sector"),
			ShortDescription: optString(schema, form, "shortDescription"),
			FounderName:      optString(schema, form, "founderName"),
			ContactEmail:     optString(schema, form, "email"),
			Website:          optString(schema, form, "website"),
			YearFounded:      optNumber(form, "yearFounded"),
			TeamSize:         optNumber(form, "teamSize"),
			FundingStage:     optString(schema, form, "fundingStage"),
			Location:         optString(schema, form, "location"),
		}, nil
	case RoleInvestor:
		return &InvestorPayload{
			FullName:             optString(schema, form, "fullName"),
			InvestorType:         optString(schema, form, "investorType"),
			StagePreferences:     optList(form, "stagePreferences"),
			MinInvestment:        optString(schema, form, "minInvestment"),
			MaxInvestment:        optString(schema, form, "maxInvestment"),
			Bio:                  optString(schema, form, "bio"),
			InvestmentExperience: optString(schema, form, "investmentExperience"),
			ContactEmail:         optString(schema, form, "email"),
			PortfolioCount:       optNumber(form, "portfolioCount"),
			Website:              optString(schema, form, "website"),
			VisibleToVentures:    optBool(form, "isVisible"),
		}, nil
	case RoleMentor:
		return &MentorPayload{
			FullName:           optString(schema, form, "fullName"),
			JobTitle:           optString(schema, form, "jobTitle"),
			ExpertiseFields:    optList(form, "expertiseFields"),
			YearsExperience:    optNumber(form, "yearsExperience"),
			Bio:                optString(schema, form, "bio"),
			ContactEmail:       optString(schema, form, "email"),
			Website:            optString(schema, form, "website"),
			IsProBono:          optBool(form, "isProBono"),
			AllowDirectContact: optBool(form, "allowDirectContact"),
		}, nil
	}
	return nil, fmt.Errorf("no payload builder for role %q", role)
}

// optString returns the trimmed, enum-translated value, or nil when empty
// so the key is omitted from the wire payload.
func optString(schema *Schema, form FormModel, name string) *string {
	v := strings.TrimSpace(form.String(name))
	if v == "" {
		return nil
	}
	if f, ok := schema.field(name); ok {
		v = f.enumToBackend(v)
	}
	return &v
}

// optNumber coerces a numeric form field. Non-numeric input is dropped
// rather than sent, per the fail-soft rule.
func optNumber(form FormModel, name string) *int {
	v := strings.TrimSpace(form.String(name))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

func optList(form FormModel, name string) []string {
	list := form.Strings(name)
	if len(list) == 0 {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func optBool(form FormModel, name string) *bool {
	if b, ok := form.Bool(name); ok {
		return &b
	}
	return nil
}

// toFormString renders a backend scalar into form representation. JSON
// numbers arrive as float64; integral values lose the trailing ".0".
func toFormString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	}
	return "", false
}

func stringValue(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func toStringList(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...), true
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	}
	return nil, false
}

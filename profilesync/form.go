package profilesync

import "strings"

// FormModel is the flat client-side form state for one edit session.
// Values are string, []string or bool; every field of the role's schema
// has a definite value from the moment the form is initialized, so the
// view layer never reads an absent key.
type FormModel map[string]any

// String returns the string value for a field, or "" for anything else.
func (f FormModel) String(name string) string {
	if v, ok := f[name].(string); ok {
		return v
	}
	return ""
}

// Strings returns the list value for a field, or nil.
func (f FormModel) Strings(name string) []string {
	if v, ok := f[name].([]string); ok {
		return v
	}
	return nil
}

// Bool returns the bool value for a field and whether one is set.
func (f FormModel) Bool(name string) (bool, bool) {
	v, ok := f[name].(bool)
	return v, ok
}

func (f FormModel) clone() FormModel {
	out := make(FormModel, len(f))
	for k, v := range f {
		if list, ok := v.([]string); ok {
			out[k] = append([]string(nil), list...)
			continue
		}
		out[k] = v
	}
	return out
}

// InitializeFormData produces the role-appropriate default form before any
// network fetch completes. Email and the person/company name are seeded
// from the session's lightweight user record so a brand-new profile is
// still renderable.
func InitializeFormData(role Role, user SessionUser) (FormModel, error) {
	schema, err := schemaFor(role)
	if err != nil {
		return nil, err
	}

	form := make(FormModel, len(schema.Fields)+1)
	for i := range schema.Fields {
		f := &schema.Fields[i]
		switch f.Kind {
		case kindStringList:
			form[f.Frontend] = []string{}
		case kindBool:
			form[f.Frontend] = f.BoolDefault
		default:
			form[f.Frontend] = ""
		}
	}
	if schema.Media != nil {
		form[schema.Media.FormField] = ""
	}

	if strings.TrimSpace(user.Email) != "" {
		if _, ok := schema.field("email"); ok {
			form["email"] = strings.TrimSpace(user.Email)
		}
	}
	if name := strings.TrimSpace(user.Name); name != "" {
		switch role {
		case RoleVenture:
			form["companyName"] = name
		default:
			form["fullName"] = name
		}
	}
	return form, nil
}

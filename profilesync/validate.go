package profilesync

import (
	"regexp"
	"strings"
	"unicode"
)

// ErrorMap holds one human-readable message per frontend field name.
type ErrorMap map[string]string

// Advisory only; the backend's validation is authoritative. The shape
// required is local@domain.tld.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate runs the declarative per-role rules and reports every failing
// field at once so the user can fix them in one pass. An empty map means
// the form may be submitted.
func Validate(role Role, form FormModel) (ErrorMap, error) {
	schema, err := schemaFor(role)
	if err != nil {
		return nil, err
	}

	errs := ErrorMap{}
	for _, name := range schema.Required {
		if fieldIsEmpty(schema, form, name) {
			errs[name] = fieldLabel(name) + " is required"
		}
	}
	for _, name := range schema.EmailFields {
		if _, failed := errs[name]; failed {
			continue
		}
		if v := strings.TrimSpace(form.String(name)); v != "" && !emailPattern.MatchString(v) {
			errs[name] = "Enter a valid email address"
		}
	}
	for _, name := range schema.URLFields {
		if _, failed := errs[name]; failed {
			continue
		}
		if v := strings.TrimSpace(form.String(name)); v != "" && !looksLikeURL(v) {
			errs[name] = "Enter a valid URL"
		}
	}
	return errs, nil
}

func fieldIsEmpty(schema *Schema, form FormModel, name string) bool {
	f, ok := schema.field(name)
	if !ok {
		return strings.TrimSpace(form.String(name)) == ""
	}
	switch f.Kind {
	case kindStringList:
		return len(form.Strings(name)) == 0
	case kindBool:
		_, set := form.Bool(name)
		return !set
	default:
		return strings.TrimSpace(form.String(name)) == ""
	}
}

// looksLikeURL is deliberately loose: an explicit scheme must be http(s),
// otherwise a bare hostname with a dot passes.
func looksLikeURL(v string) bool {
	if strings.ContainsAny(v, " \t") {
		return false
	}
	if scheme, _, ok := strings.Cut(v, "://"); ok {
		return scheme == "http" || scheme == "https"
	}
	return strings.Contains(v, ".")
}

// fieldLabel renders a camelCase field name as a display label, e.g.
// "investmentExperience" -> "Investment experience".
func fieldLabel(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

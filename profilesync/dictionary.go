package profilesync

// The field dictionary is the single place that knows how backend
// snake_case keys line up with frontend camelCase names. Nothing outside
// this file should hardcode a backend field name.

type fieldKind int

const (
	kindString fieldKind = iota
	kindStringList
	kindBool
)

// fieldSpec describes one mapped field of a role schema.
type fieldSpec struct {
	Frontend string
	Backend  string
	// Aliases are legacy backend keys tried, in order, when the primary
	// key is absent on an incoming profile.
	Aliases []string
	Kind    fieldKind
	// Numeric fields are sent as numbers; non-numeric input is omitted
	// from the outbound payload rather than sent as garbage.
	Numeric bool
	// Enum maps backend values to frontend values for enumerated fields
	// (applied after key mapping, both directions).
	Enum map[string]string
	// BoolDefault is the initial value for bool fields before any data
	// arrives. Only meaningful when Kind is kindBool.
	BoolDefault bool
	// MaxLen caps the outbound string length. 0 means the schema default.
	MaxLen int
}

// mediaSpec describes the one logical image slot a role's profile carries.
// The backend accepts either a multipart file or a URL reference for it,
// never both.
type mediaSpec struct {
	// FormField is the frontend name holding the current display URL.
	FormField string
	// FileKey is the multipart field name for a binary upload.
	FileKey string
	// URLKey is the backend key carrying a URL reference outbound.
	URLKey string
	// DisplayKey is the read-only key the backend returns for rendering;
	// falls back to URLKey when absent.
	DisplayKey string
}

// Schema is the per-role bundle the adapter, validator and serializer all
// dispatch through.
type Schema struct {
	Role     Role
	Fields   []fieldSpec
	Media    *mediaSpec
	Required []string
	// EmailFields and URLFields get format checks on top of Required.
	EmailFields []string
	URLFields   []string

	byFrontend map[string]*fieldSpec
	byBackend  map[string]*fieldSpec
}

func newSchema(role Role, media *mediaSpec, fields []fieldSpec, required, emails, urls []string) *Schema {
	s := &Schema{
		Role:        role,
		Fields:      fields,
		Media:       media,
		Required:    required,
		EmailFields: emails,
		URLFields:   urls,
		byFrontend:  make(map[string]*fieldSpec, len(fields)),
		byBackend:   make(map[string]*fieldSpec, len(fields)),
	}
	for i := range s.Fields {
		f := &s.Fields[i]
		s.byFrontend[f.Frontend] = f
		s.byBackend[f.Backend] = f
		for _, a := range f.Aliases {
			if _, taken := s.byBackend[a]; !taken {
				s.byBackend[a] = f
			}
		}
	}
	return s
}

// field returns the fieldSpec for a frontend name.
func (s *Schema) field(frontend string) (*fieldSpec, bool) {
	f, ok := s.byFrontend[frontend]
	return f, ok
}

// ToFrontend translates a backend key to its frontend name. Unmapped keys
// come back unchanged so server errors are never silently dropped.
func (s *Schema) ToFrontend(backendKey string) string {
	if f, ok := s.byBackend[backendKey]; ok {
		return f.Frontend
	}
	return backendKey
}

// enumToFrontend translates an enumerated backend value. Unknown values
// pass through verbatim to stay forward-compatible with backend additions.
func (f *fieldSpec) enumToFrontend(v string) string {
	if f.Enum == nil {
		return v
	}
	if out, ok := f.Enum[v]; ok {
		return out
	}
	return v
}

// enumToBackend is the inverse translation.
func (f *fieldSpec) enumToBackend(v string) string {
	if f.Enum == nil {
		return v
	}
	for backend, frontend := range f.Enum {
		if frontend == v {
			return backend
		}
	}
	return v
}

var investorTypeEnum = map[string]string{
	"INDIVIDUAL":      "individual",
	"ANGEL":           "angel",
	"VENTURE_CAPITAL": "venture-capital",
	"FAMILY_OFFICE":   "family-office",
	"CORPORATE":       "corporate",
}

var schemas = map[Role]*Schema{
	RoleVenture: newSchema(RoleVenture,
		&mediaSpec{FormField: "logoUrl", FileKey: "logo", URLKey: "logo_url", DisplayKey: "logo_url_display"},
		[]fieldSpec{
			{Frontend: "companyName", Backend: "company_name"},
			{Frontend: "sector", Backend: "sector"},
			{Frontend: "shortDescription", Backend: "short_description", MaxLen: 5000},
			{Frontend: "founderName", Backend: "founder_name"},
			{Frontend: "email", Backend: "contact_email", MaxLen: 254},
			{Frontend: "website", Backend: "website", Aliases: []string{"linkedin_or_website"}},
			{Frontend: "yearFounded", Backend: "year_founded", Numeric: true},
			{Frontend: "teamSize", Backend: "team_size", Numeric: true},
			{Frontend: "fundingStage", Backend: "funding_stage"},
			{Frontend: "location", Backend: "location"},
		},
		[]string{"companyName", "sector", "shortDescription", "founderName", "email"},
		[]string{"email"},
		[]string{"website"},
	),
	RoleInvestor: newSchema(RoleInvestor,
		&mediaSpec{FormField: "photoUrl", FileKey: "photo", URLKey: "photo_url", DisplayKey: "photo_url_display"},
		[]fieldSpec{
			{Frontend: "fullName", Backend: "full_name"},
			{Frontend: "investorType", Backend: "investor_type", Enum: investorTypeEnum},
			{Frontend: "stagePreferences", Backend: "stage_preferences", Kind: kindStringList},
			{Frontend: "minInvestment", Backend: "min_investment"},
			{Frontend: "maxInvestment", Backend: "max_investment"},
			{Frontend: "bio", Backend: "bio", MaxLen: 5000},
			{Frontend: "investmentExperience", Backend: "investment_experience", MaxLen: 5000},
			{Frontend: "email", Backend: "contact_email", MaxLen: 254},
			{Frontend: "portfolioCount", Backend: "portfolio_count", Numeric: true},
			{Frontend: "website", Backend: "website"},
			{Frontend: "isVisible", Backend: "visible_to_ventures", Kind: kindBool, BoolDefault: true},
		},
		[]string{"fullName", "bio", "investmentExperience", "email"},
		[]string{"email"},
		[]string{"website"},
	),
	RoleMentor: newSchema(RoleMentor,
		&mediaSpec{FormField: "photoUrl", FileKey: "photo", URLKey: "photo_url", DisplayKey: "photo_url_display"},
		[]fieldSpec{
			{Frontend: "fullName", Backend: "full_name"},
			{Frontend: "jobTitle", Backend: "job_title"},
			{Frontend: "expertiseFields", Backend: "expertise_fields", Kind: kindStringList},
			{Frontend: "yearsExperience", Backend: "years_experience", Numeric: true},
			{Frontend: "bio", Backend: "bio", MaxLen: 5000},
			{Frontend: "email", Backend: "contact_email", MaxLen: 254},
			{Frontend: "website", Backend: "website", Aliases: []string{"linkedin_or_website"}},
			{Frontend: "isProBono", Backend: "is_pro_bono", Kind: kindBool},
			{Frontend: "allowDirectContact", Backend: "allow_direct_contact", Kind: kindBool, BoolDefault: true},
		},
		[]string{"fullName", "jobTitle", "bio", "email"},
		[]string{"email"},
		[]string{"website"},
	),
}

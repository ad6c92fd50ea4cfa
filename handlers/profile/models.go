package profile

// [AI_MODELS_START]
// MODELS:
// {
//   "VentureProfile":  {"fields": ["ID", "CompanyName", "Sector", "FounderName", "FundingStage"], "json_tags": true, "omitempty": false},
//   "InvestorProfile": {"fields": ["ID", "FullName", "InvestorType", "StagePreferences", "VisibleToVentures"], "json_tags": true, "omitempty": false},
//   "MentorProfile":   {"fields": ["ID", "FullName", "JobTitle", "ExpertiseFields", "IsProBono"], "json_tags": true, "omitempty": false}
// }
// [AI_MODELS_END]

// VentureProfile is a startup's business-identity record as returned to
// clients. logo_url_display is the render-ready variant of logo_url.
type VentureProfile struct {
	ID               int     `json:"id"`
	CompanyName      string  `json:"company_name"`
	Sector           string  `json:"sector"`
	ShortDescription string  `json:"short_description"`
	FounderName      string  `json:"founder_name"`
	ContactEmail     string  `json:"contact_email"`
	Website          string  `json:"website"`
	YearFounded      *int    `json:"year_founded"`
	TeamSize         *int    `json:"team_size"`
	FundingStage     string  `json:"funding_stage"`
	Location         string  `json:"location"`
	LogoURL          *string `json:"logo_url"`
	LogoURLDisplay   *string `json:"logo_url_display"`
	ApprovalStatus   string  `json:"approval_status"`
	Role             string  `json:"role"`
	Status           string  `json:"status"`
}

// InvestorProfile is an investor's record. portfolio_count is derived from
// the portfolio tracker, never written directly.
type InvestorProfile struct {
	ID                   int      `json:"id"`
	FullName             string   `json:"full_name"`
	InvestorType         string   `json:"investor_type"`
	StagePreferences     []string `json:"stage_preferences"`
	MinInvestment        string   `json:"min_investment"`
	MaxInvestment        string   `json:"max_investment"`
	Bio                  string   `json:"bio"`
	InvestmentExperience string   `json:"investment_experience"`
	ContactEmail         string   `json:"contact_email"`
	Website              string   `json:"website"`
	VisibleToVentures    bool     `json:"visible_to_ventures"`
	PortfolioCount       int      `json:"portfolio_count"`
	PhotoURL             *string  `json:"photo_url"`
	PhotoURLDisplay      *string  `json:"photo_url_display"`
	ApprovalStatus       string   `json:"approval_status"`
	Role                 string   `json:"role"`
	Status               string   `json:"status"`
}

// MentorProfile is a mentor's record.
type MentorProfile struct {
	ID                 int      `json:"id"`
	FullName           string   `json:"full_name"`
	JobTitle           string   `json:"job_title"`
	ExpertiseFields    []string `json:"expertise_fields"`
	YearsExperience    *int     `json:"years_experience"`
	Bio                string   `json:"bio"`
	ContactEmail       string   `json:"contact_email"`
	Website            string   `json:"website"`
	IsProBono          bool     `json:"is_pro_bono"`
	AllowDirectContact bool     `json:"allow_direct_contact"`
	PhotoURL           *string  `json:"photo_url"`
	PhotoURLDisplay    *string  `json:"photo_url_display"`
	ApprovalStatus     string   `json:"approval_status"`
	Role               string   `json:"role"`
	Status             string   `json:"status"`
}

// VentureUpdate is a partial update: nil fields are left untouched when
// merging over the stored profile.
type VentureUpdate struct {
	CompanyName      *string `json:"company_name,omitempty"`
	Sector           *string `json:"sector,omitempty"`
	ShortDescription *string `json:"short_description,omitempty"`
	FounderName      *string `json:"founder_name,omitempty"`
	ContactEmail     *string `json:"contact_email,omitempty"`
	Website          *string `json:"website,omitempty"`
	YearFounded      *int    `json:"year_founded,omitempty"`
	TeamSize         *int    `json:"team_size,omitempty"`
	FundingStage     *string `json:"funding_stage,omitempty"`
	Location         *string `json:"location,omitempty"`
	LogoURL          *string `json:"logo_url,omitempty"`
}

// InvestorUpdate is a partial update for investor profiles.
type InvestorUpdate struct {
	FullName             *string  `json:"full_name,omitempty"`
	InvestorType         *string  `json:"investor_type,omitempty"`
	StagePreferences     []string `json:"stage_preferences,omitempty"`
	MinInvestment        *string  `json:"min_investment,omitempty"`
	MaxInvestment        *string  `json:"max_investment,omitempty"`
	Bio                  *string  `json:"bio,omitempty"`
	InvestmentExperience *string  `json:"investment_experience,omitempty"`
	ContactEmail         *string  `json:"contact_email,omitempty"`
	Website              *string  `json:"website,omitempty"`
	VisibleToVentures    *bool    `json:"visible_to_ventures,omitempty"`
	PhotoURL             *string  `json:"photo_url,omitempty"`
}

// MentorUpdate is a partial update for mentor profiles.
type MentorUpdate struct {
	FullName           *string  `json:"full_name,omitempty"`
	JobTitle           *string  `json:"job_title,omitempty"`
	ExpertiseFields    []string `json:"expertise_fields,omitempty"`
	YearsExperience    *int     `json:"years_experience,omitempty"`
	Bio                *string  `json:"bio,omitempty"`
	ContactEmail       *string  `json:"contact_email,omitempty"`
	Website            *string  `json:"website,omitempty"`
	IsProBono          *bool    `json:"is_pro_bono,omitempty"`
	AllowDirectContact *bool    `json:"allow_direct_contact,omitempty"`
	PhotoURL           *string  `json:"photo_url,omitempty"`
}

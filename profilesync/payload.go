package profilesync

import "encoding/json"

// MediaFile is a pending binary upload.
type MediaFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Payload is an outbound per-role profile update. Pointer-optional fields
// with omitempty tags encode the omission-vs-empty distinction in the type:
// a nil field never reaches the wire.
type Payload interface {
	Role() Role
	// Fields flattens the payload to the backend's snake_case key set
	// with omission already applied. The binary file is not included.
	Fields() (map[string]any, error)
	// File returns the pending upload, nil when there is none.
	File() *MediaFile
	// FileField names the multipart field the file travels under.
	FileField() string

	setMedia(res MediaResolution)
}

func flatten(p any) (map[string]any, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type VenturePayload struct {
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

	LogoFile *MediaFile `json:"-"`
}

func (p *VenturePayload) Role() Role { return RoleVenture }
func (p *VenturePayload) Fields() (map[string]any, error) { return flatten(p) }
func (p *VenturePayload) File() *MediaFile { return p.LogoFile }
func (p *VenturePayload) FileField() string { return "logo" }

func (p *VenturePayload) setMedia(res MediaResolution) {
	p.LogoFile, p.LogoURL = nil, nil
	if res.File != nil {
		p.LogoFile = res.File
		return
	}
	if res.URL != "" {
		u := res.URL
		p.LogoURL = &u
	}
}

type InvestorPayload struct {
	FullName             *string  `json:"full_name,omitempty"`
	InvestorType         *string  `json:"investor_type,omitempty"`
	StagePreferences     []string `json:"stage_preferences,omitempty"`
	MinInvestment        *string  `json:"min_investment,omitempty"`
	MaxInvestment        *string  `json:"max_investment,omitempty"`
	Bio                  *string  `json:"bio,omitempty"`
	InvestmentExperience *string  `json:"investment_experience,omitempty"`
	ContactEmail         *string  `json:"contact_email,omitempty"`
	PortfolioCount       *int     `json:"portfolio_count,omitempty"`
	Website              *string  `json:"website,omitempty"`
	VisibleToVentures    *bool    `json:"visible_to_ventures,omitempty"`
	PhotoURL             *string  `json:"photo_url,omitempty"`

	PhotoFile *MediaFile `json:"-"`
}

func (p *InvestorPayload) Role() Role { return RoleInvestor }
func (p *InvestorPayload) Fields() (map[string]any, error) { return flatten(p) }
func (p *InvestorPayload) File() *MediaFile { return p.PhotoFile }
func (p *InvestorPayload) FileField() string { return "photo" }

func (p *InvestorPayload) setMedia(res MediaResolution) {
	p.PhotoFile, p.PhotoURL = nil, nil
	if res.File != nil {
		p.PhotoFile = res.File
		return
	}
	if res.URL != "" {
		u := res.URL
		p.PhotoURL = &u
	}
}

type MentorPayload struct {
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

	PhotoFile *MediaFile `json:"-"`
}

func (p *MentorPayload) Role() Role { return RoleMentor }
func (p *MentorPayload) Fields() (map[string]any, error) { return flatten(p) }
func (p *MentorPayload) File() *MediaFile { return p.PhotoFile }
func (p *MentorPayload) FileField() string { return "photo" }

func (p *MentorPayload) setMedia(res MediaResolution) {
	p.PhotoFile, p.PhotoURL = nil, nil
	if res.File != nil {
		p.PhotoFile = res.File
		return
	}
	if res.URL != "" {
		u := res.URL
		p.PhotoURL = &u
	}
}

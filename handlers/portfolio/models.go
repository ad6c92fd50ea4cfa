package portfolio

import "time"

// Company is one entry in an investor's portfolio. The directory's
// portfolio_count is derived from these rows, never stored.
type Company struct {
	ID          int       `json:"id"`
	InvestorID  int       `json:"investor_id"`
	Name        string    `json:"name"`
	Sector      string    `json:"sector"`
	WebsiteURL  string    `json:"website_url"`
	InvestedIn  int       `json:"invested_in"` // year of investment
	ExitedAt    *int      `json:"exited_at"`   // year of exit, nil while held
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CompanyUpdate carries a partial edit. Nil means leave unchanged.
type CompanyUpdate struct {
	Name       *string `json:"name"`
	Sector     *string `json:"sector"`
	WebsiteURL *string `json:"website_url"`
	InvestedIn *int    `json:"invested_in"`
	ExitedAt   *int    `json:"exited_at"`
}

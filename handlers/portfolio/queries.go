package portfolio

// Portfolio queries
const (
	ListCompaniesQuery = `
		SELECT id, investor_id, name, COALESCE(sector, ''), COALESCE(website_url, ''),
			COALESCE(invested_in, 0), exited_at, created_at, updated_at
		FROM portfolio_companies
		WHERE investor_id = $1
		ORDER BY invested_in DESC, name
	`

	InsertCompanyQuery = `
		INSERT INTO portfolio_companies (investor_id, name, sector, website_url, invested_in, exited_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	SelectCompanyQuery = `
		SELECT id, investor_id, name, COALESCE(sector, ''), COALESCE(website_url, ''),
			COALESCE(invested_in, 0), exited_at, created_at, updated_at
		FROM portfolio_companies
		WHERE id = $1 AND investor_id = $2
	`

	UpdateCompanyQuery = `
		UPDATE portfolio_companies
		SET name = $1, sector = $2, website_url = $3, invested_in = $4, exited_at = $5,
			updated_at = NOW()
		WHERE id = $6 AND investor_id = $7
	`

	DeleteCompanyQuery = `
		DELETE FROM portfolio_companies
		WHERE id = $1 AND investor_id = $2
	`
)

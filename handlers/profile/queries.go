package profile

// [AI_QUERIES_START]
// QUERIES:
// {
//   "profile": {
//     "select_venture":  "Retrieves a venture profile joined with account role/status",
//     "select_investor": "Retrieves an investor profile plus derived portfolio count",
//     "select_mentor":   "Retrieves a mentor profile",
//     "update_*":        "Writes the merged profile back"
//   }
// }
// [AI_QUERIES_END]

const (
	SelectVentureProfileQuery = `
		SELECT
			p.user_id,
			p.company_name,
			p.sector,
			p.short_description,
			p.founder_name,
			p.contact_email,
			p.website,
			p.year_founded,
			p.team_size,
			p.funding_stage,
			p.location,
			p.logo_url,
			p.approval_status,
			u.role,
			u.status
		FROM venture_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
	`

	SelectInvestorProfileQuery = `
		SELECT
			p.user_id,
			p.full_name,
			p.investor_type,
			COALESCE(p.stage_preferences, '{}'),
			p.min_investment,
			p.max_investment,
			p.bio,
			p.investment_experience,
			p.contact_email,
			p.website,
			p.visible_to_ventures,
			(SELECT COUNT(*) FROM portfolio_companies pc WHERE pc.investor_id = p.user_id) AS portfolio_count,
			p.photo_url,
			p.approval_status,
			u.role,
			u.status
		FROM investor_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
	`

	SelectMentorProfileQuery = `
		SELECT
			p.user_id,
			p.full_name,
			p.job_title,
			COALESCE(p.expertise_fields, '{}'),
			p.years_experience,
			p.bio,
			p.contact_email,
			p.website,
			p.is_pro_bono,
			p.allow_direct_contact,
			p.photo_url,
			p.approval_status,
			u.role,
			u.status
		FROM mentor_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
	`

	UpdateVentureProfileQuery = `
		UPDATE venture_profiles
		SET company_name = $1,
			sector = $2,
			short_description = $3,
			founder_name = $4,
			contact_email = $5,
			website = $6,
			year_founded = $7,
			team_size = $8,
			funding_stage = $9,
			location = $10,
			logo_url = $11,
			approval_status = $12,
			updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $13
	`

	UpdateInvestorProfileQuery = `
		UPDATE investor_profiles
		SET full_name = $1,
			investor_type = $2,
			stage_preferences = $3::text[],
			min_investment = $4,
			max_investment = $5,
			bio = $6,
			investment_experience = $7,
			contact_email = $8,
			website = $9,
			visible_to_ventures = $10,
			photo_url = $11,
			approval_status = $12,
			updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $13
	`

	UpdateMentorProfileQuery = `
		UPDATE mentor_profiles
		SET full_name = $1,
			job_title = $2,
			expertise_fields = $3::text[],
			years_experience = $4,
			bio = $5,
			contact_email = $6,
			website = $7,
			is_pro_bono = $8,
			allow_direct_contact = $9,
			photo_url = $10,
			approval_status = $11,
			updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $12
	`
)

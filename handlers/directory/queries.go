package directory

// Directory queries. Only approved profiles of active users are listed;
// investors additionally opt in via visible_to_ventures.
const (
	ListVenturesQuery = `
		SELECT u.id, vp.company_name, vp.sector, COALESCE(vp.location, ''), vp.logo_url,
			ARRAY_REMOVE(ARRAY[NULLIF(vp.funding_stage, '')], NULL)
		FROM users u
		JOIN venture_profiles vp ON vp.user_id = u.id
		WHERE u.status = 'active'
		AND vp.approval_status = 'approved'
		AND ($1 = '' OR vp.sector = $1)
		AND ($2 = '' OR vp.funding_stage = $2)
		ORDER BY vp.company_name
	`

	ListInvestorsQuery = `
		SELECT u.id, ip.full_name, COALESCE(ip.investor_type, ''), '', ip.photo_url,
			COALESCE(ip.stage_preferences, '{}')
		FROM users u
		JOIN investor_profiles ip ON ip.user_id = u.id
		WHERE u.status = 'active'
		AND ip.approval_status = 'approved'
		AND ip.visible_to_ventures = true
		AND ($1 = '' OR POSITION(LOWER($1) IN LOWER(ip.investment_experience)) > 0)
		AND ($2 = '' OR $2 = ANY(COALESCE(ip.stage_preferences, '{}')))
		ORDER BY ip.full_name
	`

	ListMentorsQuery = `
		SELECT u.id, mp.full_name, COALESCE(mp.job_title, ''), '', mp.photo_url,
			COALESCE(mp.expertise_fields, '{}')
		FROM users u
		JOIN mentor_profiles mp ON mp.user_id = u.id
		WHERE u.status = 'active'
		AND mp.approval_status = 'approved'
		AND ($1 = '' OR $1 = ANY(COALESCE(mp.expertise_fields, '{}')))
		ORDER BY mp.full_name
	`
)

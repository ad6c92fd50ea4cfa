package matches

import (
	"database/sql"
	"fmt"
	"log"
)

// Match scoring pairs ventures with the investors and mentors most likely
// to be relevant. Scores are 0-100; anything under 50 is not stored.
//
// venture <-> investor: the venture's funding stage appearing in the
// investor's stage preferences carries most of the weight, with a bonus
// when the investor's stated experience mentions the venture's sector.
//
// venture <-> mentor: the venture's sector appearing in the mentor's
// expertise fields is required, with years of experience as the bonus.

const ventureInvestorMatchQuery = `
	INSERT INTO temp_matches (user_id, match_id, match_score)
	SELECT $1, other_id, score FROM (
		SELECT
			u.id AS other_id,
			(CASE WHEN vp.funding_stage <> '' AND vp.funding_stage = ANY(COALESCE(ip.stage_preferences, '{}'))
				THEN 70 ELSE 0 END) +
			(CASE WHEN vp.sector <> '' AND POSITION(LOWER(vp.sector) IN LOWER(ip.investment_experience)) > 0
				THEN 30 ELSE 0 END) AS score
		FROM users u
		JOIN investor_profiles ip ON ip.user_id = u.id
		JOIN venture_profiles vp ON vp.user_id = $1
		WHERE u.role = 'investor'
		AND u.status = 'active'
		AND ip.approval_status = 'approved'
		AND ip.visible_to_ventures = true
	) scored
	WHERE score >= 50
	AND NOT EXISTS (
		SELECT 1 FROM dismissed_matches dm
		WHERE dm.user_id = $1 AND dm.match_id = scored.other_id
	)
	AND NOT EXISTS (
		SELECT 1 FROM connections c
		WHERE (c.initiator_id = $1 AND c.target_id = scored.other_id)
		   OR (c.initiator_id = scored.other_id AND c.target_id = $1)
	)
	ON CONFLICT (user_id, match_id) DO UPDATE SET match_score = EXCLUDED.match_score
`

const ventureMentorMatchQuery = `
	INSERT INTO temp_matches (user_id, match_id, match_score)
	SELECT $1, other_id, score FROM (
		SELECT
			u.id AS other_id,
			(CASE WHEN vp.sector <> '' AND vp.sector = ANY(COALESCE(mp.expertise_fields, '{}'))
				THEN 70 ELSE 0 END) +
			LEAST(COALESCE(mp.years_experience, 0), 10) * 3 AS score
		FROM users u
		JOIN mentor_profiles mp ON mp.user_id = u.id
		JOIN venture_profiles vp ON vp.user_id = $1
		WHERE u.role = 'mentor'
		AND u.status = 'active'
		AND mp.approval_status = 'approved'
	) scored
	WHERE score >= 50
	AND NOT EXISTS (
		SELECT 1 FROM dismissed_matches dm
		WHERE dm.user_id = $1 AND dm.match_id = scored.other_id
	)
	AND NOT EXISTS (
		SELECT 1 FROM connections c
		WHERE (c.initiator_id = $1 AND c.target_id = scored.other_id)
		   OR (c.initiator_id = scored.other_id AND c.target_id = $1)
	)
	ON CONFLICT (user_id, match_id) DO UPDATE SET match_score = EXCLUDED.match_score
`

const investorVentureMatchQuery = `
	INSERT INTO temp_matches (user_id, match_id, match_score)
	SELECT $1, other_id, score FROM (
		SELECT
			u.id AS other_id,
			(CASE WHEN vp.funding_stage <> '' AND vp.funding_stage = ANY(COALESCE(ip.stage_preferences, '{}'))
				THEN 70 ELSE 0 END) +
			(CASE WHEN vp.sector <> '' AND POSITION(LOWER(vp.sector) IN LOWER(ip.investment_experience)) > 0
				THEN 30 ELSE 0 END) AS score
		FROM users u
		JOIN venture_profiles vp ON vp.user_id = u.id
		JOIN investor_profiles ip ON ip.user_id = $1
		WHERE u.role = 'venture'
		AND u.status = 'active'
		AND vp.approval_status = 'approved'
	) scored
	WHERE score >= 50
	AND NOT EXISTS (
		SELECT 1 FROM dismissed_matches dm
		WHERE dm.user_id = $1 AND dm.match_id = scored.other_id
	)
	AND NOT EXISTS (
		SELECT 1 FROM connections c
		WHERE (c.initiator_id = $1 AND c.target_id = scored.other_id)
		   OR (c.initiator_id = scored.other_id AND c.target_id = $1)
	)
	ON CONFLICT (user_id, match_id) DO UPDATE SET match_score = EXCLUDED.match_score
`

const mentorVentureMatchQuery = `
	INSERT INTO temp_matches (user_id, match_id, match_score)
	SELECT $1, other_id, score FROM (
		SELECT
			u.id AS other_id,
			(CASE WHEN vp.sector <> '' AND vp.sector = ANY(COALESCE(mp.expertise_fields, '{}'))
				THEN 70 ELSE 0 END) +
			LEAST(COALESCE(mp.years_experience, 0), 10) * 3 AS score
		FROM users u
		JOIN venture_profiles vp ON vp.user_id = u.id
		JOIN mentor_profiles mp ON mp.user_id = $1
		WHERE u.role = 'venture'
		AND u.status = 'active'
		AND vp.approval_status = 'approved'
	) scored
	WHERE score >= 50
	AND NOT EXISTS (
		SELECT 1 FROM dismissed_matches dm
		WHERE dm.user_id = $1 AND dm.match_id = scored.other_id
	)
	AND NOT EXISTS (
		SELECT 1 FROM connections c
		WHERE (c.initiator_id = $1 AND c.target_id = scored.other_id)
		   OR (c.initiator_id = scored.other_id AND c.target_id = $1)
	)
	ON CONFLICT (user_id, match_id) DO UPDATE SET match_score = EXCLUDED.match_score
`

// CalculateAndStoreMatches recalculates the stored matches for one user.
func CalculateAndStoreMatches(db *sql.DB, userID int64, userRole string) error {
	if userRole == "admin" {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %v", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS temp_matches (
			user_id BIGINT NOT NULL,
			match_id BIGINT NOT NULL,
			match_score FLOAT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, match_id)
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating temp_matches table: %v", err)
	}

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS dismissed_matches (
			user_id BIGINT NOT NULL,
			match_id BIGINT NOT NULL,
			dismissed_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, match_id)
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating dismissed_matches table: %v", err)
	}

	if _, err = tx.Exec("DELETE FROM temp_matches WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("error clearing stale matches: %v", err)
	}

	var queries []string
	switch userRole {
	case "venture":
		queries = []string{ventureInvestorMatchQuery, ventureMentorMatchQuery}
	case "investor":
		queries = []string{investorVentureMatchQuery}
	case "mentor":
		queries = []string{mentorVentureMatchQuery}
	default:
		return fmt.Errorf("unknown role %q", userRole)
	}

	for _, query := range queries {
		if _, err = tx.Exec(query, userID); err != nil {
			return fmt.Errorf("error calculating matches: %v", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %v", err)
	}

	return nil
}

// GetStoredMatches retrieves pre-calculated matches for a user.
func GetStoredMatches(db *sql.DB, userID int64) ([]Match, error) {
	query := `
		SELECT
			tm.match_id,
			tm.match_score,
			u.email,
			u.role,
			COALESCE(vp.company_name, ip.full_name, mp.full_name, '') AS display_name,
			COALESCE(vp.sector, mp.job_title, ip.investor_type, '') AS headline,
			COALESCE(vp.logo_url, ip.photo_url, mp.photo_url) AS picture_url
		FROM temp_matches tm
		JOIN users u ON u.id = tm.match_id
		LEFT JOIN venture_profiles vp ON vp.user_id = tm.match_id
		LEFT JOIN investor_profiles ip ON ip.user_id = tm.match_id
		LEFT JOIN mentor_profiles mp ON mp.user_id = tm.match_id
		WHERE tm.user_id = $1
		ORDER BY tm.match_score DESC
	`

	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying matches: %v", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var match Match
		err := rows.Scan(
			&match.ID,
			&match.Score,
			&match.Email,
			&match.Role,
			&match.DisplayName,
			&match.Headline,
			&match.PictureURL,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning match: %v", err)
		}
		matches = append(matches, match)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matches: %v", err)
	}

	return matches, nil
}

// RecalculateMatchesForAllUsers recalculates matches for all active users.
func RecalculateMatchesForAllUsers(db *sql.DB) error {
	rows, err := db.Query("SELECT id, role FROM users WHERE status = 'active' AND role <> 'admin'")
	if err != nil {
		return fmt.Errorf("error querying users: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID int64
		var role string
		if err := rows.Scan(&userID, &role); err != nil {
			log.Printf("Error scanning user: %v", err)
			continue
		}

		if err := CalculateAndStoreMatches(db, userID, role); err != nil {
			log.Printf("Error calculating matches for user %d: %v", userID, err)
			continue
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating users: %v", err)
	}

	return nil
}

// Match represents one scored pairing for a user.
type Match struct {
	ID          int64          `json:"id"`
	Score       float64        `json:"score"`
	Email       string         `json:"email"`
	Role        string         `json:"role"`
	DisplayName string         `json:"display_name"`
	Headline    string         `json:"headline"`
	PictureURL  sql.NullString `json:"picture_url"`
}

package activation

import (
	"database/sql"
)

// UpdateUserStatus recalculates whether a user shows up in the directory
// and the matching pool. A user is active once the essentials of their
// role profile are filled in; anything less keeps them inactive.
func UpdateUserStatus(tx *sql.Tx, userID int) error {
	var role string
	if err := tx.QueryRow("SELECT role FROM users WHERE id = $1", userID).Scan(&role); err != nil {
		return err
	}

	var complete bool
	var err error
	switch role {
	case "venture":
		err = tx.QueryRow(`
			SELECT company_name <> '' AND sector <> '' AND short_description <> '' AND founder_name <> ''
			FROM venture_profiles
			WHERE user_id = $1
		`, userID).Scan(&complete)
	case "investor":
		err = tx.QueryRow(`
			SELECT full_name <> '' AND bio <> '' AND investment_experience <> ''
			FROM investor_profiles
			WHERE user_id = $1
		`, userID).Scan(&complete)
	case "mentor":
		err = tx.QueryRow(`
			SELECT full_name <> '' AND job_title <> '' AND bio <> ''
			FROM mentor_profiles
			WHERE user_id = $1
		`, userID).Scan(&complete)
	case "admin":
		complete = true
	default:
		complete = false
	}
	if err == sql.ErrNoRows {
		complete = false
	} else if err != nil {
		return err
	}

	newStatus := "inactive"
	if complete {
		newStatus = "active"
	}

	_, err = tx.Exec("UPDATE users SET status = $1 WHERE id = $2", newStatus, userID)
	return err
}

package status

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"venturebridge/backend/handlers/auth"

	"github.com/gorilla/mux"
)

// Status reports a user's activation state and their profile's
// approval state in one payload.
type Status struct {
	UserID         int       `json:"user_id"`
	Role           string    `json:"role"`
	Status         string    `json:"status"`
	ApprovalStatus string    `json:"approval_status"`
	LastUpdate     time.Time `json:"last_update"`
}

const statusQuery = `
	SELECT
		u.id,
		u.role,
		u.status,
		COALESCE(vp.approval_status, ip.approval_status, mp.approval_status, '') AS approval_status,
		CURRENT_TIMESTAMP as last_update
	FROM users u
	LEFT JOIN venture_profiles vp ON vp.user_id = u.id
	LEFT JOIN investor_profiles ip ON ip.user_id = u.id
	LEFT JOIN mentor_profiles mp ON mp.user_id = u.id
	WHERE u.id = $1
`

// GetStatusHandler returns the current status of a user
func GetStatusHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		vars := mux.Vars(r)
		userID := vars["id"]

		var status Status
		err := db.QueryRow(statusQuery, userID).Scan(
			&status.UserID, &status.Role, &status.Status, &status.ApprovalStatus, &status.LastUpdate)

		if err == sql.ErrNoRows {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(status)
	}
}

// GetMyStatusHandler returns the current status of the authenticated user
func GetMyStatusHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := auth.GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var status Status
		err = db.QueryRow(statusQuery, userID).Scan(
			&status.UserID, &status.Role, &status.Status, &status.ApprovalStatus, &status.LastUpdate)

		if err == sql.ErrNoRows {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(status)
	}
}

// GetUserStatus retrieves the current status of a user
func GetUserStatus(db *sql.DB, userID int) (*Status, error) {
	var status Status
	err := db.QueryRow(statusQuery, userID).Scan(
		&status.UserID, &status.Role, &status.Status, &status.ApprovalStatus, &status.LastUpdate)
	if err != nil {
		return nil, err
	}

	return &status, nil
}

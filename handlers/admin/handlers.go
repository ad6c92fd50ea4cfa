package admin

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"venturebridge/backend/handlers/notifications"

	"github.com/gorilla/mux"
)

// PendingProfile is one profile awaiting review.
type PendingProfile struct {
	UserID         int       `json:"user_id"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	DisplayName    string    `json:"display_name"`
	ApprovalStatus string    `json:"approval_status"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ApprovalRequest is the admin's review decision.
type ApprovalRequest struct {
	Decision string `json:"decision"` // "approved" or "rejected"
	Reason   string `json:"reason"`
}

const listProfilesQuery = `
	SELECT u.id, u.email, u.role,
		COALESCE(vp.company_name, ip.full_name, mp.full_name, '') AS display_name,
		COALESCE(vp.approval_status, ip.approval_status, mp.approval_status, '') AS approval_status,
		COALESCE(vp.updated_at, ip.updated_at, mp.updated_at, CURRENT_TIMESTAMP) AS updated_at
	FROM users u
	LEFT JOIN venture_profiles vp ON vp.user_id = u.id
	LEFT JOIN investor_profiles ip ON ip.user_id = u.id
	LEFT JOIN mentor_profiles mp ON mp.user_id = u.id
	WHERE u.role <> 'admin'
	AND ($1 = '' OR COALESCE(vp.approval_status, ip.approval_status, mp.approval_status, '') = $1)
	ORDER BY updated_at ASC
`

// ListProfilesHandler lists profiles for review, optionally filtered by
// ?status= (pending, approved, rejected).
func ListProfilesHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		statusFilter := r.URL.Query().Get("status")

		rows, err := db.Query(listProfilesQuery, statusFilter)
		if err != nil {
			log.Printf("Error querying profiles for review: %v", err)
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		profiles := []PendingProfile{}
		for rows.Next() {
			var p PendingProfile
			if err := rows.Scan(&p.UserID, &p.Email, &p.Role, &p.DisplayName, &p.ApprovalStatus, &p.UpdatedAt); err != nil {
				log.Printf("Error scanning profile row: %v", err)
				http.Error(w, "Database error", http.StatusInternalServerError)
				return
			}
			profiles = append(profiles, p)
		}

		if err = rows.Err(); err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(profiles)
	}
}

// profileTable maps a role to its profile table.
func profileTable(role string) (string, bool) {
	switch role {
	case "venture":
		return "venture_profiles", true
	case "investor":
		return "investor_profiles", true
	case "mentor":
		return "mentor_profiles", true
	}
	return "", false
}

// SetApprovalHandler records an approve/reject decision for one
// profile and notifies the owner.
func SetApprovalHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		vars := mux.Vars(r)
		targetID, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Invalid user ID", http.StatusBadRequest)
			return
		}

		var req ApprovalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Decision != "approved" && req.Decision != "rejected" {
			http.Error(w, "Decision must be 'approved' or 'rejected'", http.StatusBadRequest)
			return
		}

		var role string
		err = db.QueryRow("SELECT role FROM users WHERE id = $1", targetID).Scan(&role)
		if err == sql.ErrNoRows {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		table, ok := profileTable(role)
		if !ok {
			http.Error(w, "User has no reviewable profile", http.StatusBadRequest)
			return
		}

		result, err := db.Exec(
			"UPDATE "+table+" SET approval_status = $1, updated_at = CURRENT_TIMESTAMP WHERE user_id = $2",
			req.Decision, targetID)
		if err != nil {
			log.Printf("Error updating approval status: %v", err)
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		if n, _ := result.RowsAffected(); n == 0 {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		}

		content := "Your profile has been approved"
		if req.Decision == "rejected" {
			content = "Your profile was not approved"
			if req.Reason != "" {
				content += ": " + req.Reason
			}
		}
		if err := notifications.CreateNotification(db, targetID, "profile_"+req.Decision, content); err != nil {
			log.Printf("Error creating approval notification: %v", err)
		}

		json.NewEncoder(w).Encode(map[string]string{
			"user_id": strconv.Itoa(targetID),
			"status":  req.Decision,
		})
	}
}

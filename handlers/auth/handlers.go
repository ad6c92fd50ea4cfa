package auth

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"venturebridge/backend/handlers/activation"
	"venturebridge/backend/services/matches"

	"golang.org/x/crypto/bcrypt"
)

// [AI_DEPENDENCIES_START]
// DEPENDENCY_MAP:
// {
//   "external": ["database/sql", "encoding/json", "net/http", "golang.org/x/crypto/bcrypt"],
//   "internal": ["auth.GenerateToken", "activation.UpdateUserStatus", "matches.CalculateAndStoreMatches"],
//   "usage": ["main.go"]
// }
// [AI_DEPENDENCIES_END]

// [AI_MODELS_START]
// MODELS:
// {
//   "User": {
//     "fields": ["ID", "Email", "Password", "Role", "CreatedAt"],
//     "json_tags": true,
//     "omitempty": false
//   },
//   "LoginResponse": {
//     "fields": ["ID", "Email", "Token", "Role"],
//     "json_tags": true,
//     "omitempty": false
//   }
// }
// [AI_MODELS_END]

type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password,omitempty"`
	Role      string    `json:"role"` // "venture", "investor", "mentor" or "admin"
	CreatedAt time.Time `json:"created_at"`
}

type LoginResponse struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Token string `json:"token"`
	Role  string `json:"role"`
}

var signupRoles = map[string]bool{
	"venture":  true,
	"investor": true,
	"mentor":   true,
	// admin accounts are provisioned out of band, never via signup
}

// SignupHandler handles user registration
// Used by: /api/auth/signup
// Response: LoginResponse
func SignupHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var signupRequest struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}

		if err := json.NewDecoder(r.Body).Decode(&signupRequest); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid request body"})
			return
		}

		if !signupRoles[signupRequest.Role] {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid role. Must be 'venture', 'investor' or 'mentor'"})
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(signupRequest.Password), bcrypt.DefaultCost)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "Error hashing password"})
			return
		}

		tx, err := db.Begin()
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "Database error"})
			return
		}
		defer tx.Rollback()

		query := `INSERT INTO users (email, password_hash, role, status) VALUES ($1, $2, $3, 'inactive') RETURNING id`
		var userID int
		err = tx.QueryRow(query, signupRequest.Email, string(hashedPassword), signupRequest.Role).Scan(&userID)
		if err != nil {
			if strings.Contains(err.Error(), "unique constraint") {
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(map[string]string{"error": "Email already exists"})
				return
			}
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "Error creating user"})
			return
		}

		// Create the empty role-specific profile row so the profile
		// endpoints always have something to merge updates over.
		switch signupRequest.Role {
		case "venture":
			_, err = tx.Exec(`
				INSERT INTO venture_profiles (
					user_id, company_name, sector, short_description,
					founder_name, contact_email, website, funding_stage,
					location, approval_status
				) VALUES ($1, '', '', '', '', $2, '', '', '', 'pending')
			`, userID, signupRequest.Email)
		case "investor":
			_, err = tx.Exec(`
				INSERT INTO investor_profiles (
					user_id, full_name, investor_type, stage_preferences,
					min_investment, max_investment, bio, investment_experience,
					contact_email, website, visible_to_ventures, approval_status
				) VALUES ($1, '', '', '{}', '', '', '', '', $2, '', true, 'pending')
			`, userID, signupRequest.Email)
		case "mentor":
			_, err = tx.Exec(`
				INSERT INTO mentor_profiles (
					user_id, full_name, job_title, expertise_fields,
					bio, contact_email, website, is_pro_bono,
					allow_direct_contact, approval_status
				) VALUES ($1, '', '', '{}', '', $2, '', false, true, 'pending')
			`, userID, signupRequest.Email)
		}

		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "Error creating profile"})
			return
		}

		if err := activation.UpdateUserStatus(tx, userID); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "Error updating user status"})
			return
		}

		token, err := GenerateToken(userID)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "Error generating token"})
			return
		}

		_, err = tx.Exec(`
			INSERT INTO tokens (user_id, token, expires_at)
			VALUES ($1, $2, $3)
		`, userID, token, time.Now().Add(time.Hour*24))
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "Error storing token"})
			return
		}

		if err = tx.Commit(); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "Error completing registration"})
			return
		}

		response := LoginResponse{
			ID:    userID,
			Email: signupRequest.Email,
			Token: token,
			Role:  signupRequest.Role,
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(response)
	}
}

// LoginHandler handles user authentication
// Used by: /api/auth/login
// Response: LoginResponse
func LoginHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var loginRequest struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}

		if err := json.NewDecoder(r.Body).Decode(&loginRequest); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var user User
		var hashedPassword string
		query := `SELECT id, email, password_hash, role FROM users WHERE email = $1`
		err := db.QueryRow(query, loginRequest.Email).Scan(&user.ID, &user.Email, &hashedPassword, &user.Role)
		if err != nil {
			if err == sql.ErrNoRows {
				http.Error(w, "Invalid credentials", http.StatusUnauthorized)
				return
			}
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		err = bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(loginRequest.Password))
		if err != nil {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}

		token, err := GenerateToken(user.ID)
		if err != nil {
			http.Error(w, "Error generating token", http.StatusInternalServerError)
			return
		}

		tx, err := db.Begin()
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		_, err = tx.Exec(`
			INSERT INTO tokens (user_id, token, expires_at)
			VALUES ($1, $2, $3)
		`, user.ID, token, time.Now().Add(time.Hour*24))
		if err != nil {
			tx.Rollback()
			http.Error(w, "Error storing token", http.StatusInternalServerError)
			return
		}

		if err = tx.Commit(); err != nil {
			http.Error(w, "Error completing login", http.StatusInternalServerError)
			return
		}

		// Refresh this user's stored matches in the background so the
		// dashboard has current suggestions by the time it loads.
		go func(userID int64, role string) {
			if err := matches.CalculateAndStoreMatches(db, userID, role); err != nil {
				log.Printf("Error recalculating matches after login: %v", err)
			}
		}(int64(user.ID), user.Role)

		response := LoginResponse{
			ID:    user.ID,
			Email: user.Email,
			Token: token,
			Role:  user.Role,
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

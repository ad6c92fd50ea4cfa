package connection

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"venturebridge/backend/handlers/auth"
	"venturebridge/backend/handlers/notifications"
	"venturebridge/backend/services/matches"
)

// GetConnectionsHandler returns all connections for the authenticated user
func GetConnectionsHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := auth.GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		rows, err := db.Query(GetConnectionsQuery, userID)
		if err != nil {
			log.Printf("Error querying connections: %v", err)
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		var connections []Connection
		for rows.Next() {
			var conn Connection
			var otherUserPicture sql.NullString
			err := rows.Scan(
				&conn.ID,
				&conn.InitiatorID,
				&conn.TargetID,
				&conn.CreatedAt,
				&conn.UpdatedAt,
				&conn.OtherUserName,
				&conn.OtherUserRole,
				&otherUserPicture,
			)
			if err != nil {
				log.Printf("Error scanning connection: %v", err)
				http.Error(w, "Error scanning connection", http.StatusInternalServerError)
				return
			}
			conn.OtherUserPicture = otherUserPicture.String
			if conn.InitiatorID == userID {
				conn.ConnectionType = "initiated"
			} else {
				conn.ConnectionType = "received"
			}
			connections = append(connections, conn)
		}

		if err = rows.Err(); err != nil {
			log.Printf("Error iterating over rows: %v", err)
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		if err := json.NewEncoder(w).Encode(connections); err != nil {
			log.Printf("Error encoding response: %v", err)
			http.Error(w, "Error encoding response", http.StatusInternalServerError)
			return
		}
	}
}

// CreateConnectionHandler creates a new connection and notifies the target
func CreateConnectionHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := auth.GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req ConnectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Error decoding request body: %v", err)
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if req.TargetID == userID {
			http.Error(w, "Cannot connect to yourself", http.StatusBadRequest)
			return
		}

		var exists bool
		err = db.QueryRow(CheckConnectionExistsQuery, userID, req.TargetID).Scan(&exists)
		if err != nil {
			log.Printf("Error checking if connection exists: %v", err)
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		if exists {
			http.Error(w, "Connection already exists", http.StatusConflict)
			return
		}

		var conn Connection
		err = db.QueryRow(CreateConnectionQuery, userID, req.TargetID, "initiated").Scan(
			&conn.ID,
			&conn.CreatedAt,
			&conn.UpdatedAt,
		)
		if err != nil {
			log.Printf("Error creating connection: %v", err)
			http.Error(w, "Failed to create connection", http.StatusInternalServerError)
			return
		}

		// Remove the matched user from temp_matches (both directions)
		_, err = db.Exec("DELETE FROM temp_matches WHERE (user_id = $1 AND match_id = $2) OR (user_id = $2 AND match_id = $1)", userID, req.TargetID)
		if err != nil {
			log.Printf("Error removing match from temp_matches: %v", err)
			// Don't return error here as the connection was still created successfully
		}

		if err := notifications.CreateNotification(db, req.TargetID, "new_connection", "You have a new connection"); err != nil {
			log.Printf("Error creating connection notification: %v", err)
		}

		conn.InitiatorID = userID
		conn.TargetID = req.TargetID
		conn.ConnectionType = "initiated"

		if err := json.NewEncoder(w).Encode(conn); err != nil {
			log.Printf("Error encoding response: %v", err)
			http.Error(w, "Error encoding response", http.StatusInternalServerError)
			return
		}
	}
}

// DeleteConnectionHandler handles deleting a connection
func DeleteConnectionHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := auth.GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		vars := mux.Vars(r)
		connectionID, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Invalid connection ID", http.StatusBadRequest)
			return
		}

		result, err := db.Exec(DeleteConnectionQuery, connectionID, userID)
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		if rowsAffected == 0 {
			http.Error(w, "Connection not found", http.StatusNotFound)
			return
		}

		var role string
		err = db.QueryRow("SELECT role FROM users WHERE id = $1", userID).Scan(&role)
		if err != nil {
			log.Printf("Error getting user role: %v", err)
			// Don't return error here as the connection was still deleted successfully
		} else {
			err = matches.CalculateAndStoreMatches(db, int64(userID), role)
			if err != nil {
				log.Printf("Error recalculating matches: %v", err)
				// Don't return error here as the connection was still deleted successfully
			}
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// GetPotentialMatchesHandler returns scored potential matches for the user
func GetPotentialMatchesHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := auth.GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized: Invalid or missing token", http.StatusUnauthorized)
			return
		}

		var role string
		err = db.QueryRow("SELECT role FROM users WHERE id = $1", userID).Scan(&role)
		if err != nil {
			log.Printf("Error getting user role: %v", err)
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		if err := matches.CalculateAndStoreMatches(db, int64(userID), role); err != nil {
			log.Printf("Error recalculating matches: %v", err)
			http.Error(w, "Error recalculating matches", http.StatusInternalServerError)
			return
		}

		potentialMatches, err := matches.GetStoredMatches(db, int64(userID))
		if err != nil {
			log.Printf("Error fetching potential matches: %v", err)
			http.Error(w, "Error fetching potential matches", http.StatusInternalServerError)
			return
		}

		log.Printf("Found %d potential matches for user %d", len(potentialMatches), userID)

		if err := json.NewEncoder(w).Encode(potentialMatches); err != nil {
			log.Printf("Error encoding response: %v", err)
			http.Error(w, "Error encoding response", http.StatusInternalServerError)
			return
		}
	}
}

// RecalculateMatchesHandler triggers a recalculation of matches for the current user
func RecalculateMatchesHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := auth.GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var role string
		err = db.QueryRow("SELECT role FROM users WHERE id = $1", userID).Scan(&role)
		if err != nil {
			log.Printf("Error getting user role: %v", err)
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		err = matches.CalculateAndStoreMatches(db, int64(userID), role)
		if err != nil {
			log.Printf("Error calculating matches: %v", err)
			http.Error(w, "Error calculating matches", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"message": "Matches recalculated successfully"})
	}
}

// DismissMatchHandler handles dismissing a potential match
func DismissMatchHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := auth.GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		vars := mux.Vars(r)
		matchID, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Invalid match ID", http.StatusBadRequest)
			return
		}

		_, err = db.Exec(`
			INSERT INTO dismissed_matches (user_id, match_id)
			VALUES ($1, $2)
			ON CONFLICT (user_id, match_id) DO NOTHING
		`, userID, matchID)
		if err != nil {
			log.Printf("Error dismissing match: %v", err)
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		_, err = db.Exec("DELETE FROM temp_matches WHERE user_id = $1 AND match_id = $2", userID, matchID)
		if err != nil {
			log.Printf("Error removing dismissed match: %v", err)
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

package meetings

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"venturebridge/backend/handlers/auth"
	"venturebridge/backend/handlers/notifications"

	"github.com/gorilla/mux"
)

// ListMeetingsHandler returns all meetings the user is a party to.
func ListMeetingsHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := auth.GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		rows, err := db.Query(ListMeetingsQuery, userID)
		if err != nil {
			log.Printf("Error querying meetings: %v", err)
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		meetings := []Meeting{}
		for rows.Next() {
			var m Meeting
			err := rows.Scan(&m.ID, &m.ProposerID, &m.InviteeID, &m.ScheduledAt, &m.Subject,
				&m.Status, &m.CreatedAt, &m.UpdatedAt, &m.OtherName)
			if err != nil {
				log.Printf("Error scanning meeting: %v", err)
				http.Error(w, "Database error", http.StatusInternalServerError)
				return
			}
			meetings = append(meetings, m)
		}

		if err = rows.Err(); err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(meetings)
	}
}

// ProposeMeetingHandler creates a proposed meeting. Both parties must
// already be connected.
func ProposeMeetingHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := auth.GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req MeetingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if req.InviteeID == userID {
			http.Error(w, "Cannot schedule a meeting with yourself", http.StatusBadRequest)
			return
		}
		if req.ScheduledAt.Before(time.Now()) {
			http.Error(w, "Meeting time must be in the future", http.StatusBadRequest)
			return
		}
		req.Subject = strings.TrimSpace(req.Subject)
		if req.Subject == "" {
			http.Error(w, "Subject is required", http.StatusBadRequest)
			return
		}

		var connected bool
		if err := db.QueryRow(ConnectedQuery, userID, req.InviteeID).Scan(&connected); err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		if !connected {
			http.Error(w, "You can only schedule meetings with your connections", http.StatusForbidden)
			return
		}

		m := Meeting{
			ProposerID:  userID,
			InviteeID:   req.InviteeID,
			ScheduledAt: req.ScheduledAt,
			Subject:     req.Subject,
			Status:      "proposed",
		}
		err = db.QueryRow(InsertMeetingQuery, userID, req.InviteeID, req.ScheduledAt, req.Subject).
			Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			log.Printf("Error inserting meeting: %v", err)
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		if err := notifications.CreateNotification(db, req.InviteeID, "meeting_proposed", "You have a new meeting proposal"); err != nil {
			log.Printf("Error creating meeting notification: %v", err)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(m)
	}
}

// ConfirmMeetingHandler lets the invitee accept a proposed meeting.
func ConfirmMeetingHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := auth.GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		vars := mux.Vars(r)
		meetingID, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Invalid meeting ID", http.StatusBadRequest)
			return
		}

		result, err := db.Exec(ConfirmMeetingQuery, meetingID, userID)
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		if n, _ := result.RowsAffected(); n == 0 {
			http.Error(w, "Meeting not found or not confirmable", http.StatusNotFound)
			return
		}

		var proposerID, inviteeID int
		if err := db.QueryRow(MeetingPartiesQuery, meetingID).Scan(&proposerID, &inviteeID); err == nil {
			if err := notifications.CreateNotification(db, proposerID, "meeting_confirmed", "Your meeting proposal was confirmed"); err != nil {
				log.Printf("Error creating meeting notification: %v", err)
			}
		}

		json.NewEncoder(w).Encode(map[string]string{"status": "confirmed"})
	}
}

// CancelMeetingHandler lets either party cancel a meeting.
func CancelMeetingHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := auth.GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		vars := mux.Vars(r)
		meetingID, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Invalid meeting ID", http.StatusBadRequest)
			return
		}

		var proposerID, inviteeID int
		err = db.QueryRow(MeetingPartiesQuery, meetingID).Scan(&proposerID, &inviteeID)
		if err == sql.ErrNoRows {
			http.Error(w, "Meeting not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		result, err := db.Exec(CancelMeetingQuery, meetingID, userID)
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		if n, _ := result.RowsAffected(); n == 0 {
			http.Error(w, "Meeting not found or already cancelled", http.StatusNotFound)
			return
		}

		other := proposerID
		if userID == proposerID {
			other = inviteeID
		}
		if err := notifications.CreateNotification(db, other, "meeting_cancelled", "A meeting was cancelled"); err != nil {
			log.Printf("Error creating meeting notification: %v", err)
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

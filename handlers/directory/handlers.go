package directory

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"venturebridge/backend/handlers/auth"

	"github.com/lib/pq"
)

// GetDirectoryHandler lists approved profiles for browsing. Filters:
// ?role= (required: venture, investor or mentor), ?sector=, ?stage=.
func GetDirectoryHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		_, err := auth.GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		role := r.URL.Query().Get("role")
		sector := r.URL.Query().Get("sector")
		stage := r.URL.Query().Get("stage")

		var rows *sql.Rows
		switch role {
		case "venture":
			rows, err = db.Query(ListVenturesQuery, sector, stage)
		case "investor":
			rows, err = db.Query(ListInvestorsQuery, sector, stage)
		case "mentor":
			rows, err = db.Query(ListMentorsQuery, sector)
		default:
			http.Error(w, "Invalid role, expected venture, investor or mentor", http.StatusBadRequest)
			return
		}
		if err != nil {
			log.Printf("Error querying directory: %v", err)
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		listings := []Listing{}
		for rows.Next() {
			var l Listing
			var picture sql.NullString
			err := rows.Scan(&l.UserID, &l.DisplayName, &l.Headline, &l.Location, &picture, pq.Array(&l.Tags))
			if err != nil {
				log.Printf("Error scanning directory row: %v", err)
				http.Error(w, "Database error", http.StatusInternalServerError)
				return
			}
			l.Role = role
			if picture.Valid && picture.String != "" {
				l.PictureURL = &picture.String
			}
			if l.Tags == nil {
				l.Tags = []string{}
			}
			listings = append(listings, l)
		}

		if err = rows.Err(); err != nil {
			log.Printf("Error iterating directory rows: %v", err)
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(listings)
	}
}

// Note: To generate test data, use:
// curl -X POST "http://localhost:8080/api/test/generate-users?count=5" -H "Content-Type: application/json"

package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"venturebridge/backend/handlers/activation"
	"venturebridge/backend/handlers/auth"
	"venturebridge/backend/services/matches"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// Predefined arrays for consistent test data
var sectors = []string{
	"Fintech", "Healthtech", "Edtech", "Climate", "Logistics",
	"Agritech", "Cybersecurity", "E-commerce", "Biotech", "SaaS",
}

var fundingStages = []string{
	"pre-seed", "seed", "series-a", "series-b", "growth",
}

// Stored values, same domain the profile validator accepts. The engine
// translates these to their display casing on the way out.
var investorTypes = []string{
	"INDIVIDUAL", "ANGEL", "VENTURE_CAPITAL", "FAMILY_OFFICE", "CORPORATE",
}

var jobTitles = []string{
	"CTO", "VP Engineering", "Head of Product", "CFO", "COO",
	"Growth Lead", "Sales Director", "Design Lead",
}

var locations = []string{
	"Berlin", "London", "Amsterdam", "Paris", "Stockholm",
	"Lisbon", "Madrid", "Warsaw", "Tallinn", "Zurich",
}

func pick(options []string) string {
	return options[gofakeit.Number(0, len(options)-1)]
}

func pickSome(options []string, min, max int) []string {
	n := gofakeit.Number(min, max)
	out := make([]string, n)
	for i := range out {
		out[i] = pick(options)
	}
	return out
}

func GenerateTestDataHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		// Get count parameter, default to 10 if not provided
		count := 10
		if countParam := r.URL.Query().Get("count"); countParam != "" {
			parsedCount, err := strconv.Atoi(countParam)
			if err != nil || parsedCount < 1 || parsedCount > 150 {
				http.Error(w, "Count must be between 1 and 150", http.StatusBadRequest)
				return
			}
			count = parsedCount
		}

		tx, err := db.Begin()
		if err != nil {
			log.Printf("Error starting transaction: %v", err)
			http.Error(w, "Could not start generating", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		created := map[string]int{}
		failedAttempts := 0
		roles := []string{"venture", "investor", "mentor"}

		for i := 0; i < count; i++ {
			_, err := tx.Exec(fmt.Sprintf("SAVEPOINT user_%d", i))
			if err != nil {
				log.Printf("[User %d] Error creating savepoint: %v", i+1, err)
				failedAttempts++
				continue
			}

			email := gofakeit.Email()
			role := roles[i%len(roles)]
			log.Printf("[User %d] Generated email: %s, role: %s", i+1, email, role)

			hashedPassword, err := bcrypt.GenerateFromPassword([]byte("testpass123"), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("[User %d] Error hashing password: %v", i+1, err)
				tx.Exec(fmt.Sprintf("ROLLBACK TO SAVEPOINT user_%d", i))
				failedAttempts++
				continue
			}

			var userID int
			err = tx.QueryRow(`
				INSERT INTO users (email, password_hash, role, status)
				VALUES ($1, $2, $3, $4)
				RETURNING id
			`, email, string(hashedPassword), role, "inactive").Scan(&userID)
			if err != nil {
				log.Printf("[User %d] Error inserting user: %v", i+1, err)
				if pqErr, ok := err.(*pq.Error); ok {
					log.Printf("[User %d] Postgres error details: %s, code: %s, constraint: %s", i+1, pqErr.Detail, pqErr.Code, pqErr.Constraint)
				}
				tx.Exec(fmt.Sprintf("ROLLBACK TO SAVEPOINT user_%d", i))
				failedAttempts++
				continue
			}

			switch role {
			case "venture":
				_, err = tx.Exec(`
					INSERT INTO venture_profiles (
						user_id, company_name, sector, short_description,
						founder_name, contact_email, website, year_founded,
						team_size, funding_stage, location, approval_status
					)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 'approved')
				`,
					userID,
					gofakeit.Company(),
					pick(sectors),
					gofakeit.Sentence(12),
					gofakeit.Name(),
					email,
					fmt.Sprintf("https://www.%s", gofakeit.DomainName()),
					gofakeit.Number(2015, time.Now().Year()),
					gofakeit.Number(1, 50),
					pick(fundingStages),
					pick(locations),
				)
			case "investor":
				_, err = tx.Exec(`
					INSERT INTO investor_profiles (
						user_id, full_name, investor_type, stage_preferences,
						min_investment, max_investment, bio, investment_experience,
						contact_email, website, visible_to_ventures, approval_status
					)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 'approved')
				`,
					userID,
					gofakeit.Name(),
					pick(investorTypes),
					pq.Array(pickSome(fundingStages, 1, 3)),
					fmt.Sprintf("%d", gofakeit.Number(10, 100)*1000),
					fmt.Sprintf("%d", gofakeit.Number(200, 5000)*1000),
					gofakeit.Sentence(12),
					fmt.Sprintf("Invested across %s and %s.", pick(sectors), pick(sectors)),
					email,
					fmt.Sprintf("https://www.%s", gofakeit.DomainName()),
					gofakeit.Bool(),
				)
			case "mentor":
				_, err = tx.Exec(`
					INSERT INTO mentor_profiles (
						user_id, full_name, job_title, expertise_fields,
						years_experience, bio, contact_email, website,
						is_pro_bono, allow_direct_contact, approval_status
					)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'approved')
				`,
					userID,
					gofakeit.Name(),
					pick(jobTitles),
					pq.Array(pickSome(sectors, 1, 3)),
					gofakeit.Number(2, 30),
					gofakeit.Sentence(12),
					email,
					fmt.Sprintf("https://www.%s", gofakeit.DomainName()),
					gofakeit.Bool(),
					gofakeit.Bool(),
				)
			}
			if err != nil {
				log.Printf("Error creating profile: %v", err)
				tx.Exec(fmt.Sprintf("ROLLBACK TO SAVEPOINT user_%d", i))
				failedAttempts++
				continue
			}

			token, err := auth.GenerateToken(userID)
			if err != nil {
				log.Printf("Error generating token: %v", err)
				tx.Exec(fmt.Sprintf("ROLLBACK TO SAVEPOINT user_%d", i))
				failedAttempts++
				continue
			}

			_, err = tx.Exec(`
				INSERT INTO tokens (user_id, token, expires_at)
				VALUES ($1, $2, $3)
			`, userID, token, time.Now().Add(time.Hour*24))
			if err != nil {
				log.Printf("Error storing token: %v", err)
				tx.Exec(fmt.Sprintf("ROLLBACK TO SAVEPOINT user_%d", i))
				failedAttempts++
				continue
			}

			if err := activation.UpdateUserStatus(tx, userID); err != nil {
				log.Printf("Error updating user status: %v", err)
				tx.Exec(fmt.Sprintf("ROLLBACK TO SAVEPOINT user_%d", i))
				failedAttempts++
				continue
			}

			_, err = tx.Exec(fmt.Sprintf("RELEASE SAVEPOINT user_%d", i))
			if err != nil {
				log.Printf("Error releasing savepoint: %v", err)
				tx.Exec(fmt.Sprintf("ROLLBACK TO SAVEPOINT user_%d", i))
				failedAttempts++
				continue
			}

			created[role]++
		}

		if err = tx.Commit(); err != nil {
			log.Printf("Transaction commit error: %v", err)
			http.Error(w, fmt.Sprintf("Could not commit transaction: %v", err), http.StatusInternalServerError)
			return
		}

		// Recalculate matches for all users
		if err := matches.RecalculateMatchesForAllUsers(db); err != nil {
			log.Printf("Error recalculating matches: %v", err)
			// Don't return error here as the users were still created successfully
		}

		log.Printf("Summary: Created %d ventures, %d investors, %d mentors, Failed attempts: %d",
			created["venture"], created["investor"], created["mentor"], failedAttempts)

		response := struct {
			Message      string `json:"message"`
			UsersCreated int    `json:"users_created"`
			Ventures     int    `json:"ventures"`
			Investors    int    `json:"investors"`
			Mentors      int    `json:"mentors"`
		}{
			Message:      "Test user(s) generated successfully",
			UsersCreated: created["venture"] + created["investor"] + created["mentor"],
			Ventures:     created["venture"],
			Investors:    created["investor"],
			Mentors:      created["mentor"],
		}

		if err := json.NewEncoder(w).Encode(response); err != nil {
			log.Printf("Error encoding response: %v", err)
			http.Error(w, "Error generating response", http.StatusInternalServerError)
			return
		}
	}
}

package portfolio

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"venturebridge/backend/handlers/auth"

	"github.com/gorilla/mux"
)

// requireInvestor resolves the caller and verifies they hold the
// investor role. Portfolio rows belong to investors only.
func requireInvestor(db *sql.DB, r *http.Request) (int, error) {
	userID, err := auth.GetUserIDFromToken(r)
	if err != nil {
		return 0, err
	}

	role, err := auth.GetUserRole(db, userID)
	if err != nil {
		return 0, err
	}
	if role != "investor" {
		return 0, errNotInvestor
	}
	return userID, nil
}

var errNotInvestor = errors.New("portfolio requires the investor role")

// ListCompaniesHandler returns the authenticated investor's portfolio.
func ListCompaniesHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		investorID, err := requireInvestor(db, r)
		if err == errNotInvestor {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		rows, err := db.Query(ListCompaniesQuery, investorID)
		if err != nil {
			log.Printf("Error querying portfolio: %v", err)
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		companies := []Company{}
		for rows.Next() {
			var c Company
			if err := rows.Scan(&c.ID, &c.InvestorID, &c.Name, &c.Sector, &c.WebsiteURL,
				&c.InvestedIn, &c.ExitedAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
				log.Printf("Error scanning portfolio company: %v", err)
				http.Error(w, "Database error", http.StatusInternalServerError)
				return
			}
			companies = append(companies, c)
		}

		if err = rows.Err(); err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(companies)
	}
}

// CreateCompanyHandler adds a company to the investor's portfolio.
func CreateCompanyHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		investorID, err := requireInvestor(db, r)
		if err == errNotInvestor {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var c Company
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			http.Error(w, "Company name is required", http.StatusBadRequest)
			return
		}

		err = db.QueryRow(InsertCompanyQuery, investorID, c.Name, c.Sector, c.WebsiteURL,
			c.InvestedIn, c.ExitedAt).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			log.Printf("Error inserting portfolio company: %v", err)
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		c.InvestorID = investorID

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(c)
	}
}

// UpdateCompanyHandler applies a partial edit to one portfolio company.
func UpdateCompanyHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		investorID, err := requireInvestor(db, r)
		if err == errNotInvestor {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		vars := mux.Vars(r)
		companyID, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Invalid company ID", http.StatusBadRequest)
			return
		}

		var update CompanyUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		var c Company
		err = db.QueryRow(SelectCompanyQuery, companyID, investorID).Scan(
			&c.ID, &c.InvestorID, &c.Name, &c.Sector, &c.WebsiteURL,
			&c.InvestedIn, &c.ExitedAt, &c.CreatedAt, &c.UpdatedAt)
		if err == sql.ErrNoRows {
			http.Error(w, "Company not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		if update.Name != nil {
			c.Name = strings.TrimSpace(*update.Name)
		}
		if update.Sector != nil {
			c.Sector = *update.Sector
		}
		if update.WebsiteURL != nil {
			c.WebsiteURL = *update.WebsiteURL
		}
		if update.InvestedIn != nil {
			c.InvestedIn = *update.InvestedIn
		}
		if update.ExitedAt != nil {
			c.ExitedAt = update.ExitedAt
		}

		if c.Name == "" {
			http.Error(w, "Company name is required", http.StatusBadRequest)
			return
		}

		_, err = db.Exec(UpdateCompanyQuery, c.Name, c.Sector, c.WebsiteURL,
			c.InvestedIn, c.ExitedAt, companyID, investorID)
		if err != nil {
			log.Printf("Error updating portfolio company: %v", err)
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(c)
	}
}

// DeleteCompanyHandler removes a company from the portfolio.
func DeleteCompanyHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		investorID, err := requireInvestor(db, r)
		if err == errNotInvestor {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		vars := mux.Vars(r)
		companyID, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Invalid company ID", http.StatusBadRequest)
			return
		}

		result, err := db.Exec(DeleteCompanyQuery, companyID, investorID)
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		if n, _ := result.RowsAffected(); n == 0 {
			http.Error(w, "Company not found", http.StatusNotFound)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

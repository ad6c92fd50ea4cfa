package profile

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"venturebridge/backend/handlers/activation"
	"venturebridge/backend/handlers/auth"
	"venturebridge/backend/handlers/media"

	"github.com/gorilla/mux"
	"github.com/lib/pq"
)

const maxUploadSize = 10 << 20 // 10 MB

// queryRower lets the loaders run against either *sql.DB or *sql.Tx.
type queryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

// writeFieldErrors sends the structured 400 body clients reconcile onto
// their forms: backend field keys mapped to message arrays.
func writeFieldErrors(w http.ResponseWriter, fe map[string][]string) {
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(fe)
}

// displayURL turns a stored (possibly relative) media URL into the
// render-ready absolute form.
func displayURL(stored *string) *string {
	if stored == nil || *stored == "" {
		return nil
	}
	u := *stored
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return &u
	}
	base := strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/")
	full := base + u
	return &full
}

// GetMyProfileHandler returns the authenticated user's role-specific profile.
// A user who has not filled anything in still gets the empty row created at
// signup; 404 only means the row is genuinely missing.
func GetMyProfileHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := auth.GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		role, err := auth.GetUserRole(db, userID)
		if err != nil {
			log.Printf("Error getting role for user %d: %v", userID, err)
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		writeProfile(w, db, userID, role)
	}
}

// GetUserProfileHandler returns another user's profile. Investor profiles
// with visibility switched off are hidden from venture callers.
func GetUserProfileHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		callerID, err := auth.GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		targetID, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Invalid user ID", http.StatusBadRequest)
			return
		}

		role, err := auth.GetUserRole(db, targetID)
		if err == sql.ErrNoRows {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		} else if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		if role == "investor" && callerID != targetID {
			callerRole, err := auth.GetUserRole(db, callerID)
			if err != nil {
				http.Error(w, "Database error", http.StatusInternalServerError)
				return
			}
			if callerRole == "venture" {
				var visible bool
				err := db.QueryRow("SELECT visible_to_ventures FROM investor_profiles WHERE user_id = $1", targetID).Scan(&visible)
				if err != nil || !visible {
					http.Error(w, "Profile not found", http.StatusNotFound)
					return
				}
			}
		}

		writeProfile(w, db, targetID, role)
	}
}

func writeProfile(w http.ResponseWriter, db *sql.DB, userID int, role string) {
	var payload any
	var err error
	switch role {
	case "venture":
		payload, err = loadVentureProfile(db, userID)
	case "investor":
		payload, err = loadInvestorProfile(db, userID)
	case "mentor":
		payload, err = loadMentorProfile(db, userID)
	default:
		http.Error(w, "No profile for this role", http.StatusNotFound)
		return
	}

	if err == sql.ErrNoRows {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Printf("Error loading %s profile for user %d: %v", role, userID, err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding profile response: %v", err)
	}
}

func loadVentureProfile(q queryRower, userID int) (*VentureProfile, error) {
	var p VentureProfile
	err := q.QueryRow(SelectVentureProfileQuery, userID).Scan(
		&p.ID,
		&p.CompanyName,
		&p.Sector,
		&p.ShortDescription,
		&p.FounderName,
		&p.ContactEmail,
		&p.Website,
		&p.YearFounded,
		&p.TeamSize,
		&p.FundingStage,
		&p.Location,
		&p.LogoURL,
		&p.ApprovalStatus,
		&p.Role,
		&p.Status,
	)
	if err != nil {
		return nil, err
	}
	p.LogoURLDisplay = displayURL(p.LogoURL)
	return &p, nil
}

func loadInvestorProfile(q queryRower, userID int) (*InvestorProfile, error) {
	var p InvestorProfile
	err := q.QueryRow(SelectInvestorProfileQuery, userID).Scan(
		&p.ID,
		&p.FullName,
		&p.InvestorType,
		pq.Array(&p.StagePreferences),
		&p.MinInvestment,
		&p.MaxInvestment,
		&p.Bio,
		&p.InvestmentExperience,
		&p.ContactEmail,
		&p.Website,
		&p.VisibleToVentures,
		&p.PortfolioCount,
		&p.PhotoURL,
		&p.ApprovalStatus,
		&p.Role,
		&p.Status,
	)
	if err != nil {
		return nil, err
	}
	p.PhotoURLDisplay = displayURL(p.PhotoURL)
	return &p, nil
}

func loadMentorProfile(q queryRower, userID int) (*MentorProfile, error) {
	var p MentorProfile
	err := q.QueryRow(SelectMentorProfileQuery, userID).Scan(
		&p.ID,
		&p.FullName,
		&p.JobTitle,
		pq.Array(&p.ExpertiseFields),
		&p.YearsExperience,
		&p.Bio,
		&p.ContactEmail,
		&p.Website,
		&p.IsProBono,
		&p.AllowDirectContact,
		&p.PhotoURL,
		&p.ApprovalStatus,
		&p.Role,
		&p.Status,
	)
	if err != nil {
		return nil, err
	}
	p.PhotoURLDisplay = displayURL(p.PhotoURL)
	return &p, nil
}

// UpdateMyProfileHandler handles PUT /api/me/profile for every role. The
// request body is either JSON or, when a logo/photo file rides along,
// multipart form data. Updates are partial: absent fields keep their
// stored values.
func UpdateMyProfileHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := auth.GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		role, err := auth.GetUserRole(db, userID)
		if err != nil {
			log.Printf("Error getting role for user %d: %v", userID, err)
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}

		switch role {
		case "venture":
			updateVentureProfile(w, r, db, userID)
		case "investor":
			updateInvestorProfile(w, r, db, userID)
		case "mentor":
			updateMentorProfile(w, r, db, userID)
		default:
			http.Error(w, "No editable profile for this role", http.StatusForbidden)
		}
	}
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// formString reports the field's value and whether the form carried the
// key at all, preserving the absent-vs-empty distinction JSON gets from
// pointer fields.
func formString(r *http.Request, key string) (*string, bool) {
	vs, ok := r.MultipartForm.Value[key]
	if !ok || len(vs) == 0 {
		return nil, false
	}
	v := vs[0]
	return &v, true
}

func formInt(r *http.Request, key string, fe fieldErrors) *int {
	s, ok := formString(r, key)
	if !ok || *s == "" {
		return nil
	}
	n, err := strconv.Atoi(*s)
	if err != nil {
		fe.add(key, "Enter a valid number")
		return nil
	}
	return &n
}

func formBool(r *http.Request, key string, fe fieldErrors) *bool {
	s, ok := formString(r, key)
	if !ok || *s == "" {
		return nil
	}
	b, err := strconv.ParseBool(*s)
	if err != nil {
		fe.add(key, "Enter true or false")
		return nil
	}
	return &b
}

func formList(r *http.Request, key string) []string {
	vs, ok := r.MultipartForm.Value[key]
	if !ok {
		return nil
	}
	return vs
}

// formFile stores an uploaded image and returns its URL. The caller must
// not also send the matching *_url field; that conflict is a non-field
// error because it spans two inputs.
func formFile(r *http.Request, fileKey, urlKey string, userID int, fe fieldErrors) *string {
	files := r.MultipartForm.File[fileKey]
	if len(files) == 0 {
		return nil
	}
	if u, ok := formString(r, urlKey); ok && *u != "" {
		fe.add("non_field_errors", "Provide either an image file or an image URL, not both")
		return nil
	}
	url, err := media.StoreImage(files[0], userID)
	if err != nil {
		log.Printf("Error storing %s upload for user %d: %v", fileKey, userID, err)
		fe.add(fileKey, "Could not process the uploaded image")
		return nil
	}
	return &url
}

func updateVentureProfile(w http.ResponseWriter, r *http.Request, db *sql.DB, userID int) {
	var update VentureUpdate
	fe := fieldErrors{}

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			writeFieldErrors(w, map[string][]string{"non_field_errors": {"File too large. Maximum size is 10MB"}})
			return
		}
		update.CompanyName, _ = formString(r, "company_name")
		update.Sector, _ = formString(r, "sector")
		update.ShortDescription, _ = formString(r, "short_description")
		update.FounderName, _ = formString(r, "founder_name")
		update.ContactEmail, _ = formString(r, "contact_email")
		update.Website, _ = formString(r, "website")
		update.YearFounded = formInt(r, "year_founded", fe)
		update.TeamSize = formInt(r, "team_size", fe)
		update.FundingStage, _ = formString(r, "funding_stage")
		update.Location, _ = formString(r, "location")
		update.LogoURL, _ = formString(r, "logo_url")
		if logoURL := formFile(r, "logo", "logo_url", userID, fe); logoURL != nil {
			update.LogoURL = logoURL
		}
	} else if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	for field, messages := range ValidateVentureUpdate(&update) {
		fe[field] = append(fe[field], messages...)
	}
	if len(fe) > 0 {
		writeFieldErrors(w, fe)
		return
	}

	tx, err := db.Begin()
	if err != nil {
		http.Error(w, "Failed to start transaction", http.StatusInternalServerError)
		return
	}
	defer tx.Rollback()

	existing, err := loadVentureProfile(tx, userID)
	if err == sql.ErrNoRows {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Printf("Error fetching existing venture profile: %v", err)
		http.Error(w, "Error fetching existing profile", http.StatusInternalServerError)
		return
	}

	material := false
	if update.CompanyName != nil {
		existing.CompanyName = *update.CompanyName
		material = true
	}
	if update.Sector != nil {
		existing.Sector = *update.Sector
		material = true
	}
	if update.ShortDescription != nil {
		existing.ShortDescription = *update.ShortDescription
		material = true
	}
	if update.FounderName != nil {
		existing.FounderName = *update.FounderName
		material = true
	}
	if update.ContactEmail != nil {
		existing.ContactEmail = *update.ContactEmail
		material = true
	}
	if update.Website != nil {
		existing.Website = *update.Website
		material = true
	}
	if update.YearFounded != nil {
		existing.YearFounded = update.YearFounded
		material = true
	}
	if update.TeamSize != nil {
		existing.TeamSize = update.TeamSize
		material = true
	}
	if update.FundingStage != nil {
		existing.FundingStage = *update.FundingStage
		material = true
	}
	if update.Location != nil {
		existing.Location = *update.Location
		material = true
	}
	if update.LogoURL != nil {
		existing.LogoURL = update.LogoURL
	}

	// Material edits send the profile back through moderation.
	if material {
		existing.ApprovalStatus = "pending"
	}

	_, err = tx.Exec(UpdateVentureProfileQuery,
		existing.CompanyName,
		existing.Sector,
		existing.ShortDescription,
		existing.FounderName,
		existing.ContactEmail,
		existing.Website,
		existing.YearFounded,
		existing.TeamSize,
		existing.FundingStage,
		existing.Location,
		existing.LogoURL,
		existing.ApprovalStatus,
		userID)
	if err != nil {
		log.Printf("Failed to update venture profile: %v", err)
		http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	if err := activation.UpdateUserStatus(tx, userID); err != nil {
		http.Error(w, "Failed to update user status", http.StatusInternalServerError)
		return
	}

	fresh, err := loadVentureProfile(tx, userID)
	if err != nil {
		http.Error(w, "Error reloading profile", http.StatusInternalServerError)
		return
	}

	if err = tx.Commit(); err != nil {
		http.Error(w, "Failed to commit transaction", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(fresh)
}

func updateInvestorProfile(w http.ResponseWriter, r *http.Request, db *sql.DB, userID int) {
	var update InvestorUpdate
	fe := fieldErrors{}

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			writeFieldErrors(w, map[string][]string{"non_field_errors": {"File too large. Maximum size is 10MB"}})
			return
		}
		update.FullName, _ = formString(r, "full_name")
		update.InvestorType, _ = formString(r, "investor_type")
		update.StagePreferences = formList(r, "stage_preferences")
		update.MinInvestment, _ = formString(r, "min_investment")
		update.MaxInvestment, _ = formString(r, "max_investment")
		update.Bio, _ = formString(r, "bio")
		update.InvestmentExperience, _ = formString(r, "investment_experience")
		update.ContactEmail, _ = formString(r, "contact_email")
		update.Website, _ = formString(r, "website")
		update.VisibleToVentures = formBool(r, "visible_to_ventures", fe)
		update.PhotoURL, _ = formString(r, "photo_url")
		if photoURL := formFile(r, "photo", "photo_url", userID, fe); photoURL != nil {
			update.PhotoURL = photoURL
		}
	} else if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	for field, messages := range ValidateInvestorUpdate(&update) {
		fe[field] = append(fe[field], messages...)
	}
	if len(fe) > 0 {
		writeFieldErrors(w, fe)
		return
	}

	tx, err := db.Begin()
	if err != nil {
		http.Error(w, "Failed to start transaction", http.StatusInternalServerError)
		return
	}
	defer tx.Rollback()

	existing, err := loadInvestorProfile(tx, userID)
	if err == sql.ErrNoRows {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Printf("Error fetching existing investor profile: %v", err)
		http.Error(w, "Error fetching existing profile", http.StatusInternalServerError)
		return
	}

	material := false
	if update.FullName != nil {
		existing.FullName = *update.FullName
		material = true
	}
	if update.InvestorType != nil {
		existing.InvestorType = *update.InvestorType
		material = true
	}
	if update.StagePreferences != nil {
		existing.StagePreferences = update.StagePreferences
		material = true
	}
	if update.MinInvestment != nil {
		existing.MinInvestment = *update.MinInvestment
		material = true
	}
	if update.MaxInvestment != nil {
		existing.MaxInvestment = *update.MaxInvestment
		material = true
	}
	if update.Bio != nil {
		existing.Bio = *update.Bio
		material = true
	}
	if update.InvestmentExperience != nil {
		existing.InvestmentExperience = *update.InvestmentExperience
		material = true
	}
	if update.ContactEmail != nil {
		existing.ContactEmail = *update.ContactEmail
		material = true
	}
	if update.Website != nil {
		existing.Website = *update.Website
		material = true
	}
	// Visibility is a switch, not profile content; it never re-triggers
	// moderation.
	if update.VisibleToVentures != nil {
		existing.VisibleToVentures = *update.VisibleToVentures
	}
	if update.PhotoURL != nil {
		existing.PhotoURL = update.PhotoURL
	}

	if material {
		existing.ApprovalStatus = "pending"
	}

	_, err = tx.Exec(UpdateInvestorProfileQuery,
		existing.FullName,
		existing.InvestorType,
		pq.Array(existing.StagePreferences),
		existing.MinInvestment,
		existing.MaxInvestment,
		existing.Bio,
		existing.InvestmentExperience,
		existing.ContactEmail,
		existing.Website,
		existing.VisibleToVentures,
		existing.PhotoURL,
		existing.ApprovalStatus,
		userID)
	if err != nil {
		log.Printf("Failed to update investor profile: %v", err)
		http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	if err := activation.UpdateUserStatus(tx, userID); err != nil {
		http.Error(w, "Failed to update user status", http.StatusInternalServerError)
		return
	}

	fresh, err := loadInvestorProfile(tx, userID)
	if err != nil {
		http.Error(w, "Error reloading profile", http.StatusInternalServerError)
		return
	}

	if err = tx.Commit(); err != nil {
		http.Error(w, "Failed to commit transaction", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(fresh)
}

func updateMentorProfile(w http.ResponseWriter, r *http.Request, db *sql.DB, userID int) {
	var update MentorUpdate
	fe := fieldErrors{}

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			writeFieldErrors(w, map[string][]string{"non_field_errors": {"File too large. Maximum size is 10MB"}})
			return
		}
		update.FullName, _ = formString(r, "full_name")
		update.JobTitle, _ = formString(r, "job_title")
		update.ExpertiseFields = formList(r, "expertise_fields")
		update.YearsExperience = formInt(r, "years_experience", fe)
		update.Bio, _ = formString(r, "bio")
		update.ContactEmail, _ = formString(r, "contact_email")
		update.Website, _ = formString(r, "website")
		update.IsProBono = formBool(r, "is_pro_bono", fe)
		update.AllowDirectContact = formBool(r, "allow_direct_contact", fe)
		update.PhotoURL, _ = formString(r, "photo_url")
		if photoURL := formFile(r, "photo", "photo_url", userID, fe); photoURL != nil {
			update.PhotoURL = photoURL
		}
	} else if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	for field, messages := range ValidateMentorUpdate(&update) {
		fe[field] = append(fe[field], messages...)
	}
	if len(fe) > 0 {
		writeFieldErrors(w, fe)
		return
	}

	tx, err := db.Begin()
	if err != nil {
		http.Error(w, "Failed to start transaction", http.StatusInternalServerError)
		return
	}
	defer tx.Rollback()

	existing, err := loadMentorProfile(tx, userID)
	if err == sql.ErrNoRows {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Printf("Error fetching existing mentor profile: %v", err)
		http.Error(w, "Error fetching existing profile", http.StatusInternalServerError)
		return
	}

	material := false
	if update.FullName != nil {
		existing.FullName = *update.FullName
		material = true
	}
	if update.JobTitle != nil {
		existing.JobTitle = *update.JobTitle
		material = true
	}
	if update.ExpertiseFields != nil {
		existing.ExpertiseFields = update.ExpertiseFields
		material = true
	}
	if update.YearsExperience != nil {
		existing.YearsExperience = update.YearsExperience
		material = true
	}
	if update.Bio != nil {
		existing.Bio = *update.Bio
		material = true
	}
	if update.ContactEmail != nil {
		existing.ContactEmail = *update.ContactEmail
		material = true
	}
	if update.Website != nil {
		existing.Website = *update.Website
		material = true
	}
	if update.IsProBono != nil {
		existing.IsProBono = *update.IsProBono
	}
	if update.AllowDirectContact != nil {
		existing.AllowDirectContact = *update.AllowDirectContact
	}
	if update.PhotoURL != nil {
		existing.PhotoURL = update.PhotoURL
	}

	if material {
		existing.ApprovalStatus = "pending"
	}

	_, err = tx.Exec(UpdateMentorProfileQuery,
		existing.FullName,
		existing.JobTitle,
		pq.Array(existing.ExpertiseFields),
		existing.YearsExperience,
		existing.Bio,
		existing.ContactEmail,
		existing.Website,
		existing.IsProBono,
		existing.AllowDirectContact,
		existing.PhotoURL,
		existing.ApprovalStatus,
		userID)
	if err != nil {
		log.Printf("Failed to update mentor profile: %v", err)
		http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	if err := activation.UpdateUserStatus(tx, userID); err != nil {
		http.Error(w, "Failed to update user status", http.StatusInternalServerError)
		return
	}

	fresh, err := loadMentorProfile(tx, userID)
	if err != nil {
		http.Error(w, "Error reloading profile", http.StatusInternalServerError)
		return
	}

	if err = tx.Commit(); err != nil {
		http.Error(w, "Failed to commit transaction", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(fresh)
}

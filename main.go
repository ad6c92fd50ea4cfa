package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/cors"
	"golang.org/x/exp/rand"

	"venturebridge/backend/handlers"
	"venturebridge/backend/handlers/admin"
	"venturebridge/backend/handlers/auth"
	"venturebridge/backend/handlers/connection"
	"venturebridge/backend/handlers/directory"
	"venturebridge/backend/handlers/media"
	"venturebridge/backend/handlers/meetings"
	"venturebridge/backend/handlers/notifications"
	"venturebridge/backend/handlers/portfolio"
	"venturebridge/backend/handlers/profile"
	"venturebridge/backend/handlers/status"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{"DATABASE_URL", "JWT_SECRET_KEY"}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
		log.Printf("Environment variable %s is set", envVar)
	}

	// Initialize random seed
	rand.Seed(uint64(time.Now().UnixNano()))

	// Initialize database connection
	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Create router
	r := mux.NewRouter()

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	})

	// Public routes (no auth required)
	r.HandleFunc("/api/auth/signup", auth.SignupHandler(db)).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/auth/login", auth.LoginHandler(db)).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/test/generate-users", handlers.GenerateTestDataHandler(db)).Methods("POST", "OPTIONS")

	// Create a subrouter for protected routes
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(auth.AuthMiddleware)

	// Profile routes
	protected.HandleFunc("/me/profile", profile.GetMyProfileHandler(db)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/me/profile", profile.UpdateMyProfileHandler(db)).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/users/{id}/profile", profile.GetUserProfileHandler(db)).Methods("GET", "OPTIONS")

	// Directory routes
	protected.HandleFunc("/directory", directory.GetDirectoryHandler(db)).Methods("GET", "OPTIONS")

	// Upload routes
	protected.HandleFunc("/upload/profile-image", media.UploadProfileImageHandler(db)).Methods("POST", "OPTIONS")
	protected.HandleFunc("/upload/profile-image", media.DeleteProfileImageHandler(db)).Methods("DELETE", "OPTIONS")

	// Connections and Matching routes
	protected.HandleFunc("/connections", connection.GetConnectionsHandler(db)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/connections", connection.CreateConnectionHandler(db)).Methods("POST", "OPTIONS")
	protected.HandleFunc("/connections/{id}", connection.DeleteConnectionHandler(db)).Methods("DELETE", "OPTIONS")
	protected.HandleFunc("/potential-matches", connection.GetPotentialMatchesHandler(db)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/potential-matches/recalculate", connection.RecalculateMatchesHandler(db)).Methods("POST", "OPTIONS")
	protected.HandleFunc("/matches/dismiss/{id}", connection.DismissMatchHandler(db)).Methods("DELETE", "OPTIONS")

	// Portfolio routes (investors only)
	protected.HandleFunc("/portfolio", portfolio.ListCompaniesHandler(db)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/portfolio", portfolio.CreateCompanyHandler(db)).Methods("POST", "OPTIONS")
	protected.HandleFunc("/portfolio/{id}", portfolio.UpdateCompanyHandler(db)).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/portfolio/{id}", portfolio.DeleteCompanyHandler(db)).Methods("DELETE", "OPTIONS")

	// Meeting routes
	protected.HandleFunc("/meetings", meetings.ListMeetingsHandler(db)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/meetings", meetings.ProposeMeetingHandler(db)).Methods("POST", "OPTIONS")
	protected.HandleFunc("/meetings/{id}/confirm", meetings.ConfirmMeetingHandler(db)).Methods("POST", "OPTIONS")
	protected.HandleFunc("/meetings/{id}", meetings.CancelMeetingHandler(db)).Methods("DELETE", "OPTIONS")

	// Notification routes
	protected.HandleFunc("/notifications", notifications.GetNotificationsHandler(db)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/notifications/read", notifications.MarkNotificationsAsReadHandler(db)).Methods("POST", "OPTIONS")
	r.HandleFunc("/ws/notifications", notifications.HandleNotificationWebSocket())

	// Status routes
	protected.HandleFunc("/status/{id}", status.GetStatusHandler(db)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/status", status.GetMyStatusHandler(db)).Methods("GET", "OPTIONS")

	// Admin routes
	protected.HandleFunc("/admin/profiles", auth.RequireAdmin(db, admin.ListProfilesHandler(db))).Methods("GET", "OPTIONS")
	protected.HandleFunc("/admin/profiles/{id}/approval", auth.RequireAdmin(db, admin.SetApprovalHandler(db))).Methods("POST", "OPTIONS")

	// Uploaded images are served straight from disk
	r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir("uploads"))))

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, c.Handler(r)))
}

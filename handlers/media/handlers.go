package media

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"venturebridge/backend/handlers/auth"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	maxFileSize   = 10 << 20 // 10 MB
	thumbnailSize = 256
)

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// UploadResponse represents the response for a successful upload
type UploadResponse struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// StoreImage decodes an uploaded image, writes it under a fresh uuid name
// together with a square thumbnail, and returns the image's URL path.
// Decoding through imaging also guarantees the stored file really is an
// image regardless of what the Content-Type header claimed.
func StoreImage(header *multipart.FileHeader, userID int) (string, error) {
	ext, ok := allowedTypes[header.Header.Get("Content-Type")]
	if !ok {
		return "", fmt.Errorf("invalid file type %q, only JPEG, PNG and GIF are allowed", header.Header.Get("Content-Type"))
	}
	if header.Size > maxFileSize {
		return "", fmt.Errorf("file too large, maximum size is 10MB")
	}

	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decoding image: %v", err)
	}

	name := fmt.Sprintf("%d_%s%s", userID, uuid.New().String(), ext)
	dir := filepath.Join("uploads", "profile_images")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	if err := imaging.Save(img, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("saving image: %v", err)
	}

	thumb := imaging.Fill(img, thumbnailSize, thumbnailSize, imaging.Center, imaging.Lanczos)
	thumbName := strings.TrimSuffix(name, ext) + "_thumb" + ext
	if err := imaging.Save(thumb, filepath.Join(dir, thumbName)); err != nil {
		// The original is already on disk; a missing thumbnail is not
		// worth failing the upload over.
		fmt.Printf("Error saving thumbnail: %v\n", err)
	}

	return "/uploads/profile_images/" + name, nil
}

// ThumbnailURL derives the thumbnail path for a stored image URL.
func ThumbnailURL(imageURL string) string {
	ext := filepath.Ext(imageURL)
	if ext == "" {
		return imageURL
	}
	return strings.TrimSuffix(imageURL, ext) + "_thumb" + ext
}

// mediaColumn picks the role-correct profile table and column for the
// user's one image slot.
func mediaColumn(role string) (table, column string, err error) {
	switch role {
	case "venture":
		return "venture_profiles", "logo_url", nil
	case "investor":
		return "investor_profiles", "photo_url", nil
	case "mentor":
		return "mentor_profiles", "photo_url", nil
	}
	return "", "", fmt.Errorf("no media slot for role %q", role)
}

// UploadProfileImageHandler handles logo/photo uploads outside the main
// profile update flow.
func UploadProfileImageHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := auth.GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		role, err := auth.GetUserRole(db, userID)
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		table, column, err := mediaColumn(role)
		if err != nil {
			http.Error(w, "No image slot for this role", http.StatusForbidden)
			return
		}

		if err := r.ParseMultipartForm(maxFileSize); err != nil {
			json.NewEncoder(w).Encode(ErrorResponse{Error: "File too large. Maximum size is 10MB"})
			return
		}

		_, header, err := r.FormFile("file")
		if err != nil {
			json.NewEncoder(w).Encode(ErrorResponse{Error: "No file uploaded"})
			return
		}

		fileURL, err := StoreImage(header, userID)
		if err != nil {
			json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
			return
		}

		query := fmt.Sprintf("UPDATE %s SET %s = $1, updated_at = CURRENT_TIMESTAMP WHERE user_id = $2", table, column)
		if _, err := db.Exec(query, fileURL, userID); err != nil {
			os.Remove(filepath.Join(".", fileURL))
			http.Error(w, "Failed to update profile", http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(UploadResponse{URL: fileURL, ThumbnailURL: ThumbnailURL(fileURL)})
	}
}

// DeleteProfileImageHandler removes the user's stored logo/photo.
func DeleteProfileImageHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := auth.GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		role, err := auth.GetUserRole(db, userID)
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		table, column, err := mediaColumn(role)
		if err != nil {
			http.Error(w, "No image slot for this role", http.StatusForbidden)
			return
		}

		var currentURL sql.NullString
		query := fmt.Sprintf("SELECT %s FROM %s WHERE user_id = $1", column, table)
		if err := db.QueryRow(query, userID).Scan(&currentURL); err != nil {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		}

		if !currentURL.Valid || currentURL.String == "" {
			http.Error(w, "No image to delete", http.StatusBadRequest)
			return
		}

		for _, path := range []string{currentURL.String, ThumbnailURL(currentURL.String)} {
			full := filepath.Join("uploads", "profile_images", filepath.Base(path))
			if err := os.Remove(full); err != nil {
				fmt.Printf("Error deleting file: %v\n", err)
			}
		}

		query = fmt.Sprintf("UPDATE %s SET %s = NULL, updated_at = CURRENT_TIMESTAMP WHERE user_id = $1", table, column)
		if _, err := db.Exec(query, userID); err != nil {
			http.Error(w, "Failed to update profile", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

package profilesync

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetMyProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/me/profile", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{"full_name": "Jane Roe"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok-123")
	profile, err := c.GetMyProfile(context.Background(), RoleInvestor)
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", profile["full_name"])
}

func TestClient_GetMyProfileNotFoundMeansNoProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	profile, err := NewClient(srv.URL, "tok").GetMyProfile(context.Background(), RoleVenture)
	require.NoError(t, err, "404 is not an error, the profile just does not exist yet")
	assert.Nil(t, profile)
}

func TestClient_UpdateProfileJSON(t *testing.T) {
	var gotBody map[string]any
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{"company_name": "Acme Robotics"})
	}))
	defer srv.Close()

	name := "Acme Robotics"
	year := 2019
	payload := &VenturePayload{CompanyName: &name, YearFounded: &year}

	profile, err := NewClient(srv.URL, "tok").UpdateProfile(context.Background(), RoleVenture, payload)
	require.NoError(t, err)

	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "Acme Robotics", gotBody["company_name"])
	assert.Equal(t, float64(2019), gotBody["year_founded"])
	_, present := gotBody["sector"]
	assert.False(t, present, "nil fields never reach the wire")
	assert.Equal(t, "Acme Robotics", profile["company_name"])
}

func TestClient_UpdateProfileMultipartWhenFilePresent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Jane Roe", r.FormValue("full_name"))
		assert.Equal(t, []string{"seed", "series-a"}, r.MultipartForm.Value["stage_preferences"])
		assert.Equal(t, "false", r.FormValue("visible_to_ventures"))
		assert.Empty(t, r.FormValue("photo_url"), "binary upload excludes the URL reference")

		file, header, err := r.FormFile("photo")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "me.png", header.Filename)

		json.NewEncoder(w).Encode(map[string]any{"full_name": "Jane Roe"})
	}))
	defer srv.Close()

	name := "Jane Roe"
	visible := false
	payload := &InvestorPayload{
		FullName:          &name,
		StagePreferences:  []string{"seed", "series-a"},
		VisibleToVentures: &visible,
		PhotoFile:         &MediaFile{Name: "me.png", ContentType: "image/png", Data: []byte{1}},
	}

	_, err := NewClient(srv.URL, "tok").UpdateProfile(context.Background(), RoleInvestor, payload)
	require.NoError(t, err)
}

func TestClient_UpdateProfileFieldErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"company_name":     []string{"Too long"},
			"non_field_errors": []string{"Generic"},
		})
	}))
	defer srv.Close()

	name := "x"
	_, err := NewClient(srv.URL, "tok").UpdateProfile(context.Background(), RoleVenture, &VenturePayload{CompanyName: &name})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"Too long"}, verr.Fields["company_name"])
	assert.Equal(t, []string{"Generic"}, verr.Fields["non_field_errors"])
}

func TestClient_UpdateProfileSingleStringMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"contact_email": "Enter a valid email address"})
	}))
	defer srv.Close()

	name := "x"
	_, err := NewClient(srv.URL, "tok").UpdateProfile(context.Background(), RoleVenture, &VenturePayload{CompanyName: &name})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"Enter a valid email address"}, verr.Fields["contact_email"])
}

func TestClient_UpdateProfileMalformedBadRequestIsOpaque(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	name := "x"
	_, err := NewClient(srv.URL, "tok").UpdateProfile(context.Background(), RoleVenture, &VenturePayload{CompanyName: &name})
	require.Error(t, err)

	var verr *ValidationError
	assert.False(t, errors.As(err, &verr), "unparseable 400 bodies surface as opaque errors")
}

package profilesync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Client implements ProfileService over the platform's REST API. It picks
// multipart encoding when the payload carries a binary file and plain JSON
// otherwise, and decodes field-keyed 400 bodies into *ValidationError.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// GetMyProfile fetches the caller's profile. A 404 means the profile does
// not exist yet and comes back as nil, nil.
func (c *Client) GetMyProfile(ctx context.Context, role Role) (BackendProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/me/profile", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching profile: unexpected status %d", resp.StatusCode)
	}

	var profile BackendProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decoding profile: %v", err)
	}
	return profile, nil
}

// UpdateProfile persists the payload and returns the canonical profile.
func (c *Client) UpdateProfile(ctx context.Context, role Role, payload Payload) (BackendProfile, error) {
	var req *http.Request
	var err error
	if payload.File() != nil {
		req, err = c.multipartRequest(ctx, payload)
	} else {
		req, err = c.jsonRequest(ctx, payload)
	}
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading update response: %v", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var profile BackendProfile
		if err := json.Unmarshal(body, &profile); err != nil {
			return nil, fmt.Errorf("decoding updated profile: %v", err)
		}
		return profile, nil
	case http.StatusBadRequest:
		if verr := parseValidationBody(body); verr != nil {
			return nil, verr
		}
		return nil, fmt.Errorf("profile update rejected: %s", strings.TrimSpace(string(body)))
	default:
		return nil, fmt.Errorf("updating profile: unexpected status %d", resp.StatusCode)
	}
}

func (c *Client) jsonRequest(ctx context.Context, payload Payload) (*http.Request, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.BaseURL+"/api/me/profile", bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) multipartRequest(ctx context.Context, payload Payload) (*http.Request, error) {
	fields, err := payload.Fields()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		for _, v := range formValues(value) {
			if err := writer.WriteField(key, v); err != nil {
				return nil, err
			}
		}
	}

	file := payload.File()
	part, err := writer.CreateFormFile(payload.FileField(), file.Name)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.BaseURL+"/api/me/profile", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req, nil
}

// formValues renders a flattened payload value for multipart transport.
// Lists become repeated fields.
func formValues(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case bool:
		return []string{strconv.FormatBool(t)}
	case float64:
		return []string{strconv.FormatFloat(t, 'f', -1, 64)}
	case []any:
		var out []string
		for _, item := range t {
			out = append(out, formValues(item)...)
		}
		return out
	case nil:
		return nil
	default:
		return []string{fmt.Sprint(t)}
	}
}

// parseValidationBody decodes a field-keyed 400 body. Values may be arrays
// of strings or single strings; anything else fails the parse and the
// caller falls back to an opaque error.
func parseValidationBody(body []byte) *ValidationError {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil || len(raw) == 0 {
		return nil
	}
	fields := make(map[string][]string, len(raw))
	for key, value := range raw {
		switch t := value.(type) {
		case string:
			fields[key] = []string{t}
		case []any:
			var messages []string
			for _, item := range t {
				if s, ok := item.(string); ok {
					messages = append(messages, s)
				}
			}
			if len(messages) == 0 {
				return nil
			}
			fields[key] = messages
		default:
			return nil
		}
	}
	return &ValidationError{Fields: fields}
}

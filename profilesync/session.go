package profilesync

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// State is the edit session's lifecycle position:
// Loading -> Ready -> Submitting -> (Saved | SubmitError) -> Ready.
type State int

const (
	StateLoading State = iota
	StateReady
	StateSubmitting
	StateSaved
	StateSubmitError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSubmitting:
		return "submitting"
	case StateSaved:
		return "saved"
	case StateSubmitError:
		return "submit_error"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var (
	// ErrSubmitInFlight rejects a re-entrant submit; a second concurrent
	// payload could be applied out of order server-side.
	ErrSubmitInFlight = errors.New("a submit is already in flight")
	// ErrFieldsInvalid means client-side validation stopped the submit
	// before any network call.
	ErrFieldsInvalid = errors.New("form has invalid fields")
)

const (
	defaultSavedDisplay = 2500 * time.Millisecond
	defaultMaxLen       = 1000
)

// SessionConfig carries the upward interface to the hosting page.
type SessionConfig struct {
	// OnProfileUpdate fires exactly once per successful save with the
	// refreshed session user.
	OnProfileUpdate func(SessionUser)
	// OnCancel fires only on explicit abandonment, never on save.
	OnCancel func()
	// OnNotice receives general (non-field) messages for display.
	OnNotice func(string)
	// SavedDisplay overrides how long the Saved state shows before
	// reverting to Ready. Zero means the 2.5s default.
	SavedDisplay time.Duration
}

// EditSession owns one profile edit flow: it seeds role defaults, tracks
// edits and field errors, and drives validation, media resolution,
// serialization and error reconciliation around the profile collaborator.
type EditSession struct {
	mu    sync.Mutex
	role  Role
	user  SessionUser
	svc   ProfileService
	cfg   SessionConfig
	form  FormModel
	errs  ErrorMap
	media MediaReference
	state State

	savedTimer *time.Timer
}

// NewEditSession builds a session for the user's role with a fully
// renderable default form. The session starts in Loading until Load runs.
func NewEditSession(user SessionUser, svc ProfileService, cfg SessionConfig) (*EditSession, error) {
	form, err := InitializeFormData(user.Role, user)
	if err != nil {
		return nil, err
	}
	if cfg.SavedDisplay == 0 {
		cfg.SavedDisplay = defaultSavedDisplay
	}
	return &EditSession{
		role:  user.Role,
		user:  user,
		svc:   svc,
		cfg:   cfg,
		form:  form,
		errs:  ErrorMap{},
		state: StateLoading,
	}, nil
}

// Load fetches the backend profile once and merges it over the form.
// A fetch failure or a profile that does not exist yet is not an error:
// the defaults stand and the session becomes Ready either way.
func (s *EditSession) Load(ctx context.Context) {
	profile, err := s.svc.GetMyProfile(ctx, s.role)
	if err != nil {
		log.Printf("Error fetching profile for role %s: %v", s.role, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil && profile != nil {
		s.applyProfileLocked(profile)
	}
	if s.state == StateLoading {
		s.state = StateReady
	}
}

// applyProfileLocked merges a backend profile into the form and re-syncs
// the media slot from whatever the form now shows, so display and outbound
// never disagree. A staged binary upload is the one exception: it has no
// form representation and still needs to go out - except when this apply
// is the canonical response to our own submit, which already carried it.
func (s *EditSession) applyProfileLocked(profile BackendProfile) {
	hydrated, err := Hydrate(s.role, s.form, profile)
	if err != nil {
		log.Printf("Error hydrating %s profile: %v", s.role, err)
		return
	}
	s.form = hydrated
	if schema, err := schemaFor(s.role); err == nil && schema.Media != nil {
		if s.media.file == nil || s.state == StateSubmitting {
			s.media = MediaFromURL(s.form.String(schema.Media.FormField))
		}
	}
}

// SetField records a user edit and clears that field's error immediately.
// Unknown field names are an implementer error.
func (s *EditSession) SetField(name string, value any) error {
	schema, err := schemaFor(s.role)
	if err != nil {
		return err
	}
	f, ok := schema.field(name)
	if !ok && (schema.Media == nil || schema.Media.FormField != name) {
		return fmt.Errorf("field %q is not part of the %s schema", name, s.role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		switch f.Kind {
		case kindStringList:
			list, isList := value.([]string)
			if !isList {
				return fmt.Errorf("field %q expects a string list", name)
			}
			s.form[name] = append([]string(nil), list...)
		case kindBool:
			b, isBool := value.(bool)
			if !isBool {
				return fmt.Errorf("field %q expects a bool", name)
			}
			s.form[name] = b
		default:
			str, isString := value.(string)
			if !isString {
				return fmt.Errorf("field %q expects a string", name)
			}
			s.form[name] = str
		}
	} else {
		str, isString := value.(string)
		if !isString {
			return fmt.Errorf("field %q expects a string", name)
		}
		s.form[name] = str
		s.media = MediaFromURL(str)
	}
	delete(s.errs, name)
	s.leaveTerminalLocked()
	return nil
}

// SetMediaFile stages a fresh binary upload, replacing whatever variant
// the media slot held before.
func (s *EditSession) SetMediaFile(name, contentType string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.media = MediaFromFile(name, contentType, data)
	s.leaveTerminalLocked()
}

// ClearMedia empties the media slot so no file or URL goes outbound.
func (s *EditSession) ClearMedia() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.media = NoMedia()
	if schema, err := schemaFor(s.role); err == nil && schema.Media != nil {
		s.form[schema.Media.FormField] = ""
	}
	s.leaveTerminalLocked()
}

// leaveTerminalLocked drops the transient display states once the user
// keeps editing; Saved must never block further edits.
func (s *EditSession) leaveTerminalLocked() {
	if s.state == StateSaved || s.state == StateSubmitError {
		s.state = StateReady
		if s.savedTimer != nil {
			s.savedTimer.Stop()
			s.savedTimer = nil
		}
	}
}

// Submit runs the whole pipeline: validate, sanitize, resolve media,
// serialize, call the collaborator, then either re-hydrate from the
// canonical response or reconcile the failure onto the form.
func (s *EditSession) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateSubmitting {
		s.mu.Unlock()
		return ErrSubmitInFlight
	}

	errs, err := Validate(s.role, s.form)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if len(errs) > 0 {
		s.errs = errs
		s.mu.Unlock()
		s.notice("Please fix the highlighted fields")
		return ErrFieldsInvalid
	}

	s.state = StateSubmitting
	outbound := s.sanitizedFormLocked()
	media := s.media
	s.mu.Unlock()

	payload, err := Serialize(s.role, outbound)
	if err != nil {
		s.failSubmit()
		s.notice("Could not save your profile. Please try again.")
		return err
	}
	payload.setMedia(media.Resolve())

	resp, err := s.svc.UpdateProfile(ctx, s.role, payload)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			fieldErrs, notices, rerr := Reconcile(s.role, verr)
			if rerr != nil {
				s.failSubmit()
				return rerr
			}
			s.mu.Lock()
			// Server errors merge over whatever was highlighted before,
			// so a failed retry keeps earlier highlights visible.
			for k, v := range fieldErrs {
				s.errs[k] = v
			}
			s.state = StateSubmitError
			s.mu.Unlock()
			if len(fieldErrs) > 0 {
				s.notice("Please fix the highlighted fields")
			}
			for _, n := range notices {
				s.notice(n)
			}
			return err
		}
		// Opaque failure: single generic notice, ErrorMap untouched.
		s.failSubmit()
		s.notice("Could not save your profile. Please try again.")
		return err
	}

	s.mu.Lock()
	s.applyProfileLocked(resp)
	s.errs = ErrorMap{}
	s.state = StateSaved
	updated := s.refreshUserLocked()
	s.savedTimer = time.AfterFunc(s.cfg.SavedDisplay, func() {
		s.mu.Lock()
		if s.state == StateSaved {
			s.state = StateReady
		}
		s.savedTimer = nil
		s.mu.Unlock()
	})
	s.mu.Unlock()

	if s.cfg.OnProfileUpdate != nil {
		s.cfg.OnProfileUpdate(updated)
	}
	return nil
}

// Cancel abandons the edit session explicitly.
func (s *EditSession) Cancel() {
	s.mu.Lock()
	if s.savedTimer != nil {
		s.savedTimer.Stop()
		s.savedTimer = nil
	}
	s.mu.Unlock()
	if s.cfg.OnCancel != nil {
		s.cfg.OnCancel()
	}
}

func (s *EditSession) failSubmit() {
	s.mu.Lock()
	s.state = StateSubmitError
	s.mu.Unlock()
}

// sanitizedFormLocked returns an outbound copy with defensive length caps
// applied; the backend enforces the same limits authoritatively.
func (s *EditSession) sanitizedFormLocked() FormModel {
	out := s.form.clone()
	schema, err := schemaFor(s.role)
	if err != nil {
		return out
	}
	for i := range schema.Fields {
		f := &schema.Fields[i]
		max := f.MaxLen
		if max == 0 {
			max = defaultMaxLen
		}
		switch f.Kind {
		case kindStringList:
			list := out.Strings(f.Frontend)
			for j, v := range list {
				list[j] = truncate(v, max)
			}
		case kindBool:
		default:
			out[f.Frontend] = truncate(out.String(f.Frontend), max)
		}
	}
	return out
}

func truncate(v string, max int) string {
	if len(v) <= max {
		return v
	}
	runes := []rune(v)
	if len(runes) <= max {
		return v
	}
	return string(runes[:max])
}

// refreshUserLocked folds the saved form back into the session user so the
// hosting page can update shared state after a save.
func (s *EditSession) refreshUserLocked() SessionUser {
	if email := s.form.String("email"); email != "" {
		s.user.Email = email
	}
	switch s.role {
	case RoleVenture:
		if name := s.form.String("companyName"); name != "" {
			s.user.Name = name
		}
	default:
		if name := s.form.String("fullName"); name != "" {
			s.user.Name = name
		}
	}
	return s.user
}

func (s *EditSession) notice(msg string) {
	if s.cfg.OnNotice != nil {
		s.cfg.OnNotice(msg)
	}
}

// State returns the current lifecycle state.
func (s *EditSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Field returns the current value of one form field.
func (s *EditSession) Field(name string) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form[name]
}

// Form returns a snapshot of the whole form.
func (s *EditSession) Form() FormModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.clone()
}

// Errors returns a snapshot of the current field errors.
func (s *EditSession) Errors() ErrorMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(ErrorMap, len(s.errs))
	for k, v := range s.errs {
		out[k] = v
	}
	return out
}

package profilesync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeService is an in-memory ProfileService double.
type fakeService struct {
	mu          sync.Mutex
	profile     BackendProfile
	getErr      error
	updateResp  BackendProfile
	updateErr   error
	updateCalls int
	lastPayload Payload

	// When set, UpdateProfile signals entered and then blocks until
	// release is closed.
	entered chan struct{}
	release chan struct{}
}

func (f *fakeService) GetMyProfile(ctx context.Context, role Role) (BackendProfile, error) {
	return f.profile, f.getErr
}

func (f *fakeService) UpdateProfile(ctx context.Context, role Role, payload Payload) (BackendProfile, error) {
	f.mu.Lock()
	f.updateCalls++
	f.lastPayload = payload
	entered, release := f.entered, f.release
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
		<-release
	}
	return f.updateResp, f.updateErr
}

func investorUser() SessionUser {
	return SessionUser{ID: 3, Email: "jane@fund.vc", Name: "Jane Roe", Role: RoleInvestor}
}

func readySession(t *testing.T, svc *fakeService, cfg SessionConfig) *EditSession {
	t.Helper()
	s, err := NewEditSession(investorUser(), svc, cfg)
	require.NoError(t, err)
	s.Load(context.Background())
	require.Equal(t, StateReady, s.State())
	return s
}

func fillValidInvestor(t *testing.T, s *EditSession) {
	t.Helper()
	require.NoError(t, s.SetField("fullName", "Jane Roe"))
	require.NoError(t, s.SetField("bio", "Early-stage investor."))
	require.NoError(t, s.SetField("investmentExperience", "Fintech, climate."))
	require.NoError(t, s.SetField("email", "jane@fund.vc"))
}

func TestSession_StartsLoadingThenReady(t *testing.T) {
	svc := &fakeService{profile: BackendProfile{"full_name": "Jane R. Roe"}}
	s, err := NewEditSession(investorUser(), svc, SessionConfig{})
	require.NoError(t, err)
	assert.Equal(t, StateLoading, s.State())

	s.Load(context.Background())
	assert.Equal(t, StateReady, s.State())
	assert.Equal(t, "Jane R. Roe", s.Form().String("fullName"))
}

func TestSession_LoadFailureKeepsDefaults(t *testing.T) {
	svc := &fakeService{getErr: errors.New("network down")}
	s, err := NewEditSession(investorUser(), svc, SessionConfig{})
	require.NoError(t, err)

	s.Load(context.Background())
	assert.Equal(t, StateReady, s.State())
	assert.Equal(t, "Jane Roe", s.Form().String("fullName"), "seeded defaults survive a failed fetch")
}

func TestSession_LoadNoProfileYet(t *testing.T) {
	s := readySession(t, &fakeService{profile: nil}, SessionConfig{})
	assert.Equal(t, "jane@fund.vc", s.Form().String("email"))
}

func TestSession_SetFieldRejectsUnknownAndWrongType(t *testing.T) {
	s := readySession(t, &fakeService{}, SessionConfig{})

	assert.Error(t, s.SetField("organizationName", "x"), "unknown field is an implementer error")
	assert.Error(t, s.SetField("fullName", 42))
	assert.Error(t, s.SetField("stagePreferences", "seed"))
	assert.Error(t, s.SetField("isVisible", "true"))

	assert.NoError(t, s.SetField("stagePreferences", []string{"seed"}))
	assert.NoError(t, s.SetField("isVisible", false))
}

func TestSession_SetFieldClearsItsError(t *testing.T) {
	s := readySession(t, &fakeService{}, SessionConfig{})

	err := s.Submit(context.Background())
	assert.ErrorIs(t, err, ErrFieldsInvalid)
	require.Contains(t, s.Errors(), "bio")

	require.NoError(t, s.SetField("bio", "Now present."))
	assert.NotContains(t, s.Errors(), "bio")
	assert.Contains(t, s.Errors(), "investmentExperience", "other errors stay until fixed or revalidated")
}

func TestSession_SubmitBlockedByValidation(t *testing.T) {
	var notices []string
	svc := &fakeService{}
	s := readySession(t, svc, SessionConfig{OnNotice: func(m string) { notices = append(notices, m) }})

	err := s.Submit(context.Background())
	assert.ErrorIs(t, err, ErrFieldsInvalid)
	assert.Equal(t, StateReady, s.State(), "validation failure is not SubmitError")
	assert.Equal(t, 0, svc.updateCalls, "no network call on invalid form")
	assert.Equal(t, []string{"Please fix the highlighted fields"}, notices)
}

func TestSession_SubmitSuccess(t *testing.T) {
	var updated []SessionUser
	svc := &fakeService{
		updateResp: BackendProfile{"full_name": "Jane R. Roe", "bio": "Canonical bio."},
	}
	s := readySession(t, svc, SessionConfig{
		OnProfileUpdate: func(u SessionUser) { updated = append(updated, u) },
		SavedDisplay:    10 * time.Millisecond,
	})
	fillValidInvestor(t, s)

	require.NoError(t, s.Submit(context.Background()))

	assert.Equal(t, StateSaved, s.State())
	assert.Empty(t, s.Errors())
	// The canonical response wins over what was typed.
	assert.Equal(t, "Jane R. Roe", s.Form().String("fullName"))
	assert.Equal(t, "Canonical bio.", s.Form().String("bio"))

	require.Len(t, updated, 1, "OnProfileUpdate fires exactly once per save")
	assert.Equal(t, "Jane R. Roe", updated[0].Name)

	// Saved reverts to Ready on its own.
	assert.Eventually(t, func() bool { return s.State() == StateReady },
		time.Second, 5*time.Millisecond)
}

func TestSession_SubmitServerValidationError(t *testing.T) {
	var notices []string
	svc := &fakeService{
		updateErr: &ValidationError{Fields: map[string][]string{
			"bio":              {"Too long"},
			"non_field_errors": {"Profile locked during review"},
		}},
	}
	s := readySession(t, svc, SessionConfig{OnNotice: func(m string) { notices = append(notices, m) }})
	fillValidInvestor(t, s)

	err := s.Submit(context.Background())
	require.Error(t, err)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	assert.Equal(t, StateSubmitError, s.State())
	assert.Equal(t, "Too long", s.Errors()["bio"])
	assert.Contains(t, notices, "Please fix the highlighted fields")
	assert.Contains(t, notices, "Profile locked during review")
}

func TestSession_ServerErrorsMergeOverExisting(t *testing.T) {
	svc := &fakeService{
		updateErr: &ValidationError{Fields: map[string][]string{"bio": {"Too long"}}},
	}
	s := readySession(t, svc, SessionConfig{})
	fillValidInvestor(t, s)

	// Seed an existing highlight that the server response does not mention.
	s.mu.Lock()
	s.errs["website"] = "Enter a valid URL"
	s.mu.Unlock()

	_ = s.Submit(context.Background())
	assert.Equal(t, "Too long", s.Errors()["bio"])
	assert.Equal(t, "Enter a valid URL", s.Errors()["website"], "earlier highlights survive a failed retry")
}

func TestSession_OpaqueFailure(t *testing.T) {
	var notices []string
	svc := &fakeService{updateErr: errors.New("connection reset")}
	s := readySession(t, svc, SessionConfig{OnNotice: func(m string) { notices = append(notices, m) }})
	fillValidInvestor(t, s)

	err := s.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateSubmitError, s.State())
	assert.Empty(t, s.Errors(), "opaque failures never invent field errors")
	assert.Equal(t, []string{"Could not save your profile. Please try again."}, notices)
}

func TestSession_SubmitReentrancyGuard(t *testing.T) {
	svc := &fakeService{
		updateResp: BackendProfile{},
		entered:    make(chan struct{}, 1),
		release:    make(chan struct{}),
	}
	s := readySession(t, svc, SessionConfig{SavedDisplay: time.Millisecond})
	fillValidInvestor(t, s)

	done := make(chan error, 1)
	go func() { done <- s.Submit(context.Background()) }()
	<-svc.entered

	assert.ErrorIs(t, s.Submit(context.Background()), ErrSubmitInFlight)

	close(svc.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, svc.updateCalls)
}

func TestSession_EditLeavesSavedState(t *testing.T) {
	svc := &fakeService{updateResp: BackendProfile{}}
	s := readySession(t, svc, SessionConfig{SavedDisplay: time.Minute})
	fillValidInvestor(t, s)
	require.NoError(t, s.Submit(context.Background()))
	require.Equal(t, StateSaved, s.State())

	require.NoError(t, s.SetField("bio", "Edited again"))
	assert.Equal(t, StateReady, s.State(), "Saved never blocks further edits")
}

func TestSession_SanitizeCapsOutboundLengths(t *testing.T) {
	svc := &fakeService{updateResp: BackendProfile{}}
	s := readySession(t, svc, SessionConfig{SavedDisplay: time.Millisecond})
	fillValidInvestor(t, s)

	long := make([]byte, 6000)
	for i := range long {
		long[i] = 'a'
	}
	require.NoError(t, s.SetField("bio", string(long)))
	require.NoError(t, s.SetField("fullName", "Jane "+string(long)))

	require.NoError(t, s.Submit(context.Background()))

	ip, ok := svc.lastPayload.(*InvestorPayload)
	require.True(t, ok)
	assert.Len(t, *ip.Bio, 5000, "bio caps at its field-specific limit")
	assert.Len(t, *ip.FullName, 1000, "unspecified fields cap at the default")
}

func TestSession_MediaFileGoesOutbound(t *testing.T) {
	svc := &fakeService{updateResp: BackendProfile{}}
	s := readySession(t, svc, SessionConfig{SavedDisplay: time.Millisecond})
	fillValidInvestor(t, s)
	s.SetMediaFile("me.png", "image/png", []byte{9, 9})

	require.NoError(t, s.Submit(context.Background()))

	file := svc.lastPayload.File()
	require.NotNil(t, file)
	assert.Equal(t, "me.png", file.Name)
	fields, err := svc.lastPayload.Fields()
	require.NoError(t, err)
	assert.NotContains(t, fields, "photo_url", "a binary upload excludes the URL reference")
}

func TestSession_LateProfileApplyResyncsTypedMediaURL(t *testing.T) {
	svc := &fakeService{updateResp: BackendProfile{}}
	s := readySession(t, svc, SessionConfig{SavedDisplay: time.Millisecond})
	fillValidInvestor(t, s)
	require.NoError(t, s.SetField("photoUrl", "https://typed.example.com/mine.png"))

	// A refresh lands after the user already typed a URL. The form follows
	// the server's value, and the outbound media slot must follow the form.
	svc.profile = BackendProfile{"photo_url_display": "https://cdn.example.com/server.png"}
	s.Load(context.Background())
	require.Equal(t, "https://cdn.example.com/server.png", s.Form().String("photoUrl"))

	require.NoError(t, s.Submit(context.Background()))
	fields, err := svc.lastPayload.Fields()
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/server.png", fields["photo_url"],
		"outbound media matches what the form displays")
}

func TestSession_LateProfileApplyKeepsStagedUpload(t *testing.T) {
	svc := &fakeService{updateResp: BackendProfile{}}
	s := readySession(t, svc, SessionConfig{SavedDisplay: time.Millisecond})
	fillValidInvestor(t, s)
	s.SetMediaFile("me.png", "image/png", []byte{1})

	svc.profile = BackendProfile{"photo_url_display": "https://cdn.example.com/server.png"}
	s.Load(context.Background())

	require.NoError(t, s.Submit(context.Background()))
	require.NotNil(t, svc.lastPayload.File(), "a staged upload survives a refresh")

	// The canonical save response replaces the staged file, so a second
	// submit carries the URL reference instead of re-sending the bytes.
	require.NoError(t, s.Submit(context.Background()))
	assert.Nil(t, svc.lastPayload.File())
	fields, err := svc.lastPayload.Fields()
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/server.png", fields["photo_url"])
}

func TestSession_CancelFiresCallbackOnly(t *testing.T) {
	cancelled := 0
	s := readySession(t, &fakeService{}, SessionConfig{OnCancel: func() { cancelled++ }})
	s.Cancel()
	assert.Equal(t, 1, cancelled)
}

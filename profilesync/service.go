package profilesync

import "context"

// ProfileService is the external collaborator the edit session drives:
// one profile read and one profile write per role.
type ProfileService interface {
	// GetMyProfile returns the caller's profile, or nil when none exists
	// yet. A missing profile is not an error.
	GetMyProfile(ctx context.Context, role Role) (BackendProfile, error)
	// UpdateProfile persists the payload and returns the canonical
	// profile. A structured rejection comes back as *ValidationError;
	// anything else is opaque.
	UpdateProfile(ctx context.Context, role Role, payload Payload) (BackendProfile, error)
}

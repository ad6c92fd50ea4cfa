package meetings

import "time"

// Meeting is a proposed or confirmed meeting between two connected users.
// Status moves proposed -> confirmed or proposed/confirmed -> cancelled.
type Meeting struct {
	ID          int       `json:"id"`
	ProposerID  int       `json:"proposer_id"`
	InviteeID   int       `json:"invitee_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Subject     string    `json:"subject"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	OtherName   string    `json:"other_name"`
}

// MeetingRequest is the body for proposing a meeting.
type MeetingRequest struct {
	InviteeID   int       `json:"invitee_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Subject     string    `json:"subject"`
}

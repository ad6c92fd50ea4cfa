package connection

import "time"

// Connection represents an accepted introduction between two users
type Connection struct {
	ID               int       `json:"id"`
	InitiatorID      int       `json:"initiator_id"` // The user who requested the introduction
	TargetID         int       `json:"target_id"`    // The user being connected to
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	OtherUserName    string    `json:"other_user_name"`
	OtherUserRole    string    `json:"other_user_role"`
	OtherUserPicture string    `json:"other_user_picture"`
	ConnectionType   string    `json:"connection_type"` // "initiated" or "received"
}

// ConnectionRequest represents the request body for creating a connection
type ConnectionRequest struct {
	TargetID int `json:"target_id"`
}

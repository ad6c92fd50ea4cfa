package directory

// Listing is one row in the public directory.
type Listing struct {
	UserID      int      `json:"user_id"`
	Role        string   `json:"role"`
	DisplayName string   `json:"display_name"`
	Headline    string   `json:"headline"`
	Location    string   `json:"location"`
	PictureURL  *string  `json:"picture_url"`
	Tags        []string `json:"tags"`
}

package dto

// PostPayload is the decoded body of a create or update request.
// A nil field was absent from the request. Ownership is taken from the
// authenticated principal, never from this payload.
type PostPayload struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
	Image *string `json:"image"`
}

// DeleteResponse confirms a post was removed.
type DeleteResponse struct {
	Message string `json:"message"`
}

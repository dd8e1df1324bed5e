// Package api holds the JSON wire types shared by the HTTP handlers.
package api

// ErrorResponse is the body of every failed request.
// Error carries a detail string for 400 and 500 responses only.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// MessageResponse is a body carrying only a human readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewError builds an ErrorResponse without a detail string.
func NewError(message string) ErrorResponse {
	return ErrorResponse{Message: message}
}

// NewErrorDetail builds an ErrorResponse with the error's text as detail.
func NewErrorDetail(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}

package dtos

// ErrorResponse covers every error body shape the hostel API is known to send:
// {"message": ...}, {"code": ..., "message": ...} and {"error": ...}.
type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Text picks the most descriptive field.
func (e ErrorResponse) Text() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Error != "":
		return e.Error
	default:
		return e.Code
	}
}

// ValidationErrorDetail describes one failed field check.
type ValidationErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

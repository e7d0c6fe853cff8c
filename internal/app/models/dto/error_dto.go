package dto

// InternalErrorMessage is the message of every 500 response
const InternalErrorMessage = "Error interno del servidor"

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Curso no encontrado"`
	Details string `json:"details,omitempty"`
}

// NewErrorResponse creates an error response with a message only
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// WithDetails adds diagnostic details to the error response
func (e ErrorResponse) WithDetails(details string) ErrorResponse {
	e.Details = details
	return e
}

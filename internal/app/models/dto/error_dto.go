package dto

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes for the application
const (
	// Resource errors
	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"
	ErrorCodeResourceInvalid       ErrorCode = "RES_003"

	// Validation errors
	ErrorCodeValidationFailed ErrorCode = "VAL_001"

	// Server errors
	ErrorCodeInternalServer ErrorCode = "SRV_001"
	ErrorCodeDatabaseError  ErrorCode = "SRV_002"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message string    `json:"message"`
	Code    ErrorCode `json:"code"`
	Field   string    `json:"field,omitempty"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(code ErrorCode, message string) ErrorResponse {
	return ErrorResponse{Message: message, Code: code}
}

// WithField names the request field that failed validation
func (e ErrorResponse) WithField(field string) ErrorResponse {
	e.Field = field
	return e
}

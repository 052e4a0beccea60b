package dto

import "time"

// ErrorCode identifies an error class in responses.
type ErrorCode string

const (
	// Authentication errors
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeInvalidToken       ErrorCode = "AUTH_002"
	ErrorCodeExpiredToken       ErrorCode = "AUTH_003"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_004"
	ErrorCodeForbidden          ErrorCode = "AUTH_005"
	ErrorCodeAccountDisabled    ErrorCode = "AUTH_006"

	// Resource errors
	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"

	// Enrollment errors
	ErrorCodeAlreadyEnrolled     ErrorCode = "ENR_001"
	ErrorCodeNotEnrolled         ErrorCode = "ENR_002"
	ErrorCodePrerequisitesUnmet  ErrorCode = "ENR_003"
	ErrorCodeCourseNotPublished  ErrorCode = "ENR_004"
	ErrorCodeEnrollmentForbidden ErrorCode = "ENR_005"

	// Prerequisite errors
	ErrorCodeSelfPrerequisite  ErrorCode = "PRE_001"
	ErrorCodePrerequisiteCycle ErrorCode = "PRE_002"

	// Validation errors
	ErrorCodeValidationFailed ErrorCode = "VAL_001"

	// Server errors
	ErrorCodeInternalServer ErrorCode = "SRV_001"
	ErrorCodeStorageError   ErrorCode = "SRV_002"
)

// ErrorDetail carries the code, human-readable message and optional payload
// of an error.
type ErrorDetail struct {
	Code    ErrorCode   `json:"code" example:"ENR_003"`
	Message string      `json:"message" example:"Prerequisites not met"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Success   bool         `json:"success" example:"false"`
	Error     *ErrorDetail `json:"error"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewErrorDetail creates a new error detail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{Code: code, Message: message}
}

// WithDetails attaches additional structured information to the error
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(detail *ErrorDetail) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Error:     detail,
		Timestamp: time.Now(),
	}
}

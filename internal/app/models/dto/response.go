package dto

import "time"

// APIResponse is the standard success envelope.
type APIResponse struct {
	Success   bool        `json:"success" example:"true"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewAPIResponse wraps data in the standard success envelope
func NewAPIResponse(data interface{}) *APIResponse {
	return &APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// SuccessResponse carries a plain confirmation message.
type SuccessResponse struct {
	Message string `json:"message"`
}

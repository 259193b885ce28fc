package handlers

import "time"

// APIResponse is the envelope for relay-generated answers. Telegram answers
// are relayed as received and never wrapped.
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

func NewSuccessResponse(data interface{}) *APIResponse {
	return &APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}
}

func NewErrorResponse(message string) *APIResponse {
	return &APIResponse{
		Success:   false,
		Message:   message,
		Timestamp: time.Now().Unix(),
	}
}

// WithRequestID tags the response with the request ID
func (r *APIResponse) WithRequestID(id string) *APIResponse {
	r.RequestID = id
	return r
}

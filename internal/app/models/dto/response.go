package dto

// MessageResponse is returned by every endpoint; list and detail reads carry Data
type MessageResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// NewMessageResponse creates a response without data
func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{Message: message}
}

// NewDataResponse creates a response carrying data
func NewDataResponse(message string, data interface{}) MessageResponse {
	return MessageResponse{Message: message, Data: data}
}

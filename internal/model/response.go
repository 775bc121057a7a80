package model

// Response is the common API envelope.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse wraps collections with their element count.
type ListResponse struct {
	Success bool        `json:"success"`
	Count   int         `json:"count"`
	Data    interface{} `json:"data"`
}

// ErrorResponse carries a failure message and, for permission denials,
// the permissions that would have satisfied the check.
type ErrorResponse struct {
	Success             bool     `json:"success"`
	Message             string   `json:"message"`
	RequiredPermissions []string `json:"requiredPermissions,omitempty"`
}

// NewSuccessResponse builds a success envelope.
func NewSuccessResponse(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}

// NewListResponse builds a collection envelope.
func NewListResponse(count int, data interface{}) ListResponse {
	return ListResponse{Success: true, Count: count, Data: data}
}

// NewErrorResponse builds a failure envelope.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message}
}

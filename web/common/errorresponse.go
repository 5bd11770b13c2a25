package common

type ErrorResponse struct {
	Message string `json:"message"`
	// Detail carries machine-readable context for client-correctable
	// failures, e.g. the existing shift when a clock-in is rejected.
	Detail interface{} `json:"detail,omitempty"`
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		Message: message,
	}
}

func NewErrorResponseWithDetail(message string, detail interface{}) *ErrorResponse {
	return &ErrorResponse{
		Message: message,
		Detail:  detail,
	}
}

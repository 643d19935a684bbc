package handler

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// ValidationResponse carries every request-shape problem at once instead of
// stopping at the first.
type ValidationResponse struct {
	Errors []string `json:"errors"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

package dto

// ErrorResponseDTO is the common error response shape.
type ErrorResponseDTO struct {
	Error string `json:"error" example:"blog not found"`
}

// SuccessResponseDTO is the common shape for delete-style mutations.
type SuccessResponseDTO struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Blog deleted successfully"`
}

package dto

import "inkpress/imagehost"

// UploadImageRequest is the image upload payload. ImageData must be a
// base64 data-URI.
type UploadImageRequest struct {
	ImageData string `json:"image_data" binding:"required"`
	Folder    string `json:"folder"`
}

// UploadImageResponseDTO is the upload result returned to the caller.
type UploadImageResponseDTO struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	Bytes    int    `json:"bytes"`
	Message  string `json:"message" example:"Image uploaded successfully"`
}

// FromUploadResult maps a provider upload result into its DTO.
func FromUploadResult(r *imagehost.UploadResult) UploadImageResponseDTO {
	return UploadImageResponseDTO{
		URL:      r.URL,
		PublicID: r.PublicID,
		Width:    r.Width,
		Height:   r.Height,
		Format:   r.Format,
		Bytes:    r.Bytes,
		Message:  "Image uploaded successfully",
	}
}

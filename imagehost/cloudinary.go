// Package imagehost wraps the external image hosting provider behind a
// small Provider interface so callers can be tested without network access.
package imagehost

import (
	"context"
	"fmt"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// UploadResult is the provider response for a stored image.
type UploadResult struct {
	URL      string
	PublicID string
	Width    int
	Height   int
	Format   string
	Bytes    int
}

// Provider is the minimal surface this application needs from the image
// host: store an image, remove an image. Destroy returns the provider's
// raw result code ("ok", "not found", ...); interpreting it is left to the
// caller.
type Provider interface {
	Upload(ctx context.Context, imageData, folder string) (*UploadResult, error)
	Destroy(ctx context.Context, publicID string) (string, error)
}

// Bound dimensions preserving aspect ratio, automatic quality and format.
const uploadTransformation = "c_limit,w_1200,h_800/q_auto/f_auto"

// Cloudinary implements Provider using the Cloudinary upload API.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinary builds a provider from explicit credentials.
func NewCloudinary(cloudName, apiKey, apiSecret string) (*Cloudinary, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary configuration is incomplete")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &Cloudinary{cld: cld}, nil
}

// NewCloudinaryFromEnv reads CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and
// CLOUDINARY_API_SECRET from the environment.
func NewCloudinaryFromEnv() (*Cloudinary, error) {
	return NewCloudinary(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
}

func (c *Cloudinary) Upload(ctx context.Context, imageData, folder string) (*UploadResult, error) {
	resp, err := c.cld.Upload.Upload(ctx, imageData, uploader.UploadParams{
		Folder:         folder,
		Transformation: uploadTransformation,
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}
	return &UploadResult{
		URL:      resp.SecureURL,
		PublicID: resp.PublicID,
		Width:    resp.Width,
		Height:   resp.Height,
		Format:   resp.Format,
		Bytes:    resp.Bytes,
	}, nil
}

func (c *Cloudinary) Destroy(ctx context.Context, publicID string) (string, error) {
	resp, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary destroy: %w", err)
	}
	return resp.Result, nil
}

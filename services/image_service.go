package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"inkpress/imagehost"
)

var (
	ErrInvalidImageFormat = errors.New("invalid image format, must be a base64 encoded image")
	ErrDeletionFailed     = errors.New("image deletion failed")
)

const defaultUploadFolder = "blog-images"

// ImageService validates image payloads and delegates to the image host.
type ImageService struct {
	provider imagehost.Provider
}

func NewImageService(provider imagehost.Provider) *ImageService {
	return &ImageService{provider: provider}
}

// Upload stores a base64 data-URI image with the host, defaulting the
// folder to "blog-images".
func (s *ImageService) Upload(ctx context.Context, imageData, folder string) (*imagehost.UploadResult, error) {
	if !strings.HasPrefix(imageData, "data:image") {
		return nil, ErrInvalidImageFormat
	}
	if folder == "" {
		folder = defaultUploadFolder
	}
	result, err := s.provider.Upload(ctx, imageData, folder)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	return result, nil
}

// Delete removes a hosted image. The provider reporting "not found" counts
// as success so the operation is idempotent.
func (s *ImageService) Delete(ctx context.Context, publicID string) error {
	result, err := s.provider.Destroy(ctx, publicID)
	if err != nil {
		return fmt.Errorf("failed to delete image %s: %w", publicID, err)
	}
	if result != "ok" && result != "not found" {
		return fmt.Errorf("%w: %s", ErrDeletionFailed, result)
	}
	return nil
}

// ImageDeleteResult is the settled outcome of one deletion in a batch.
type ImageDeleteResult struct {
	PublicID string
	Err      error
}

// DeleteAll fires all deletions concurrently and waits for every outcome.
// One failure never aborts the batch; the caller gets a per-id result list.
func (s *ImageService) DeleteAll(ctx context.Context, publicIDs []string) []ImageDeleteResult {
	results := make([]ImageDeleteResult, len(publicIDs))

	var wg sync.WaitGroup
	for i, id := range publicIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			results[i] = ImageDeleteResult{PublicID: id, Err: s.Delete(ctx, id)}
		}(i, id)
	}
	wg.Wait()

	return results
}

package repository

import (
	"context"

	"go-leaf-inspector/internal/raster"
	"go-leaf-inspector/internal/storage"
	"go-leaf-inspector/pkg/validation"
)

// LeafImageRepository implements ImageSource over a storage fetcher.
type LeafImageRepository struct {
	fetcher   storage.ImageFetcher
	validator *validation.URLValidator
	maxDim    int
}

// NewLeafImageRepository creates a repository; maxDim caps the analysis
// resolution (0 disables downscaling).
func NewLeafImageRepository(fetcher storage.ImageFetcher, maxDim int) ImageSource {
	return &LeafImageRepository{
		fetcher:   fetcher,
		validator: validation.NewURLValidator(),
		maxDim:    maxDim,
	}
}

// FromURL fetches the photograph and converts it for analysis.
func (r *LeafImageRepository) FromURL(ctx context.Context, imageURL string) (*raster.Image, error) {
	img, err := r.fetcher.FetchImage(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	return raster.Downscale(img, r.maxDim), nil
}

// FromBytes decodes an uploaded photograph.
func (r *LeafImageRepository) FromBytes(data []byte) (*raster.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyPayload
	}
	return raster.DecodeBytes(data, r.maxDim)
}

// FromBase64 decodes a base64 payload.
func (r *LeafImageRepository) FromBase64(encoded string) (*raster.Image, error) {
	if encoded == "" {
		return nil, ErrEmptyPayload
	}
	return raster.DecodeBase64(encoded, r.maxDim)
}

// ValidateURL checks the URL before any network access.
func (r *LeafImageRepository) ValidateURL(imageURL string) error {
	return r.validator.ValidateImageURL(imageURL)
}

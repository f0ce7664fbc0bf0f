package repository

import (
	"context"

	"go-leaf-inspector/internal/raster"
)

// ImageSource provides decoded leaf photographs to the analysis service,
// whatever the input channel. Every returned image is already fitted to the
// analysis dimension cap.
type ImageSource interface {
	// FromURL fetches and decodes the photograph at the given URL
	FromURL(ctx context.Context, imageURL string) (*raster.Image, error)

	// FromBytes decodes an uploaded photograph
	FromBytes(data []byte) (*raster.Image, error)

	// FromBase64 decodes a base64 payload, data-URL prefix allowed
	FromBase64(encoded string) (*raster.Image, error)

	// ValidateURL checks that a URL is acceptable before fetching
	ValidateURL(imageURL string) error
}

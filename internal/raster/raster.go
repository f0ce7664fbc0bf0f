package raster

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/disintegration/imaging"
)

// Image is a decoded photograph as packed 8-bit RGB, row-major.
type Image struct {
	Width  int
	Height int
	Pix    []uint8 // 3 bytes per pixel
}

// New allocates a zeroed image.
func New(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// FromImage converts any decoded image into packed RGB.
func FromImage(img image.Image) *Image {
	bounds := img.Bounds()
	out := New(bounds.Dx(), bounds.Dy())
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			out.Pix[i] = uint8(r >> 8)
			out.Pix[i+1] = uint8(g >> 8)
			out.Pix[i+2] = uint8(b >> 8)
			i += 3
		}
	}
	return out
}

// RGB returns the channel values of the pixel at index i (row-major).
func (im *Image) RGB(i int) (r, g, b uint8) {
	return im.Pix[3*i], im.Pix[3*i+1], im.Pix[3*i+2]
}

// PixelCount returns width*height.
func (im *Image) PixelCount() int {
	return im.Width * im.Height
}

// Set writes the pixel at (x, y).
func (im *Image) Set(x, y int, r, g, b uint8) {
	i := 3 * (y*im.Width + x)
	im.Pix[i] = r
	im.Pix[i+1] = g
	im.Pix[i+2] = b
}

// DecodeBytes decodes raw image bytes (PNG, JPEG, GIF). Images larger than
// maxDim on either side are fitted down with Lanczos resampling; maxDim <= 0
// disables the cap.
func DecodeBytes(data []byte, maxDim int) (*Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image data")
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return Downscale(img, maxDim), nil
}

// DecodeBase64 decodes a base64 payload, stripping any data-URL prefix
// ("data:image/...;base64,").
func DecodeBase64(encoded string, maxDim int) (*Image, error) {
	encoded = strings.TrimSpace(encoded)
	if strings.HasPrefix(encoded, "data:") {
		if idx := strings.Index(encoded, ","); idx >= 0 {
			encoded = encoded[idx+1:]
		}
	}
	if encoded == "" {
		return nil, fmt.Errorf("empty base64 payload")
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image: %w", err)
	}
	return DecodeBytes(data, maxDim)
}

// Downscale converts and, when needed, fits the image inside maxDim×maxDim.
func Downscale(img image.Image, maxDim int) *Image {
	bounds := img.Bounds()
	if maxDim > 0 && (bounds.Dx() > maxDim || bounds.Dy() > maxDim) {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}
	return FromImage(img)
}

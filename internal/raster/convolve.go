package raster

import (
	"image"

	"github.com/anthonynsimon/bild/convolution"
)

// HighPass applies the 8-neighbour Laplacian kernel to a gray plane. The
// result saturates to the unsigned byte range, so flat regions come out 0
// and sharp transitions bright.
func HighPass(gray []uint8, w, h int) []uint8 {
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, g := range gray {
		src.Pix[4*i] = g
		src.Pix[4*i+1] = g
		src.Pix[4*i+2] = g
		src.Pix[4*i+3] = 255
	}

	k := convolution.Kernel{
		Matrix: []float64{
			-1, -1, -1,
			-1, 8, -1,
			-1, -1, -1,
		},
		Width:  3,
		Height: 3,
	}
	dst := convolution.Convolve(src, &k, &convolution.Options{})

	out := make([]uint8, w*h)
	for i := range out {
		out[i] = dst.Pix[4*i]
	}
	return out
}

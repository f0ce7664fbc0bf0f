package raster

import (
	"github.com/lucasb-eyer/go-colorful"
)

// ColorViews carries per-pixel channel planes derived from an Image. HSV uses
// the OpenCV byte scale (hue 0-180, saturation and value 0-255) so threshold
// constants from the plant-pathology literature apply directly. Light is the
// CIE LAB lightness rescaled to 0-255; Gray is BT.601 luminance.
type ColorViews struct {
	W, H int

	Hue   []uint8
	Sat   []uint8
	Val   []uint8
	Light []uint8
	Gray  []uint8

	MeanR float64
	MeanG float64
	MeanB float64
}

// NewColorViews computes every channel plane in a single pass.
func NewColorViews(im *Image) *ColorViews {
	n := im.PixelCount()
	v := &ColorViews{
		W:     im.Width,
		H:     im.Height,
		Hue:   make([]uint8, n),
		Sat:   make([]uint8, n),
		Val:   make([]uint8, n),
		Light: make([]uint8, n),
		Gray:  make([]uint8, n),
	}

	var sumR, sumG, sumB float64
	for i := 0; i < n; i++ {
		r, g, b := im.RGB(i)
		fr, fg, fb := float64(r), float64(g), float64(b)
		sumR += fr
		sumG += fg
		sumB += fb

		c := colorful.Color{R: fr / 255, G: fg / 255, B: fb / 255}
		hue, sat, val := c.Hsv()
		v.Hue[i] = uint8(hue/2 + 0.5)
		v.Sat[i] = uint8(sat*255 + 0.5)
		v.Val[i] = uint8(val*255 + 0.5)

		l, _, _ := c.Lab()
		v.Light[i] = clampByte(l * 255)

		v.Gray[i] = uint8(0.299*fr + 0.587*fg + 0.114*fb + 0.5)
	}

	if n > 0 {
		v.MeanR = sumR / float64(n)
		v.MeanG = sumG / float64(n)
		v.MeanB = sumB / float64(n)
	}
	return v
}

func clampByte(f float64) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 255 {
		return 255
	}
	return uint8(f + 0.5)
}

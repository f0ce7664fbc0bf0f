package raster

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Mask is a per-pixel boolean selection over an image plane.
type Mask struct {
	W, H int
	Bits []bool
}

// NewMask allocates an empty mask.
func NewMask(w, h int) *Mask {
	return &Mask{W: w, H: h, Bits: make([]bool, w*h)}
}

// Count returns the number of selected pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

// CoveragePercent returns selected pixels as a percentage of the plane.
func (m *Mask) CoveragePercent() float64 {
	total := m.W * m.H
	if total == 0 {
		return 0
	}
	return float64(m.Count()) / float64(total) * 100
}

// And intersects two masks of the same shape.
func (m *Mask) And(other *Mask) *Mask {
	out := NewMask(m.W, m.H)
	for i := range m.Bits {
		out.Bits[i] = m.Bits[i] && other.Bits[i]
	}
	return out
}

// HSVRange selects pixels whose HSV channels all fall inside the inclusive
// ranges, matching inRange semantics on the OpenCV byte scale.
func HSVRange(v *ColorViews, hLo, hHi, sLo, sHi, vLo, vHi uint8) *Mask {
	m := NewMask(v.W, v.H)
	for i := range m.Bits {
		m.Bits[i] = v.Hue[i] >= hLo && v.Hue[i] <= hHi &&
			v.Sat[i] >= sLo && v.Sat[i] <= sHi &&
			v.Val[i] >= vLo && v.Val[i] <= vHi
	}
	return m
}

// ChannelRange selects pixels of a single byte plane inside [lo, hi].
func ChannelRange(plane []uint8, w, h int, lo, hi uint8) *Mask {
	m := NewMask(w, h)
	for i, p := range plane {
		m.Bits[i] = p >= lo && p <= hi
	}
	return m
}

// BorderBandWidth returns the margin-band width for a frame: a tenth of the
// short side, at least 10 pixels.
func BorderBandWidth(w, h int) int {
	short := w
	if h < short {
		short = h
	}
	bw := short / 10
	if bw < 10 {
		bw = 10
	}
	return bw
}

// BorderBand selects the outer band of the frame.
func BorderBand(w, h int) *Mask {
	m := NewMask(w, h)
	bw := BorderBandWidth(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if y < bw || y >= h-bw || x < bw || x >= w-bw {
				m.Bits[y*w+x] = true
			}
		}
	}
	return m
}

// MeanStd returns the population mean and standard deviation of a byte plane.
func MeanStd(plane []uint8) (mean, std float64) {
	if len(plane) == 0 {
		return 0, 0
	}
	fs := make([]float64, len(plane))
	for i, p := range plane {
		fs[i] = float64(p)
	}
	mean = stat.Mean(fs, nil)
	std = stat.PopStdDev(fs, nil)
	return mean, std
}

// Percentile returns the p-th percentile (0-100) of values using linear
// interpolation between order statistics. An empty slice yields 0.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return stat.Quantile(p/100, stat.LinInterp, sorted, nil)
}

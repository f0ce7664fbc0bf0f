package raster

import "math"

// BoxFilter returns the mean of each win×win neighborhood of src. Windows
// are clipped at the borders and normalized by the clipped pixel count. The
// anchor matches convolution kernels: for even win the window spans
// [x-win/2, x+win/2-1].
func BoxFilter(src []float64, w, h, win int) []float64 {
	if win < 1 {
		win = 1
	}
	// summed-area table with a one-cell apron
	sat := make([]float64, (w+1)*(h+1))
	for y := 0; y < h; y++ {
		rowSum := 0.0
		for x := 0; x < w; x++ {
			rowSum += src[y*w+x]
			sat[(y+1)*(w+1)+(x+1)] = sat[y*(w+1)+(x+1)] + rowSum
		}
	}

	lo := win / 2
	hi := win - 1 - lo
	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		y0, y1 := y-lo, y+hi
		if y0 < 0 {
			y0 = 0
		}
		if y1 >= h {
			y1 = h - 1
		}
		for x := 0; x < w; x++ {
			x0, x1 := x-lo, x+hi
			if x0 < 0 {
				x0 = 0
			}
			if x1 >= w {
				x1 = w - 1
			}
			sum := sat[(y1+1)*(w+1)+(x1+1)] - sat[y0*(w+1)+(x1+1)] -
				sat[(y1+1)*(w+1)+x0] + sat[y0*(w+1)+x0]
			out[y*w+x] = sum / float64((y1-y0+1)*(x1-x0+1))
		}
	}
	return out
}

// LocalVariance returns, per pixel, the box-filtered squared deviation of a
// byte plane from its local mean.
func LocalVariance(plane []uint8, w, h, win int) []float64 {
	f := make([]float64, len(plane))
	for i, p := range plane {
		f[i] = float64(p)
	}
	mean := BoxFilter(f, w, h, win)
	dev := make([]float64, len(f))
	for i := range f {
		d := f[i] - mean[i]
		dev[i] = d * d
	}
	return BoxFilter(dev, w, h, win)
}

// LocalStdDev is the square root of LocalVariance.
func LocalStdDev(plane []uint8, w, h, win int) []float64 {
	v := LocalVariance(plane, w, h, win)
	for i := range v {
		v[i] = math.Sqrt(v[i])
	}
	return v
}

package raster

import "math"

// gaussian5 is the 5×5 smoothing kernel (sum 273) applied before gradient
// estimation.
var gaussian5 = [25]float64{
	1, 4, 7, 4, 1,
	4, 16, 26, 16, 4,
	7, 26, 41, 26, 7,
	4, 16, 26, 16, 4,
	1, 4, 7, 4, 1,
}

// CannyEdges runs the Canny detector on a gray plane: gaussian smoothing,
// Sobel gradients, non-maximum suppression, then hysteresis with the given
// low and high magnitude thresholds.
func CannyEdges(gray []uint8, w, h int, low, high float64) *Mask {
	out := NewMask(w, h)
	if w < 3 || h < 3 {
		return out
	}

	blurred := gaussianBlur5(gray, w, h)

	mag := make([]float64, w*h)
	dir := make([]uint8, w*h) // 0:horizontal 1:diag45 2:vertical 3:diag135
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := -blurred[(y-1)*w+x-1] + blurred[(y-1)*w+x+1] +
				-2*blurred[y*w+x-1] + 2*blurred[y*w+x+1] +
				-blurred[(y+1)*w+x-1] + blurred[(y+1)*w+x+1]
			gy := -blurred[(y-1)*w+x-1] - 2*blurred[(y-1)*w+x] - blurred[(y-1)*w+x+1] +
				blurred[(y+1)*w+x-1] + 2*blurred[(y+1)*w+x] + blurred[(y+1)*w+x+1]

			i := y*w + x
			mag[i] = math.Hypot(gx, gy)
			angle := math.Atan2(gy, gx) * 180 / math.Pi
			if angle < 0 {
				angle += 180
			}
			switch {
			case angle < 22.5 || angle >= 157.5:
				dir[i] = 0
			case angle < 67.5:
				dir[i] = 1
			case angle < 112.5:
				dir[i] = 2
			default:
				dir[i] = 3
			}
		}
	}

	// non-maximum suppression
	thin := make([]float64, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			var a, b float64
			switch dir[i] {
			case 0:
				a, b = mag[i-1], mag[i+1]
			case 1:
				a, b = mag[(y-1)*w+x+1], mag[(y+1)*w+x-1]
			case 2:
				a, b = mag[(y-1)*w+x], mag[(y+1)*w+x]
			default:
				a, b = mag[(y-1)*w+x-1], mag[(y+1)*w+x+1]
			}
			if mag[i] >= a && mag[i] >= b {
				thin[i] = mag[i]
			}
		}
	}

	// hysteresis: strong pixels seed, weak pixels join when 8-connected
	const (
		none uint8 = iota
		weak
		strong
	)
	state := make([]uint8, w*h)
	stack := make([]int, 0, w*h/8)
	for i, m := range thin {
		switch {
		case m >= high:
			state[i] = strong
			out.Bits[i] = true
			stack = append(stack, i)
		case m >= low:
			state[i] = weak
		}
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				j := ny*w + nx
				if state[j] == weak {
					state[j] = strong
					out.Bits[j] = true
					stack = append(stack, j)
				}
			}
		}
	}
	return out
}

func gaussianBlur5(gray []uint8, w, h int) []float64 {
	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			ki := 0
			for dy := -2; dy <= 2; dy++ {
				for dx := -2; dx <= 2; dx++ {
					sx, sy := x+dx, y+dy
					if sx < 0 {
						sx = 0
					} else if sx >= w {
						sx = w - 1
					}
					if sy < 0 {
						sy = 0
					} else if sy >= h {
						sy = h - 1
					}
					sum += gaussian5[ki] * float64(gray[sy*w+sx])
					ki++
				}
			}
			out[y*w+x] = sum / 273
		}
	}
	return out
}

// Close3x3 applies a morphological closing (dilate then erode) with a 3×3
// structuring element, bridging single-pixel gaps in edge maps.
func (m *Mask) Close3x3() *Mask {
	dilated := m.morph3x3(true)
	return dilated.morph3x3(false)
}

func (m *Mask) morph3x3(dilate bool) *Mask {
	out := NewMask(m.W, m.H)
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			result := !dilate
		neighborhood:
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					v := false
					if nx >= 0 && nx < m.W && ny >= 0 && ny < m.H {
						v = m.Bits[ny*m.W+nx]
					}
					if dilate && v {
						result = true
						break neighborhood
					}
					if !dilate && !v {
						result = false
						break neighborhood
					}
				}
			}
			out.Bits[y*m.W+x] = result
		}
	}
	return out
}

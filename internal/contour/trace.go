package contour

// Point is a pixel coordinate.
type Point struct {
	X, Y int
}

// clockwise Moore neighborhood with y growing downward, starting west
var ringDirs = [8]Point{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

// FindExternal traces the external boundary of every 8-connected foreground
// component, in scan order, using Moore-neighbor tracing. Tracing stops on
// the first return to the start pixel.
func FindExternal(bin []bool, w, h int) [][]Point {
	if w <= 0 || h <= 0 {
		return nil
	}
	labeled := make([]bool, w*h)
	var contours [][]Point
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if !bin[i] || labeled[i] {
				continue
			}
			contours = append(contours, traceBoundary(bin, w, h, Point{x, y}))
			floodLabel(bin, labeled, w, h, x, y)
		}
	}
	return contours
}

func traceBoundary(bin []bool, w, h int, start Point) []Point {
	inBounds := func(p Point) bool {
		return p.X >= 0 && p.X < w && p.Y >= 0 && p.Y < h
	}
	fg := func(p Point) bool {
		return inBounds(p) && bin[p.Y*w+p.X]
	}
	ringIndex := func(center, q Point) int {
		for i, d := range ringDirs {
			if center.X+d.X == q.X && center.Y+d.Y == q.Y {
				return i
			}
		}
		return 0
	}

	contour := []Point{start}
	// scan order guarantees the west neighbor of the start pixel is background
	backtrack := Point{start.X - 1, start.Y}
	cur := start
	idx := ringIndex(cur, backtrack)
	misses := 0

	limit := 4*w*h + 8
	for iter := 0; iter < limit; iter++ {
		idx = (idx + 1) % 8
		next := Point{cur.X + ringDirs[idx].X, cur.Y + ringDirs[idx].Y}
		if !fg(next) {
			backtrack = next
			misses++
			if misses == 8 {
				break // isolated pixel
			}
			continue
		}
		if next == start && len(contour) > 1 {
			break // boundary closed
		}
		contour = append(contour, next)
		cur = next
		idx = ringIndex(cur, backtrack)
		misses = 0
	}
	return contour
}

func floodLabel(bin []bool, labeled []bool, w, h, sx, sy int) {
	stack := []int{sy*w + sx}
	labeled[sy*w+sx] = true
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
				if bin[j] && !labeled[j] {
					labeled[j] = true
					stack = append(stack, j)
				}
			}
		}
	}
}

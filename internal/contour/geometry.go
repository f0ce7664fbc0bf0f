package contour

import (
	"math"
	"sort"
)

// Area returns the enclosed polygon area of a closed contour (shoelace
// formula, absolute value).
func Area(c []Point) float64 {
	if len(c) < 3 {
		return 0
	}
	sum := 0.0
	for i := range c {
		j := (i + 1) % len(c)
		sum += float64(c[i].X*c[j].Y - c[j].X*c[i].Y)
	}
	return math.Abs(sum) / 2
}

// Perimeter returns the closed arc length of a contour.
func Perimeter(c []Point) float64 {
	if len(c) < 2 {
		return 0
	}
	sum := 0.0
	for i := range c {
		j := (i + 1) % len(c)
		sum += math.Hypot(float64(c[j].X-c[i].X), float64(c[j].Y-c[i].Y))
	}
	return sum
}

// Compactness returns 4πA/P², the isoperimetric ratio: 1 for a circle,
// lower for ragged or elongated outlines. Zero perimeter yields 0.
func Compactness(area, perimeter float64) float64 {
	if perimeter <= 0 {
		return 0
	}
	ratio := 4 * math.Pi * area / (perimeter * perimeter)
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}

// Largest returns the contour with the greatest enclosed area.
func Largest(contours [][]Point) []Point {
	var best []Point
	bestArea := -1.0
	for _, c := range contours {
		if a := Area(c); a > bestArea {
			bestArea = a
			best = c
		}
	}
	return best
}

// ConvexHull computes the convex hull of a point set with Andrew's monotone
// chain, returned in counterclockwise order without the repeated endpoint.
func ConvexHull(pts []Point) []Point {
	if len(pts) < 3 {
		out := append([]Point(nil), pts...)
		return out
	}
	sorted := append([]Point(nil), pts...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})
	// drop duplicates
	uniq := sorted[:1]
	for _, p := range sorted[1:] {
		if p != uniq[len(uniq)-1] {
			uniq = append(uniq, p)
		}
	}
	if len(uniq) < 3 {
		return uniq
	}

	cross := func(o, a, b Point) int {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}

	var hull []Point
	for _, p := range uniq { // lower
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(uniq) - 2; i >= 0; i-- { // upper
		p := uniq[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// Simplify reduces a closed contour with the Douglas-Peucker algorithm. The
// contour is split at its two mutually farthest vertices and each open chain
// is simplified with the given tolerance.
func Simplify(c []Point, epsilon float64) []Point {
	if len(c) < 3 || epsilon <= 0 {
		return append([]Point(nil), c...)
	}

	// farthest pair along the ring, measured from vertex 0 and its antipode
	far1 := 0
	maxD := -1.0
	for i, p := range c {
		if d := dist(c[0], p); d > maxD {
			maxD = d
			far1 = i
		}
	}
	far2 := 0
	maxD = -1.0
	for i, p := range c {
		if d := dist(c[far1], p); d > maxD {
			maxD = d
			far2 = i
		}
	}
	if far1 > far2 {
		far1, far2 = far2, far1
	}
	if far1 == far2 {
		return append([]Point(nil), c...)
	}

	first := douglasPeucker(c[far1:far2+1], epsilon)
	second := append(append([]Point(nil), c[far2:]...), c[:far1+1]...)
	second = douglasPeucker(second, epsilon)

	out := append([]Point(nil), first...)
	if len(second) > 2 {
		out = append(out, second[1:len(second)-1]...)
	}
	return out
}

func douglasPeucker(chain []Point, epsilon float64) []Point {
	if len(chain) < 3 {
		return append([]Point(nil), chain...)
	}
	maxDist := 0.0
	index := 0
	a, b := chain[0], chain[len(chain)-1]
	for i := 1; i < len(chain)-1; i++ {
		if d := perpDistance(chain[i], a, b); d > maxDist {
			maxDist = d
			index = i
		}
	}
	if maxDist <= epsilon {
		return []Point{a, b}
	}
	left := douglasPeucker(chain[:index+1], epsilon)
	right := douglasPeucker(chain[index:], epsilon)
	return append(left[:len(left)-1], right...)
}

// Defect is a convexity defect: the deepest contour point between two
// consecutive hull vertices.
type Defect struct {
	Start Point
	End   Point
	Far   Point
	Depth float64
}

// ConvexityDefects walks the contour between consecutive hull vertices and
// records, for every hull edge bridging intermediate contour points, the
// point farthest from the hull chord.
func ConvexityDefects(c []Point, hull []Point) []Defect {
	if len(c) < 4 || len(hull) < 3 {
		return nil
	}

	// map hull vertices back to contour indices, in contour order
	indexOf := make(map[Point]int, len(c))
	for i, p := range c {
		if _, ok := indexOf[p]; !ok {
			indexOf[p] = i
		}
	}
	var hullIdx []int
	for _, p := range hull {
		if i, ok := indexOf[p]; ok {
			hullIdx = append(hullIdx, i)
		}
	}
	if len(hullIdx) < 3 {
		return nil
	}
	sort.Ints(hullIdx)

	var defects []Defect
	for k := range hullIdx {
		startIdx := hullIdx[k]
		endIdx := hullIdx[(k+1)%len(hullIdx)]

		span := endIdx - startIdx
		if span <= 0 {
			span += len(c)
		}
		if span < 2 {
			continue // adjacent on the contour, no gap
		}

		a, b := c[startIdx], c[endIdx]
		maxDepth := 0.0
		far := a
		for step := 1; step < span; step++ {
			p := c[(startIdx+step)%len(c)]
			if d := perpDistance(p, a, b); d > maxDepth {
				maxDepth = d
				far = p
			}
		}
		defects = append(defects, Defect{Start: a, End: b, Far: far, Depth: maxDepth})
	}
	return defects
}

// MaxDepth returns the deepest defect depth, 0 for an empty set.
func MaxDepth(defects []Defect) float64 {
	max := 0.0
	for _, d := range defects {
		if d.Depth > max {
			max = d.Depth
		}
	}
	return max
}

func dist(a, b Point) float64 {
	return math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
}

func perpDistance(p, a, b Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return dist(p, a)
	}
	return math.Abs(dx*float64(p.Y-a.Y)-dy*float64(p.X-a.X)) / length
}

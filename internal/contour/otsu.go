package contour

// OtsuThreshold picks the gray threshold maximizing between-class variance.
// A plane with a single occupied level returns that level, so binarizing
// with a strict > comparison yields an empty foreground.
func OtsuThreshold(gray []uint8) uint8 {
	var hist [256]float64
	for _, g := range gray {
		hist[g]++
	}
	total := float64(len(gray))
	if total == 0 {
		return 0
	}

	var sumAll float64
	for t := 0; t < 256; t++ {
		sumAll += float64(t) * hist[t]
	}

	var sumB, weightB float64
	bestVar := 0.0
	bestT := -1
	for t := 0; t < 256; t++ {
		weightB += hist[t]
		if weightB == 0 {
			continue
		}
		weightF := total - weightB
		if weightF == 0 {
			break
		}
		sumB += float64(t) * hist[t]
		meanB := sumB / weightB
		meanF := (sumAll - sumB) / weightF
		between := weightB * weightF * (meanB - meanF) * (meanB - meanF)
		if between > bestVar {
			bestVar = between
			bestT = t
		}
	}

	if bestT < 0 {
		for t := 255; t >= 0; t-- {
			if hist[t] > 0 {
				return uint8(t)
			}
		}
		return 0
	}
	return uint8(bestT)
}

// Binarize marks pixels strictly above the threshold as foreground.
func Binarize(gray []uint8, threshold uint8) []bool {
	out := make([]bool, len(gray))
	for i, g := range gray {
		out[i] = g > threshold
	}
	return out
}

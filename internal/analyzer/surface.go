package analyzer

import (
	"math"

	"go-leaf-inspector/internal/raster"
	"go-leaf-inspector/pkg/models"
)

// Status vocabulary for the uniformity, texture and glossiness features.
const (
	UniformityUniform    = "Uniform (Healthy)"
	UniformityPatchy     = "Patchy (Stress/Deficiency/Disease)"
	UniformityModerate   = "Moderately Uniform"
	TextureSmooth        = "Smooth (Healthy)"
	TextureRough         = "Rough/Spotted (Disease or Stress)"
	TextureModerate      = "Moderate Texture"
	GlossinessGlossy     = "Glossy (Healthy)"
	GlossinessDull       = "Dull/Dusty (Stress or Aging)"
	GlossinessModerate   = "Moderate Glossiness"
)

// ColorUniformity measures lightness variation: a global coefficient of
// variation plus the share of the leaf exceeding its own 90th-percentile
// local variance.
func ColorUniformity(v *raster.ColorViews, window int) *models.ColorUniformityResult {
	mean, std := raster.MeanStd(v.Light)
	cv := std / (mean + 1) * 100

	localVar := raster.LocalVariance(v.Light, v.W, v.H, window)
	threshold := raster.Percentile(localVar, 90)
	patchy := 0
	for _, lv := range localVar {
		if lv > threshold {
			patchy++
		}
	}
	patchiness := 0.0
	if n := len(localVar); n > 0 {
		patchiness = float64(patchy) / float64(n) * 100
	}

	var status string
	switch {
	case cv < 15 && patchiness < 10:
		status = UniformityUniform
	case cv > 25 || patchiness > 30:
		status = UniformityPatchy
	default:
		status = UniformityModerate
	}

	return &models.ColorUniformityResult{
		VariationCoefficient: cv,
		PatchinessPercentage: patchiness,
		UniformityStatus:     status,
		IsUniform:            cv < 20 && patchiness < 15,
	}
}

// Texture measures surface pattern: high-pass contrast, gray-level entropy,
// edge density and the share of high-response (rough) pixels.
func Texture(v *raster.ColorViews, cannyLow, cannyHigh float64) *models.TextureResult {
	filtered := raster.HighPass(v.Gray, v.W, v.H)
	_, contrast := raster.MeanStd(filtered)

	entropy := shannonEntropy(v.Gray)

	edgeDensity := raster.CannyEdges(v.Gray, v.W, v.H, cannyLow, cannyHigh).CoveragePercent()

	responses := make([]float64, len(filtered))
	for i, f := range filtered {
		responses[i] = float64(f)
	}
	roughThreshold := raster.Percentile(responses, 90)
	rough := 0
	for _, r := range responses {
		if r > roughThreshold {
			rough++
		}
	}
	roughness := 0.0
	if n := len(responses); n > 0 {
		roughness = float64(rough) / float64(n) * 100
	}

	var status string
	switch {
	case contrast < 20 && entropy < 6 && roughness < 5:
		status = TextureSmooth
	case roughness > 20 || contrast > 40:
		status = TextureRough
	default:
		status = TextureModerate
	}

	return &models.TextureResult{
		Contrast:            contrast,
		Entropy:             entropy,
		EdgeDensity:         edgeDensity,
		RoughnessPercentage: roughness,
		TextureStatus:       status,
		IsSmooth:            contrast < 25 && roughness < 10,
	}
}

// shannonEntropy computes the entropy of the 256-bin gray histogram with a
// small epsilon guarding empty bins.
func shannonEntropy(gray []uint8) float64 {
	var hist [256]float64
	for _, g := range gray {
		hist[g]++
	}
	total := float64(len(gray)) + 1e-10

	entropy := 0.0
	for _, count := range hist {
		p := count / total
		entropy -= p * math.Log2(p+1e-10)
	}
	return entropy
}

// Glossiness measures surface reflection: global brightness spread plus the
// share of the leaf above its own 75th-percentile local standard deviation.
func Glossiness(v *raster.ColorViews, window int) *models.GlossinessResult {
	_, brightnessStd := raster.MeanStd(v.Gray)

	localStd := raster.LocalStdDev(v.Gray, v.W, v.H, window)
	threshold := raster.Percentile(localStd, 75)
	glossy := 0
	for _, ls := range localStd {
		if ls > threshold {
			glossy++
		}
	}
	glossiness := 0.0
	if n := len(localStd); n > 0 {
		glossiness = float64(glossy) / float64(n) * 100
	}

	var status string
	switch {
	case glossiness > 30 && brightnessStd > 30:
		status = GlossinessGlossy
	case glossiness < 10 && brightnessStd < 20:
		status = GlossinessDull
	default:
		status = GlossinessModerate
	}

	return &models.GlossinessResult{
		BrightnessVariation:  brightnessStd,
		GlossinessPercentage: glossiness,
		GlossinessStatus:     status,
		IsGlossy:             glossiness > 25 && brightnessStd > 25,
	}
}

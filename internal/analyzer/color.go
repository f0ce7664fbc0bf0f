package analyzer

import (
	"go-leaf-inspector/internal/raster"
	"go-leaf-inspector/pkg/models"
)

// Status vocabulary for the leaf-color feature.
const (
	ColorHealthyGreen  = "Healthy Green"
	ColorYellowing     = "Yellowing (Possible Nitrogen Deficiency)"
	ColorPale          = "Pale (Possible Iron Deficiency)"
	ColorDarkGreen     = "Dark Green (Possible Excess Nitrogen)"
	ColorModerateGreen = "Moderate Green"

	AssessmentHealthy    = "Healthy"
	AssessmentDeficiency = "Deficiency Detected"
	AssessmentModerate   = "Moderate Health"
)

// LeafColor measures overall coloration: green intensity, yellowing, pallor
// and excess dark green, with a deficiency-oriented status cascade.
func LeafColor(v *raster.ColorViews) *models.LeafColorResult {
	greenIntensity := v.MeanG
	greenRatio := 0.0
	if total := v.MeanR + v.MeanG + v.MeanB; total > 0 {
		greenRatio = v.MeanG / total
	}

	yellowing := raster.HSVRange(v, 20, 30, 50, 255, 100, 255).CoveragePercent()
	pale := raster.ChannelRange(v.Sat, v.W, v.H, 0, 50).CoveragePercent()
	darkGreen := raster.HSVRange(v, 40, 80, 100, 255, 0, 100).CoveragePercent()

	var status string
	switch {
	case greenIntensity > 100 && yellowing < 10 && pale < 20:
		status = ColorHealthyGreen
	case yellowing > 30:
		status = ColorYellowing
	case pale > 40:
		status = ColorPale
	case darkGreen > 50:
		status = ColorDarkGreen
	default:
		status = ColorModerateGreen
	}

	return &models.LeafColorResult{
		GreenIntensity:      greenIntensity,
		GreenRatio:          greenRatio,
		YellowingPercentage: yellowing,
		PalePercentage:      pale,
		DarkGreenPercentage: darkGreen,
		ColorStatus:         status,
		Assessment:          assessColorHealth(greenIntensity, yellowing, pale),
	}
}

func assessColorHealth(greenIntensity, yellowing, pale float64) string {
	switch {
	case greenIntensity > 100 && yellowing < 10 && pale < 20:
		return AssessmentHealthy
	case yellowing > 30 || pale > 40:
		return AssessmentDeficiency
	default:
		return AssessmentModerate
	}
}

// Status vocabulary for the chlorophyll feature.
const (
	ChlorophyllHigh     = "High (Good Nitrogen Level)"
	ChlorophyllLow      = "Low (Possible Nitrogen Deficiency)"
	ChlorophyllModerate = "Moderate"
)

// Chlorophyll estimates chlorophyll content from the normalized green
// channel, a stand-in for a SPAD reading.
func Chlorophyll(v *raster.ColorViews) *models.ChlorophyllResult {
	index := v.MeanG / 255.0
	ratio := 0.0
	if total := v.MeanR + v.MeanG + v.MeanB; total > 0 {
		ratio = v.MeanG / total
	}

	var status string
	switch {
	case index > 0.5 && ratio > 0.4:
		status = ChlorophyllHigh
	case index < 0.3 || ratio < 0.3:
		status = ChlorophyllLow
	default:
		status = ChlorophyllModerate
	}

	nitrogen := "Moderate"
	if index > 0.5 {
		nitrogen = "High"
	} else if index < 0.3 {
		nitrogen = "Low"
	}

	return &models.ChlorophyllResult{
		ChlorophyllIndex:       index,
		GreenRatio:             ratio,
		ChlorophyllStatus:      status,
		EstimatedNitrogenLevel: nitrogen,
	}
}

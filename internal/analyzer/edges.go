package analyzer

import (
	"go-leaf-inspector/internal/raster"
	"go-leaf-inspector/pkg/models"
)

// Status vocabulary for the edge-condition feature.
const (
	EdgesHealthy  = "Healthy Edges"
	EdgesBurnt    = "Burnt Edges (Possible Potassium Deficiency)"
	EdgesYellow   = "Yellow Edges (Possible Magnesium Deficiency)"
	EdgesDry      = "Dry Margins (Water Stress)"
	EdgesModerate = "Moderate Edge Issues"
)

// EdgeCondition inspects the outer margin band of the frame for burn,
// yellowing and drying. All percentages are measured against the band area,
// counting band pixels only.
func EdgeCondition(v *raster.ColorViews) *models.EdgeConditionResult {
	band := raster.BorderBand(v.W, v.H)
	bandArea := band.Count()
	if bandArea == 0 {
		return &models.EdgeConditionResult{EdgeStatus: EdgesHealthy}
	}

	burnt, yellow, dry := 0, 0, 0
	for i, inBand := range band.Bits {
		if !inBand {
			continue
		}
		val := v.Val[i]
		if val < 80 {
			burnt++
		}
		if v.Hue[i] >= 20 && v.Hue[i] <= 30 && v.Sat[i] >= 100 && val >= 100 {
			yellow++
		}
		if v.Sat[i] < 50 && val > 100 && val < 200 {
			dry++
		}
	}

	toPercent := func(n int) float64 { return float64(n) / float64(bandArea) * 100 }
	burntPct := toPercent(burnt)
	yellowPct := toPercent(yellow)
	dryPct := toPercent(dry)

	var status string
	switch {
	case burntPct < 5 && yellowPct < 10 && dryPct < 15:
		status = EdgesHealthy
	case burntPct > 20:
		status = EdgesBurnt
	case yellowPct > 30:
		status = EdgesYellow
	case dryPct > 40:
		status = EdgesDry
	default:
		status = EdgesModerate
	}

	return &models.EdgeConditionResult{
		BurntEdgesPercentage:  burntPct,
		YellowEdgesPercentage: yellowPct,
		DryMarginsPercentage:  dryPct,
		EdgeStatus:            status,
		EdgeIssuesDetected:    burntPct > 10 || yellowPct > 15 || dryPct > 20,
	}
}

package analyzer

import (
	"go-leaf-inspector/internal/raster"
	"go-leaf-inspector/pkg/models"
)

// Status vocabulary for the lesion feature.
const (
	LesionsNone     = "No Significant Lesions Detected"
	LesionsMild     = "Mild Lesions/Discoloration"
	LesionsModerate = "Moderate Lesions/Discoloration"
	LesionsSevere   = "Severe Lesions/Discoloration"
)

// SpotsLesions measures abnormal coloration coverage: brown spots, washed
// white patches, black necrotic lesions and yellow margins. Yellow coverage
// is reported but only brown+white+black count toward the abnormality total.
func SpotsLesions(v *raster.ColorViews) *models.SpotsLesionsResult {
	brown := raster.HSVRange(v, 10, 25, 50, 255, 20, 150).CoveragePercent()
	white := raster.HSVRange(v, 0, 180, 0, 30, 200, 255).CoveragePercent()
	black := raster.ChannelRange(v.Val, v.W, v.H, 0, 50).CoveragePercent()
	yellow := raster.HSVRange(v, 20, 30, 100, 255, 100, 255).CoveragePercent()

	total := brown + white + black

	var status string
	switch {
	case total < 2:
		status = LesionsNone
	case total < 10:
		status = LesionsMild
	case total < 25:
		status = LesionsModerate
	default:
		status = LesionsSevere
	}

	return &models.SpotsLesionsResult{
		BrownSpotsPercentage:       brown,
		WhitePatchesPercentage:     white,
		BlackLesionsPercentage:     black,
		YellowMarginsPercentage:    yellow,
		TotalAbnormalityPercentage: total,
		LesionStatus:               status,
		HasLesions:                 total > 2,
	}
}

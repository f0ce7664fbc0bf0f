package analyzer

import (
	"go-leaf-inspector/internal/raster"
	"go-leaf-inspector/pkg/models"
)

// Status vocabulary for the vein-visibility feature.
const (
	VeinsNotProminent = "Veins Not Prominent (Normal)"
	VeinsIron         = "Green Veins + Yellow Surface (Possible Iron Deficiency)"
	VeinsProminent    = "Prominent Veins (Stress Indicator)"
	VeinsNormal       = "Normal Vein Visibility"
)

// VeinVisibility detects vein structure as closed edge lines and checks for
// the interveinal-chlorosis signature: green veins against a yellow surface.
func VeinVisibility(v *raster.ColorViews, cannyLow, cannyHigh float64) *models.VeinVisibilityResult {
	veins := raster.CannyEdges(v.Gray, v.W, v.H, cannyLow, cannyHigh).Close3x3()
	density := veins.CoveragePercent()

	greenVein := raster.HSVRange(v, 40, 80, 50, 255, 0, 150).CoveragePercent()
	yellowSurface := raster.HSVRange(v, 20, 30, 100, 255, 100, 255).CoveragePercent()

	var status string
	switch {
	case density < 5:
		status = VeinsNotProminent
	case greenVein > 10 && yellowSurface > 20:
		status = VeinsIron
	case density > 15:
		status = VeinsProminent
	default:
		status = VeinsNormal
	}

	return &models.VeinVisibilityResult{
		VeinDensityPercentage:   density,
		GreenVeinPercentage:     greenVein,
		YellowSurfacePercentage: yellowSurface,
		VeinStatus:              status,
		ProminentVeins:          density > 12,
		IronDeficiencyIndicator: greenVein > 10 && yellowSurface > 20,
	}
}

package validation

import (
	"fmt"

	"go-leaf-inspector/internal/analyzer"
	"go-leaf-inspector/pkg/models"
)

// ReportValidator sanity-checks an assembled report before it leaves the
// service: percentages in [0,100], scores in [0,1], statuses from the known
// vocabularies. Findings are returned as warnings, never as errors, so a
// report with a suspect value still reaches the caller.
type ReportValidator struct{}

// NewReportValidator creates a report validator.
func NewReportValidator() *ReportValidator {
	return &ReportValidator{}
}

// Validate returns a list of issues found in the report, empty when the
// report is clean. A failed analysis (empty features plus error message)
// validates clean.
func (v *ReportValidator) Validate(report *models.AnalysisReport) []string {
	if report == nil {
		return []string{"report is nil"}
	}

	var issues []string
	add := func(format string, args ...interface{}) {
		issues = append(issues, fmt.Sprintf(format, args...))
	}
	checkPercent := func(feature, field string, value float64) {
		if value < 0 || value > 100 {
			add("%s: %s out of range [0,100]: %g", feature, field, value)
		}
	}
	checkUnit := func(feature, field string, value float64) {
		if value < 0 || value > 1 {
			add("%s: %s out of range [0,1]: %g", feature, field, value)
		}
	}
	checkStatus := func(feature, field, value string, allowed ...string) {
		for _, a := range allowed {
			if value == a {
				return
			}
		}
		add("%s: unrecognized %s %q", feature, field, value)
	}

	if c := report.LeafColor; c != nil {
		checkPercent(models.KeyLeafColor, "yellowing_percentage", c.YellowingPercentage)
		checkPercent(models.KeyLeafColor, "pale_percentage", c.PalePercentage)
		checkPercent(models.KeyLeafColor, "dark_green_percentage", c.DarkGreenPercentage)
		checkUnit(models.KeyLeafColor, "green_ratio", c.GreenRatio)
		checkStatus(models.KeyLeafColor, "color_status", c.ColorStatus,
			analyzer.ColorHealthyGreen, analyzer.ColorYellowing, analyzer.ColorPale,
			analyzer.ColorDarkGreen, analyzer.ColorModerateGreen)
		checkStatus(models.KeyLeafColor, "assessment", c.Assessment,
			analyzer.AssessmentHealthy, analyzer.AssessmentDeficiency, analyzer.AssessmentModerate)
	}

	if u := report.ColorUniformity; u != nil {
		checkPercent(models.KeyColorUniformity, "patchiness_percentage", u.PatchinessPercentage)
		checkStatus(models.KeyColorUniformity, "uniformity_status", u.UniformityStatus,
			analyzer.UniformityUniform, analyzer.UniformityPatchy, analyzer.UniformityModerate)
	}

	if t := report.Texture; t != nil {
		checkPercent(models.KeyTexture, "edge_density", t.EdgeDensity)
		checkPercent(models.KeyTexture, "roughness_percentage", t.RoughnessPercentage)
		checkStatus(models.KeyTexture, "texture_status", t.TextureStatus,
			analyzer.TextureSmooth, analyzer.TextureRough, analyzer.TextureModerate)
	}

	if l := report.SpotsLesions; l != nil {
		checkPercent(models.KeySpotsLesions, "brown_spots_percentage", l.BrownSpotsPercentage)
		checkPercent(models.KeySpotsLesions, "white_patches_percentage", l.WhitePatchesPercentage)
		checkPercent(models.KeySpotsLesions, "black_lesions_percentage", l.BlackLesionsPercentage)
		checkPercent(models.KeySpotsLesions, "yellow_margins_percentage", l.YellowMarginsPercentage)
		checkStatus(models.KeySpotsLesions, "lesion_status", l.LesionStatus,
			analyzer.LesionsNone, analyzer.LesionsMild, analyzer.LesionsModerate, analyzer.LesionsSevere)
	}

	if s := report.Shape; s != nil {
		checkUnit(models.KeyShape, "curvature_index", s.CurvatureIndex)
		checkUnit(models.KeyShape, "compactness", s.Compactness)
		if s.DefectCount < 0 {
			add("%s: negative defect_count %d", models.KeyShape, s.DefectCount)
		}
		checkStatus(models.KeyShape, "shape_status", s.ShapeStatus,
			analyzer.ShapeNormal, analyzer.ShapeDeformed, analyzer.ShapeMild, analyzer.ShapeUndetectable)
	}

	if e := report.EdgeCondition; e != nil {
		checkPercent(models.KeyEdgeCondition, "burnt_edges_percentage", e.BurntEdgesPercentage)
		checkPercent(models.KeyEdgeCondition, "yellow_edges_percentage", e.YellowEdgesPercentage)
		checkPercent(models.KeyEdgeCondition, "dry_margins_percentage", e.DryMarginsPercentage)
		checkStatus(models.KeyEdgeCondition, "edge_status", e.EdgeStatus,
			analyzer.EdgesHealthy, analyzer.EdgesBurnt, analyzer.EdgesYellow,
			analyzer.EdgesDry, analyzer.EdgesModerate)
	}

	if s := report.SizeArea; s != nil {
		checkPercent(models.KeySizeArea, "leaf_area_percentage", s.LeafAreaPercentage)
		if s.LeafAreaPixels < 0 {
			add("%s: negative leaf_area_pixels %g", models.KeySizeArea, s.LeafAreaPixels)
		}
		checkStatus(models.KeySizeArea, "size_status", s.SizeStatus,
			analyzer.SizeNormal, analyzer.SizeSmall, analyzer.SizeModerate, analyzer.SizeUncomputable)
	}

	if vv := report.VeinVisibility; vv != nil {
		checkPercent(models.KeyVeinVisibility, "vein_density_percentage", vv.VeinDensityPercentage)
		checkPercent(models.KeyVeinVisibility, "green_vein_percentage", vv.GreenVeinPercentage)
		checkPercent(models.KeyVeinVisibility, "yellow_surface_percentage", vv.YellowSurfacePercentage)
		checkStatus(models.KeyVeinVisibility, "vein_status", vv.VeinStatus,
			analyzer.VeinsNotProminent, analyzer.VeinsIron, analyzer.VeinsProminent, analyzer.VeinsNormal)
	}

	if g := report.Glossiness; g != nil {
		checkPercent(models.KeyGlossiness, "glossiness_percentage", g.GlossinessPercentage)
		checkStatus(models.KeyGlossiness, "glossiness_status", g.GlossinessStatus,
			analyzer.GlossinessGlossy, analyzer.GlossinessDull, analyzer.GlossinessModerate)
	}

	if s := report.Stress; s != nil {
		checkUnit(models.KeyStress, "stress_score", s.StressScore)
		if s.StressFactorCount < 0 {
			add("%s: negative stress_factors_count %d", models.KeyStress, s.StressFactorCount)
		}
		checkStatus(models.KeyStress, "health_status", s.HealthStatus,
			analyzer.HealthStatusHealthy, analyzer.HealthStatusMild, analyzer.HealthStatusSevere)
	}

	if c := report.Chlorophyll; c != nil {
		checkUnit(models.KeyChlorophyll, "chlorophyll_index", c.ChlorophyllIndex)
		checkUnit(models.KeyChlorophyll, "green_ratio", c.GreenRatio)
		checkStatus(models.KeyChlorophyll, "chlorophyll_status", c.ChlorophyllStatus,
			analyzer.ChlorophyllHigh, analyzer.ChlorophyllLow, analyzer.ChlorophyllModerate)
	}

	if p := report.PHProxy; p != nil {
		if p.LowPHIndicators < 0 || p.HighPHIndicators < 0 {
			add("%s: negative indicator count", models.KeyPHProxy)
		}
		checkStatus(models.KeyPHProxy, "ph_estimate", p.PHEstimate,
			analyzer.PHLow, analyzer.PHHigh, analyzer.PHNormal)
	}

	return issues
}

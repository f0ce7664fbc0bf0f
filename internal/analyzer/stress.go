package analyzer

import (
	"go-leaf-inspector/pkg/models"
)

// Status vocabulary for the stress and pH features.
const (
	HealthStatusHealthy = "🟢 Healthy"
	HealthStatusMild    = "🟡 Mild Stress"
	HealthStatusSevere  = "🔴 Severe Stress"

	PHLow    = "Low pH (Acidic)"
	PHHigh   = "High pH (Alkaline)"
	PHNormal = "Normal pH"

	PHConfidence = "Low (Indirect Estimation)"
)

// AggregateStress tallies the stress flags of the nine morphological
// features into a single normalized score. Lesions weigh double.
func AggregateStress(set *featureSet, weights StressWeights) *models.StressResult {
	factors := 0
	if set.Color != nil && set.Color.Assessment != AssessmentHealthy {
		factors += weights.FactorPoints
	}
	if set.Uniformity != nil && !set.Uniformity.IsUniform {
		factors += weights.FactorPoints
	}
	if set.Texture != nil && !set.Texture.IsSmooth {
		factors += weights.FactorPoints
	}
	if set.Lesions != nil && set.Lesions.HasLesions {
		factors += weights.LesionPoints
	}
	if set.Shape != nil && set.Shape.DeformationDetected {
		factors += weights.FactorPoints
	}
	if set.Edges != nil && set.Edges.EdgeIssuesDetected {
		factors += weights.FactorPoints
	}
	if set.Size != nil && set.Size.IsStunted {
		factors += weights.FactorPoints
	}
	if set.Veins != nil && set.Veins.ProminentVeins {
		factors += weights.FactorPoints
	}
	if set.Gloss != nil && !set.Gloss.IsGlossy {
		factors += weights.FactorPoints
	}

	score := 0.0
	if weights.MaxPoints > 0 {
		score = float64(factors) / float64(weights.MaxPoints)
	}

	var status string
	switch {
	case score < weights.HealthyBelow:
		status = HealthStatusHealthy
	case score < weights.MildBelow:
		status = HealthStatusMild
	default:
		status = HealthStatusSevere
	}

	return &models.StressResult{
		StressScore:       score,
		StressFactorCount: factors,
		HealthStatus:      status,
		OverallAssessment: status,
	}
}

// PHProxy estimates soil pH indirectly from deficiency signatures: yellowing
// and pallor point acidic, excess dark green and high stress point alkaline.
func PHProxy(color *models.LeafColorResult, texture *models.TextureResult, stressScore float64) *models.PHProxyResult {
	var yellowing, pale, darkGreen, roughness float64
	if color != nil {
		yellowing = color.YellowingPercentage
		pale = color.PalePercentage
		darkGreen = color.DarkGreenPercentage
	}
	if texture != nil {
		roughness = texture.RoughnessPercentage
	}

	low := 0
	if yellowing > 20 {
		low++
	}
	if pale > 30 {
		low++
	}
	if roughness > 15 {
		low++
	}

	high := 0
	if darkGreen > 40 {
		high++
	}
	if stressScore > 0.6 {
		high++
	}

	estimate := PHNormal
	if low >= 2 {
		estimate = PHLow
	} else if high >= 2 {
		estimate = PHHigh
	}

	return &models.PHProxyResult{
		PHEstimate:       estimate,
		LowPHIndicators:  low,
		HighPHIndicators: high,
		Confidence:       PHConfidence,
	}
}

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Report keys, in pipeline order.
const (
	KeyLeafColor       = "1_leaf_color"
	KeyColorUniformity = "2_color_uniformity"
	KeyTexture         = "3_leaf_texture"
	KeySpotsLesions    = "4_spots_lesions_discoloration"
	KeyShape           = "5_leaf_shape_deformation"
	KeyEdgeCondition   = "6_leaf_edge_condition"
	KeySizeArea        = "7_leaf_size_area"
	KeyVeinVisibility  = "8_vein_color_visibility"
	KeyGlossiness      = "9_glossiness_dullness"
	KeyStress          = "10_stress_indicators"
	KeyChlorophyll     = "11_chlorophyll_index"
	KeyPHProxy         = "12_ph_proxy"
)

// FeatureKeys lists every report key in order.
var FeatureKeys = []string{
	KeyLeafColor, KeyColorUniformity, KeyTexture, KeySpotsLesions,
	KeyShape, KeyEdgeCondition, KeySizeArea, KeyVeinVisibility,
	KeyGlossiness, KeyStress, KeyChlorophyll, KeyPHProxy,
}

// LeafColorResult holds overall coloration measurements.
type LeafColorResult struct {
	GreenIntensity      float64 `json:"green_intensity"`
	GreenRatio          float64 `json:"green_ratio"`
	YellowingPercentage float64 `json:"yellowing_percentage"`
	PalePercentage      float64 `json:"pale_percentage"`
	DarkGreenPercentage float64 `json:"dark_green_percentage"`
	ColorStatus         string  `json:"color_status"`
	Assessment          string  `json:"assessment"`
}

// ColorUniformityResult holds lightness-variation measurements.
type ColorUniformityResult struct {
	VariationCoefficient float64 `json:"color_variation_coefficient"`
	PatchinessPercentage float64 `json:"patchiness_percentage"`
	UniformityStatus     string  `json:"uniformity_status"`
	IsUniform            bool    `json:"is_uniform"`
}

// TextureResult holds surface-pattern measurements.
type TextureResult struct {
	Contrast            float64 `json:"contrast"`
	Entropy             float64 `json:"entropy"`
	EdgeDensity         float64 `json:"edge_density"`
	RoughnessPercentage float64 `json:"roughness_percentage"`
	TextureStatus       string  `json:"texture_status"`
	IsSmooth            bool    `json:"is_smooth"`
}

// SpotsLesionsResult holds abnormal-coloration coverage.
type SpotsLesionsResult struct {
	BrownSpotsPercentage       float64 `json:"brown_spots_percentage"`
	WhitePatchesPercentage     float64 `json:"white_patches_percentage"`
	BlackLesionsPercentage     float64 `json:"black_lesions_percentage"`
	YellowMarginsPercentage    float64 `json:"yellow_margins_percentage"`
	TotalAbnormalityPercentage float64 `json:"total_abnormality_percentage"`
	LesionStatus               string  `json:"lesion_status"`
	HasLesions                 bool    `json:"has_lesions"`
}

// ShapeDeformationResult holds contour-derived shape measurements.
type ShapeDeformationResult struct {
	ShapeStatus         string  `json:"shape_status"`
	DeformationDetected bool    `json:"deformation_detected"`
	CurvatureIndex      float64 `json:"curvature_index"`
	Compactness         float64 `json:"compactness"`
	DefectCount         int     `json:"defect_count"`
}

// EdgeConditionResult holds margin-band measurements.
type EdgeConditionResult struct {
	BurntEdgesPercentage  float64 `json:"burnt_edges_percentage"`
	YellowEdgesPercentage float64 `json:"yellow_edges_percentage"`
	DryMarginsPercentage  float64 `json:"dry_margins_percentage"`
	EdgeStatus            string  `json:"edge_status"`
	EdgeIssuesDetected    bool    `json:"edge_issues_detected"`
}

// SizeAreaResult holds leaf-area measurements relative to the frame.
type SizeAreaResult struct {
	LeafAreaPixels     float64 `json:"leaf_area_pixels"`
	LeafAreaPercentage float64 `json:"leaf_area_percentage"`
	RelativeSize       string  `json:"relative_size"`
	SizeStatus         string  `json:"size_status"`
	IsStunted          bool    `json:"is_stunted"`
}

// VeinVisibilityResult holds vein prominence measurements.
type VeinVisibilityResult struct {
	VeinDensityPercentage   float64 `json:"vein_density_percentage"`
	GreenVeinPercentage     float64 `json:"green_vein_percentage"`
	YellowSurfacePercentage float64 `json:"yellow_surface_percentage"`
	VeinStatus              string  `json:"vein_status"`
	ProminentVeins          bool    `json:"prominent_veins"`
	IronDeficiencyIndicator bool    `json:"iron_deficiency_indicator"`
}

// GlossinessResult holds surface-reflection measurements.
type GlossinessResult struct {
	BrightnessVariation  float64 `json:"brightness_variation"`
	GlossinessPercentage float64 `json:"glossiness_percentage"`
	GlossinessStatus     string  `json:"glossiness_status"`
	IsGlossy             bool    `json:"is_glossy"`
}

// StressResult aggregates the per-feature stress flags.
type StressResult struct {
	StressScore       float64 `json:"stress_score"`
	StressFactorCount int     `json:"stress_factors_count"`
	HealthStatus      string  `json:"health_status"`
	OverallAssessment string  `json:"overall_assessment"`
}

// ChlorophyllResult holds the green-channel chlorophyll estimate.
type ChlorophyllResult struct {
	ChlorophyllIndex       float64 `json:"chlorophyll_index"`
	GreenRatio             float64 `json:"green_ratio"`
	ChlorophyllStatus      string  `json:"chlorophyll_status"`
	EstimatedNitrogenLevel string  `json:"estimated_nitrogen_level"`
}

// PHProxyResult holds the indirect soil-pH estimate.
type PHProxyResult struct {
	PHEstimate       string `json:"ph_estimate"`
	LowPHIndicators  int    `json:"low_ph_indicators"`
	HighPHIndicators int    `json:"high_ph_indicators"`
	Confidence       string `json:"confidence"`
}

// AnalysisReport is the complete 12-feature health report. A nil feature
// pointer serializes as an empty object, so the report always carries all
// 12 keys whether or not the analysis succeeded.
type AnalysisReport struct {
	LeafColor       *LeafColorResult
	ColorUniformity *ColorUniformityResult
	Texture         *TextureResult
	SpotsLesions    *SpotsLesionsResult
	Shape           *ShapeDeformationResult
	EdgeCondition   *EdgeConditionResult
	SizeArea        *SizeAreaResult
	VeinVisibility  *VeinVisibilityResult
	Glossiness      *GlossinessResult
	Stress          *StressResult
	Chlorophyll     *ChlorophyllResult
	PHProxy         *PHProxyResult

	// Error is set when analysis failed; the feature pointers are then nil.
	Error string
}

// FailureReport returns the all-empty report shape for a failed analysis.
func FailureReport(err error) AnalysisReport {
	return AnalysisReport{Error: fmt.Sprintf("Analysis failed: %v", err)}
}

// MarshalJSON writes the report with its keys in pipeline order. Unset
// features serialize as {}.
func (r AnalysisReport) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	features := []struct {
		key   string
		val   interface{}
		empty bool
	}{
		{KeyLeafColor, r.LeafColor, r.LeafColor == nil},
		{KeyColorUniformity, r.ColorUniformity, r.ColorUniformity == nil},
		{KeyTexture, r.Texture, r.Texture == nil},
		{KeySpotsLesions, r.SpotsLesions, r.SpotsLesions == nil},
		{KeyShape, r.Shape, r.Shape == nil},
		{KeyEdgeCondition, r.EdgeCondition, r.EdgeCondition == nil},
		{KeySizeArea, r.SizeArea, r.SizeArea == nil},
		{KeyVeinVisibility, r.VeinVisibility, r.VeinVisibility == nil},
		{KeyGlossiness, r.Glossiness, r.Glossiness == nil},
		{KeyStress, r.Stress, r.Stress == nil},
		{KeyChlorophyll, r.Chlorophyll, r.Chlorophyll == nil},
		{KeyPHProxy, r.PHProxy, r.PHProxy == nil},
	}

	for i, f := range features {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, _ := json.Marshal(f.key)
		buf.Write(keyJSON)
		buf.WriteByte(':')
		if f.empty {
			buf.WriteString("{}")
			continue
		}
		valJSON, err := json.Marshal(f.val)
		if err != nil {
			return nil, err
		}
		buf.Write(valJSON)
	}

	if r.Error != "" {
		buf.WriteString(`,"error":`)
		errJSON, err := json.Marshal(r.Error)
		if err != nil {
			return nil, err
		}
		buf.Write(errJSON)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores a report serialized by MarshalJSON. Empty feature
// objects come back as nil pointers.
func (r *AnalysisReport) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	populated := func(key string) (json.RawMessage, bool) {
		msg, ok := raw[key]
		if !ok || bytes.Equal(bytes.TrimSpace(msg), []byte("{}")) {
			return nil, false
		}
		return msg, true
	}

	if msg, ok := populated(KeyLeafColor); ok {
		r.LeafColor = &LeafColorResult{}
		if err := json.Unmarshal(msg, r.LeafColor); err != nil {
			return err
		}
	}
	if msg, ok := populated(KeyColorUniformity); ok {
		r.ColorUniformity = &ColorUniformityResult{}
		if err := json.Unmarshal(msg, r.ColorUniformity); err != nil {
			return err
		}
	}
	if msg, ok := populated(KeyTexture); ok {
		r.Texture = &TextureResult{}
		if err := json.Unmarshal(msg, r.Texture); err != nil {
			return err
		}
	}
	if msg, ok := populated(KeySpotsLesions); ok {
		r.SpotsLesions = &SpotsLesionsResult{}
		if err := json.Unmarshal(msg, r.SpotsLesions); err != nil {
			return err
		}
	}
	if msg, ok := populated(KeyShape); ok {
		r.Shape = &ShapeDeformationResult{}
		if err := json.Unmarshal(msg, r.Shape); err != nil {
			return err
		}
	}
	if msg, ok := populated(KeyEdgeCondition); ok {
		r.EdgeCondition = &EdgeConditionResult{}
		if err := json.Unmarshal(msg, r.EdgeCondition); err != nil {
			return err
		}
	}
	if msg, ok := populated(KeySizeArea); ok {
		r.SizeArea = &SizeAreaResult{}
		if err := json.Unmarshal(msg, r.SizeArea); err != nil {
			return err
		}
	}
	if msg, ok := populated(KeyVeinVisibility); ok {
		r.VeinVisibility = &VeinVisibilityResult{}
		if err := json.Unmarshal(msg, r.VeinVisibility); err != nil {
			return err
		}
	}
	if msg, ok := populated(KeyGlossiness); ok {
		r.Glossiness = &GlossinessResult{}
		if err := json.Unmarshal(msg, r.Glossiness); err != nil {
			return err
		}
	}
	if msg, ok := populated(KeyStress); ok {
		r.Stress = &StressResult{}
		if err := json.Unmarshal(msg, r.Stress); err != nil {
			return err
		}
	}
	if msg, ok := populated(KeyChlorophyll); ok {
		r.Chlorophyll = &ChlorophyllResult{}
		if err := json.Unmarshal(msg, r.Chlorophyll); err != nil {
			return err
		}
	}
	if msg, ok := populated(KeyPHProxy); ok {
		r.PHProxy = &PHProxyResult{}
		if err := json.Unmarshal(msg, r.PHProxy); err != nil {
			return err
		}
	}

	if msg, ok := raw["error"]; ok {
		if err := json.Unmarshal(msg, &r.Error); err != nil {
			return err
		}
	}
	return nil
}

// MergeExternal overlays an externally produced evaluation (for example a
// disease classification from a vision model) onto the report, feature key
// by feature key, without mutating the report itself. External entries for
// unknown keys are carried through under their own names.
func MergeExternal(report AnalysisReport, external map[string]interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}
	var combined map[string]interface{}
	if err := json.Unmarshal(data, &combined); err != nil {
		return nil, err
	}

	for key, val := range external {
		extFields, ok := val.(map[string]interface{})
		if !ok {
			combined[key] = val
			continue
		}
		base, ok := combined[key].(map[string]interface{})
		if !ok {
			combined[key] = extFields
			continue
		}
		merged := make(map[string]interface{}, len(base)+len(extFields))
		for k, v := range base {
			merged[k] = v
		}
		for k, v := range extFields {
			merged[k] = v
		}
		combined[key] = merged
	}
	return combined, nil
}

package analyzer

import (
	"go-leaf-inspector/internal/contour"
	"go-leaf-inspector/internal/raster"
	"go-leaf-inspector/pkg/models"
)

// Status vocabulary for the shape and size features.
const (
	ShapeNormal       = "Normal Shape (No Significant Deformation)"
	ShapeDeformed     = "Deformed (Curling/Folding/Shrinking Detected)"
	ShapeMild         = "Mild Deformation"
	ShapeUndetectable = "Unable to Detect Shape"

	SizeNormal       = "Normal/Large Size"
	SizeSmall        = "Small Size (Possible Stunted Growth)"
	SizeModerate     = "Moderate Size"
	SizeUncomputable = "Unable to Calculate"
)

// ShapeDeformation segments the leaf with Otsu thresholding, traces its
// outline and derives compactness plus convexity defects of the simplified
// contour. Curling and folding show up as deep defects.
func ShapeDeformation(v *raster.ColorViews, simplifyFraction float64) *models.ShapeDeformationResult {
	outline := largestOutline(v)
	if outline == nil {
		return &models.ShapeDeformationResult{
			ShapeStatus:         ShapeUndetectable,
			DeformationDetected: false,
			CurvatureIndex:      0,
			Compactness:         0,
			DefectCount:         0,
		}
	}

	area := contour.Area(outline)
	perimeter := contour.Perimeter(outline)
	compactness := contour.Compactness(area, perimeter)

	simplified := contour.Simplify(outline, simplifyFraction*perimeter)
	hull := contour.ConvexHull(simplified)
	defects := contour.ConvexityDefects(simplified, hull)
	defectCount := len(defects)

	curvature := contour.MaxDepth(defects) / 256.0
	if curvature > 1 {
		curvature = 1
	}

	var status string
	switch {
	case compactness > 0.7 && defectCount < 5:
		status = ShapeNormal
	case compactness < 0.5 || defectCount > 15:
		status = ShapeDeformed
	default:
		status = ShapeMild
	}

	return &models.ShapeDeformationResult{
		ShapeStatus:         status,
		DeformationDetected: compactness < 0.6 || defectCount > 10,
		CurvatureIndex:      curvature,
		Compactness:         compactness,
		DefectCount:         defectCount,
	}
}

// SizeArea measures the leaf outline area relative to the frame.
func SizeArea(v *raster.ColorViews) *models.SizeAreaResult {
	outline := largestOutline(v)
	if outline == nil {
		return &models.SizeAreaResult{
			LeafAreaPixels:     0,
			LeafAreaPercentage: 0,
			RelativeSize:       "Unknown",
			SizeStatus:         SizeUncomputable,
			IsStunted:          false,
		}
	}

	area := contour.Area(outline)
	totalArea := float64(v.W * v.H)
	percentage := 0.0
	if totalArea > 0 {
		percentage = area / totalArea * 100
	}

	var status, relative string
	switch {
	case percentage > 60:
		status, relative = SizeNormal, "Normal"
	case percentage < 30:
		status, relative = SizeSmall, "Small"
	default:
		status, relative = SizeModerate, "Moderate"
	}

	return &models.SizeAreaResult{
		LeafAreaPixels:     area,
		LeafAreaPercentage: percentage,
		RelativeSize:       relative,
		SizeStatus:         status,
		IsStunted:          percentage < 30,
	}
}

// largestOutline segments the gray plane and returns the biggest external
// contour, or nil when the foreground is empty.
func largestOutline(v *raster.ColorViews) []contour.Point {
	threshold := contour.OtsuThreshold(v.Gray)
	bin := contour.Binarize(v.Gray, threshold)
	contours := contour.FindExternal(bin, v.W, v.H)
	if len(contours) == 0 {
		return nil
	}
	return contour.Largest(contours)
}

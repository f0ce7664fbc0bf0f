package validation

import (
	"errors"
	"strings"
	"testing"

	"go-leaf-inspector/internal/analyzer"
	"go-leaf-inspector/pkg/models"
)

func TestReportValidator_CleanReports(t *testing.T) {
	v := NewReportValidator()

	clean := models.AnalysisReport{
		LeafColor: &models.LeafColorResult{
			GreenIntensity:      140,
			GreenRatio:          0.5,
			YellowingPercentage: 5,
			ColorStatus:         analyzer.ColorHealthyGreen,
			Assessment:          analyzer.AssessmentHealthy,
		},
		Stress: &models.StressResult{
			StressScore:  0.1,
			HealthStatus: analyzer.HealthStatusHealthy,
		},
	}
	if issues := v.Validate(&clean); len(issues) != 0 {
		t.Errorf("expected clean report, got %v", issues)
	}

	failure := models.FailureReport(errors.New("decode failed"))
	if issues := v.Validate(&failure); len(issues) != 0 {
		t.Errorf("failure report should validate clean, got %v", issues)
	}
}

func TestReportValidator_FindsIssues(t *testing.T) {
	v := NewReportValidator()

	report := models.AnalysisReport{
		LeafColor: &models.LeafColorResult{
			YellowingPercentage: 120,
			ColorStatus:         "Mostly Chartreuse",
			Assessment:          analyzer.AssessmentModerate,
		},
		Shape: &models.ShapeDeformationResult{
			Compactness: 1.5,
			ShapeStatus: analyzer.ShapeNormal,
		},
		Stress: &models.StressResult{
			StressScore:  -0.2,
			HealthStatus: analyzer.HealthStatusHealthy,
		},
	}

	issues := v.Validate(&report)
	if len(issues) != 4 {
		t.Fatalf("expected 4 issues, got %d: %v", len(issues), issues)
	}

	joined := strings.Join(issues, "\n")
	for _, want := range []string{
		"yellowing_percentage out of range",
		"Mostly Chartreuse",
		"compactness out of range",
		"stress_score out of range",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected an issue mentioning %q, got:\n%s", want, joined)
		}
	}
}

func TestReportValidator_NilReport(t *testing.T) {
	if issues := NewReportValidator().Validate(nil); len(issues) != 1 {
		t.Errorf("expected a single nil-report issue, got %v", issues)
	}
}
